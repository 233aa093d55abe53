package service

import (
	"time"

	"github.com/wricardo/klondike/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	GameState      *engine.GameState  `json:"game_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// MoveRequest names a move by location, e.g. {"from":"w","to":"t3"} or
// {"from":"t2","to":"t5","size":3}
type MoveRequest struct {
	From engine.Location `json:"from"`
	To   engine.Location `json:"to"`
	Size int             `json:"size,omitempty"`
}

// MoveResult contains the result of a deal or move
type MoveResult struct {
	Success   bool              `json:"success"`
	GameState *engine.GameState `json:"game_state"`
	Message   string            `json:"message"`
	Events    []GameEvent       `json:"events,omitempty"`
}

// CommandResult contains the result of a text command
type CommandResult struct {
	Command string `json:"command"`

	// Applied is false for commands that only read the game (help, hint, board)
	Applied   bool              `json:"applied"`
	Success   bool              `json:"success"`
	Message   string            `json:"message"`
	Help      string            `json:"help,omitempty"`
	Hints     []string          `json:"hints,omitempty"`
	Board     string            `json:"board,omitempty"`
	Events    []GameEvent       `json:"events,omitempty"`
	GameState *engine.GameState `json:"game_state"`
}

// GameEvent represents an event that occurred during gameplay
type GameEvent struct {
	Type      string    `json:"type"` // "deal", "recycle", "move", "reveal", "foundation", "victory", "reset"
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// PossibleMovesResponse lists what can be played right now
type PossibleMovesResponse struct {
	Moves   []engine.MoveSpec `json:"moves"`
	CanDeal bool              `json:"can_deal"`

	// Commands are the same moves in console form, e.g. "m w h"
	Commands []string `json:"commands"`
}

// HistoryOptions configures move history retrieval
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history
type HistoryResponse struct {
	Moves       []engine.MoveHistoryEntry `json:"moves"`
	TotalMoves  int                       `json:"total_moves"`
	Page        int                       `json:"page"`
	PageSize    int                       `json:"page_size"`
	TotalPages  int                       `json:"total_pages"`
	HasNext     bool                      `json:"has_next"`
	HasPrevious bool                      `json:"has_previous"`
}

// ConfigInfo provides information about a game configuration
type ConfigInfo struct {
	Filename    string `json:"filename"`
	ConfigID    string `json:"config_id"` // The identifier to use for session creation
	Name        string `json:"name"`      // Display name
	Description string `json:"description"`
	DealSize    int    `json:"deal_size"`
}
