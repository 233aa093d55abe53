package service

import (
	"context"
	"errors"
	"time"

	"github.com/wricardo/klondike/game/engine"
)

// Errors shared by the session and config managers, so transports can map
// them with errors.Is without importing those packages.
var (
	ErrSessionNotFound = errors.New("session not found")
	ErrConfigNotFound  = errors.New("configuration not found")
	ErrInvalidConfig   = errors.New("invalid configuration")
	ErrInvalidCommand  = errors.New("invalid command")
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Deal(ctx context.Context, sessionID string) (*MoveResult, error)
	Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error)
	Command(ctx context.Context, sessionID, input string) (*CommandResult, error)
	Reset(ctx context.Context, sessionID string) (*engine.GameState, error)

	// Game State
	GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error)
	GetBoard(ctx context.Context, sessionID string) (string, error)
	GetPossibleMoves(ctx context.Context, sessionID string) (*PossibleMovesResponse, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig) (*Session, error)
	Get(id string) (*Session, error)
	GetOrCreate(id string, config *engine.GameConfig) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles game configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
}

// Session represents an active game session
type Session struct {
	ID             string
	Engine         *engine.Game
	Config         *engine.GameConfig
	CreatedAt      time.Time
	LastAccessedAt time.Time
}
