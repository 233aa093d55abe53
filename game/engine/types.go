package engine

import (
	"errors"
	"fmt"
)

const (
	// Layout constants
	TableauCount    = 7
	FoundationCount = 4
	// MaxTableauSize is the longest run a tableau can hold (King down to Ace)
	MaxTableauSize = 13
	FoundationSize = 13

	// Validation constants
	MaxHistoryEntries = 1000
)

// ErrInvalidDealSize is returned for deal sizes other than one and three
var ErrInvalidDealSize = errors.New("deal size must be 1 or 3")

// DealSize is the number of cards moved from stock to waste per deal
type DealSize int

const (
	DealOne   DealSize = 1
	DealThree DealSize = 3
)

// ParseDealSize converts an integer into a DealSize
func ParseDealSize(n int) (DealSize, error) {
	switch DealSize(n) {
	case DealOne, DealThree:
		return DealSize(n), nil
	}
	return 0, fmt.Errorf("%w, got %d", ErrInvalidDealSize, n)
}

// PileKind identifies one of the four pile variants
type PileKind string

const (
	StockPile      PileKind = "stock"
	WastePile      PileKind = "waste"
	FoundationPile PileKind = "foundation"
	TableauPile    PileKind = "tableau"
)

// GameConfig represents a game variant loaded from a config file
type GameConfig struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	DealSize    int    `json:"deal_size" yaml:"deal_size"`
	Messages    struct {
		Welcome       string `json:"welcome" yaml:"welcome"`
		Dealt         string `json:"dealt" yaml:"dealt"`
		Recycled      string `json:"recycled" yaml:"recycled"`
		NothingToDeal string `json:"nothing_to_deal" yaml:"nothing_to_deal"`
		Moved         string `json:"moved" yaml:"moved"`
		CannotMove    string `json:"cannot_move" yaml:"cannot_move"`
		Victory       string `json:"victory" yaml:"victory"`
	} `json:"messages" yaml:"messages"`
}

// CardState is the JSON view of a card. Face-down cards only expose their back.
type CardState struct {
	Code  string `json:"code,omitempty"`
	Rank  string `json:"rank,omitempty"`
	Suit  string `json:"suit,omitempty"`
	Color string `json:"color,omitempty"`
	Open  bool   `json:"open"`
	Glyph string `json:"glyph"`
}

// PileState is the JSON view of a pile, bottom card first
type PileState struct {
	Kind  PileKind    `json:"kind"`
	Name  string      `json:"name"`
	Suit  string      `json:"suit,omitempty"`
	Count int         `json:"count"`
	Top   *CardState  `json:"top,omitempty"`
	Cards []CardState `json:"cards,omitempty"`
}

// GameState represents the complete, render-ready game state
type GameState struct {
	ConfigName  string             `json:"config_name"`
	DealSize    int                `json:"deal_size"`
	Stock       PileState          `json:"stock"`
	Waste       PileState          `json:"waste"`
	Foundations []PileState        `json:"foundations"`
	Tableaus    []PileState        `json:"tableaus"`
	CanDeal     bool               `json:"can_deal"`
	Won         bool               `json:"won"`
	Message     string             `json:"message"`
	TotalMoves  int                `json:"total_moves"`
	MoveHistory []MoveHistoryEntry `json:"move_history"`
}

// MoveHistoryEntry represents a single deal or move attempt
type MoveHistoryEntry struct {
	ID         string `json:"id"`
	Action     string `json:"action"`
	From       string `json:"from,omitempty"`
	To         string `json:"to,omitempty"`
	Size       int    `json:"size,omitempty"`
	Success    bool   `json:"success"`
	MoveNumber int    `json:"move_number"`
	Timestamp  int64  `json:"timestamp"`
}
