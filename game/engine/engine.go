package engine

import (
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wricardo/klondike/game/deck"
)

// Engine provides the main interface for game operations
type Engine interface {
	// Stock
	Deal()
	CanDeal() bool

	// Single-card transfers
	WasteToFoundation(suit deck.Suit) bool
	WasteToTableau(n int) bool
	TableauToFoundation(n int, suit deck.Suit) bool
	FoundationToTableau(suit deck.Suit, n int) bool

	// Run transfer between columns
	TableauToTableau(from, to, size int) bool

	// Location-based routing
	Move(from, to Location, size int) bool
	PossibleMoves() []MoveSpec

	// State
	State() *GameState
	Render() string
	Message() string
	IsWon() bool
	Reset()

	// Configuration
	GetConfig() *GameConfig
	DealSize() DealSize

	// History
	GetMoveHistory() []MoveHistoryEntry
	GetLastMove() *MoveHistoryEntry
}

// Game is a single Klondike deal. It is not safe for concurrent use.
type Game struct {
	stock       *Stock
	waste       *Waste
	foundations [FoundationCount]*Foundation
	tableaus    [TableauCount]*Tableau

	dealSize DealSize
	config   *GameConfig
	message  string

	history    []MoveHistoryEntry
	totalMoves int
}

var _ Engine = (*Game)(nil)

// New creates a game with the default configuration and the given deal size
func New(dealSize DealSize) (*Game, error) {
	config := DefaultConfig()
	config.DealSize = int(dealSize)
	return NewFromConfig(config)
}

// NewFromConfig creates a game from a validated configuration. A nil config
// uses DefaultConfig.
func NewFromConfig(config *GameConfig) (*Game, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}

	g := &Game{
		config:   config,
		dealSize: DealSize(config.DealSize),
	}
	if err := g.setup(); err != nil {
		return nil, err
	}
	return g, nil
}

// setup deals a fresh board: tableau n gets n cards with only the last face up,
// the rest of the deck becomes the stock.
func (g *Game) setup() error {
	d := deck.New()
	for i := 0; i < TableauCount; i++ {
		cards := make([]deck.Card, 0, i+1)
		for j := 0; j <= i; j++ {
			card, err := d.Deal(j == i)
			if err != nil {
				return fmt.Errorf("dealing tableau %d: %w", i+1, err)
			}
			cards = append(cards, card)
		}
		g.tableaus[i] = newTableau(cards)
	}
	for i, suit := range deck.Suits {
		g.foundations[i] = newFoundation(suit)
	}
	g.waste = newWaste()
	g.stock = newStock(d.Drain())
	g.message = g.config.Messages.Welcome
	return nil
}

// Reset deals a new board with the same configuration. History is kept.
func (g *Game) Reset() {
	// A standard deck always covers the initial layout
	_ = g.setup()
	g.record("reset", "", "", 0, true)
}

// Read accessors

func (g *Game) StockPile() PileView { return g.stock }

func (g *Game) WastePile() PileView { return g.waste }

// FoundationPile returns the foundation bound to suit
func (g *Game) FoundationPile(suit deck.Suit) PileView { return g.foundation(suit) }

// TableauPile returns tableau n (1-based), or nil when n is out of range
func (g *Game) TableauPile(n int) PileView {
	t := g.tableau(n)
	if t == nil {
		return nil
	}
	return t
}

func (g *Game) foundation(suit deck.Suit) *Foundation {
	for _, f := range g.foundations {
		if f.suit == suit {
			return f
		}
	}
	return nil
}

func (g *Game) tableau(n int) *Tableau {
	if n < 1 || n > TableauCount {
		return nil
	}
	return g.tableaus[n-1]
}

func (g *Game) DealSize() DealSize { return g.dealSize }

func (g *Game) GetConfig() *GameConfig { return g.config }

// Message returns the outcome of the last operation
func (g *Game) Message() string { return g.message }

// CanDeal reports whether Deal would change the board
func (g *Game) CanDeal() bool {
	return g.stock.Len() > 0 || g.waste.Len() > 0
}

// IsWon reports whether all four foundations are complete
func (g *Game) IsWon() bool {
	for _, f := range g.foundations {
		if !f.Complete() {
			return false
		}
	}
	return true
}

// Deal turns up to dealSize cards from the stock onto the waste. An empty
// stock takes the waste back face down instead.
func (g *Game) Deal() {
	if g.stock.Len() == 0 {
		if g.waste.Len() == 0 {
			g.message = messageOr(g.config.Messages.NothingToDeal, "Nothing to deal.")
			g.record("deal", string(StockPile), string(WastePile), 0, false)
			return
		}
		n := g.goBack()
		g.message = messageOr(g.config.Messages.Recycled, "Waste turned over onto the stock.")
		g.record("recycle", string(WastePile), string(StockPile), n, true)
		return
	}

	dealt := 0
	for dealt < int(g.dealSize) {
		card, ok := g.stock.Pop()
		if !ok {
			break
		}
		card.Open()
		if rejected, ok := g.waste.Push(card); !ok {
			// Unreachable for an open card, but never drop it
			rejected.Close()
			g.stock.unpop(rejected)
			break
		}
		dealt++
	}
	g.message = fmt.Sprintf(messageOr(g.config.Messages.Dealt, "Dealt %d card(s)."), dealt)
	g.record("deal", string(StockPile), string(WastePile), dealt, true)
}

// goBack moves every waste card back to the stock face down, so the card dealt
// first ends up on top again.
func (g *Game) goBack() int {
	n := 0
	for {
		card, ok := g.waste.Pop()
		if !ok {
			return n
		}
		card.Close()
		if rejected, ok := g.stock.Push(card); !ok {
			rejected.Open()
			g.waste.unpop(rejected)
			return n
		}
		n++
	}
}

// WasteToFoundation moves the top waste card to the foundation of suit
func (g *Game) WasteToFoundation(suit deck.Suit) bool {
	return g.transfer(AtWaste(), AtFoundation(suit))
}

// WasteToTableau moves the top waste card onto tableau n
func (g *Game) WasteToTableau(n int) bool {
	return g.transfer(AtWaste(), AtTableau(n))
}

// TableauToFoundation moves the top card of tableau n to the foundation of suit
func (g *Game) TableauToFoundation(n int, suit deck.Suit) bool {
	return g.transfer(AtTableau(n), AtFoundation(suit))
}

// FoundationToTableau moves the top card of the suit's foundation onto tableau n
func (g *Game) FoundationToTableau(suit deck.Suit, n int) bool {
	return g.transfer(AtFoundation(suit), AtTableau(n))
}

// TableauToTableau moves the top size cards of one column onto another,
// keeping their order. The run is checked as a whole before anything moves.
func (g *Game) TableauToTableau(from, to, size int) bool {
	fromLoc, toLoc := AtTableau(from), AtTableau(to)
	src, dst := g.tableau(from), g.tableau(to)
	if src == nil || dst == nil || from == to || !src.validRun(size) {
		return g.fail(fromLoc, toLoc, size)
	}
	bottom, _ := src.Get(src.Len() - size)
	if !dst.CanPush(bottom) {
		return g.fail(fromLoc, toLoc, size)
	}

	// Take the run off top first, then lay it back down bottom first
	run := make([]deck.Card, size)
	for i := size - 1; i >= 0; i-- {
		card, _ := src.Pop()
		run[i] = card
	}
	revealed := src.revealed

	for i, card := range run {
		if _, ok := dst.Push(card); !ok {
			g.restoreRun(src, dst, run, i, revealed)
			return g.fail(fromLoc, toLoc, size)
		}
	}

	g.succeed(fromLoc, toLoc, size)
	return true
}

// restoreRun undoes a partial run transfer: pushed cards leave dst and the
// whole run goes back on src, re-closing the card the removal exposed.
func (g *Game) restoreRun(src, dst *Tableau, run []deck.Card, pushed int, revealed bool) {
	for i := 0; i < pushed; i++ {
		dst.take()
	}
	if revealed && src.Len() > 0 {
		src.cards[src.Len()-1].Close()
	}
	src.revealed = false
	for _, card := range run {
		src.put(card)
	}
}

// pile resolves a location to a mutable pile
func (g *Game) pile(loc Location) Pile {
	switch loc.Kind {
	case StockPile:
		return g.stock
	case WastePile:
		return g.waste
	case FoundationPile:
		if f := g.foundation(loc.Suit); f != nil {
			return f
		}
	case TableauPile:
		if t := g.tableau(loc.Index); t != nil {
			return t
		}
	}
	return nil
}

// transfer moves one card between piles: pop, push, and unpop on rejection so
// a failed move leaves the board untouched.
func (g *Game) transfer(from, to Location) bool {
	src, dst := g.pile(from), g.pile(to)
	if src == nil || dst == nil {
		return g.fail(from, to, 1)
	}
	card, ok := src.Pop()
	if !ok {
		return g.fail(from, to, 1)
	}
	if rejected, ok := dst.Push(card); !ok {
		src.unpop(rejected)
		return g.fail(from, to, 1)
	}
	g.succeed(from, to, 1)
	return true
}

func (g *Game) succeed(from, to Location, size int) {
	g.message = fmt.Sprintf(messageOr(g.config.Messages.Moved, "Moved from %s to %s."), from, to)
	if g.IsWon() {
		g.message = g.config.Messages.Victory
	}
	g.record("move", from.String(), to.String(), size, true)
}

func (g *Game) fail(from, to Location, size int) bool {
	g.message = fmt.Sprintf(messageOr(g.config.Messages.CannotMove, "Cannot move from %s to %s."), from, to)
	g.record("move", from.String(), to.String(), size, false)
	return false
}

// record appends a history entry, trimming the oldest beyond MaxHistoryEntries
func (g *Game) record(action, from, to string, size int, success bool) {
	g.totalMoves++
	g.history = append(g.history, MoveHistoryEntry{
		ID:         ulid.Make().String(),
		Action:     action,
		From:       from,
		To:         to,
		Size:       size,
		Success:    success,
		MoveNumber: g.totalMoves,
		Timestamp:  time.Now().Unix(),
	})
	if len(g.history) > MaxHistoryEntries {
		g.history = g.history[len(g.history)-MaxHistoryEntries:]
	}
}

// GetMoveHistory returns a copy of the recorded history, oldest first
func (g *Game) GetMoveHistory() []MoveHistoryEntry {
	history := make([]MoveHistoryEntry, len(g.history))
	copy(history, g.history)
	return history
}

// GetLastMove returns the most recent history entry, or nil
func (g *Game) GetLastMove() *MoveHistoryEntry {
	if len(g.history) == 0 {
		return nil
	}
	last := g.history[len(g.history)-1]
	return &last
}

// TotalMoves counts every recorded action, including ones trimmed from history
func (g *Game) TotalMoves() int { return g.totalMoves }
