package engine

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/wricardo/klondike/game/deck"
)

// Location names a single pile on the board
type Location struct {
	Kind  PileKind
	Suit  deck.Suit // foundations only
	Index int       // tableaus only, 1-based
}

// anyFoundation stands for "the matching foundation" when no suit is known yet
var anyFoundation = Location{Kind: FoundationPile, Suit: -1}

// Convenience constructors
func AtStock() Location                    { return Location{Kind: StockPile} }
func AtWaste() Location                    { return Location{Kind: WastePile} }
func AtFoundation(suit deck.Suit) Location { return Location{Kind: FoundationPile, Suit: suit} }
func AtTableau(n int) Location             { return Location{Kind: TableauPile, Index: n} }

// String returns the name used in messages, e.g. "waste", "Hearts" or "tableau 3"
func (l Location) String() string {
	switch l.Kind {
	case StockPile:
		return "stock"
	case WastePile:
		return "waste"
	case FoundationPile:
		if !l.Suit.Valid() {
			return "foundation"
		}
		return l.Suit.String()
	case TableauPile:
		return fmt.Sprintf("tableau %d", l.Index)
	}
	return "unknown"
}

// Short returns the compact form accepted by ParseLocation, e.g. "w", "h" or "t3"
func (l Location) Short() string {
	switch l.Kind {
	case StockPile:
		return "stock"
	case WastePile:
		return "w"
	case FoundationPile:
		if !l.Suit.Valid() {
			return "f"
		}
		return strings.ToLower(l.Suit.String()[:1])
	case TableauPile:
		return fmt.Sprintf("t%d", l.Index)
	}
	return ""
}

// ParseLocation accepts "w"/"waste", "stock", a suit name or initial for a
// foundation, "f" for whichever foundation fits, and "t1".."t7", "tableau3" or a bare "1".."7" for a tableau.
func ParseLocation(s string) (Location, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	switch in {
	case "":
		return Location{}, fmt.Errorf("empty location")
	case "w", "waste":
		return AtWaste(), nil
	case "stock":
		return AtStock(), nil
	case "f", "foundation":
		return anyFoundation, nil
	}

	if suit, err := deck.ParseSuit(in); err == nil {
		return AtFoundation(suit), nil
	}

	digits := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(in, "tableau"), "t"))
	n, err := strconv.Atoi(digits)
	if err != nil {
		return Location{}, fmt.Errorf("unknown location %q", s)
	}
	if n < 1 || n > TableauCount {
		return Location{}, fmt.Errorf("tableau must be between 1 and %d, got %d", TableauCount, n)
	}
	return AtTableau(n), nil
}

// MarshalText encodes the location in its short form
func (l Location) MarshalText() ([]byte, error) {
	return []byte(l.Short()), nil
}

// UnmarshalText decodes any form accepted by ParseLocation
func (l *Location) UnmarshalText(text []byte) error {
	loc, err := ParseLocation(string(text))
	if err != nil {
		return err
	}
	*l = loc
	return nil
}

// MoveSpec is a single legal move, as reported by PossibleMoves
type MoveSpec struct {
	From Location `json:"from"`
	To   Location `json:"to"`
	Size int      `json:"size"`
}

// String returns the move in console command form, e.g. "w h" or "t2 t5 3"
func (m MoveSpec) String() string {
	if m.From.Kind == TableauPile && m.To.Kind == TableauPile {
		return fmt.Sprintf("%s %s %d", m.From.Short(), m.To.Short(), m.Size)
	}
	return fmt.Sprintf("%s %s", m.From.Short(), m.To.Short())
}
