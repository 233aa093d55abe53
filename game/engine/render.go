package engine

import (
	"fmt"
	"strings"

	"github.com/wricardo/klondike/game/deck"
)

// EmptyStock is drawn in place of the stock once it has been dealt out
const EmptyStock = '\U0001F0EA'

// WasteShown is how many waste cards the board shows
const WasteShown = 3

// Render draws the board as text:
//
//	foundations (top card or suit glyph)   waste (last three)   stock
//	tableau header 1..7
//	tableau columns, face-down cards as card backs
func (g *Game) Render() string {
	var b strings.Builder

	for _, f := range g.foundations {
		if top, ok := f.Last(); ok {
			b.WriteString(" " + top.String() + " ")
		} else {
			b.WriteString(" " + string(f.suit.Glyph()) + " ")
		}
	}

	b.WriteString("   ")
	for i := WasteShown; i > 0; i-- {
		if card, ok := g.waste.Get(g.waste.Len() - i); ok {
			b.WriteString(" " + card.String())
		} else {
			b.WriteString("  ")
		}
	}

	b.WriteString("    ")
	if top, ok := g.stock.Last(); ok {
		b.WriteString(top.String())
	} else {
		b.WriteRune(EmptyStock)
	}
	b.WriteString("\n\n")

	for i := 1; i <= TableauCount; i++ {
		fmt.Fprintf(&b, " %d ", i)
	}
	b.WriteString("\n")

	for row := 0; ; row++ {
		var line strings.Builder
		more := false
		for _, t := range g.tableaus {
			if card, ok := t.Get(row); ok {
				line.WriteString(" " + card.String() + " ")
				more = true
			} else {
				line.WriteString("   ")
			}
		}
		if !more {
			break
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteString("\n")
	}

	return b.String()
}

func (g *Game) String() string {
	return g.Render()
}

// State returns a JSON-ready snapshot of the board
func (g *Game) State() *GameState {
	state := &GameState{
		ConfigName:  g.config.Name,
		DealSize:    int(g.dealSize),
		Stock:       pileState(g.stock, "stock", false),
		Waste:       pileState(g.waste, "waste", true),
		Foundations: make([]PileState, 0, FoundationCount),
		Tableaus:    make([]PileState, 0, TableauCount),
		CanDeal:     g.CanDeal(),
		Won:         g.IsWon(),
		Message:     g.message,
		TotalMoves:  g.totalMoves,
		MoveHistory: g.GetMoveHistory(),
	}
	for _, f := range g.foundations {
		ps := pileState(f, strings.ToLower(f.suit.String()), true)
		ps.Suit = f.suit.String()
		state.Foundations = append(state.Foundations, ps)
	}
	for i, t := range g.tableaus {
		state.Tableaus = append(state.Tableaus, pileState(t, fmt.Sprintf("t%d", i+1), true))
	}
	return state
}

// pileState snapshots a pile. Stock cards are all face down, so only its count
// and top are listed.
func pileState(p PileView, name string, withCards bool) PileState {
	ps := PileState{Kind: p.Kind(), Name: name, Count: p.Len()}
	if top, ok := p.Last(); ok {
		cs := cardState(top)
		ps.Top = &cs
	}
	if withCards {
		ps.Cards = make([]CardState, 0, p.Len())
		for i := 0; i < p.Len(); i++ {
			card, _ := p.Get(i)
			ps.Cards = append(ps.Cards, cardState(card))
		}
	}
	return ps
}

func cardState(c deck.Card) CardState {
	if !c.IsOpen() {
		return CardState{Open: false, Glyph: string(deck.CardBack)}
	}
	return CardState{
		Code:  c.Code(),
		Rank:  c.Rank().String(),
		Suit:  c.Suit().String(),
		Color: c.Color().String(),
		Open:  true,
		Glyph: string(c.Face()),
	}
}
