package engine

import "github.com/wricardo/klondike/game/deck"

// Move routes a move between two locations to the matching transfer. Size only
// matters between tableaus, where zero means a single card. A foundation
// without a suit (ParseLocation "f") means the one matching the moved card.
// Anything into the waste or stock, out of the stock, or between foundations
// is rejected.
func (g *Game) Move(from, to Location, size int) bool {
	if size == 0 {
		size = 1
	}
	switch {
	case from.Kind == WastePile && to.Kind == FoundationPile:
		if !to.Suit.Valid() {
			if top, ok := g.waste.Last(); ok {
				to.Suit = top.Suit()
			}
		}
		return g.WasteToFoundation(to.Suit)
	case from.Kind == WastePile && to.Kind == TableauPile:
		return g.WasteToTableau(to.Index)
	case from.Kind == TableauPile && to.Kind == FoundationPile:
		if !to.Suit.Valid() {
			// No suit given: use the foundation matching the top card
			if t := g.tableau(from.Index); t != nil {
				if top, ok := t.Last(); ok {
					to.Suit = top.Suit()
				}
			}
		}
		return g.TableauToFoundation(from.Index, to.Suit)
	case from.Kind == FoundationPile && to.Kind == TableauPile:
		return g.FoundationToTableau(from.Suit, to.Index)
	case from.Kind == TableauPile && to.Kind == TableauPile:
		return g.TableauToTableau(from.Index, to.Index, size)
	}
	return g.fail(from, to, size)
}

// PossibleMoves lists every legal move on the current board. Dealing is not
// included, see CanDeal. Moving a whole column headed by a King onto an empty
// column is left out since it changes nothing.
func (g *Game) PossibleMoves() []MoveSpec {
	var moves []MoveSpec

	if top, ok := g.waste.Last(); ok {
		if f := g.foundation(top.Suit()); f.CanPush(top) {
			moves = append(moves, MoveSpec{From: AtWaste(), To: AtFoundation(f.suit), Size: 1})
		}
		for i, t := range g.tableaus {
			if t.CanPush(top) {
				moves = append(moves, MoveSpec{From: AtWaste(), To: AtTableau(i + 1), Size: 1})
			}
		}
	}

	for i, t := range g.tableaus {
		top, ok := t.Last()
		if !ok {
			continue
		}
		if f := g.foundation(top.Suit()); f.CanPush(top) {
			moves = append(moves, MoveSpec{From: AtTableau(i + 1), To: AtFoundation(f.suit), Size: 1})
		}
	}

	for i, src := range g.tableaus {
		// A run stops being valid once it reaches a broken or face-down card
		for size := 1; src.validRun(size); size++ {
			bottom, _ := src.Get(src.Len() - size)
			if size == src.Len() && bottom.Rank() == deck.King {
				continue
			}
			for j, dst := range g.tableaus {
				if i != j && dst.CanPush(bottom) {
					moves = append(moves, MoveSpec{From: AtTableau(i + 1), To: AtTableau(j + 1), Size: size})
				}
			}
		}
	}

	for _, f := range g.foundations {
		top, ok := f.Last()
		if !ok {
			continue
		}
		for j, t := range g.tableaus {
			if t.CanPush(top) {
				moves = append(moves, MoveSpec{From: AtFoundation(f.suit), To: AtTableau(j + 1), Size: 1})
			}
		}
	}

	return moves
}
