package engine

import (
	"fmt"

	"github.com/wricardo/klondike/game/deck"
)

// CheckInvariants verifies the board: 52 distinct cards, a face-down stock, a
// face-up waste, suit-ordered foundations, and tableaus whose face-up cards
// sit above the face-down ones and form a valid run.
func (g *Game) CheckInvariants() error {
	seen := make(map[string]string, deck.Size)
	count := func(name string, p PileView) error {
		for i := 0; i < p.Len(); i++ {
			card, _ := p.Get(i)
			if prev, ok := seen[card.Code()]; ok {
				return fmt.Errorf("%s is in both %s and %s", card.Code(), prev, name)
			}
			seen[card.Code()] = name
		}
		return nil
	}

	if err := count("stock", g.stock); err != nil {
		return err
	}
	for i, card := range g.stock.cards {
		if card.IsOpen() {
			return fmt.Errorf("stock card %d (%s) is face up", i, card.Code())
		}
	}

	if err := count("waste", g.waste); err != nil {
		return err
	}
	for i, card := range g.waste.cards {
		if !card.IsOpen() {
			return fmt.Errorf("waste card %d (%s) is face down", i, card.Code())
		}
	}

	for _, f := range g.foundations {
		name := f.suit.String() + " foundation"
		if err := count(name, f); err != nil {
			return err
		}
		for i, card := range f.cards {
			if card.Suit() != f.suit || int(card.Rank()) != i+1 || !card.IsOpen() {
				return fmt.Errorf("%s holds %s at position %d", name, card.Code(), i)
			}
		}
	}

	for n, t := range g.tableaus {
		name := fmt.Sprintf("tableau %d", n+1)
		if err := count(name, t); err != nil {
			return err
		}
		if t.Len() == 0 {
			continue
		}
		down := t.FaceDown()
		if down == t.Len() {
			return fmt.Errorf("%s has no face-up top card", name)
		}
		if !t.validRun(t.Len() - down) {
			return fmt.Errorf("%s face-up cards are not a descending alternating run", name)
		}
	}

	if len(seen) != deck.Size {
		return fmt.Errorf("expected %d cards, found %d", deck.Size, len(seen))
	}
	return nil
}
