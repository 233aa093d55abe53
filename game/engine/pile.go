package engine

import "github.com/wricardo/klondike/game/deck"

// PileView is the read-only side of a pile. Index 0 is the bottom card.
type PileView interface {
	Kind() PileKind
	Len() int
	Last() (deck.Card, bool)
	Get(i int) (deck.Card, bool)
}

// Pile is the shared contract of the stock, waste, foundations and tableaus.
//
// Push either accepts the card and returns (zero, true), or rejects it and
// hands the same card back with false so the caller never loses it.
type Pile interface {
	PileView
	CanPush(card deck.Card) bool
	Push(card deck.Card) (deck.Card, bool)
	Pop() (deck.Card, bool)

	// unpop puts back a card taken by the most recent Pop and undoes that
	// Pop's side effects, bypassing CanPush.
	unpop(card deck.Card)
}

var (
	_ Pile = (*Stock)(nil)
	_ Pile = (*Waste)(nil)
	_ Pile = (*Foundation)(nil)
	_ Pile = (*Tableau)(nil)
)

type stack struct {
	cards []deck.Card
}

func (s *stack) Len() int { return len(s.cards) }

func (s *stack) Last() (deck.Card, bool) {
	if len(s.cards) == 0 {
		return deck.Card{}, false
	}
	return s.cards[len(s.cards)-1], true
}

func (s *stack) Get(i int) (deck.Card, bool) {
	if i < 0 || i >= len(s.cards) {
		return deck.Card{}, false
	}
	return s.cards[i], true
}

func (s *stack) take() (deck.Card, bool) {
	card, ok := s.Last()
	if !ok {
		return deck.Card{}, false
	}
	s.cards = s.cards[:len(s.cards)-1]
	return card, true
}

func (s *stack) put(card deck.Card) {
	s.cards = append(s.cards, card)
}

func push(p Pile, s *stack, card deck.Card) (deck.Card, bool) {
	if !p.CanPush(card) {
		return card, false
	}
	s.put(card)
	return deck.Card{}, true
}

// Stock holds the face-down cards that have not been dealt yet
type Stock struct {
	stack
}

func newStock(cards []deck.Card) *Stock {
	return &Stock{stack{cards: cards}}
}

func (p *Stock) Kind() PileKind { return StockPile }

// CanPush accepts any face-down card
func (p *Stock) CanPush(card deck.Card) bool { return !card.IsOpen() }

func (p *Stock) Push(card deck.Card) (deck.Card, bool) { return push(p, &p.stack, card) }

func (p *Stock) Pop() (deck.Card, bool) { return p.take() }

func (p *Stock) unpop(card deck.Card) { p.put(card) }

// Waste holds dealt, face-up cards. Only its top card is playable.
type Waste struct {
	stack
}

func newWaste() *Waste {
	return &Waste{}
}

func (p *Waste) Kind() PileKind { return WastePile }

// CanPush accepts any face-up card
func (p *Waste) CanPush(card deck.Card) bool { return card.IsOpen() }

func (p *Waste) Push(card deck.Card) (deck.Card, bool) { return push(p, &p.stack, card) }

func (p *Waste) Pop() (deck.Card, bool) { return p.take() }

func (p *Waste) unpop(card deck.Card) { p.put(card) }

// Foundation builds a single suit upward from Ace to King
type Foundation struct {
	stack
	suit deck.Suit
}

func newFoundation(suit deck.Suit) *Foundation {
	return &Foundation{suit: suit}
}

func (p *Foundation) Kind() PileKind { return FoundationPile }

// Suit is the suit this foundation is bound to
func (p *Foundation) Suit() deck.Suit { return p.suit }

// CanPush accepts the face-up card of this suit whose rank is one above the top,
// or an Ace when empty.
func (p *Foundation) CanPush(card deck.Card) bool {
	if !card.IsOpen() || card.Suit() != p.suit {
		return false
	}
	top, ok := p.Last()
	if !ok {
		return card.Rank() == deck.Ace
	}
	return card.Rank() == top.Rank()+1
}

func (p *Foundation) Push(card deck.Card) (deck.Card, bool) { return push(p, &p.stack, card) }

func (p *Foundation) Pop() (deck.Card, bool) { return p.take() }

func (p *Foundation) unpop(card deck.Card) { p.put(card) }

// Complete reports whether the foundation holds all thirteen ranks
func (p *Foundation) Complete() bool { return p.Len() == FoundationSize }

// Tableau is one of the seven columns: face-down cards under a face-up run.
type Tableau struct {
	stack
	// revealed is set when the last Pop turned a face-down card face up
	revealed bool
}

func newTableau(cards []deck.Card) *Tableau {
	return &Tableau{stack: stack{cards: cards}}
}

func (p *Tableau) Kind() PileKind { return TableauPile }

// CanPush accepts a face-up King on an empty column, otherwise a face-up card
// one rank below the top and of the opposite color.
func (p *Tableau) CanPush(card deck.Card) bool {
	if !card.IsOpen() {
		return false
	}
	top, ok := p.Last()
	if !ok {
		return card.Rank() == deck.King
	}
	return card.Rank() == top.Rank()-1 && card.Color() != top.Color()
}

func (p *Tableau) Push(card deck.Card) (deck.Card, bool) { return push(p, &p.stack, card) }

// Pop removes the top card and turns the newly exposed card face up.
func (p *Tableau) Pop() (deck.Card, bool) {
	card, ok := p.take()
	if !ok {
		return deck.Card{}, false
	}
	p.revealed = false
	if n := len(p.cards); n > 0 && !p.cards[n-1].IsOpen() {
		p.cards[n-1].Open()
		p.revealed = true
	}
	return card, true
}

func (p *Tableau) unpop(card deck.Card) {
	if p.revealed {
		p.cards[len(p.cards)-1].Close()
		p.revealed = false
	}
	p.put(card)
}

// FaceDown returns the number of face-down cards at the bottom of the column
func (p *Tableau) FaceDown() int {
	for i, card := range p.cards {
		if card.IsOpen() {
			return i
		}
	}
	return len(p.cards)
}

// validRun reports whether the top size cards form a movable run: all face up,
// descending by one and alternating color.
func (p *Tableau) validRun(size int) bool {
	if size < 1 || size > MaxTableauSize || size > len(p.cards) {
		return false
	}
	run := p.cards[len(p.cards)-size:]
	for i, card := range run {
		if !card.IsOpen() {
			return false
		}
		if i == 0 {
			continue
		}
		prev := run[i-1]
		if card.Rank() != prev.Rank()-1 || card.Color() == prev.Color() {
			return false
		}
	}
	return true
}
