package deck

import "errors"

// Size is the number of cards in a full deck
const Size = 52

// ErrEmptyDeck is returned when dealing from an exhausted deck
var ErrEmptyDeck = errors.New("deck is empty")

// Deck is the ordered 52-card sequence used to seed a game. Cards are dealt
// from the end of the sequence.
type Deck struct {
	cards []Card
}

// New returns the fixed deal order: Clubs, Diamonds, Hearts, Spades, each Ace to King.
// The order is deterministic; there is no shuffling.
func New() *Deck {
	cards := make([]Card, 0, Size)
	for _, suit := range Suits {
		for rank := Ace; rank <= King; rank++ {
			cards = append(cards, NewCard(rank, suit))
		}
	}
	return &Deck{cards: cards}
}

// Len returns the number of cards left to deal
func (d *Deck) Len() int {
	return len(d.cards)
}

// Deal removes the last card and sets its visibility
func (d *Deck) Deal(open bool) (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, ErrEmptyDeck
	}
	card := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	if open {
		card.Open()
	} else {
		card.Close()
	}
	return card, nil
}

// Drain deals every remaining card face-down, preserving deck order
func (d *Deck) Drain() []Card {
	cards := d.cards
	d.cards = nil
	for i := range cards {
		cards[i].Close()
	}
	return cards
}
