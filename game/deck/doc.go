// Package deck defines playing cards and the fixed 52-card deck used to seed
// a Klondike game.
//
// A Card is an immutable rank and suit with a face-up flag. Suits fall into
// two color groups (red: Diamonds, Hearts; black: Clubs, Spades), which the
// tableau alternation rule relies on. Each card renders as its Unicode playing
// card glyph when open and as the card back when closed.
//
// Usage:
//
//	d := deck.New()
//	card, err := d.Deal(true) // King of Spades, face-up
package deck
