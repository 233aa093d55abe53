package deck

import (
	"fmt"
	"strings"
)

// CardBack is drawn in place of any face-down card.
const CardBack = '\U0001F0A0'

// Suit represents a card suit
type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// Suits lists every suit in foundation order
var Suits = [...]Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "Clubs"
	case Diamonds:
		return "Diamonds"
	case Hearts:
		return "Hearts"
	case Spades:
		return "Spades"
	default:
		return fmt.Sprintf("Suit(%d)", int(s))
	}
}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

// Color returns the color group of the suit
func (s Suit) Color() Color {
	if s == Diamonds || s == Hearts {
		return Red
	}
	return Black
}

// Glyph returns the suit symbol used as an empty foundation placeholder
func (s Suit) Glyph() rune {
	switch s {
	case Clubs:
		return '♣'
	case Diamonds:
		return '♦'
	case Hearts:
		return '♥'
	default:
		return '♠'
	}
}

// ParseSuit accepts a suit name or its first letter, case-insensitive
func ParseSuit(s string) (Suit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "clubs", "club":
		return Clubs, nil
	case "d", "diamonds", "diamond":
		return Diamonds, nil
	case "h", "hearts", "heart":
		return Hearts, nil
	case "s", "spades", "spade":
		return Spades, nil
	}
	return 0, fmt.Errorf("%q is not a valid suit", s)
}

// Color partitions the suits into two groups
type Color int

const (
	Black Color = iota
	Red
)

func (c Color) String() string {
	if c == Red {
		return "red"
	}
	return "black"
}

// Rank represents a card rank with Ace low (1) and King high (13)
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

var rankNames = [...]string{"", "Ace", "2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King"}

func (r Rank) String() string {
	if r.Valid() {
		return rankNames[r]
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// Valid reports whether r lies in Ace..King
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Value is the numeric rank, 1 for Ace through 13 for King
func (r Rank) Value() int {
	return int(r)
}

// Card is a rank/suit pair plus its face-up flag. Rank and suit never change
// after construction; only the owning pile flips the card.
type Card struct {
	rank Rank
	suit Suit
	open bool
}

// NewCard creates a face-down card
func NewCard(rank Rank, suit Suit) Card {
	return Card{rank: rank, suit: suit}
}

func (c Card) Rank() Rank   { return c.rank }
func (c Card) Suit() Suit   { return c.suit }
func (c Card) Color() Color { return c.suit.Color() }
func (c Card) IsOpen() bool { return c.open }

// Open turns the card face-up
func (c *Card) Open() { c.open = true }

// Close turns the card face-down
func (c *Card) Close() { c.open = false }

// Face returns the Unicode playing card for the rank and suit, regardless of visibility
func (c Card) Face() rune {
	var base rune
	switch c.suit {
	case Spades:
		base = 0x1F0A0
	case Hearts:
		base = 0x1F0B0
	case Diamonds:
		base = 0x1F0C0
	default:
		base = 0x1F0D0
	}
	// the block carries a Knight between Jack and Queen
	offset := rune(c.rank)
	if c.rank >= Queen {
		offset++
	}
	return base + offset
}

// Glyph returns the face when open and the card back when closed
func (c Card) Glyph() rune {
	if c.open {
		return c.Face()
	}
	return CardBack
}

// Code is a short identifier such as "AS", "10H" or "QD"
func (c Card) Code() string {
	var r string
	switch c.rank {
	case Ace:
		r = "A"
	case Jack:
		r = "J"
	case Queen:
		r = "Q"
	case King:
		r = "K"
	default:
		r = fmt.Sprintf("%d", int(c.rank))
	}
	return r + c.suit.String()[:1]
}

// Same reports whether two cards have the same rank and suit
func (c Card) Same(other Card) bool {
	return c.rank == other.rank && c.suit == other.suit
}

func (c Card) String() string {
	return string(c.Glyph())
}
