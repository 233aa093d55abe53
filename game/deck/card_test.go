package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardGlyphs(t *testing.T) {
	tests := []struct {
		card Card
		face rune
	}{
		{NewCard(Ace, Clubs), '\U0001F0D1'},
		{NewCard(Jack, Clubs), '\U0001F0DB'},
		{NewCard(Queen, Diamonds), '\U0001F0CD'},
		{NewCard(King, Hearts), '\U0001F0BE'},
		{NewCard(Ten, Spades), '\U0001F0AA'},
	}

	for _, tt := range tests {
		t.Run(tt.card.Code(), func(t *testing.T) {
			c := tt.card
			assert.Equal(t, CardBack, c.Glyph(), "closed card shows the back")
			c.Open()
			assert.Equal(t, tt.face, c.Glyph())
			c.Close()
			assert.False(t, c.IsOpen())
		})
	}
}

func TestSuitColors(t *testing.T) {
	assert.Equal(t, Red, Hearts.Color())
	assert.Equal(t, Red, Diamonds.Color())
	assert.Equal(t, Black, Clubs.Color())
	assert.Equal(t, Black, Spades.Color())
}

func TestParseSuit(t *testing.T) {
	tests := map[string]Suit{
		"c":        Clubs,
		"Diamonds": Diamonds,
		"h":        Hearts,
		" spades ": Spades,
	}
	for in, want := range tests {
		got, err := ParseSuit(in)
		assert.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSuit("x")
	assert.Error(t, err)
}

func TestCardCode(t *testing.T) {
	assert.Equal(t, "AS", NewCard(Ace, Spades).Code())
	assert.Equal(t, "10H", NewCard(Ten, Hearts).Code())
	assert.Equal(t, "QD", NewCard(Queen, Diamonds).Code())
	assert.Equal(t, "7C", NewCard(Seven, Clubs).Code())
}
