package deck

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeckHasEveryCardOnce(t *testing.T) {
	d := New()
	require.Equal(t, Size, d.Len())

	seen := make(map[string]bool)
	for d.Len() > 0 {
		card, err := d.Deal(false)
		require.NoError(t, err)
		assert.False(t, seen[card.Code()], "duplicate card %s", card.Code())
		seen[card.Code()] = true
	}
	assert.Len(t, seen, Size)
}

func TestDealOrderAndVisibility(t *testing.T) {
	d := New()

	first, err := d.Deal(true)
	require.NoError(t, err)
	assert.Equal(t, King, first.Rank())
	assert.Equal(t, Spades, first.Suit())
	assert.True(t, first.IsOpen())

	second, err := d.Deal(false)
	require.NoError(t, err)
	assert.Equal(t, Queen, second.Rank())
	assert.False(t, second.IsOpen())
	assert.Equal(t, Size-2, d.Len())
}

func TestDealEmptyDeck(t *testing.T) {
	d := New()
	d.Drain()

	_, err := d.Deal(true)
	assert.True(t, errors.Is(err, ErrEmptyDeck))
}

func TestDrainClosesCards(t *testing.T) {
	cards := New().Drain()
	require.Len(t, cards, Size)
	for _, c := range cards {
		assert.False(t, c.IsOpen())
	}
	assert.Equal(t, NewCard(Ace, Clubs).Code(), cards[0].Code())
}
