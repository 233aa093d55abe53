package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/klondike/game/deck"
)

func TestRenderInitialBoard(t *testing.T) {
	g := newTestGame(t, DealOne)
	board := g.Render()
	lines := strings.Split(strings.TrimRight(board, "\n"), "\n")

	// header row, blank, column numbers, seven tableau rows
	require.Len(t, lines, 10)
	for _, suit := range deck.Suits {
		assert.Contains(t, lines[0], string(suit.Glyph()))
	}
	assert.Contains(t, lines[0], string(deck.CardBack))
	assert.Equal(t, " 1  2  3  4  5  6  7", strings.TrimRight(lines[2], " "))

	kingOfSpades := deck.NewCard(deck.King, deck.Spades)
	kingOfSpades.Open()
	assert.True(t, strings.HasPrefix(lines[3], " "+string(kingOfSpades.Face())))
	assert.Equal(t, board, g.String())
}

func TestRenderEmptyStockAndWaste(t *testing.T) {
	g := newTestGame(t, DealOne)
	for g.StockPile().Len() > 0 {
		g.Deal()
	}
	board := g.Render()
	assert.Contains(t, board, string(EmptyStock))

	top, _ := g.WastePile().Last()
	assert.Contains(t, strings.Split(board, "\n")[0], string(top.Face()))
}

func TestStateHidesFaceDownCards(t *testing.T) {
	g := newTestGame(t, DealOne)
	state := g.State()

	assert.Equal(t, "klondike", state.ConfigName)
	assert.Equal(t, 1, state.DealSize)
	assert.True(t, state.CanDeal)
	assert.False(t, state.Won)
	assert.Equal(t, 24, state.Stock.Count)
	assert.Nil(t, state.Stock.Cards)
	require.NotNil(t, state.Stock.Top)
	assert.Empty(t, state.Stock.Top.Code)

	require.Len(t, state.Tableaus, TableauCount)
	t7 := state.Tableaus[6]
	assert.Equal(t, "t7", t7.Name)
	require.Len(t, t7.Cards, 7)
	for _, c := range t7.Cards[:6] {
		assert.False(t, c.Open)
		assert.Empty(t, c.Code)
		assert.Equal(t, string(deck.CardBack), c.Glyph)
	}
	assert.Equal(t, "QD", t7.Cards[6].Code)
	assert.Equal(t, "red", t7.Cards[6].Color)

	require.Len(t, state.Foundations, FoundationCount)
	assert.Equal(t, "Clubs", state.Foundations[0].Suit)
	assert.Nil(t, state.Foundations[0].Top)

	data, err := json.Marshal(state)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"code":"QS"`)
}
