package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/klondike/game/deck"
)

func newTestGame(t *testing.T, size DealSize) *Game {
	t.Helper()
	g, err := New(size)
	require.NoError(t, err)
	return g
}

// snapshot copies every pile so a failed move can be compared card for card
func snapshot(g *Game) [][]deck.Card {
	var piles [][]deck.Card
	add := func(cards []deck.Card) {
		piles = append(piles, append([]deck.Card(nil), cards...))
	}
	add(g.stock.cards)
	add(g.waste.cards)
	for _, f := range g.foundations {
		add(f.cards)
	}
	for _, t := range g.tableaus {
		add(t.cards)
	}
	return piles
}

// emptyBoard clears every pile, for tests that lay out their own cards
func emptyBoard(g *Game) {
	g.stock.cards = nil
	g.waste.cards = nil
	for _, f := range g.foundations {
		f.cards = nil
	}
	for _, t := range g.tableaus {
		t.cards = nil
		t.revealed = false
	}
}

func TestNewInitialLayout(t *testing.T) {
	g := newTestGame(t, DealOne)
	require.NoError(t, g.CheckInvariants())

	for n := 1; n <= TableauCount; n++ {
		tab := g.tableau(n)
		require.Equal(t, n, tab.Len(), "tableau %d", n)
		assert.Equal(t, n-1, tab.FaceDown(), "tableau %d", n)
	}
	assert.Equal(t, deck.Size-28, g.StockPile().Len())
	assert.Equal(t, 0, g.WastePile().Len())

	top, _ := g.TableauPile(1).Last()
	assert.Equal(t, "KS", top.Code())
	top, _ = g.TableauPile(7).Last()
	assert.Equal(t, "QD", top.Code())
	top, _ = g.StockPile().Last()
	assert.Equal(t, "JD", top.Code())
	assert.False(t, top.IsOpen())

	assert.Nil(t, g.TableauPile(0))
	assert.Nil(t, g.TableauPile(8))
	assert.Equal(t, g.config.Messages.Welcome, g.Message())
}

func TestNewInvalidDealSize(t *testing.T) {
	_, err := New(2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidDealSize))
}

func TestNewFromConfigNilUsesDefault(t *testing.T) {
	g, err := NewFromConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DealOne, g.DealSize())
	assert.Equal(t, "klondike", g.GetConfig().Name)
}

func TestDealOne(t *testing.T) {
	g := newTestGame(t, DealOne)

	g.Deal()
	assert.Equal(t, 23, g.StockPile().Len())
	require.Equal(t, 1, g.WastePile().Len())
	top, _ := g.WastePile().Last()
	assert.Equal(t, "JD", top.Code())
	assert.True(t, top.IsOpen())
	assert.Equal(t, "Dealt 1 card(s) to the waste.", g.Message())
	require.NoError(t, g.CheckInvariants())
}

func TestDealThree(t *testing.T) {
	g := newTestGame(t, DealThree)

	g.Deal()
	assert.Equal(t, 21, g.StockPile().Len())
	require.Equal(t, 3, g.WastePile().Len())

	codes := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		card, _ := g.WastePile().Get(i)
		codes = append(codes, card.Code())
	}
	assert.Equal(t, []string{"JD", "10D", "9D"}, codes)
	require.NoError(t, g.CheckInvariants())
}

func TestDealThreeWithShortStock(t *testing.T) {
	g := newTestGame(t, DealThree)
	g.stock.cards = g.stock.cards[:2]

	g.Deal()
	assert.Equal(t, 0, g.StockPile().Len())
	assert.Equal(t, 2, g.WastePile().Len())
}

func TestRecycleRoundTrip(t *testing.T) {
	for _, size := range []DealSize{DealOne, DealThree} {
		g := newTestGame(t, size)
		stockSize := g.StockPile().Len()

		for g.StockPile().Len() > 0 {
			g.Deal()
		}
		assert.Equal(t, stockSize, g.WastePile().Len())

		g.Deal()
		assert.Equal(t, 0, g.WastePile().Len())
		require.Equal(t, stockSize, g.StockPile().Len())
		for i := 0; i < stockSize; i++ {
			card, _ := g.StockPile().Get(i)
			assert.False(t, card.IsOpen())
		}
		last := g.GetLastMove()
		require.NotNil(t, last)
		assert.Equal(t, "recycle", last.Action)
		assert.Equal(t, stockSize, last.Size)
		require.NoError(t, g.CheckInvariants())

		// The next deal starts over exactly like the first one
		fresh := newTestGame(t, size)
		fresh.Deal()
		g.Deal()
		assert.Equal(t, fresh.waste.cards, g.waste.cards)
		assert.Equal(t, fresh.stock.cards, g.stock.cards)
	}
}

func TestDealNothingLeft(t *testing.T) {
	g := newTestGame(t, DealOne)
	g.stock.cards = nil
	g.waste.cards = nil

	assert.False(t, g.CanDeal())
	g.Deal()
	assert.Equal(t, 0, g.StockPile().Len())
	assert.Equal(t, 0, g.WastePile().Len())
	assert.Equal(t, g.config.Messages.NothingToDeal, g.Message())
	assert.False(t, g.GetLastMove().Success)
}

func TestTableauToTableauRevealsCard(t *testing.T) {
	g := newTestGame(t, DealOne)

	require.True(t, g.TableauToTableau(7, 1, 1))
	assert.Equal(t, 6, g.TableauPile(7).Len())
	top, _ := g.TableauPile(7).Last()
	assert.Equal(t, "KD", top.Code())
	assert.True(t, top.IsOpen())

	top, _ = g.TableauPile(1).Last()
	assert.Equal(t, "QD", top.Code())
	assert.Equal(t, "Moved from tableau 7 to tableau 1.", g.Message())
	require.NoError(t, g.CheckInvariants())

	require.True(t, g.TableauToTableau(2, 1, 1))
	assert.Equal(t, 3, g.TableauPile(1).Len())
	require.NoError(t, g.CheckInvariants())
}

func TestTableauToTableauRun(t *testing.T) {
	g := newTestGame(t, DealOne)
	emptyBoard(g)
	g.tableaus[0].cards = []deck.Card{down(2, deck.Clubs), up(8, deck.Spades), up(7, deck.Hearts), up(6, deck.Clubs)}
	g.tableaus[1].cards = []deck.Card{up(9, deck.Diamonds)}

	require.True(t, g.TableauToTableau(1, 2, 3))
	assert.Equal(t, []deck.Card{up(2, deck.Clubs)}, g.tableaus[0].cards)
	assert.Equal(t, []deck.Card{up(9, deck.Diamonds), up(8, deck.Spades), up(7, deck.Hearts), up(6, deck.Clubs)}, g.tableaus[1].cards)
}

func TestTableauToTableauTwoCardRun(t *testing.T) {
	g := newTestGame(t, DealOne)
	emptyBoard(g)
	g.tableaus[2].cards = []deck.Card{up(deck.Queen, deck.Hearts), up(deck.Jack, deck.Clubs), up(10, deck.Diamonds)}
	g.tableaus[4].cards = []deck.Card{up(deck.Queen, deck.Spades)}

	require.True(t, g.TableauToTableau(3, 5, 2))
	assert.Equal(t, 1, g.TableauPile(3).Len())
	assert.Equal(t, []deck.Card{up(deck.Queen, deck.Spades), up(deck.Jack, deck.Clubs), up(10, deck.Diamonds)}, g.tableaus[4].cards)
}

func TestTableauToTableauKingToEmptyColumn(t *testing.T) {
	g := newTestGame(t, DealOne)
	emptyBoard(g)
	g.tableaus[0].cards = []deck.Card{down(3, deck.Hearts), up(deck.King, deck.Clubs), up(deck.Queen, deck.Hearts)}

	require.True(t, g.TableauToTableau(1, 4, 2))
	assert.Equal(t, []deck.Card{up(3, deck.Hearts)}, g.tableaus[0].cards)
	assert.Equal(t, 2, g.TableauPile(4).Len())
}

func TestTableauToTableauRejections(t *testing.T) {
	tests := []struct {
		name           string
		from, to, size int
	}{
		{"size zero", 1, 2, 0},
		{"size over max", 1, 2, MaxTableauSize + 1},
		{"size over pile length", 1, 2, 5},
		{"run includes face-down card", 1, 2, 4},
		{"run not alternating", 3, 2, 2},
		{"destination rejects bottom", 1, 4, 1},
		{"same column", 1, 1, 1},
		{"source out of range", 0, 2, 1},
		{"destination out of range", 1, 8, 1},
		{"empty source", 5, 2, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, DealOne)
			emptyBoard(g)
			g.tableaus[0].cards = []deck.Card{down(2, deck.Clubs), up(8, deck.Spades), up(7, deck.Hearts), up(6, deck.Clubs)}
			g.tableaus[1].cards = []deck.Card{up(9, deck.Diamonds)}
			g.tableaus[2].cards = []deck.Card{up(8, deck.Clubs), up(7, deck.Spades)}
			g.tableaus[3].cards = []deck.Card{up(4, deck.Hearts)}
			before := snapshot(g)

			assert.False(t, g.TableauToTableau(tt.from, tt.to, tt.size))
			assert.Equal(t, before, snapshot(g))
			assert.False(t, g.GetLastMove().Success)
		})
	}
}

func TestRestoreRunAfterMidRunRejection(t *testing.T) {
	g := newTestGame(t, DealOne)
	emptyBoard(g)
	src := g.tableaus[0]
	dst := g.tableaus[1]
	src.cards = []deck.Card{down(2, deck.Clubs)}
	dst.cards = []deck.Card{up(9, deck.Diamonds), up(8, deck.Spades)}
	run := []deck.Card{up(8, deck.Spades), up(7, deck.Hearts)}

	// 8S reached dst and the push of 7H failed; taking the run had revealed 2C
	src.cards[0].Open()
	g.restoreRun(src, dst, run, 1, true)

	assert.Equal(t, []deck.Card{down(2, deck.Clubs), up(8, deck.Spades), up(7, deck.Hearts)}, src.cards)
	assert.Equal(t, []deck.Card{up(9, deck.Diamonds)}, dst.cards)
}

func TestWasteToFoundationAndTableau(t *testing.T) {
	g := newTestGame(t, DealOne)
	emptyBoard(g)
	g.waste.cards = []deck.Card{up(5, deck.Hearts), up(deck.Ace, deck.Hearts)}
	g.tableaus[2].cards = []deck.Card{up(6, deck.Spades)}

	assert.False(t, g.WasteToFoundation(deck.Spades))
	assert.Equal(t, "Cannot move from waste to Spades.", g.Message())
	require.True(t, g.WasteToFoundation(deck.Hearts))
	assert.Equal(t, 1, g.FoundationPile(deck.Hearts).Len())

	assert.False(t, g.WasteToTableau(1))
	assert.False(t, g.WasteToTableau(9))
	require.True(t, g.WasteToTableau(3))
	assert.Equal(t, 2, g.TableauPile(3).Len())

	assert.False(t, g.WasteToTableau(3), "waste is empty")
}

func TestTableauToFoundation(t *testing.T) {
	g := newTestGame(t, DealOne)
	emptyBoard(g)
	g.tableaus[0].cards = []deck.Card{down(5, deck.Clubs), up(deck.Ace, deck.Diamonds)}

	assert.False(t, g.TableauToFoundation(1, deck.Clubs))
	require.True(t, g.TableauToFoundation(1, deck.Diamonds))

	top, _ := g.TableauPile(1).Last()
	assert.True(t, top.IsOpen(), "uncovered card is revealed")
	assert.False(t, g.TableauToFoundation(2, deck.Diamonds), "empty tableau")
	assert.False(t, g.TableauToFoundation(0, deck.Diamonds))
}

func TestFailedMoveRestoresHiddenCard(t *testing.T) {
	g := newTestGame(t, DealOne)
	emptyBoard(g)
	g.tableaus[0].cards = []deck.Card{down(5, deck.Clubs), up(9, deck.Hearts)}
	before := snapshot(g)

	assert.False(t, g.TableauToFoundation(1, deck.Hearts))
	assert.Equal(t, before, snapshot(g))
	bottom, _ := g.TableauPile(1).Get(0)
	assert.False(t, bottom.IsOpen())
}

func TestFoundationToTableau(t *testing.T) {
	g := newTestGame(t, DealOne)
	emptyBoard(g)
	g.foundations[3].cards = []deck.Card{up(deck.Ace, deck.Spades), up(2, deck.Spades)}
	g.tableaus[0].cards = []deck.Card{up(3, deck.Hearts)}

	assert.False(t, g.FoundationToTableau(deck.Hearts, 1), "empty foundation")
	assert.False(t, g.FoundationToTableau(deck.Spades, 2), "empty tableau only takes a King")
	require.True(t, g.FoundationToTableau(deck.Spades, 1))
	assert.Equal(t, 1, g.FoundationPile(deck.Spades).Len())
	assert.Equal(t, 2, g.TableauPile(1).Len())
}

func TestFailedMovesAreIdempotent(t *testing.T) {
	g := newTestGame(t, DealOne)
	g.Deal()
	before := snapshot(g)

	attempts := []func() bool{
		func() bool { return g.WasteToFoundation(deck.Diamonds) },
		func() bool { return g.WasteToTableau(1) },
		func() bool { return g.TableauToFoundation(7, deck.Diamonds) },
		func() bool { return g.TableauToFoundation(4, deck.Clubs) },
		func() bool { return g.FoundationToTableau(deck.Clubs, 1) },
		func() bool { return g.TableauToTableau(1, 7, 1) },
		func() bool { return g.TableauToTableau(7, 1, 2) },
		func() bool { return g.Move(AtWaste(), AtStock(), 1) },
	}
	for i, attempt := range attempts {
		assert.False(t, attempt(), "attempt %d", i)
		assert.Equal(t, before, snapshot(g), "attempt %d", i)
	}
	require.NoError(t, g.CheckInvariants())
}

func TestWinning(t *testing.T) {
	g := newTestGame(t, DealOne)
	emptyBoard(g)
	for _, f := range g.foundations {
		for r := deck.Ace; r <= deck.King; r++ {
			if f.suit == deck.Hearts && r == deck.King {
				continue
			}
			f.cards = append(f.cards, up(r, f.suit))
		}
	}
	g.waste.cards = []deck.Card{up(deck.King, deck.Hearts)}
	require.NoError(t, g.CheckInvariants())
	assert.False(t, g.IsWon())

	require.True(t, g.WasteToFoundation(deck.Hearts))
	assert.True(t, g.IsWon())
	assert.Equal(t, g.config.Messages.Victory, g.Message())
	assert.True(t, g.State().Won)
}

func TestResetKeepsHistory(t *testing.T) {
	g := newTestGame(t, DealThree)
	g.Deal()
	require.True(t, g.TableauToTableau(7, 1, 1))

	g.Reset()
	assert.Equal(t, 7, g.TableauPile(7).Len())
	assert.Equal(t, 24, g.StockPile().Len())
	assert.Equal(t, 0, g.WastePile().Len())
	assert.Equal(t, DealThree, g.DealSize())
	require.NoError(t, g.CheckInvariants())

	history := g.GetMoveHistory()
	require.Len(t, history, 3)
	assert.Equal(t, "reset", history[2].Action)
	assert.Equal(t, 3, g.TotalMoves())
}

func TestMoveHistory(t *testing.T) {
	g := newTestGame(t, DealOne)
	assert.Nil(t, g.GetLastMove())

	g.Deal()
	g.WasteToTableau(1)

	history := g.GetMoveHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "deal", history[0].Action)
	assert.True(t, history[0].Success)
	assert.Equal(t, 1, history[0].MoveNumber)
	assert.Equal(t, "move", history[1].Action)
	assert.Equal(t, "waste", history[1].From)
	assert.Equal(t, "tableau 1", history[1].To)
	assert.False(t, history[1].Success)
	assert.Equal(t, 2, history[1].MoveNumber)
	assert.NotEmpty(t, history[0].ID)
	assert.NotEqual(t, history[0].ID, history[1].ID)

	// The returned slice is a copy
	history[0].Action = "changed"
	assert.Equal(t, "deal", g.GetMoveHistory()[0].Action)
}

func TestMoveHistoryIsCapped(t *testing.T) {
	g := newTestGame(t, DealOne)
	for i := 0; i < MaxHistoryEntries+10; i++ {
		g.WasteToTableau(1)
	}
	history := g.GetMoveHistory()
	assert.Len(t, history, MaxHistoryEntries)
	assert.Equal(t, MaxHistoryEntries+10, history[len(history)-1].MoveNumber)
}

func TestInvariantsHoldThroughPlay(t *testing.T) {
	for _, size := range []DealSize{DealOne, DealThree} {
		g := newTestGame(t, size)
		for step := 0; step < 500; step++ {
			moves := g.PossibleMoves()
			if len(moves) == 0 || step%3 == 0 {
				g.Deal()
			} else {
				m := moves[step%len(moves)]
				require.True(t, g.Move(m.From, m.To, m.Size), "step %d: %s", step, m)
			}
			require.NoError(t, g.CheckInvariants(), "step %d", step)
		}
	}
}

func TestCheckInvariantsDetectsProblems(t *testing.T) {
	g := newTestGame(t, DealOne)
	g.stock.cards[0].Open()
	assert.Error(t, g.CheckInvariants())

	g = newTestGame(t, DealOne)
	g.waste.cards = append(g.waste.cards, g.stock.cards[0])
	assert.Error(t, g.CheckInvariants(), "duplicate card")

	g = newTestGame(t, DealOne)
	g.stock.cards = g.stock.cards[1:]
	assert.Error(t, g.CheckInvariants(), "missing card")

	g = newTestGame(t, DealOne)
	g.tableaus[6].cards[6].Close()
	assert.Error(t, g.CheckInvariants(), "face-down top")
}
