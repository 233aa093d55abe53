package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wricardo/klondike/game/engine"
)

func newTestShell(input string, opts ...Option) (*Shell, *bytes.Buffer) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	var out bytes.Buffer
	opts = append([]Option{WithClearScreen(false)}, opts...)
	return New(strings.NewReader(input), &out, logger, opts...), &out
}

func play(t *testing.T, input string, opts ...Option) (*Shell, string) {
	t.Helper()
	shell, out := newTestShell(input, opts...)
	require.NoError(t, shell.Run(context.Background()))
	return shell, out.String()
}

func TestShellChoosesDealSize(t *testing.T) {
	shell, out := play(t, "5\nthree\n3\nq\n")

	assert.Equal(t, 3, strings.Count(out, "Choose deal size (1 or 3):"))
	require.NotNil(t, shell.game)
	assert.Equal(t, engine.DealThree, shell.game.DealSize())
	assert.Contains(t, out, "command: ")
}

func TestShellEndsOnEOF(t *testing.T) {
	shell, out := play(t, "1\n")

	assert.NotNil(t, shell.game)
	assert.Contains(t, out, "Welcome to Klondike!")

	// Input ending at the menu is not an error either
	_, out = play(t, "")
	assert.Contains(t, out, "Choose deal size")
}

func TestShellDeal(t *testing.T) {
	shell, out := play(t, "d\nd\nq\n", WithDealSize(engine.DealOne))

	assert.Equal(t, 2, shell.game.WastePile().Len())
	assert.Contains(t, out, "Dealt 1 card(s) to the waste.")
	assert.NotContains(t, out, "Choose deal size")
}

func TestShellMoveCommand(t *testing.T) {
	shell, out := play(t, "m t2 t5\nm w h\nq\n", WithDealSize(engine.DealOne))

	assert.Contains(t, out, "Moved from tableau 2 to tableau 5.")
	assert.Contains(t, out, "Cannot move from waste to Hearts.")
	assert.Equal(t, 6, shell.game.TableauPile(5).Len())
}

func TestShellPromptedMove(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     string
		wantSize bool
	}{
		{
			name:     "tableau to tableau asks for size",
			input:    "m\n2\n5\n1\nq\n",
			want:     "Moved from tableau 2 to tableau 5.",
			wantSize: true,
		},
		{
			name:  "waste to foundation",
			input: "move\nw\nhearts\nq\n",
			want:  "Cannot move from waste to Hearts.",
		},
		{
			name:  "unknown location",
			input: "m\nx\nq\n",
			want:  "x is not a valid location.",
		},
		{
			name:  "stock is not a location",
			input: "m\nstock\nq\n",
			want:  "stock is not a valid location.",
		},
		{
			name:  "nothing moves to the waste",
			input: "m\nt1\nw\nq\n",
			want:  "Cannot move to waste.",
		},
		{
			name:  "foundation to foundation",
			input: "m\nh\ns\nq\n",
			want:  "Cannot move from foundation to foundation.",
		},
		{
			name:     "size must be a number",
			input:    "m\nt2\nt5\nall\nq\n",
			want:     "Invalid number of cards.",
			wantSize: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out := play(t, tt.input, WithDealSize(engine.DealOne))

			assert.Contains(t, out, "from: ")
			assert.Contains(t, out, tt.want)
			assert.Equal(t, tt.wantSize, strings.Contains(out, "size: "))
		})
	}
}

func TestShellHelpAndHint(t *testing.T) {
	_, out := play(t, "help\nhint\nq\n", WithDealSize(engine.DealThree))

	assert.Contains(t, out, "deal from the stock")
	assert.Contains(t, out, "Possible: m t2 t5 1, m t2 t7 1, m t5 t1 1, m t7 t1 1, d")
}

func TestShellUnknownCommand(t *testing.T) {
	_, out := play(t, "fly\n\nq\n", WithDealSize(engine.DealOne))

	assert.Contains(t, out, "fly is not a valid command.")
	assert.Equal(t, 1, strings.Count(out, "is not a valid command"), "blank lines are ignored")
}

func TestShellNewGame(t *testing.T) {
	shell, _ := play(t, "d\nd\nnew\nq\n", WithDealSize(engine.DealOne))

	assert.Equal(t, 0, shell.game.WastePile().Len())
	assert.Equal(t, 24, shell.game.StockPile().Len())
}

func TestShellUsesConfig(t *testing.T) {
	config := engine.DefaultConfig()
	config.Name = "custom"
	config.Messages.Welcome = "Good luck."

	shell, out := play(t, "q\n", WithConfig(config), WithDealSize(engine.DealThree))

	assert.Contains(t, out, "Good luck.")
	assert.Equal(t, "custom", shell.game.GetConfig().Name)
	assert.Equal(t, 1, config.DealSize, "the caller's config is not modified")
}

func TestShellStopsOnCancel(t *testing.T) {
	shell, _ := newTestShell("d\nq\n", WithDealSize(engine.DealOne))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, shell.Run(ctx), context.Canceled)
}

func TestBoard(t *testing.T) {
	game, err := engine.New(engine.DealThree)
	require.NoError(t, err)
	game.Deal()

	board := newStyles(io.Discard).board(game.State())
	lines := strings.Split(board, "\n")

	assert.True(t, strings.HasPrefix(lines[0], " ♣  ♦  ♥  ♠ "), "empty foundations show their suit")
	assert.Contains(t, board, " 1  2  3  4  5  6  7")

	// Seven tableau rows, the last holding only the open queen of diamonds
	rows := lines[3 : len(lines)-1]
	require.Len(t, rows, 7)
	assert.Equal(t, strings.TrimRight(rows[6], " "), strings.Repeat("   ", 6)+" \U0001F0CD")
}

func TestBoardAfterStockEmpty(t *testing.T) {
	game, err := engine.New(engine.DealThree)
	require.NoError(t, err)
	for i := 0; i < 8; i++ {
		game.Deal()
	}

	board := newStyles(io.Discard).board(game.State())
	assert.Contains(t, strings.Split(board, "\n")[0], string(engine.EmptyStock))
}
