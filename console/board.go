package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/wricardo/klondike/game/deck"
	"github.com/wricardo/klondike/game/engine"
)

// styles colors the board. Output that is not a terminal gets plain text.
type styles struct {
	title   lipgloss.Style
	red     lipgloss.Style
	black   lipgloss.Style
	back    lipgloss.Style
	label   lipgloss.Style
	message lipgloss.Style
	prompt  lipgloss.Style
}

func newStyles(out io.Writer) styles {
	r := lipgloss.NewRenderer(out)
	return styles{
		title:   r.NewStyle().Bold(true),
		red:     r.NewStyle().Foreground(lipgloss.Color("9")),
		black:   r.NewStyle().Foreground(lipgloss.Color("15")),
		back:    r.NewStyle().Foreground(lipgloss.Color("4")),
		label:   r.NewStyle().Faint(true),
		message: r.NewStyle().Foreground(lipgloss.Color("11")),
		prompt:  r.NewStyle().Bold(true),
	}
}

func (st styles) card(c engine.CardState) string {
	if !c.Open {
		return st.back.Render(c.Glyph)
	}
	if c.Color == deck.Red.String() {
		return st.red.Render(c.Glyph)
	}
	return st.black.Render(c.Glyph)
}

func (st styles) suit(name string) string {
	suit, err := deck.ParseSuit(name)
	if err != nil {
		return " "
	}
	glyph := string(suit.Glyph())
	if suit.Color() == deck.Red {
		return st.red.Render(glyph)
	}
	return st.black.Render(glyph)
}

// board lays the snapshot out like Game.Render: foundations, the last three
// waste cards and the stock on top, then the seven columns.
func (st styles) board(state *engine.GameState) string {
	var b strings.Builder

	for _, f := range state.Foundations {
		if f.Top != nil {
			b.WriteString(" " + st.card(*f.Top) + " ")
		} else {
			b.WriteString(" " + st.suit(f.Suit) + " ")
		}
	}

	b.WriteString("   ")
	waste := state.Waste.Cards
	for i := engine.WasteShown; i > 0; i-- {
		if n := len(waste) - i; n >= 0 {
			b.WriteString(" " + st.card(waste[n]))
		} else {
			b.WriteString("  ")
		}
	}

	b.WriteString("    ")
	if state.Stock.Top != nil {
		b.WriteString(st.card(*state.Stock.Top))
	} else {
		b.WriteString(st.back.Render(string(engine.EmptyStock)))
	}
	b.WriteString("\n\n")

	for i := 1; i <= len(state.Tableaus); i++ {
		b.WriteString(st.label.Render(fmt.Sprintf(" %d ", i)))
	}
	b.WriteString("\n")

	for row := 0; ; row++ {
		last := -1
		for i, t := range state.Tableaus {
			if row < len(t.Cards) {
				last = i
			}
		}
		if last < 0 {
			break
		}
		for i := 0; i <= last; i++ {
			cards := state.Tableaus[i].Cards
			if row < len(cards) {
				b.WriteString(" " + st.card(cards[row]) + " ")
			} else {
				b.WriteString("   ")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
