// Package command parses the one-line commands typed into the text shell and
// applies them to a game.
package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/wricardo/klondike/game/deck"
	"github.com/wricardo/klondike/game/engine"
)

var (
	// ErrUnknownCommand is returned for input that matches no command
	ErrUnknownCommand = errors.New("unknown command")
	// ErrEmptyCommand is returned for blank input
	ErrEmptyCommand = errors.New("empty command")
)

// Kind identifies what a command does
type Kind string

const (
	Deal  Kind = "deal"
	Help  Kind = "help"
	Move  Kind = "move"
	Hint  Kind = "hint"
	Board Kind = "board"
	New   Kind = "new"
	Quit  Kind = "quit"
)

// HelpText describes the command language
const HelpText = `Commands:
  d, deal            deal from the stock (recycles the waste when the stock is empty)
  m, move FROM TO N  move a card, or N cards between tableaus; a bare "m" asks for each part
  wc, wd, wh, ws     move the waste card to a foundation
  hint               list the legal moves
  b, board           show the board
  new                deal a new game
  h, help, ?         show this help
  q, quit            leave the game

Locations:
  w, waste                     the waste
  c, d, h, s or a suit name    a foundation (f picks the matching one)
  1..7 or t1..t7               a tableau`

// Command is a parsed line of input
type Command struct {
	Kind Kind
	From engine.Location
	To   engine.Location
	Size int

	// Incomplete is set for a bare move that still needs its locations
	Incomplete bool
}

// String returns the command in canonical form
func (c Command) String() string {
	if c.Kind != Move || c.Incomplete {
		return string(c.Kind)
	}
	return "move " + engine.MoveSpec{From: c.From, To: c.To, Size: c.Size}.String()
}

type line struct {
	Deal  bool      `parser:"  @(\"deal\" | \"d\")"`
	Help  bool      `parser:"| @(\"help\" | \"h\" | \"?\")"`
	Hint  bool      `parser:"| @\"hint\""`
	Board bool      `parser:"| @(\"board\" | \"b\")"`
	New   bool      `parser:"| @\"new\""`
	Quit  bool      `parser:"| @(\"quit\" | \"q\" | \"exit\")"`
	Quick string    `parser:"| @(\"wc\" | \"wd\" | \"wh\" | \"ws\")"`
	Move  bool      `parser:"| @(\"move\" | \"m\")"`
	Args  *moveArgs `parser:"  @@?"`
}

type moveArgs struct {
	From location `parser:"@(Tableau | Int | Ident)"`
	To   location `parser:"@(Tableau | Int | Ident)"`
	Size *int     `parser:"@Int?"`
}

type location engine.Location

func (l *location) Capture(values []string) error {
	loc, err := engine.ParseLocation(values[0])
	if err != nil {
		return err
	}
	*l = location(loc)
	return nil
}

var (
	commandLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Tableau", Pattern: `t(?:ableau)?\d+`},
		{Name: "Int", Pattern: `\d+`},
		{Name: "Ident", Pattern: `[a-z]+`},
		{Name: "Punct", Pattern: `\?`},
		{Name: "whitespace", Pattern: `\s+`},
	})

	parser = participle.MustBuild[line](
		participle.Lexer(commandLexer),
		participle.UseLookahead(2),
	)
)

// Parse parses a single command line. Input is case-insensitive.
func Parse(input string) (*Command, error) {
	in := strings.ToLower(strings.TrimSpace(input))
	if in == "" {
		return nil, ErrEmptyCommand
	}

	ast, err := parser.ParseString("", in)
	if err != nil {
		return nil, fmt.Errorf("%w: %s is not a valid command", ErrUnknownCommand, strings.TrimSpace(input))
	}

	switch {
	case ast.Deal:
		return &Command{Kind: Deal}, nil
	case ast.Help:
		return &Command{Kind: Help}, nil
	case ast.Hint:
		return &Command{Kind: Hint}, nil
	case ast.Board:
		return &Command{Kind: Board}, nil
	case ast.New:
		return &Command{Kind: New}, nil
	case ast.Quit:
		return &Command{Kind: Quit}, nil
	case ast.Quick != "":
		suit, err := deck.ParseSuit(ast.Quick[1:])
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, err)
		}
		return &Command{Kind: Move, From: engine.AtWaste(), To: engine.AtFoundation(suit), Size: 1}, nil
	case ast.Move:
		if ast.Args == nil {
			return &Command{Kind: Move, Incomplete: true}, nil
		}
		cmd := &Command{
			Kind: Move,
			From: engine.Location(ast.Args.From),
			To:   engine.Location(ast.Args.To),
			Size: 1,
		}
		if ast.Args.Size != nil {
			cmd.Size = *ast.Args.Size
		}
		return cmd, nil
	}
	return nil, fmt.Errorf("%w: %s is not a valid command", ErrUnknownCommand, strings.TrimSpace(input))
}

// Apply runs a game-changing command. applied is false for commands the
// caller handles itself (help, hint, board, quit) and for incomplete moves.
// ok reports whether a move succeeded, and is true for deal and new.
func (c *Command) Apply(g engine.Engine) (applied, ok bool) {
	switch c.Kind {
	case Deal:
		g.Deal()
		return true, true
	case New:
		g.Reset()
		return true, true
	case Move:
		if c.Incomplete {
			return false, false
		}
		return true, g.Move(c.From, c.To, c.Size)
	}
	return false, false
}

// Hints formats the legal moves as commands, with "deal" last when possible
func Hints(g engine.Engine) []string {
	var hints []string
	for _, m := range g.PossibleMoves() {
		hints = append(hints, "m "+m.String())
	}
	if g.CanDeal() {
		hints = append(hints, "d")
	}
	return hints
}
