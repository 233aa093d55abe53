// Package console is the interactive terminal game: pick a deal size, then
// type commands at the "command: " prompt until you quit or input ends.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/klondike/game/command"
	"github.com/wricardo/klondike/game/engine"
)

const clearScreen = "\x1B[2J\x1B[H"

const banner = `





        SOLITAIRE




`

// Shell runs one game against a line-oriented reader and writer
type Shell struct {
	in       *bufio.Scanner
	out      io.Writer
	log      logrus.FieldLogger
	styles   styles
	config   *engine.GameConfig
	dealSize engine.DealSize
	clear    bool

	game     *engine.Game
	messages []string
}

// Option configures a Shell
type Option func(*Shell)

// WithConfig plays the given configuration instead of the built-in one
func WithConfig(config *engine.GameConfig) Option {
	return func(s *Shell) { s.config = config }
}

// WithDealSize skips the deal size menu
func WithDealSize(size engine.DealSize) Option {
	return func(s *Shell) { s.dealSize = size }
}

// WithClearScreen controls whether the screen is cleared before each board
func WithClearScreen(clear bool) Option {
	return func(s *Shell) { s.clear = clear }
}

// New creates a shell reading commands from in and drawing to out
func New(in io.Reader, out io.Writer, logger logrus.FieldLogger, opts ...Option) *Shell {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	s := &Shell{
		in:     bufio.NewScanner(in),
		out:    out,
		log:    logger.WithField("component", "console"),
		styles: newStyles(out),
		config: engine.DefaultConfig(),
		clear:  true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run plays until the player quits, input ends or ctx is cancelled. The end
// of input is a normal way to leave and returns nil.
func (s *Shell) Run(ctx context.Context) error {
	size := s.dealSize
	if size == 0 {
		var err error
		if size, err = s.chooseDealSize(); err != nil {
			return ignoreEOF(err)
		}
	}

	if s.config == nil {
		s.config = engine.DefaultConfig()
	}
	config := *s.config
	config.DealSize = int(size)
	game, err := engine.NewFromConfig(&config)
	if err != nil {
		return fmt.Errorf("start game: %w", err)
	}
	s.game = game
	s.say(game.Message())
	s.log.WithField("deal_size", int(size)).Debug("game started")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.printGame()
		s.printMessages()

		input, err := s.readLine("command: ")
		if err != nil {
			return ignoreEOF(err)
		}

		quit, err := s.execute(input)
		if err != nil {
			return ignoreEOF(err)
		}
		if quit {
			s.log.WithField("moves", len(s.game.GetMoveHistory())).Debug("player quit")
			return nil
		}
	}
}

// chooseDealSize shows the menu until the player answers 1 or 3
func (s *Shell) chooseDealSize() (engine.DealSize, error) {
	for {
		if s.clear {
			fmt.Fprint(s.out, clearScreen)
		}
		fmt.Fprint(s.out, s.styles.title.Render(banner))

		input, err := s.readLine("Choose deal size (1 or 3):")
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(input)
		if err != nil {
			continue
		}
		if size, err := engine.ParseDealSize(n); err == nil {
			return size, nil
		}
	}
}

// execute runs one command line. It reports true when the player quits.
func (s *Shell) execute(input string) (bool, error) {
	cmd, err := command.Parse(input)
	if err != nil {
		if !errors.Is(err, command.ErrEmptyCommand) {
			s.say(fmt.Sprintf("%s is not a valid command.", strings.TrimSpace(input)))
		}
		return false, nil
	}

	switch cmd.Kind {
	case command.Quit:
		return true, nil
	case command.Help:
		s.say(command.HelpText)
		return false, nil
	case command.Hint:
		if hints := command.Hints(s.game); len(hints) > 0 {
			s.say("Possible: " + strings.Join(hints, ", "))
		} else {
			s.say("No moves available.")
		}
		return false, nil
	case command.Board:
		return false, nil
	}

	if cmd.Kind == command.Move && cmd.Incomplete {
		cmd, err = s.readMove()
		if err != nil {
			var invalid invalidMove
			if errors.As(err, &invalid) {
				s.say(invalid.Error())
				return false, nil
			}
			return false, err
		}
	}

	if applied, _ := cmd.Apply(s.game); applied {
		s.say(s.game.Message())
	}
	return false, nil
}

// invalidMove is a prompt answer that cannot form a move
type invalidMove string

func (e invalidMove) Error() string { return string(e) }

// readMove asks for the source, the destination and, between tableaus, the
// number of cards.
func (s *Shell) readMove() (*command.Command, error) {
	from, err := s.readLocation("from: ")
	if err != nil {
		return nil, err
	}
	to, err := s.readLocation("to: ")
	if err != nil {
		return nil, err
	}

	switch {
	case to.Kind == engine.WastePile:
		return nil, invalidMove("Cannot move to waste.")
	case from.Kind == engine.FoundationPile && to.Kind == engine.FoundationPile:
		return nil, invalidMove("Cannot move from foundation to foundation.")
	}

	cmd := &command.Command{Kind: command.Move, From: from, To: to, Size: 1}
	if from.Kind == engine.TableauPile && to.Kind == engine.TableauPile {
		input, err := s.readLine("size: ")
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(input)
		if err != nil {
			return nil, invalidMove("Invalid number of cards.")
		}
		cmd.Size = n
	}
	return cmd, nil
}

// readLocation accepts the same names as the move command, except the stock
func (s *Shell) readLocation(prompt string) (engine.Location, error) {
	input, err := s.readLine(prompt)
	if err != nil {
		return engine.Location{}, err
	}
	loc, err := engine.ParseLocation(input)
	if err != nil || loc.Kind == engine.StockPile {
		return engine.Location{}, invalidMove(fmt.Sprintf("%s is not a valid location.", input))
	}
	return loc, nil
}

func (s *Shell) readLine(prompt string) (string, error) {
	fmt.Fprint(s.out, s.styles.prompt.Render(prompt))
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

func (s *Shell) printGame() {
	if s.clear {
		fmt.Fprint(s.out, clearScreen)
	}
	fmt.Fprintf(s.out, "        %s\n\n\n\n", s.styles.title.Render("SOLITAIRE"))
	fmt.Fprintln(s.out, s.styles.board(s.game.State()))
}

func (s *Shell) printMessages() {
	for _, m := range s.messages {
		fmt.Fprintln(s.out, s.styles.message.Render(m))
	}
	s.messages = s.messages[:0]
}

func (s *Shell) say(message string) {
	if message != "" {
		s.messages = append(s.messages, message)
	}
}

func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
