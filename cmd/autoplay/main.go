// Command autoplay plays a Klondike session through the REST API with a
// greedy strategy and reports how far it got.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/wricardo/klondike/game/engine"
)

// Result summarizes one played game
type Result struct {
	SessionID  string
	Steps      int
	Foundation int
	Won        bool
	State      *engine.GameState
}

// Options controls a run of Play
type Options struct {
	MaxSteps int
	Delay    time.Duration
}

func main() {
	app := &cli.Command{
		Name:  "autoplay",
		Usage: "Play a Klondike session through the REST API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "url", Value: "http://localhost:8080", Usage: "Game server URL", Sources: cli.EnvVars("SOLITAIRE_API_URL")},
			&cli.StringFlag{Name: "config", Usage: "Game configuration ID (klondike, klondike-draw-three)"},
			&cli.StringFlag{Name: "continue", Usage: "Resume playing an existing session by ID"},
			&cli.IntFlag{Name: "max-moves", Value: 1000, Usage: "Maximum moves and deals"},
			&cli.DurationFlag{Name: "delay", Usage: "Delay between steps"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Log every step"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logrus.Fatal(err)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	logger := logrus.StandardLogger()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if cmd.Bool("verbose") {
		logger.SetLevel(logrus.DebugLevel)
	}

	logger.Infof("Connecting to game server at %s", cmd.String("url"))
	client := NewClient(cmd.String("url"))

	var err error
	if id := cmd.String("continue"); id != "" {
		_, err = client.Resume(ctx, id)
		if err == nil {
			logger.Infof("Resuming session: %s", id)
		}
	} else {
		_, err = client.CreateSession(ctx, cmd.String("config"))
		if err == nil {
			logger.Infof("Session created: %s", client.SessionID())
		}
	}
	if err != nil {
		return err
	}

	result, err := Play(ctx, client, NewGreedyStrategy(), Options{
		MaxSteps: cmd.Int("max-moves"),
		Delay:    cmd.Duration("delay"),
	}, logger)
	if err != nil {
		return err
	}

	if result.Won {
		logger.Infof("VICTORY! Game won in %d steps (session %s)", result.Steps, result.SessionID)
		return nil
	}
	return cli.Exit(fmt.Sprintf("Stuck after %d steps with %d cards on the foundations (session %s)",
		result.Steps, result.Foundation, result.SessionID), 1)
}

// Play asks the strategy for actions until the game is won, the strategy
// gives up or MaxSteps is reached.
func Play(ctx context.Context, client *Client, strategy *GreedyStrategy, opts Options, logger logrus.FieldLogger) (*Result, error) {
	state, err := client.GetState(ctx)
	if err != nil {
		return nil, err
	}

	steps := 0
	for opts.MaxSteps <= 0 || steps < opts.MaxSteps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		moves, err := client.PossibleMoves(ctx)
		if err != nil {
			return nil, err
		}

		action, ok := strategy.Next(state, moves)
		if !ok {
			break
		}

		if action.Move != nil {
			state, err = client.Move(ctx, *action.Move)
		} else {
			state, err = client.Deal(ctx)
		}
		if err != nil {
			return nil, err
		}
		steps++

		logger.WithFields(logrus.Fields{
			"step":   steps,
			"action": action.String(),
		}).Debug(state.Message)

		if opts.Delay > 0 {
			time.Sleep(opts.Delay)
		}
	}

	return &Result{
		SessionID:  client.SessionID(),
		Steps:      steps,
		Foundation: foundationCount(state),
		Won:        state.Won,
		State:      state,
	}, nil
}

func foundationCount(state *engine.GameState) int {
	n := 0
	for _, f := range state.Foundations {
		n += f.Count
	}
	return n
}
