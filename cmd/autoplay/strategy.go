package main

import (
	"github.com/wricardo/klondike/game/engine"
)

// Action is one step chosen by the strategy: a move, or a deal when Move is nil
type Action struct {
	Move *engine.MoveSpec
}

func (a Action) String() string {
	if a.Move == nil {
		return "d"
	}
	return "m " + a.Move.String()
}

// GreedyStrategy plays the first useful move it finds, in this order:
// anything onto a foundation, tableau runs that uncover a face-down card,
// waste cards onto the tableau. Otherwise it deals, and gives up once a whole
// cycle through the stock went by without a move.
type GreedyStrategy struct {
	idleDeals int
	limit     int
}

func NewGreedyStrategy() *GreedyStrategy {
	return &GreedyStrategy{}
}

// Next picks the next action. ok is false when the game is won or stuck.
func (s *GreedyStrategy) Next(state *engine.GameState, moves []engine.MoveSpec) (Action, bool) {
	if state.Won {
		return Action{}, false
	}

	if move, found := s.pick(state, moves); found {
		s.idleDeals = 0
		return Action{Move: &move}, true
	}

	if !state.CanDeal {
		return Action{}, false
	}
	if s.idleDeals == 0 {
		s.limit = cycleLength(state)
	}
	if s.idleDeals >= s.limit {
		return Action{}, false
	}
	s.idleDeals++
	return Action{}, true
}

// Reset forgets the deals counted since the last move
func (s *GreedyStrategy) Reset() {
	s.idleDeals = 0
	s.limit = 0
}

func (s *GreedyStrategy) pick(state *engine.GameState, moves []engine.MoveSpec) (engine.MoveSpec, bool) {
	for _, m := range moves {
		if m.To.Kind == engine.FoundationPile {
			return m, true
		}
	}
	for _, m := range moves {
		if m.From.Kind == engine.TableauPile && m.To.Kind == engine.TableauPile && reveals(state, m) {
			return m, true
		}
	}
	for _, m := range moves {
		if m.From.Kind == engine.WastePile && m.To.Kind == engine.TableauPile {
			return m, true
		}
	}
	return engine.MoveSpec{}, false
}

// reveals reports whether moving the run leaves a face-down card on top
func reveals(state *engine.GameState, m engine.MoveSpec) bool {
	if m.From.Index < 1 || m.From.Index > len(state.Tableaus) {
		return false
	}
	cards := state.Tableaus[m.From.Index-1].Cards
	below := len(cards) - m.Size - 1
	return below >= 0 && !cards[below].Open
}

// cycleLength is enough deals to turn the whole stock over twice, so every
// waste card has been on top at least once.
func cycleLength(state *engine.GameState) int {
	size := state.DealSize
	if size < 1 {
		size = 1
	}
	cards := state.Stock.Count + state.Waste.Count
	return 2*((cards+size-1)/size) + 2
}
