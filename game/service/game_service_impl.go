package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/wricardo/klondike/game/command"
	"github.com/wricardo/klondike/game/deck"
	"github.com/wricardo/klondike/game/engine"
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	log      logrus.FieldLogger
	mu       sync.RWMutex
}

// NewGameService creates a new game service instance. A nil logger uses the
// logrus standard logger.
func NewGameService(sessions SessionManager, configs ConfigManager, logger logrus.FieldLogger) GameService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
		log:      logger.WithField("component", "service"),
	}
}

// getConfigID returns the config_id for a given config name, used for consistent API responses
func (s *gameServiceImpl) getConfigID(configName string) string {
	availableConfigs, err := s.configs.ListConfigs()
	if err == nil {
		for _, cfg := range availableConfigs {
			if cfg.Name == configName {
				return cfg.ConfigID
			}
		}
	}
	if configName == "" {
		return "default"
	}
	return configName
}

// CreateSession creates a new game session
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	var err error
	if configName != "" {
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					var configIDs []string
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s': %w. Available configs: %v", configName, err, configIDs)
				}
				return nil, fmt.Errorf("config '%s': %w. Use /api/configs to list available configurations", configName, err)
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	session, err := s.sessions.Create("", config)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	configID := configName
	if configID == "" {
		configID = s.getConfigID(session.Config.Name)
	}

	s.log.WithFields(logrus.Fields{
		"session": session.ID,
		"config":  configID,
	}).Info("session created")

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     configID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.State(),
		GameConfig:     session.Config,
	}, nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	return &SessionInfo{
		ID:             session.ID,
		ConfigName:     s.getConfigID(session.Config.Name),
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		GameState:      session.Engine.State(),
		GameConfig:     session.Config,
	}, nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))

	for _, sess := range sessions {
		result = append(result, &SessionInfo{
			ID:             sess.ID,
			ConfigName:     s.getConfigID(sess.Config.Name),
			CreatedAt:      sess.CreatedAt,
			LastAccessedAt: sess.LastAccessedAt,
			GameState:      sess.Engine.State(),
			GameConfig:     sess.Config,
		})
	}

	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	s.log.WithField("session", sessionID).Info("session deleted")
	return nil
}

// Deal deals from the stock, or recycles the waste when the stock is empty
func (s *gameServiceImpl) Deal(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Deal()
	return s.result(sess, sess.Engine.GetLastMove(), nil), nil
}

// Move executes a single move for a session
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, req MoveRequest) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	before := faceDownCounts(sess.Engine)
	sess.Engine.Move(req.From, req.To, req.Size)
	return s.result(sess, sess.Engine.GetLastMove(), before), nil
}

// Command parses and runs a console command such as "d", "m w h" or "hint"
func (s *gameServiceImpl) Command(ctx context.Context, sessionID, input string) (*CommandResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	cmd, err := command.Parse(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCommand, err)
	}

	game := sess.Engine
	result := &CommandResult{Command: cmd.String()}

	switch cmd.Kind {
	case command.Help:
		result.Message = "Available commands"
		result.Help = command.HelpText
	case command.Hint:
		result.Hints = command.Hints(game)
		result.Message = fmt.Sprintf("%d possible move(s)", len(result.Hints))
	case command.Board:
		result.Message = game.Message()
		result.Board = game.Render()
	case command.Quit:
		result.Message = "Delete the session to end the game."
	default:
		if cmd.Incomplete {
			return nil, fmt.Errorf("%w: move needs a source and a destination, e.g. \"m w t3\"", ErrInvalidCommand)
		}
		before := faceDownCounts(game)
		result.Applied, result.Success = cmd.Apply(game)
		moved := s.result(sess, game.GetLastMove(), before)
		result.Success = moved.Success
		result.Message = moved.Message
		result.Events = moved.Events
		result.Board = game.Render()
	}

	result.GameState = game.State()
	return result, nil
}

// Reset deals a fresh game in the same session
func (s *gameServiceImpl) Reset(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.Engine.Reset()
	s.log.WithField("session", sess.ID).Info("game reset")
	return sess.Engine.State(), nil
}

// GetGameState returns the current game state for a session
func (s *gameServiceImpl) GetGameState(ctx context.Context, sessionID string) (*engine.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.Engine.State(), nil
}

// GetBoard returns the text rendering of a session's board
func (s *gameServiceImpl) GetBoard(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return "", err
	}
	return sess.Engine.Render(), nil
}

// GetPossibleMoves lists the legal moves for a session
func (s *gameServiceImpl) GetPossibleMoves(ctx context.Context, sessionID string) (*PossibleMovesResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	moves := sess.Engine.PossibleMoves()
	if moves == nil {
		moves = []engine.MoveSpec{}
	}
	return &PossibleMovesResponse{
		Moves:    moves,
		CanDeal:  sess.Engine.CanDeal(),
		Commands: command.Hints(sess.Engine),
	}, nil
}

// GetMoveHistory returns a page of the session's move history
func (s *gameServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	history := sess.Engine.GetMoveHistory()
	total := len(history)

	// Apply defaults
	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if opts.Limit > 100 {
		opts.Limit = 100
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	end := start + opts.Limit
	if end > total {
		end = total
	}

	moves := []engine.MoveHistoryEntry{}
	if opts.Order == "desc" {
		// Most recent first
		for i := total - 1 - start; i >= 0 && i >= total-end; i-- {
			moves = append(moves, history[i])
		}
	} else if start < total {
		moves = append(moves, history[start:end]...)
	}

	return &HistoryResponse{
		Moves:       moves,
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListConfigs returns the available game configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a configuration by name
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// session looks up a session and marks it as accessed. Callers hold the
// write lock on s.mu, since ListSessions reads access times under the read lock.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// result builds a MoveResult from the history entry the last operation
// recorded. before holds face-down counts per tableau from before a move, so
// a newly revealed card can be reported.
func (s *gameServiceImpl) result(sess *Session, last *engine.MoveHistoryEntry, before []int) *MoveResult {
	game := sess.Engine
	now := time.Now()
	result := &MoveResult{
		GameState: game.State(),
		Message:   game.Message(),
		Events:    []GameEvent{},
	}
	if last == nil {
		return result
	}

	result.Success = last.Success
	s.log.WithFields(logrus.Fields{
		"session": sess.ID,
		"action":  last.Action,
		"from":    last.From,
		"to":      last.To,
		"size":    last.Size,
		"success": last.Success,
	}).Debug("game action")

	if !last.Success {
		return result
	}

	result.Events = append(result.Events, GameEvent{Type: last.Action, Message: game.Message(), Timestamp: now})

	if before != nil {
		after := faceDownCounts(game)
		for i := range after {
			if after[i] < before[i] {
				top, _ := game.TableauPile(i + 1).Last()
				result.Events = append(result.Events, GameEvent{
					Type:      "reveal",
					Message:   fmt.Sprintf("Revealed %s of %s on tableau %d", top.Rank(), top.Suit(), i+1),
					Timestamp: now,
				})
			}
		}
	}

	if suit, err := deck.ParseSuit(last.To); err == nil && last.Action == "move" {
		pile := game.FoundationPile(suit)
		result.Events = append(result.Events, GameEvent{
			Type:      "foundation",
			Message:   fmt.Sprintf("%s foundation holds %d of %d", suit, pile.Len(), engine.FoundationSize),
			Timestamp: now,
		})
	}

	if game.IsWon() {
		s.log.WithField("session", sess.ID).Info("game won")
		result.Events = append(result.Events, GameEvent{Type: "victory", Message: game.GetConfig().Messages.Victory, Timestamp: now})
	}
	return result
}

// faceDownCounts returns the number of face-down cards in each tableau
func faceDownCounts(game *engine.Game) []int {
	counts := make([]int, engine.TableauCount)
	for i := range counts {
		pile := game.TableauPile(i + 1)
		for j := 0; j < pile.Len(); j++ {
			if card, _ := pile.Get(j); !card.IsOpen() {
				counts[i]++
			}
		}
	}
	return counts
}
