package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wricardo/solitaire/game/engine"
)

var (
	// ErrConfigNotFound is returned by ConfigManager implementations for unknown names.
	ErrConfigNotFound = errors.New("configuration not found")
	// ErrInvalidMove reports a move whose source or target cannot take part in a move.
	ErrInvalidMove = errors.New("invalid move")
	// ErrHandBusy reports an operation attempted while the pointer holds a card.
	ErrHandBusy = errors.New("a card is being dragged")
)

// gameServiceImpl implements the GameService interface
type gameServiceImpl struct {
	sessions SessionManager
	configs  ConfigManager
	// mu is held exclusively by every method that looks a session up, since
	// the lookup touches its access time. ListSessions only reads.
	mu sync.RWMutex
}

// NewGameService creates a new game service instance
func NewGameService(sessions SessionManager, configs ConfigManager) GameService {
	return &gameServiceImpl{
		sessions: sessions,
		configs:  configs,
	}
}

// configID returns the ID config is listed under, so a session reports
// the same name whether it was created from the default, an ID or a file
// name. Configs missing from the listing fall back to requested.
func (s *gameServiceImpl) configID(config *engine.GameConfig, requested string) string {
	if available, err := s.configs.ListConfigs(); err == nil {
		for _, cfg := range available {
			if loaded, err := s.configs.LoadConfig(cfg.ConfigID); err == nil && loaded == config {
				return cfg.ConfigID
			}
		}
	}
	if requested == "" {
		return "default"
	}
	return requested
}

// CreateSession deals a new game. A zero seed picks a random one.
func (s *gameServiceImpl) CreateSession(ctx context.Context, configName string, seed uint64) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var config *engine.GameConfig
	if configName != "" {
		var err error
		config, err = s.configs.LoadConfig(configName)
		if err != nil {
			if errors.Is(err, ErrConfigNotFound) {
				availableConfigs, listErr := s.configs.ListConfigs()
				if listErr == nil && len(availableConfigs) > 0 {
					configIDs := make([]string, 0, len(availableConfigs))
					for _, cfg := range availableConfigs {
						configIDs = append(configIDs, cfg.ConfigID)
					}
					return nil, fmt.Errorf("config '%s' not found, available configs %v: %w", configName, configIDs, err)
				}
			}
			return nil, fmt.Errorf("failed to load config %s: %w", configName, err)
		}
	} else {
		config = s.configs.GetDefault()
	}

	// Let session manager generate a proper 4-character ID
	sess, err := s.sessions.Create("", config, seed)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	sess.ConfigID = s.configID(config, configName)

	return sessionInfo(sess), nil
}

// GetSession retrieves session information
func (s *gameServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions
func (s *gameServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session
func (s *gameServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.Delete(sessionID); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	return nil
}

// Draw moves the top deck card to the waste.
func (s *gameServiceImpl) Draw(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.idleSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &ActionResult{Action: engine.ActionDraw}
	if sess.Board.DrawCard() {
		result.Success = true
		result.Message = "Drew a card to the waste"
	} else {
		result.Message = "The deck is empty"
	}
	result.BoardState = sess.State()
	return result, nil
}

// Recycle turns the waste back into the deck once the deck is empty.
func (s *gameServiceImpl) Recycle(ctx context.Context, sessionID string) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.idleSession(sessionID)
	if err != nil {
		return nil, err
	}

	result := &ActionResult{Action: engine.ActionRecycle}
	switch {
	case sess.Board.RecycleWaste():
		result.Success = true
		result.Message = "Recycled the waste into the deck"
	case sess.Board.Len(engine.DeckZone()) > 0:
		result.Message = "The deck still has cards"
	default:
		result.Message = "The waste is empty"
	}
	result.BoardState = sess.State()
	return result, nil
}

// Move lifts the top card of from and places it on to, the logical
// equivalent of a drag and drop. An illegal placement leaves the card at
// from and reports Success false. Uncovering a face-down lane card turns
// it face-up.
func (s *gameServiceImpl) Move(ctx context.Context, sessionID string, from, to engine.Zone) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.idleSession(sessionID)
	if err != nil {
		return nil, err
	}

	switch from.Kind {
	case engine.ZoneWaste, engine.ZoneLane, engine.ZoneFoundation:
	default:
		return nil, fmt.Errorf("%w: cannot move from %s", ErrInvalidMove, from)
	}
	if !from.Valid() {
		return nil, fmt.Errorf("%w: no such zone %s", ErrInvalidMove, from)
	}
	if to.Kind != engine.ZoneLane && to.Kind != engine.ZoneFoundation {
		return nil, fmt.Errorf("%w: cannot move to %s", ErrInvalidMove, to)
	}
	if !to.Valid() {
		return nil, fmt.Errorf("%w: no such zone %s", ErrInvalidMove, to)
	}
	if from == to {
		return nil, fmt.Errorf("%w: source and target are both %s", ErrInvalidMove, from)
	}

	card, ok := sess.Board.TakeTop(from)
	if !ok {
		return nil, fmt.Errorf("%w: %s has no face-up card", ErrInvalidMove, from)
	}

	result := &ActionResult{From: &from, Target: &to}
	if to.Kind == engine.ZoneLane {
		result.Action = engine.ActionLane
		result.Success = sess.Board.PlaceOnLane(card, to.Index, from)
	} else {
		result.Action = engine.ActionFoundation
		result.Success = sess.Board.PlaceOnFoundation(card, to.Index, from)
	}

	if result.Success {
		result.Message = fmt.Sprintf("Moved %s from %s to %s", card.CardID, from, to)
		if from.Kind == engine.ZoneLane {
			result.Revealed = sess.Board.RevealLaneTop(from.Index)
		}
	} else {
		result.Message = fmt.Sprintf("%s cannot go on %s", card.CardID, to)
	}
	result.BoardState = sess.State()
	return result, nil
}

// Pointer feeds one pointer sample to the session's controller.
func (s *gameServiceImpl) Pointer(ctx context.Context, sessionID string, sample engine.PointerSample) (*ActionResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	outcome := sess.Controller.Update(sample)
	result := &ActionResult{
		Action:     outcome.Action,
		Success:    outcome.Success,
		Message:    describeOutcome(outcome),
		BoardState: sess.State(),
	}
	if !outcome.Target.IsNone() {
		target := outcome.Target
		result.Target = &target
	}
	return result, nil
}

// GetBoardState returns a snapshot of the session's board
func (s *gameServiceImpl) GetBoardState(ctx context.Context, sessionID string) (*engine.BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	return sess.State(), nil
}

// ListConfigs returns all available layout configurations
func (s *gameServiceImpl) ListConfigs(ctx context.Context) ([]*ConfigInfo, error) {
	return s.configs.ListConfigs()
}

// LoadConfig loads a specific layout configuration
func (s *gameServiceImpl) LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error) {
	return s.configs.LoadConfig(configName)
}

// session looks a session up and touches its access time. Callers hold
// s.mu for writing.
func (s *gameServiceImpl) session(sessionID string) (*Session, error) {
	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)
	return sess, nil
}

// idleSession is session for operations that bypass the controller.
func (s *gameServiceImpl) idleSession(sessionID string) (*Session, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Controller.Holding() {
		return nil, fmt.Errorf("%w: release %s first", ErrHandBusy, sess.Controller.Hand().Card.CardID)
	}
	return sess, nil
}

func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		ConfigName:     sess.ConfigID,
		Seed:           sess.Seed,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		BoardState:     sess.State(),
		GameConfig:     sess.Config,
	}
}

func describeOutcome(o engine.Outcome) string {
	switch o.Action {
	case engine.ActionDraw:
		if o.Success {
			return "Drew a card to the waste"
		}
		return "The deck is empty"
	case engine.ActionPickUp:
		return "Picked up the waste card"
	case engine.ActionDrag:
		return "Dragging"
	case engine.ActionLane, engine.ActionFoundation:
		if o.Success {
			return fmt.Sprintf("Placed on %s", o.Target)
		}
		return fmt.Sprintf("Rejected by %s, card returned", o.Target)
	case engine.ActionReturn:
		return "Card returned to the waste"
	case engine.ActionRecycle:
		if o.Success {
			return "Recycled the waste into the deck"
		}
		return "Nothing to recycle"
	}
	return ""
}
