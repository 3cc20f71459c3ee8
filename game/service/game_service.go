package service

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/wricardo/solitaire/game/engine"
)

// GameService defines all game-related operations
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, configName string, seed uint64) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Game Operations
	Draw(ctx context.Context, sessionID string) (*ActionResult, error)
	Recycle(ctx context.Context, sessionID string) (*ActionResult, error)
	Move(ctx context.Context, sessionID string, from, to engine.Zone) (*ActionResult, error)
	Pointer(ctx context.Context, sessionID string, sample engine.PointerSample) (*ActionResult, error)

	// Game State
	GetBoardState(ctx context.Context, sessionID string) (*engine.BoardState, error)

	// Configuration
	ListConfigs(ctx context.Context) ([]*ConfigInfo, error)
	LoadConfig(ctx context.Context, configName string) (*engine.GameConfig, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, config *engine.GameConfig, seed uint64) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
}

// ConfigManager handles layout configuration loading
type ConfigManager interface {
	LoadConfig(name string) (*engine.GameConfig, error)
	ListConfigs() ([]*ConfigInfo, error)
	GetDefault() *engine.GameConfig
}

// Session represents an active game: one dealt board and the controller
// driving it.
type Session struct {
	ID             string
	Board          *engine.Board
	Controller     *engine.Controller
	Config         *engine.GameConfig
	ConfigID       string
	Seed           uint64
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// State snapshots the session's board including any held card.
func (s *Session) State() *engine.BoardState {
	return s.Board.Snapshot(s.Controller.Hand())
}

// NewSession deals a fresh board for config. A zero seed is replaced by a
// random non-zero one so the deal can be replayed later.
func NewSession(id string, config *engine.GameConfig, seed uint64) *Session {
	for seed == 0 {
		seed = rand.Uint64()
	}
	board := engine.NewBoard(config.Layout, engine.WithRand(rand.New(rand.NewPCG(seed, seed))))
	board.InitializeDeck()
	board.InitializePlayfield()

	now := time.Now()
	return &Session{
		ID:             id,
		Board:          board,
		Controller:     engine.NewController(board),
		Config:         config,
		Seed:           seed,
		CreatedAt:      now,
		LastAccessedAt: now,
	}
}
