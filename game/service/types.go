package service

import (
	"time"

	"github.com/wricardo/solitaire/game/engine"
)

// SessionInfo provides information about a game session
type SessionInfo struct {
	ID             string             `json:"id"`
	ConfigName     string             `json:"config_name"`
	Seed           uint64             `json:"seed"`
	CreatedAt      time.Time          `json:"created_at"`
	LastAccessedAt time.Time          `json:"last_accessed_at"`
	BoardState     *engine.BoardState `json:"board_state"`
	GameConfig     *engine.GameConfig `json:"game_config"`
}

// ActionResult contains the result of a game operation. Success is false
// when the board rejected the action; the board is still consistent.
type ActionResult struct {
	Action     engine.Action      `json:"action"`
	Success    bool               `json:"success"`
	From       *engine.Zone       `json:"from,omitempty"`
	Target     *engine.Zone       `json:"target,omitempty"`
	Message    string             `json:"message"`
	Revealed   bool               `json:"revealed,omitempty"`
	BoardState *engine.BoardState `json:"board_state"`
}

// ConfigInfo provides information about a layout configuration
type ConfigInfo struct {
	Filename     string  `json:"filename"`
	ConfigID     string  `json:"config_id"` // The identifier to use for session creation
	Name         string  `json:"name"`      // Display name
	Description  string  `json:"description"`
	CardWidth    float64 `json:"card_width"`
	CardHeight   float64 `json:"card_height"`
	Padding      float64 `json:"padding"`
	CascadeSlots int     `json:"cascade_slots"`
}
