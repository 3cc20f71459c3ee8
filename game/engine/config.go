package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Layout limits enforced by ValidateGameConfig.
const (
	MinCardSize     = 8
	MaxCardSize     = 400
	MinPadding      = 1
	MaxCascadeSlots = DeckSize
)

// GameConfig is a named table layout loaded from a YAML or JSON file.
type GameConfig struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Layout      Layout `json:"layout" yaml:"layout"`
	// Title is the desktop window title.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`
	// AssetsDir holds "<rank>_of_<suit>.png" faces and "card_back.png".
	AssetsDir string `json:"assets_dir,omitempty" yaml:"assets_dir,omitempty"`
}

// DefaultGameConfig returns the classic layout used when no file is named.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Name:        "Classic",
		Description: "Standard seven-lane table with 60x80 cards",
		Layout:      DefaultLayout(),
		Title:       "Solitaire",
		AssetsDir:   "assets",
	}
}

// ValidateGameConfig checks that a configuration describes a usable table.
func ValidateGameConfig(config *GameConfig) error {
	if config == nil {
		return fmt.Errorf("config validation: config is nil")
	}
	if config.Name == "" {
		return fmt.Errorf("config validation: name is required")
	}

	l := config.Layout
	if l.CardWidth < MinCardSize || l.CardWidth > MaxCardSize {
		return fmt.Errorf("config validation: card_width must be between %d and %d, got %g", MinCardSize, MaxCardSize, l.CardWidth)
	}
	if l.CardHeight < MinCardSize || l.CardHeight > MaxCardSize {
		return fmt.Errorf("config validation: card_height must be between %d and %d, got %g", MinCardSize, MaxCardSize, l.CardHeight)
	}
	if l.Padding < MinPadding || l.Padding >= l.CardHeight {
		return fmt.Errorf("config validation: padding must be between %d and card_height (%g), got %g", MinPadding, l.CardHeight, l.Padding)
	}
	if l.CascadeSlots < 1 || l.CascadeSlots > MaxCascadeSlots {
		return fmt.Errorf("config validation: cascade_slots must be between 1 and %d, got %d", MaxCascadeSlots, l.CascadeSlots)
	}

	return nil
}

// ParseGameConfig decodes and validates a configuration. JSON input is
// accepted since it is valid YAML.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	config := DefaultGameConfig()
	config.Name, config.Description = "", ""
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := ValidateGameConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadGameConfig reads and validates the configuration at path.
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseGameConfig(data)
}
