// Package config provides table layout configuration management for the
// solitaire game.
//
// The config package handles:
//   - Loading layouts from YAML (.yaml, .yml) or JSON files
//   - Validation through engine.ValidateGameConfig
//   - Default layout selection
//   - Layout discovery and listing
//
// Configuration Format:
//
// Each file names a layout and its card geometry:
//
//	name: Classic
//	description: Standard seven-lane table
//	title: Solitaire
//	assets_dir: assets
//	layout:
//	  card_width: 60
//	  card_height: 80
//	  padding: 20
//	  cascade_slots: 12
//
// Omitted layout fields keep the classic values. A layout's ID is its file
// name without the extension.
//
// Usage:
//
//	manager, err := config.NewManager("configs")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	gameConfig, err := manager.LoadConfig("large")
//	defaultConfig := manager.GetDefault()
//	configs, err := manager.ListConfigs()
package config
