// Command validate checks every layout file (.yaml, .yml, .json) in a
// config directory. For each file it checks:
//   - the file parses and passes the engine's layout validation
//   - config IDs are unique across extensions
//   - the longest possible lane starts its last card inside the playfield band
//   - the assets directory, when named, holds all 52 faces and the card back
//     and no image whose name is not a card
//
// It exits with non-zero status if any file is invalid. Warnings do not
// fail the run.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/solitaire/game/config"
	"github.com/wricardo/solitaire/game/engine"
)

// longestLane is six face-down cards under a full king-to-ace run.
const longestLane = engine.LaneCount - 1 + int(engine.King)

// ValidationResult captures the outcome of validating a single file.
// Errors make the file invalid; Warnings are informational.
type ValidationResult struct {
	File     string
	Valid    bool
	Errors   []string
	Warnings []string
}

func (r *ValidationResult) fail(format string, args ...any) {
	r.Valid = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *ValidationResult) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// validateConfig loads and validates a single layout file. A relative
// assets_dir is resolved against the working directory, as the desktop
// host does.
func validateConfig(filePath string) ValidationResult {
	result := ValidationResult{
		File:  filepath.Base(filePath),
		Valid: true,
	}

	cfg, err := engine.LoadGameConfig(filePath)
	if err != nil {
		result.fail("%v", err)
		return result
	}

	checkCascade(&result, cfg.Layout)
	if cfg.AssetsDir != "" {
		checkAssets(&result, cfg.AssetsDir)
	}

	return result
}

// checkCascade warns when the last card of the longest lane would start
// below the playfield band; drops aimed at it would miss the lane.
func checkCascade(result *ValidationResult, layout engine.Layout) {
	_, y := layout.LaneSlot(engine.LaneCount, longestLane-1)
	if end := layout.Playfield().End; y >= end {
		result.warn("cascade_slots %d is too short for a %d-card lane (last card starts at y=%g, band ends at %g)",
			layout.CascadeSlots, longestLane, y, end)
	}
}

// checkAssets warns about missing card images. The desktop host falls back
// to drawn faces when the card back is absent, so nothing here is fatal.
func checkAssets(result *ValidationResult, dir string) {
	if _, err := os.Stat(dir); err != nil {
		result.warn("assets_dir %s not found; the desktop host will draw plain faces", dir)
		return
	}

	var missing []string
	for _, rank := range engine.Ranks {
		for _, suit := range engine.Suits {
			name := engine.CardID{Rank: rank, Suit: suit}.String() + ".png"
			if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
				missing = append(missing, name)
			}
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "card_back.png")); err != nil {
		missing = append(missing, "card_back.png")
	}

	if len(missing) > 0 {
		shown := missing[:min(len(missing), 5)]
		result.warn("assets_dir %s is missing %d images: %s", dir, len(missing), strings.Join(shown, ", "))
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".png" || name == "card_back.png" {
			continue
		}
		if _, err := engine.ParseCardID(strings.TrimSuffix(name, ".png")); err != nil {
			result.warn("assets_dir %s has an image that names no card: %s", dir, name)
		}
	}
}

// validateDir validates every layout file in dir and flags config IDs
// that more than one file claims.
func validateDir(dir string) ([]ValidationResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var results []ValidationResult
	owners := map[string]string{}
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if entry.IsDir() || !slices.Contains(config.Extensions, ext) {
			continue
		}

		result := validateConfig(filepath.Join(dir, entry.Name()))

		id := strings.ToLower(strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
		if first, ok := owners[id]; ok {
			result.fail("config ID %q is already provided by %s", id, first)
		} else {
			owners[id] = entry.Name()
		}

		results = append(results, result)
	}
	return results, nil
}

// report prints the results and returns whether every file is valid.
func report(w io.Writer, results []ValidationResult) bool {
	allValid := true
	for _, result := range results {
		fmt.Fprintf(w, "\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Fprintln(w, "✅ VALID")
		} else {
			fmt.Fprintln(w, "❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				fmt.Fprintln(w, "  ❌ "+err)
			}
		}
		for _, warning := range result.Warnings {
			fmt.Fprintln(w, "  ⚠️  "+warning)
		}
	}

	fmt.Fprintf(w, "\n%s\n", strings.Repeat("=", 40))
	switch {
	case len(results) == 0:
		fmt.Fprintln(w, "No configuration files found")
	case allValid:
		fmt.Fprintln(w, "✅ All configurations are valid!")
	default:
		fmt.Fprintln(w, "❌ Some configurations have errors")
	}
	return allValid
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Usage:     "validate layout configuration files",
		ArgsUsage: "[config dir]",
		Writer:    os.Stdout,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := "configs"
			if cmd.Args().Present() {
				dir = cmd.Args().First()
			}

			results, err := validateDir(dir)
			if err != nil {
				return fmt.Errorf("error reading config directory: %w", err)
			}
			if !report(cmd.Writer, results) {
				return errors.New("some configurations have errors")
			}
			return nil
		},
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
