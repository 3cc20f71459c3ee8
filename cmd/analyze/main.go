// Command analyze prints the hit-test geometry of every layout in a config
// directory: the top row and playfield bands, each column's span and the
// zone it resolves to, and an optional character map of the whole table.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/wricardo/solitaire/game/config"
	"github.com/wricardo/solitaire/game/engine"
)

// deepestLane is the longest a lane can get: six face-down cards under a
// full king-to-ace run.
const deepestLane = engine.LaneCount - 1 + int(engine.King)

var zoneChars = map[engine.ZoneKind]byte{
	engine.ZoneNone:       '.',
	engine.ZoneDeck:       'D',
	engine.ZoneWaste:      'W',
	engine.ZoneFoundation: 'F',
	engine.ZoneLane:       'L',
}

// zoneMap samples ResolveZone every step pixels. Lanes and foundations
// print their index instead of a letter.
func zoneMap(layout engine.Layout, step float64) []string {
	if step <= 0 {
		step = layout.Padding
	}

	var rows []string
	for y := 0.0; y < layout.Height(); y += step {
		var row strings.Builder
		for x := 0.0; x < layout.Width(); x += step {
			zone := layout.ResolveZone(x, y)
			switch zone.Kind {
			case engine.ZoneLane, engine.ZoneFoundation:
				row.WriteByte(byte('0' + zone.Index))
			default:
				row.WriteByte(zoneChars[zone.Kind])
			}
		}
		rows = append(rows, row.String())
	}
	return rows
}

// analyzeLayout writes the geometry report for one configuration.
func analyzeLayout(w io.Writer, id string, cfg *engine.GameConfig, step float64, showMap bool) {
	l := cfg.Layout
	top, field := l.TopRow(), l.Playfield()

	fmt.Fprintf(w, "\n=== Analyzing %s (%s) ===\n", id, cfg.Name)
	fmt.Fprintf(w, "Card: %gx%g, padding %g, cascade slots %d\n", l.CardWidth, l.CardHeight, l.Padding, l.CascadeSlots)
	fmt.Fprintf(w, "Table: %gx%g\n", l.Width(), l.Height())
	fmt.Fprintf(w, "Top row:   [%g, %g)\n", top.Start, top.End)
	fmt.Fprintf(w, "Playfield: [%g, %g)\n", field.Start, field.End)

	for n := 1; n <= engine.LaneCount; n++ {
		col := l.Column(n)
		mid := (col.Start + col.End) / 2
		fmt.Fprintf(w, "Column %d:  [%g, %g) top=%s field=%s\n", n, col.Start, col.End,
			l.ResolveZone(mid, top.Start), l.ResolveZone(mid, field.Start))
	}

	// the bottom card of the longest lane must still start inside the band
	_, lastY := l.LaneSlot(engine.LaneCount, deepestLane-1)
	if lastY >= field.End {
		fmt.Fprintf(w, "⚠️  A %d-card lane starts its last card at y=%g, below the playfield band\n", deepestLane, lastY)
	} else {
		fmt.Fprintf(w, "✅ A %d-card lane stays inside the playfield band\n", deepestLane)
	}

	if showMap {
		fmt.Fprintf(w, "Map (%g px per cell; D deck, W waste, 1-7 foundation/lane, . none):\n", step)
		for _, row := range zoneMap(l, step) {
			fmt.Fprintln(w, "  "+row)
		}
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	manager, err := config.NewManager(cmd.String("config-dir"))
	if err != nil {
		return err
	}

	configs, err := manager.ListConfigs()
	if err != nil {
		return err
	}

	only := cmd.Args().Slice()
	for _, info := range configs {
		if len(only) > 0 && !contains(only, info.ConfigID) {
			continue
		}
		cfg, err := manager.LoadConfig(info.ConfigID)
		if err != nil {
			fmt.Fprintf(cmd.Writer, "Error loading %s: %v\n", info.Filename, err)
			continue
		}
		step := cmd.Float("step")
		if step <= 0 {
			step = cfg.Layout.Padding
		}
		analyzeLayout(cmd.Writer, info.ConfigID, cfg, step, cmd.Bool("map"))
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "analyze",
		Usage:     "print the hit-test geometry of table layouts",
		ArgsUsage: "[config IDs...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing layout configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.BoolFlag{
				Name:  "map",
				Usage: "print a character map of the zones",
			},
			&cli.FloatFlag{
				Name:  "step",
				Usage: "map resolution in pixels (defaults to the layout padding)",
			},
		},
		Writer: os.Stdout,
		Action: run,
	}
}

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
