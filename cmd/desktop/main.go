// Command desktop plays solitaire in a window. The pointer is sampled once
// per frame and handed to the engine's controller, which owns every rule;
// this program only reads input and draws the board.
package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/wricardo/solitaire/game/config"
	"github.com/wricardo/solitaire/game/engine"
)

// footerHeight is the strip under the table used for the status line.
const footerHeight = 20

// Game implements ebiten.Game around one board.
type Game struct {
	logger *zap.Logger
	config *engine.GameConfig
	assets *engine.Assets
	seed   uint64

	board      *engine.Board
	controller *engine.Controller
	status     string
}

// NewGame deals a board from seed. A zero seed picks a random one.
func NewGame(cfg *engine.GameConfig, assets *engine.Assets, seed uint64, logger *zap.Logger) *Game {
	g := &Game{logger: logger, config: cfg, assets: assets}
	g.deal(seed)
	return g
}

func (g *Game) deal(seed uint64) {
	for seed == 0 {
		seed = rand.Uint64()
	}
	g.seed = seed

	g.board = engine.NewBoard(g.config.Layout,
		engine.WithRand(rand.New(rand.NewPCG(seed, seed))),
		engine.WithAssets(g.assets))
	g.board.InitializeDeck()
	g.board.InitializePlayfield()
	g.controller = engine.NewController(g.board)

	g.status = fmt.Sprintf("seed %d", seed)
	g.logger.Info("dealt", zap.Uint64("seed", seed))
}

// pointerSample reads the mouse for this frame.
func pointerSample() engine.PointerSample {
	x, y := ebiten.CursorPosition()
	return engine.PointerSample{
		X:        float64(x),
		Y:        float64(y),
		Pressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Down:     ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		Released: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}
}

// Update feeds one pointer sample to the controller.
func (g *Game) Update() error {
	if !g.controller.Holding() {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyN):
			g.deal(0)
			return nil
		case inpututil.IsKeyJustPressed(ebiten.KeyR):
			g.deal(g.seed)
			return nil
		}
	}

	g.apply(pointerSample())
	return nil
}

func (g *Game) apply(sample engine.PointerSample) engine.Outcome {
	out := g.controller.Update(sample)
	if out.Action == engine.ActionNone || out.Action == engine.ActionDrag {
		return out
	}

	g.logger.Debug("pointer",
		zap.String("action", string(out.Action)),
		zap.Bool("success", out.Success),
		zap.Stringer("target", out.Target))

	if out.Action != engine.ActionPickUp {
		var held *engine.Card
		if hand := g.controller.Hand(); hand != nil {
			held = &hand.Card
		}
		if err := g.board.Check(held); err != nil {
			g.logger.Error("card conservation broken", zap.Error(err))
		}
	}

	g.status = fmt.Sprintf("seed %d | %s", g.seed, out.Action)
	if !out.Success {
		g.status += " (no change)"
	}
	return out
}

// Draw paints slots, then every container bottom to top, then the held
// card so it stays above everything else.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(feltColor)
	layout := g.board.Layout()

	x, y := layout.DeckSlot()
	g.drawSlot(screen, x, y)
	x, y = layout.WasteSlot()
	g.drawSlot(screen, x, y)
	for n := 1; n <= engine.FoundationCount; n++ {
		x, y := layout.FoundationSlot(n)
		g.drawSlot(screen, x, y)
	}
	for n := 1; n <= engine.LaneCount; n++ {
		x, y := layout.LaneSlot(n, 0)
		g.drawSlot(screen, x, y)
	}

	if n := len(g.board.Deck); n > 0 {
		g.drawCard(screen, g.board.Deck[n-1])
	}
	g.drawPile(screen, g.board.Waste)
	for _, stack := range g.board.Foundations {
		g.drawPile(screen, stack)
	}
	for _, lane := range g.board.Lanes {
		g.drawPile(screen, lane)
	}

	if hand := g.controller.Hand(); hand != nil {
		g.drawCard(screen, hand.Card)
	}

	footer := fmt.Sprintf("%s | deck %d | N: new deal  R: replay", g.status, len(g.board.Deck))
	ebitenutil.DebugPrintAt(screen, footer, 4, int(layout.Height())+2)
}

func (g *Game) drawSlot(screen *ebiten.Image, x, y float64) {
	layout := g.board.Layout()
	ebitenutil.DrawRect(screen, x, y, layout.CardWidth, layout.CardHeight, slotColor)
}

func (g *Game) drawPile(screen *ebiten.Image, pile []engine.Card) {
	for _, card := range pile {
		g.drawCard(screen, card)
	}
}

func (g *Game) drawCard(screen *ebiten.Image, card engine.Card) {
	var handle any
	if card.FaceUp {
		handle = card.Face
	} else if assets := g.board.Assets(); assets != nil {
		handle = assets.Back
	}
	img, ok := handle.(*ebiten.Image)
	if !ok {
		return
	}

	layout := g.board.Layout()
	bounds := img.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(layout.CardWidth/float64(bounds.Dx()), layout.CardHeight/float64(bounds.Dy()))
	op.GeoM.Translate(card.X, card.Y)
	screen.DrawImage(img, op)
}

// Layout returns the table size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	layout := g.board.Layout()
	return int(layout.Width()), int(layout.Height()) + footerHeight
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "desktop",
		Usage: "play solitaire in a window",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config-dir",
				Value:   "configs",
				Usage:   "directory containing layout configurations",
				Sources: cli.EnvVars("CONFIG_DIR"),
			},
			&cli.StringFlag{
				Name:    "layout",
				Usage:   "layout to play (config ID); the directory default when empty",
				Sources: cli.EnvVars("SOLITAIRE_LAYOUT"),
			},
			&cli.StringFlag{
				Name:    "assets",
				Usage:   "card image directory; overrides the layout's assets_dir",
				Sources: cli.EnvVars("SOLITAIRE_ASSETS"),
			},
			&cli.Uint64Flag{
				Name:  "seed",
				Usage: "shuffle seed (0 picks one)",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "log every pointer action",
				Sources: cli.EnvVars("DEBUG"),
			},
		},
		Action: run,
	}
}

func loadConfig(dir, layout string) (*engine.GameConfig, error) {
	manager, err := config.NewManager(dir)
	if err != nil {
		// no directory: play the built-in table
		if layout == "" {
			return engine.DefaultGameConfig(), nil
		}
		return nil, err
	}
	if layout == "" {
		return manager.GetDefault(), nil
	}
	return manager.LoadConfig(layout)
}

func run(ctx context.Context, cmd *cli.Command) error {
	var (
		logger *zap.Logger
		err    error
	)
	if cmd.Bool("debug") {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadConfig(cmd.String("config-dir"), cmd.String("layout"))
	if err != nil {
		return fmt.Errorf("load layout: %w", err)
	}

	dir := cmd.String("assets")
	if dir == "" {
		dir = cfg.AssetsDir
	}
	loader := newLoader(dir, cfg.Layout)

	assets, err := engine.LoadAssets(ctx, loader)
	if err != nil {
		logger.Fatal("failed to load card images", zap.String("source", describeLoader(loader)), zap.Error(err))
	}
	logger.Info("assets loaded", zap.String("source", describeLoader(loader)), zap.String("layout", cfg.Name))

	game := NewGame(cfg, assets, cmd.Uint64("seed"), logger)

	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	title := cfg.Title
	if title == "" {
		title = "Solitaire"
	}
	ebiten.SetWindowTitle(title)

	return ebiten.RunGame(game)
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: error loading .env file: %v\n", err)
	}

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
