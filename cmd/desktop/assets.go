package main

import (
	"context"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/wricardo/solitaire/game/engine"
)

const backFile = "card_back.png"

var (
	redFace   = color.RGBA{150, 20, 30, 255}
	blackFace = color.RGBA{35, 35, 40, 255}
	backColor = color.RGBA{20, 50, 120, 255}
	slotColor = color.RGBA{0, 80, 30, 255}
	feltColor = color.RGBA{0, 110, 45, 255}
)

// faceFile is the PNG holding a card face: "<rank>_of_<suit>.png".
func faceFile(rank engine.Rank, suit engine.Suit) string {
	return engine.CardID{Rank: rank, Suit: suit}.String() + ".png"
}

// fileLoader reads card images from a directory.
type fileLoader struct {
	dir string
}

func (l fileLoader) load(ctx context.Context, name string) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, _, err := ebitenutil.NewImageFromFile(filepath.Join(l.dir, name))
	if err != nil {
		return nil, err
	}
	return img, nil
}

func (l fileLoader) LoadFace(ctx context.Context, rank engine.Rank, suit engine.Suit) (any, error) {
	return l.load(ctx, faceFile(rank, suit))
}

func (l fileLoader) LoadBack(ctx context.Context) (any, error) {
	return l.load(ctx, backFile)
}

// drawnLoader renders plain faces for tables without an image set.
type drawnLoader struct {
	width, height int
}

func (l drawnLoader) LoadFace(ctx context.Context, rank engine.Rank, suit engine.Suit) (any, error) {
	fill := blackFace
	if suit.Color() == engine.Red {
		fill = redFace
	}
	img := ebiten.NewImage(l.width, l.height)
	img.Fill(fill)
	ebitenutil.DebugPrintAt(img, cardLabel(rank, suit), 4, 2)
	return img, nil
}

func (l drawnLoader) LoadBack(ctx context.Context) (any, error) {
	img := ebiten.NewImage(l.width, l.height)
	img.Fill(backColor)
	return img, nil
}

// cardLabel is the short corner label, e.g. "10H" or "QS".
func cardLabel(rank engine.Rank, suit engine.Suit) string {
	name := rank.String()
	switch rank {
	case engine.Ace, engine.Jack, engine.Queen, engine.King:
		name = strings.ToUpper(name[:1])
	}
	return name + strings.ToUpper(suit.String()[:1])
}

// newLoader picks the image directory when it holds a card back and the
// drawn faces otherwise.
func newLoader(dir string, layout engine.Layout) engine.AssetLoader {
	if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, backFile)); err == nil {
			return fileLoader{dir: dir}
		}
	}
	return drawnLoader{width: int(layout.CardWidth), height: int(layout.CardHeight)}
}

func describeLoader(l engine.AssetLoader) string {
	switch l := l.(type) {
	case fileLoader:
		return fmt.Sprintf("images from %s", l.dir)
	default:
		return "drawn faces"
	}
}
