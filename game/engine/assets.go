package engine

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"
)

// AssetLoader loads the visual handles the renderer draws cards with. The
// engine never inspects a handle.
type AssetLoader interface {
	LoadFace(ctx context.Context, rank Rank, suit Suit) (any, error)
	LoadBack(ctx context.Context) (any, error)
}

// Assets holds one face handle per card plus the shared card back.
type Assets struct {
	Faces map[CardID]any
	Back  any
}

// Face returns the handle for id, or nil when a is nil or lacks it.
func (a *Assets) Face(id CardID) any {
	if a == nil {
		return nil
	}
	return a.Faces[id]
}

// LoadAssets issues one load per card face plus one for the back
// concurrently and waits for all of them. The first failure cancels the
// remaining loads and is returned.
func LoadAssets(ctx context.Context, loader AssetLoader) (*Assets, error) {
	g, ctx := errgroup.WithContext(ctx)

	assets := &Assets{Faces: make(map[CardID]any, DeckSize)}
	var mu sync.Mutex

	for _, rank := range Ranks {
		for _, suit := range Suits {
			g.Go(func() error {
				face, err := loader.LoadFace(ctx, rank, suit)
				if err != nil {
					return fmt.Errorf("load %s_of_%s: %w", rank, suit, err)
				}
				mu.Lock()
				assets.Faces[CardID{Rank: rank, Suit: suit}] = face
				mu.Unlock()
				return nil
			})
		}
	}

	g.Go(func() error {
		back, err := loader.LoadBack(ctx)
		if err != nil {
			return fmt.Errorf("load card back: %w", err)
		}
		assets.Back = back
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}
