package engine

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLoader struct {
	calls  atomic.Int32
	failOn CardID
}

func (f *fakeLoader) LoadFace(ctx context.Context, rank Rank, suit Suit) (any, error) {
	f.calls.Add(1)
	id := CardID{Rank: rank, Suit: suit}
	if id == f.failOn {
		return nil, errors.New("texture not found")
	}
	return id.String() + ".png", nil
}

func (f *fakeLoader) LoadBack(ctx context.Context) (any, error) {
	f.calls.Add(1)
	return "card_back.png", nil
}

func TestLoadAssets(t *testing.T) {
	loader := &fakeLoader{}

	assets, err := LoadAssets(context.Background(), loader)
	require.NoError(t, err)
	assert.Equal(t, int32(DeckSize+1), loader.calls.Load())
	assert.Len(t, assets.Faces, DeckSize)
	assert.Equal(t, "card_back.png", assets.Back)
	assert.Equal(t, "queen_of_spades.png", assets.Face(CardID{Rank: Queen, Suit: Spades}))

	b := NewBoard(DefaultLayout(), WithAssets(assets))
	b.InitializeDeck()
	for _, c := range b.Deck {
		assert.Equal(t, c.CardID.String()+".png", c.Face)
	}
}

func TestLoadAssetsFailure(t *testing.T) {
	loader := &fakeLoader{failOn: CardID{Rank: Seven, Suit: Hearts}}

	assets, err := LoadAssets(context.Background(), loader)
	require.Error(t, err)
	assert.Nil(t, assets)
	assert.Contains(t, err.Error(), "7_of_hearts")
}

func TestNilAssets(t *testing.T) {
	var a *Assets
	assert.Nil(t, a.Face(CardID{Rank: Ace, Suit: Clubs}))
}
