package engine

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDealtBoard(t *testing.T, seed uint64) *Board {
	t.Helper()
	b := NewBoard(DefaultLayout(), WithRand(rand.New(rand.NewPCG(seed, seed+1))))
	b.InitializeDeck()
	b.InitializePlayfield()
	require.NoError(t, b.Check(nil))
	return b
}

func ids(pile []Card) []CardID {
	out := make([]CardID, len(pile))
	for i, c := range pile {
		out[i] = c.CardID
	}
	return out
}

func TestInitializeDeck(t *testing.T) {
	b := NewBoard(DefaultLayout(), WithRand(rand.New(rand.NewPCG(1, 2))))
	b.InitializeDeck()

	require.Len(t, b.Deck, DeckSize)
	assert.NoError(t, b.Check(nil))
	for _, c := range b.Deck {
		assert.False(t, c.FaceUp)
		assert.Equal(t, 500.0, c.X)
		assert.Equal(t, 20.0, c.Y)
	}

	other := NewBoard(DefaultLayout(), WithRand(rand.New(rand.NewPCG(1, 2))))
	other.InitializeDeck()
	assert.Equal(t, ids(b.Deck), ids(other.Deck), "same seed deals the same deck")

	shuffled := NewBoard(DefaultLayout(), WithRand(rand.New(rand.NewPCG(3, 4))))
	shuffled.InitializeDeck()
	assert.NotEqual(t, ids(b.Deck), ids(shuffled.Deck))
}

func TestInitializePlayfieldDealShape(t *testing.T) {
	b := NewBoard(DefaultLayout(), WithRand(rand.New(rand.NewPCG(7, 7))))
	b.InitializeDeck()
	before := ids(b.Deck)
	b.InitializePlayfield()

	assert.Len(t, b.Deck, DeckSize-DealtCards)
	assert.Equal(t, before[:DeckSize-DealtCards], ids(b.Deck), "deal pops from the top")
	assert.Empty(t, b.Waste)

	for i, lane := range b.Lanes {
		require.Len(t, lane, i+1, "lane %d", i+1)
		for depth, c := range lane {
			assert.Equal(t, depth == i, c.FaceUp, "lane %d depth %d", i+1, depth)
			x, y := b.Layout().LaneSlot(i+1, depth)
			assert.Equal(t, x, c.X)
			assert.Equal(t, y, c.Y)
		}
	}
	for _, stack := range b.Foundations {
		assert.Empty(t, stack)
	}
	assert.NoError(t, b.Check(nil))
}

func TestInitializePlayfieldShortDeckPanics(t *testing.T) {
	b := NewBoard(DefaultLayout())
	b.Deck = make([]Card, DealtCards-1)
	assert.Panics(t, b.InitializePlayfield)
}

func TestDrawRecycleCycle(t *testing.T) {
	b := newDealtBoard(t, 11)
	deckBefore := ids(b.Deck)

	for range DeckSize - DealtCards {
		require.True(t, b.DrawCard())
	}
	assert.Empty(t, b.Deck)
	require.Len(t, b.Waste, DeckSize-DealtCards)

	reversed := slices.Clone(deckBefore)
	slices.Reverse(reversed)
	assert.Equal(t, reversed, ids(b.Waste), "top of deck lands at the bottom of the waste")
	for _, c := range b.Waste {
		assert.True(t, c.FaceUp)
		assert.True(t, c.Drawn)
		assert.Equal(t, 420.0, c.X)
	}

	assert.False(t, b.DrawCard(), "drawing from an empty deck is a no-op")
	assert.Len(t, b.Waste, DeckSize-DealtCards)

	wasteBefore := ids(b.Waste)
	require.True(t, b.RecycleWaste())
	assert.Empty(t, b.Waste)
	assert.Equal(t, wasteBefore, ids(b.Deck))
	for _, c := range b.Deck {
		assert.False(t, c.FaceUp)
		assert.False(t, c.Drawn)
		assert.Equal(t, 500.0, c.X)
	}

	assert.False(t, b.RecycleWaste(), "recycling a non-empty deck is a no-op")
	assert.Equal(t, wasteBefore, ids(b.Deck))
	assert.NoError(t, b.Check(nil))
}

func TestRecycleWasteGuard(t *testing.T) {
	b := newDealtBoard(t, 5)
	require.True(t, b.DrawCard())

	deck, waste := ids(b.Deck), ids(b.Waste)
	assert.False(t, b.RecycleWaste())
	assert.Equal(t, deck, ids(b.Deck))
	assert.Equal(t, waste, ids(b.Waste))
}

func TestPlaceOnLane(t *testing.T) {
	tests := []struct {
		name string
		top  *Card
		card Card
		want bool
	}{
		{"empty lane takes anything", nil, faceUp(Three, Clubs), true},
		{"five of hearts on six of spades", ptr(faceUp(Six, Spades)), faceUp(Five, Hearts), true},
		{"five of hearts on six of diamonds", ptr(faceUp(Six, Diamonds)), faceUp(Five, Hearts), false},
		{"five of hearts on seven of spades", ptr(faceUp(Seven, Spades)), faceUp(Five, Hearts), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard(DefaultLayout())
			if tt.top != nil {
				top := *tt.top
				top.MoveTo(b.Layout().LaneSlot(3, 0))
				b.Lanes[2] = []Card{top}
			}
			putOnWaste(b, tt.card)

			card, ok := b.TakeTop(WasteZone())
			require.True(t, ok)

			got := b.PlaceOnLane(card, 3, WasteZone())
			assert.Equal(t, tt.want, got)

			if tt.want {
				assert.Empty(t, b.Waste)
				placed, _ := b.Top(LaneZone(3))
				assert.Equal(t, tt.card.CardID, placed.CardID)
				x, y := b.Layout().LaneSlot(3, len(b.Lanes[2])-1)
				assert.Equal(t, x, placed.X)
				assert.Equal(t, y, placed.Y)
				assert.True(t, placed.FaceUp)
			} else {
				require.Len(t, b.Waste, 1)
				back := b.Waste[0]
				assert.Equal(t, tt.card.CardID, back.CardID)
				x, y := b.Layout().WasteSlot()
				assert.Equal(t, x, back.X, "rejected card keeps its waste position")
				assert.Equal(t, y, back.Y)
				assert.Len(t, b.Lanes[2], 1)
			}
		})
	}
}

func TestPlaceOnFoundation(t *testing.T) {
	b := NewBoard(DefaultLayout())

	putOnWaste(b, faceUp(Ace, Clubs))
	card, _ := b.TakeTop(WasteZone())
	require.True(t, b.PlaceOnFoundation(card, 2, WasteZone()))

	putOnWaste(b, faceUp(Two, Clubs))
	card, _ = b.TakeTop(WasteZone())
	require.True(t, b.PlaceOnFoundation(card, 2, WasteZone()))

	top, _ := b.Top(FoundationZone(2))
	x, y := b.Layout().FoundationSlot(2)
	assert.Equal(t, Two, top.Rank)
	assert.Equal(t, x, top.X, "foundation cards sit exactly on each other")
	assert.Equal(t, y, top.Y)

	putOnWaste(b, faceUp(Three, Diamonds))
	card, _ = b.TakeTop(WasteZone())
	assert.False(t, b.PlaceOnFoundation(card, 2, WasteZone()))
	assert.Len(t, b.Waste, 1)
	assert.Len(t, b.Foundations[1], 2)

	// first card defines the suit, aces are not required
	card, _ = b.TakeTop(WasteZone())
	assert.True(t, b.PlaceOnFoundation(card, 4, WasteZone()))
}

func TestPlaceOutOfRangeReturnsCard(t *testing.T) {
	b := NewBoard(DefaultLayout())
	putOnWaste(b, faceUp(Ace, Hearts))
	card, _ := b.TakeTop(WasteZone())

	assert.False(t, b.PlaceOnLane(card, 8, WasteZone()))
	assert.Len(t, b.Waste, 1)

	card, _ = b.TakeTop(WasteZone())
	assert.False(t, b.PlaceOnFoundation(card, 0, WasteZone()))
	assert.Len(t, b.Waste, 1)
}

func TestRejectedLaneCardReturnsOverHiddenCard(t *testing.T) {
	l := DefaultLayout()
	b := NewBoard(l)

	hidden := NewCard(Nine, Spades)
	hidden.MoveTo(l.LaneSlot(2, 0))
	king := faceUp(King, Hearts)
	king.MoveTo(l.LaneSlot(2, 1))
	b.Lanes[1] = []Card{hidden, king}
	b.Lanes[0] = []Card{faceUp(Two, Clubs)}

	card, ok := b.TakeTop(LaneZone(2))
	require.True(t, ok)
	assert.False(t, b.PlaceOnLane(card, 1, LaneZone(2)))

	require.Len(t, b.Lanes[1], 2)
	back := b.Lanes[1][1]
	assert.Equal(t, king.CardID, back.CardID)
	assert.Equal(t, king.X, back.X)
	assert.Equal(t, king.Y, back.Y)
	assert.False(t, b.Lanes[1][0].FaceUp, "rejection does not reveal the card beneath")
}

func TestReturnToOrigin(t *testing.T) {
	b := NewBoard(DefaultLayout())

	b.ReturnToOrigin(faceUp(Four, Hearts), DeckZone())
	require.Len(t, b.Deck, 1)
	assert.False(t, b.Deck[0].FaceUp)

	b.ReturnToOrigin(faceUp(Five, Hearts), FoundationZone(3))
	require.Len(t, b.Foundations[2], 1)

	b.ReturnToOrigin(faceUp(Six, Hearts), LaneZone(7))
	require.Len(t, b.Lanes[6], 1)
	x, y := b.Layout().LaneSlot(7, 0)
	assert.Equal(t, x, b.Lanes[6][0].X)
	assert.Equal(t, y, b.Lanes[6][0].Y)

	assert.Panics(t, func() { b.ReturnToOrigin(faceUp(Ace, Hearts), NoZone) })
	assert.Panics(t, func() { b.ReturnToOrigin(faceUp(Ace, Hearts), LaneZone(9)) })
}

func TestTakeTop(t *testing.T) {
	b := newDealtBoard(t, 3)

	_, ok := b.TakeTop(DeckZone())
	assert.False(t, ok, "deck cards leave only by drawing")
	_, ok = b.TakeTop(WasteZone())
	assert.False(t, ok)
	_, ok = b.TakeTop(FoundationZone(1))
	assert.False(t, ok)
	_, ok = b.TakeTop(NoZone)
	assert.False(t, ok)

	top := b.Lanes[3][3]
	card, ok := b.TakeTop(LaneZone(4))
	require.True(t, ok)
	assert.Equal(t, top.CardID, card.CardID)
	assert.Len(t, b.Lanes[3], 3)

	_, ok = b.TakeTop(LaneZone(4))
	assert.False(t, ok, "face-down tops cannot be lifted")

	assert.True(t, b.RevealLaneTop(4))
	assert.False(t, b.RevealLaneTop(4))
	assert.NoError(t, b.Check(&card))
}

func TestCheckReportsEveryViolation(t *testing.T) {
	b := newDealtBoard(t, 9)

	dup := b.Lanes[6][6]
	b.Lanes[6][6].FaceUp = false
	b.Waste = append(b.Waste, dup)
	b.Deck = b.Deck[1:]

	err := b.Check(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "present 2 times")
	assert.Contains(t, err.Error(), "missing")
	assert.Contains(t, err.Error(), "lane 7 top")
}

// Conservation holds across a long random sequence of lifts, placements,
// draws and recycles.
func TestConservationUnderRandomPlay(t *testing.T) {
	b := newDealtBoard(t, 42)
	rng := rand.New(rand.NewPCG(42, 43))

	sources := []Zone{WasteZone()}
	for n := 1; n <= LaneCount; n++ {
		sources = append(sources, LaneZone(n))
	}
	for n := 1; n <= FoundationCount; n++ {
		sources = append(sources, FoundationZone(n))
	}

	for i := range 5000 {
		switch rng.IntN(4) {
		case 0:
			b.DrawCard()
		case 1:
			b.RecycleWaste()
		default:
			from := sources[rng.IntN(len(sources))]
			card, ok := b.TakeTop(from)
			if !ok {
				continue
			}
			require.Equal(t, DeckSize-1, b.Count(), "step %d while held", i)

			var placed bool
			if rng.IntN(2) == 0 {
				placed = b.PlaceOnLane(card, 1+rng.IntN(LaneCount), from)
			} else {
				placed = b.PlaceOnFoundation(card, 1+rng.IntN(FoundationCount), from)
			}
			if placed && from.Kind == ZoneLane {
				b.RevealLaneTop(from.Index)
			}
		}
		require.NoError(t, b.Check(nil), "step %d", i)
		require.Equal(t, DeckSize, b.Count())
	}
}

func ptr(c Card) *Card { return &c }

// putOnWaste puts card face-up on the waste as if it had been drawn.
func putOnWaste(b *Board, card Card) {
	card.FaceUp = true
	card.Drawn = true
	card.MoveTo(b.layout.WasteSlot())
	b.Waste = append(b.Waste, card)
}
