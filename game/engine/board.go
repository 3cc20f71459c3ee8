package engine

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/multierr"
)

// Board owns every card container and applies the move rules. It knows
// nothing about pointers or rendering. Lanes and foundations are indexed
// 1-based in its API and stored 0-based.
type Board struct {
	Deck        []Card
	Waste       []Card
	Lanes       [LaneCount][]Card
	Foundations [FoundationCount][]Card

	layout Layout
	assets *Assets
	rng    *rand.Rand
}

// Option configures a Board.
type Option func(*Board)

// WithRand makes InitializeDeck shuffle with r, for reproducible deals.
func WithRand(r *rand.Rand) Option {
	return func(b *Board) {
		b.rng = r
	}
}

// WithAssets attaches loaded visual handles to the cards InitializeDeck builds.
func WithAssets(a *Assets) Option {
	return func(b *Board) {
		b.assets = a
	}
}

// NewBoard returns a board with every container empty.
func NewBoard(layout Layout, opts ...Option) *Board {
	b := &Board{layout: layout}
	for _, opt := range opts {
		opt(b)
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return b
}

// Layout returns the geometry the board positions cards with.
func (b *Board) Layout() Layout {
	return b.layout
}

// Assets returns the visual handles attached to this board, or nil.
func (b *Board) Assets() *Assets {
	return b.assets
}

// InitializeDeck replaces the deck with a uniformly shuffled set of all 52
// cards, face-down in the deck slot. Other containers are untouched.
func (b *Board) InitializeDeck() {
	x, y := b.layout.DeckSlot()

	deck := make([]Card, 0, DeckSize)
	for _, rank := range Ranks {
		for _, suit := range Suits {
			card := NewCard(rank, suit)
			card.MoveTo(x, y)
			card.Face = b.assets.Face(card.CardID)
			deck = append(deck, card)
		}
	}

	b.rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	b.Deck = deck
}

// InitializePlayfield deals i+1 cards from the top of the deck into lane i
// (0-based), cascading each card one padding below the previous one. Only
// the last card of each lane is turned face-up. It panics if the deck holds
// fewer than DealtCards cards.
func (b *Board) InitializePlayfield() {
	if len(b.Deck) < DealtCards {
		panic(fmt.Sprintf("engine: cannot deal playfield from %d cards, need %d", len(b.Deck), DealtCards))
	}

	for i := range b.Lanes {
		for depth := 0; depth <= i; depth++ {
			card := b.pop(&b.Deck)
			card.MoveTo(b.layout.LaneSlot(i+1, depth))
			if depth == i {
				card.FaceUp = true
			}
			b.Lanes[i] = append(b.Lanes[i], card)
		}
	}
}

// DrawCard turns the top deck card face-up onto the waste. It reports
// false, changing nothing, when the deck is empty.
func (b *Board) DrawCard() bool {
	if len(b.Deck) == 0 {
		return false
	}

	card := b.pop(&b.Deck)
	card.FaceUp = true
	card.Drawn = true
	card.MoveTo(b.layout.WasteSlot())
	b.Waste = append(b.Waste, card)
	return true
}

// RecycleWaste moves the whole waste back into the empty deck, keeping the
// waste order and resetting every card face-down. It reports false,
// changing nothing, while the deck still holds cards or the waste is empty.
func (b *Board) RecycleWaste() bool {
	if len(b.Deck) != 0 || len(b.Waste) == 0 {
		return false
	}

	x, y := b.layout.DeckSlot()
	b.Deck = append(b.Deck, b.Waste...)
	b.Waste = nil

	for i := range b.Deck {
		b.Deck[i].FaceUp = false
		b.Deck[i].Drawn = false
		b.Deck[i].MoveTo(x, y)
	}
	return true
}

// PlaceOnLane puts card on top of lane n. An empty lane accepts any card;
// otherwise the card must be the opposite color and one rank below the
// lane's top. A rejected card is returned to origin and false is reported.
func (b *Board) PlaceOnLane(card Card, n int, origin Zone) bool {
	if n < 1 || n > LaneCount {
		b.ReturnToOrigin(card, origin)
		return false
	}

	lane := &b.Lanes[n-1]
	if top, ok := last(*lane); ok {
		if !card.StacksOnLane(top) {
			b.ReturnToOrigin(card, origin)
			return false
		}
		card.MoveTo(top.X, top.Y+b.layout.Padding)
	} else {
		card.MoveTo(b.layout.LaneSlot(n, 0))
	}

	card.FaceUp = true
	card.Drawn = false
	*lane = append(*lane, card)
	return true
}

// PlaceOnFoundation puts card on top of foundation n. An empty foundation
// accepts any card and the first card defines its suit; otherwise the card
// must share the top's suit and be one rank above it. A rejected card is
// returned to origin and false is reported.
func (b *Board) PlaceOnFoundation(card Card, n int, origin Zone) bool {
	if n < 1 || n > FoundationCount {
		b.ReturnToOrigin(card, origin)
		return false
	}

	stack := &b.Foundations[n-1]
	if top, ok := last(*stack); ok {
		if !card.StacksOnFoundation(top) {
			b.ReturnToOrigin(card, origin)
			return false
		}
		card.MoveTo(top.X, top.Y)
	} else {
		card.MoveTo(b.layout.FoundationSlot(n))
	}

	card.FaceUp = true
	card.Drawn = false
	*stack = append(*stack, card)
	return true
}

// ReturnToOrigin puts card back on top of the zone it was lifted from, at
// the position it had there. No rule is checked: the card was there
// before. A deck origin puts the card back face-down on the deck. It
// panics on a None or malformed origin, which no pick-up produces.
func (b *Board) ReturnToOrigin(card Card, origin Zone) {
	if !origin.Valid() || origin.IsNone() {
		panic(fmt.Sprintf("engine: cannot return %s to origin %s", card.CardID, origin))
	}

	switch origin.Kind {
	case ZoneLane:
		lane := &b.Lanes[origin.Index-1]
		if top, ok := last(*lane); ok {
			card.MoveTo(top.X, top.Y+b.layout.Padding)
		} else {
			card.MoveTo(b.layout.LaneSlot(origin.Index, 0))
		}
		*lane = append(*lane, card)

	case ZoneFoundation:
		stack := &b.Foundations[origin.Index-1]
		card.MoveTo(b.layout.FoundationSlot(origin.Index))
		*stack = append(*stack, card)

	case ZoneWaste:
		card.MoveTo(b.layout.WasteSlot())
		card.FaceUp = true
		card.Drawn = true
		b.Waste = append(b.Waste, card)

	case ZoneDeck:
		card.MoveTo(b.layout.DeckSlot())
		card.FaceUp = false
		card.Drawn = false
		b.Deck = append(b.Deck, card)
	}
}

// TakeTop removes and returns the top card of the waste, a lane or a
// foundation. Deck cards only leave through DrawCard, so the deck and
// None report false, as does an empty container or a face-down top.
func (b *Board) TakeTop(z Zone) (Card, bool) {
	pile := b.pile(z)
	if pile == nil || z.Kind == ZoneDeck {
		return Card{}, false
	}
	top, ok := last(*pile)
	if !ok || !top.FaceUp {
		return Card{}, false
	}
	return b.pop(pile), true
}

// Top returns the top card of z without removing it.
func (b *Board) Top(z Zone) (Card, bool) {
	pile := b.pile(z)
	if pile == nil {
		return Card{}, false
	}
	return last(*pile)
}

// Len returns the number of cards in z.
func (b *Board) Len(z Zone) int {
	pile := b.pile(z)
	if pile == nil {
		return 0
	}
	return len(*pile)
}

// RevealLaneTop turns a face-down top card of lane n face-up and reports
// whether it did.
func (b *Board) RevealLaneTop(n int) bool {
	if n < 1 || n > LaneCount {
		return false
	}
	lane := b.Lanes[n-1]
	if len(lane) == 0 || lane[len(lane)-1].FaceUp {
		return false
	}
	lane[len(lane)-1].FaceUp = true
	return true
}

// Count returns the number of cards on the board, excluding any held card.
func (b *Board) Count() int {
	n := len(b.Deck) + len(b.Waste)
	for _, lane := range b.Lanes {
		n += len(lane)
	}
	for _, stack := range b.Foundations {
		n += len(stack)
	}
	return n
}

// Check verifies that the board plus the optional held card hold each of
// the 52 cards exactly once and that every non-empty lane and foundation
// shows its top card. All violations are reported together.
func (b *Board) Check(held *Card) error {
	seen := make(map[CardID]int, DeckSize)
	count := func(pile []Card) {
		for _, c := range pile {
			seen[c.CardID]++
		}
	}

	count(b.Deck)
	count(b.Waste)
	for _, lane := range b.Lanes {
		count(lane)
	}
	for _, stack := range b.Foundations {
		count(stack)
	}
	if held != nil {
		seen[held.CardID]++
	}

	var err error
	for _, rank := range Ranks {
		for _, suit := range Suits {
			id := CardID{Rank: rank, Suit: suit}
			switch n := seen[id]; {
			case n == 0:
				err = multierr.Append(err, fmt.Errorf("card %s missing", id))
			case n > 1:
				err = multierr.Append(err, fmt.Errorf("card %s present %d times", id, n))
			}
			delete(seen, id)
		}
	}
	for id := range seen {
		err = multierr.Append(err, fmt.Errorf("unknown card %s", id))
	}

	for i, lane := range b.Lanes {
		if top, ok := last(lane); ok && !top.FaceUp {
			err = multierr.Append(err, fmt.Errorf("lane %d top %s is face-down", i+1, top.CardID))
		}
	}
	for i, stack := range b.Foundations {
		if top, ok := last(stack); ok && !top.FaceUp {
			err = multierr.Append(err, fmt.Errorf("foundation %d top %s is face-down", i+1, top.CardID))
		}
	}

	return err
}

func (b *Board) pile(z Zone) *[]Card {
	if !z.Valid() {
		return nil
	}
	switch z.Kind {
	case ZoneDeck:
		return &b.Deck
	case ZoneWaste:
		return &b.Waste
	case ZoneLane:
		return &b.Lanes[z.Index-1]
	case ZoneFoundation:
		return &b.Foundations[z.Index-1]
	default:
		return nil
	}
}

func (b *Board) pop(pile *[]Card) Card {
	s := *pile
	card := s[len(s)-1]
	*pile = s[:len(s)-1]
	return card
}

func last(pile []Card) (Card, bool) {
	if len(pile) == 0 {
		return Card{}, false
	}
	return pile[len(pile)-1], true
}
