package engine

// CardView is the renderer-facing form of a card. Face-down cards hide
// their identity.
type CardView struct {
	Rank   string  `json:"rank,omitempty"`
	Suit   string  `json:"suit,omitempty"`
	Color  string  `json:"color,omitempty"`
	FaceUp bool    `json:"face_up"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

// HandView is the held card and where it came from.
type HandView struct {
	Card   CardView `json:"card"`
	Origin Zone     `json:"origin"`
}

// BoardState is a point-in-time snapshot of a board for transports.
type BoardState struct {
	DeckCount   int                         `json:"deck_count"`
	Waste       []CardView                  `json:"waste"`
	Lanes       [LaneCount][]CardView       `json:"lanes"`
	Foundations [FoundationCount][]CardView `json:"foundations"`
	Held        *HandView                   `json:"held,omitempty"`
	Layout      Layout                      `json:"layout"`
	TotalCards  int                         `json:"total_cards"`
}

// View converts a card to its renderer-facing form.
func (c Card) View() CardView {
	v := CardView{FaceUp: c.FaceUp, X: c.X, Y: c.Y}
	if c.FaceUp {
		v.Rank = c.Rank.String()
		v.Suit = c.Suit.String()
		v.Color = c.Color().String()
	}
	return v
}

func views(pile []Card) []CardView {
	out := make([]CardView, len(pile))
	for i, c := range pile {
		out[i] = c.View()
	}
	return out
}

// Snapshot captures the board and the optional hand.
func (b *Board) Snapshot(hand *Hand) *BoardState {
	state := &BoardState{
		DeckCount:  len(b.Deck),
		Waste:      views(b.Waste),
		Layout:     b.layout,
		TotalCards: b.Count(),
	}
	for i, lane := range b.Lanes {
		state.Lanes[i] = views(lane)
	}
	for i, stack := range b.Foundations {
		state.Foundations[i] = views(stack)
	}
	if hand != nil {
		state.Held = &HandView{Card: hand.Card.View(), Origin: hand.Origin}
		state.TotalCards++
	}
	return state
}
