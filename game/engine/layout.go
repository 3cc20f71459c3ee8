package engine

// Span is a half-open interval [Start, End) of screen coordinates.
type Span struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Contains reports whether v lies in [Start, End).
func (s Span) Contains(v float64) bool {
	return v >= s.Start && v < s.End
}

// Layout is the fixed table geometry shared by hit testing and card
// placement. Both must read the same values or stacked cards drift away
// from the regions that accept them.
type Layout struct {
	CardWidth  float64 `json:"card_width" yaml:"card_width"`
	CardHeight float64 `json:"card_height" yaml:"card_height"`
	Padding    float64 `json:"padding" yaml:"padding"`
	// CascadeSlots is how many padding steps the playfield band reaches
	// below the first card of a lane.
	CascadeSlots int `json:"cascade_slots" yaml:"cascade_slots"`
}

// Default layout values.
const (
	DefaultCardWidth    = 60
	DefaultCardHeight   = 80
	DefaultPadding      = 20
	DefaultCascadeSlots = 12
)

// DefaultLayout returns the standard 60x80 card table.
func DefaultLayout() Layout {
	return Layout{
		CardWidth:    DefaultCardWidth,
		CardHeight:   DefaultCardHeight,
		Padding:      DefaultPadding,
		CascadeSlots: DefaultCascadeSlots,
	}
}

// columnEdge is the right edge of column n, or the left edge of column n+1.
func (l Layout) columnEdge(n int) float64 {
	return (l.CardWidth+l.Padding)*float64(n) + l.Padding
}

// Column returns the horizontal band of column n (1..7).
func (l Layout) Column(n int) Span {
	return Span{Start: l.columnEdge(n - 1), End: l.columnEdge(n)}
}

// TopRow returns the vertical band holding foundations, waste and deck.
func (l Layout) TopRow() Span {
	return Span{Start: l.Padding, End: l.Padding + l.CardHeight}
}

// Playfield returns the vertical band holding the tableau lanes.
func (l Layout) Playfield() Span {
	start := l.Padding*2 + l.CardHeight
	return Span{Start: start, End: start + l.Padding*float64(l.CascadeSlots) + l.CardHeight}
}

// Width is the table width including the trailing padding.
func (l Layout) Width() float64 {
	return l.columnEdge(LaneCount)
}

// Height is the table height including the trailing padding.
func (l Layout) Height() float64 {
	return l.Playfield().End + l.Padding
}

// ResolveZone maps a screen coordinate to the zone under it. Columns 1-4
// hold foundations in the top row; column 5 has nothing there; column 6
// holds the waste and column 7 the deck. Every column holds its lane in
// the playfield band.
func (l Layout) ResolveZone(x, y float64) Zone {
	top, field := l.TopRow(), l.Playfield()

	for n := 1; n <= LaneCount; n++ {
		if !l.Column(n).Contains(x) {
			continue
		}

		switch {
		case field.Contains(y):
			return LaneZone(n)
		case !top.Contains(y):
			return NoZone
		case n <= FoundationCount:
			return FoundationZone(n)
		case n == 6:
			return WasteZone()
		case n == 7:
			return DeckZone()
		default:
			return NoZone
		}
	}

	return NoZone
}

// DeckSlot is where deck cards rest.
func (l Layout) DeckSlot() (float64, float64) {
	return l.Column(7).Start, l.TopRow().Start
}

// WasteSlot is where drawn cards rest.
func (l Layout) WasteSlot() (float64, float64) {
	return l.Column(6).Start, l.TopRow().Start
}

// FoundationSlot is where cards of foundation n rest.
func (l Layout) FoundationSlot(n int) (float64, float64) {
	return l.Column(n).Start, l.TopRow().Start
}

// LaneSlot is the position of the card at depth (0-based) in lane n.
func (l Layout) LaneSlot(n, depth int) (float64, float64) {
	return l.Column(n).Start, l.Playfield().Start + float64(depth)*l.Padding
}

// CardOffset returns the pointer position relative to the card's top-left
// corner, and false if the card's box does not contain the pointer.
func (l Layout) CardOffset(card Card, x, y float64) (float64, float64, bool) {
	box := Span{Start: card.X, End: card.X + l.CardWidth}
	rows := Span{Start: card.Y, End: card.Y + l.CardHeight}
	if !box.Contains(x) || !rows.Contains(y) {
		return 0, 0, false
	}
	return x - card.X, y - card.Y, true
}
