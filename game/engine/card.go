package engine

import (
	"fmt"
	"strings"
)

// Rank is a card rank. Ace is the lowest rank and King the highest.
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Suit is one of the four French suits.
type Suit int

const (
	Clubs Suit = iota + 1
	Diamonds
	Hearts
	Spades
)

// Color groups suits for tableau stacking.
type Color int

const (
	Black Color = iota + 1
	Red
)

const (
	// DeckSize is the number of cards in play at all times.
	DeckSize = 52
	// LaneCount is the number of tableau lanes.
	LaneCount = 7
	// FoundationCount is the number of foundation stacks.
	FoundationCount = 4
	// DealtCards is the number of cards InitializePlayfield deals into lanes.
	DealtCards = LaneCount * (LaneCount + 1) / 2
)

// Ranks lists every rank in ascending order.
var Ranks = [13]Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Suits lists every suit.
var Suits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

var rankNames = map[Rank]string{
	Ace: "ace", Two: "2", Three: "3", Four: "4", Five: "5", Six: "6", Seven: "7",
	Eight: "8", Nine: "9", Ten: "10", Jack: "jack", Queen: "queen", King: "king",
}

var suitNames = map[Suit]string{
	Clubs: "clubs", Diamonds: "diamonds", Hearts: "hearts", Spades: "spades",
}

// String returns the asset-style name of the rank ("ace", "2", ..., "king").
func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rank(%d)", int(r))
}

// Valid reports whether r is one of the 13 ranks.
func (r Rank) Valid() bool {
	return r >= Ace && r <= King
}

// Next returns the rank one above r. King has no successor.
func (r Rank) Next() (Rank, bool) {
	if !r.Valid() || r == King {
		return 0, false
	}
	return r + 1, true
}

// Prev returns the rank one below r. Ace has no predecessor.
func (r Rank) Prev() (Rank, bool) {
	if !r.Valid() || r == Ace {
		return 0, false
	}
	return r - 1, true
}

// String returns the lowercase suit name.
func (s Suit) String() string {
	if name, ok := suitNames[s]; ok {
		return name
	}
	return fmt.Sprintf("suit(%d)", int(s))
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

// Color returns Black for clubs and spades, Red for diamonds and hearts.
func (s Suit) Color() Color {
	switch s {
	case Clubs, Spades:
		return Black
	case Diamonds, Hearts:
		return Red
	default:
		return 0
	}
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case Red:
		return "red"
	default:
		return "none"
	}
}

// ParseRank accepts the names produced by Rank.String.
func ParseRank(s string) (Rank, error) {
	for r, name := range rankNames {
		if name == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

// ParseSuit accepts the names produced by Suit.String.
func ParseSuit(s string) (Suit, error) {
	for suit, name := range suitNames {
		if name == s {
			return suit, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", s)
}

// CardID is the immutable identity of a card.
type CardID struct {
	Rank Rank
	Suit Suit
}

func (id CardID) String() string {
	return id.Rank.String() + "_of_" + id.Suit.String()
}

// ParseCardID accepts the names produced by CardID.String, such as
// "queen_of_hearts".
func ParseCardID(s string) (CardID, error) {
	rank, suit, ok := strings.Cut(s, "_of_")
	if !ok {
		return CardID{}, fmt.Errorf("card %q is not <rank>_of_<suit>", s)
	}
	r, err := ParseRank(rank)
	if err != nil {
		return CardID{}, err
	}
	su, err := ParseSuit(suit)
	if err != nil {
		return CardID{}, err
	}
	return CardID{Rank: r, Suit: su}, nil
}

// Card is a playing card: an immutable identity plus the presentation
// state the renderer needs.
type Card struct {
	CardID

	X, Y float64

	// FaceUp is true when the face is shown instead of the card back.
	FaceUp bool
	// Drawn is set while the card sits on the waste after being turned
	// from the deck.
	Drawn bool

	// Face is the opaque visual handle attached at deck construction.
	Face any
}

// NewCard returns a face-down card at the origin.
func NewCard(rank Rank, suit Suit) Card {
	return Card{CardID: CardID{Rank: rank, Suit: suit}}
}

// Color returns the color class of the card's suit.
func (c Card) Color() Color {
	return c.Suit.Color()
}

// MoveTo sets the card's screen position.
func (c *Card) MoveTo(x, y float64) {
	c.X = x
	c.Y = y
}

// Flip toggles the card between face-down and face-up.
func (c *Card) Flip() {
	c.FaceUp = !c.FaceUp
}

// StacksOnLane reports whether c may be placed on top in a tableau lane:
// opposite color and exactly one rank lower.
func (c Card) StacksOnLane(top Card) bool {
	below, ok := top.Rank.Prev()
	return ok && c.Color() != top.Color() && c.Rank == below
}

// StacksOnFoundation reports whether c may be placed on top in a
// foundation: same suit and exactly one rank higher.
func (c Card) StacksOnFoundation(top Card) bool {
	above, ok := top.Rank.Next()
	return ok && c.Suit == top.Suit && c.Rank == above
}
