package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// ZoneKind discriminates the Zone union.
type ZoneKind int

const (
	ZoneNone ZoneKind = iota
	ZoneDeck
	ZoneWaste
	ZoneLane
	ZoneFoundation
)

// Zone is a logical board area: Deck, Waste, Lane(1..7), Foundation(1..4)
// or None. Index is only meaningful for lanes and foundations.
type Zone struct {
	Kind  ZoneKind
	Index int
}

// NoZone is the zero Zone.
var NoZone = Zone{}

// DeckZone returns the deck zone.
func DeckZone() Zone { return Zone{Kind: ZoneDeck} }

// WasteZone returns the waste zone.
func WasteZone() Zone { return Zone{Kind: ZoneWaste} }

// LaneZone returns the zone of tableau lane n (1-based).
func LaneZone(n int) Zone { return Zone{Kind: ZoneLane, Index: n} }

// FoundationZone returns the zone of foundation n (1-based).
func FoundationZone(n int) Zone { return Zone{Kind: ZoneFoundation, Index: n} }

// IsNone reports whether z denotes no zone.
func (z Zone) IsNone() bool { return z.Kind == ZoneNone }

// Valid reports whether z is a well-formed zone. None is valid.
func (z Zone) Valid() bool {
	switch z.Kind {
	case ZoneNone, ZoneDeck, ZoneWaste:
		return z.Index == 0
	case ZoneLane:
		return z.Index >= 1 && z.Index <= LaneCount
	case ZoneFoundation:
		return z.Index >= 1 && z.Index <= FoundationCount
	default:
		return false
	}
}

func (z Zone) String() string {
	switch z.Kind {
	case ZoneDeck:
		return "deck"
	case ZoneWaste:
		return "waste"
	case ZoneLane:
		return "lane:" + strconv.Itoa(z.Index)
	case ZoneFoundation:
		return "foundation:" + strconv.Itoa(z.Index)
	default:
		return "none"
	}
}

// ParseZone parses the form produced by Zone.String.
func ParseZone(s string) (Zone, error) {
	name, idx, hasIdx := strings.Cut(strings.ToLower(strings.TrimSpace(s)), ":")

	var z Zone
	switch name {
	case "none", "":
		z = NoZone
	case "deck":
		z = DeckZone()
	case "waste", "turned":
		z = WasteZone()
	case "lane":
		z.Kind = ZoneLane
	case "foundation", "suit":
		z.Kind = ZoneFoundation
	default:
		return NoZone, fmt.Errorf("unknown zone %q", s)
	}

	if hasIdx {
		n, err := strconv.Atoi(idx)
		if err != nil {
			return NoZone, fmt.Errorf("zone %q: bad index: %w", s, err)
		}
		z.Index = n
	}

	if !z.Valid() {
		return NoZone, fmt.Errorf("zone %q out of range", s)
	}
	return z, nil
}

// MarshalText implements encoding.TextMarshaler.
func (z Zone) MarshalText() ([]byte, error) {
	return []byte(z.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (z *Zone) UnmarshalText(text []byte) error {
	parsed, err := ParseZone(string(text))
	if err != nil {
		return err
	}
	*z = parsed
	return nil
}
