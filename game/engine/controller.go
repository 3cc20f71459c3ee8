package engine

// PointerSample is the pointer state a host reads once per frame.
type PointerSample struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	// Pressed is true on the frame the primary button went down.
	Pressed bool `json:"pressed,omitempty"`
	// Down is true on every frame the primary button is held.
	Down bool `json:"down,omitempty"`
	// Released is true on the frame the primary button went up.
	Released bool `json:"released,omitempty"`
}

// Action names what a pointer sample did to the board.
type Action string

const (
	ActionNone       Action = "none"
	ActionDraw       Action = "draw"
	ActionPickUp     Action = "pick_up"
	ActionDrag       Action = "drag"
	ActionLane       Action = "place_lane"
	ActionFoundation Action = "place_foundation"
	ActionReturn     Action = "return"
	ActionRecycle    Action = "recycle"
)

// Outcome reports the most significant action a sample caused. Success
// is false when a placement was rejected or the action changed nothing.
type Outcome struct {
	Action  Action `json:"action"`
	Success bool   `json:"success"`
	Target  Zone   `json:"target"`
}

// Hand is the card being dragged and the zone it was lifted from.
type Hand struct {
	Card   Card `json:"card"`
	Origin Zone `json:"origin"`
}

// Controller turns per-frame pointer samples into board operations. It is
// Idle while Hand is nil and Holding otherwise.
type Controller struct {
	board *Board
	hand  *Hand

	// pointer minus the held card's corner at pick-up
	offsetX, offsetY float64
	lastX, lastY     float64
	moved            bool
}

// NewController returns an idle controller driving board.
func NewController(board *Board) *Controller {
	return &Controller{board: board}
}

// Board returns the board the controller drives.
func (c *Controller) Board() *Board {
	return c.board
}

// Hand returns the held card, or nil while idle.
func (c *Controller) Hand() *Hand {
	return c.hand
}

// Holding reports whether a card is in hand.
func (c *Controller) Holding() bool {
	return c.hand != nil
}

// Update applies one frame's sample: the press, then the held button,
// then the release.
func (c *Controller) Update(s PointerSample) Outcome {
	out := Outcome{Action: ActionNone}

	if s.Pressed && !c.Holding() {
		out = c.press(s.X, s.Y)
	}
	if s.Down && c.Holding() {
		if drag := c.drag(s.X, s.Y); out.Action == ActionNone {
			out = drag
		}
	}
	if s.Released && c.Holding() {
		out = c.release(s.X, s.Y)
	}

	return out
}

func (c *Controller) press(x, y float64) Outcome {
	switch zone := c.board.layout.ResolveZone(x, y); zone.Kind {
	case ZoneWaste:
		card, ok := c.board.TakeTop(zone)
		if !ok {
			return Outcome{Action: ActionNone, Target: zone}
		}
		dx, dy, inside := c.board.layout.CardOffset(card, x, y)
		if !inside {
			c.board.ReturnToOrigin(card, zone)
			return Outcome{Action: ActionNone, Target: zone}
		}
		c.hand = &Hand{Card: card, Origin: zone}
		c.offsetX, c.offsetY = dx, dy
		c.lastX, c.lastY = x, y
		c.moved = false
		return Outcome{Action: ActionPickUp, Success: true, Target: zone}

	case ZoneDeck:
		return Outcome{Action: ActionDraw, Success: c.board.DrawCard(), Target: zone}

	default:
		return Outcome{Action: ActionNone, Target: zone}
	}
}

func (c *Controller) drag(x, y float64) Outcome {
	c.hand.Card.MoveTo(x-c.offsetX, y-c.offsetY)
	if x != c.lastX || y != c.lastY {
		c.moved = true
	}
	c.lastX, c.lastY = x, y
	return Outcome{Action: ActionDrag, Success: c.moved}
}

func (c *Controller) release(x, y float64) Outcome {
	hand := *c.hand
	c.hand = nil
	c.offsetX, c.offsetY = 0, 0
	moved := c.moved || x != c.lastX || y != c.lastY
	c.moved = false

	target := c.board.layout.ResolveZone(x, y)

	if !moved && target.Kind == ZoneWaste {
		c.board.ReturnToOrigin(hand.Card, hand.Origin)
		return Outcome{Action: ActionRecycle, Success: c.board.RecycleWaste(), Target: target}
	}

	switch target.Kind {
	case ZoneFoundation:
		ok := c.board.PlaceOnFoundation(hand.Card, target.Index, hand.Origin)
		return Outcome{Action: ActionFoundation, Success: ok, Target: target}
	case ZoneLane:
		ok := c.board.PlaceOnLane(hand.Card, target.Index, hand.Origin)
		return Outcome{Action: ActionLane, Success: ok, Target: target}
	default:
		c.board.ReturnToOrigin(hand.Card, hand.Origin)
		return Outcome{Action: ActionReturn, Success: true, Target: target}
	}
}
