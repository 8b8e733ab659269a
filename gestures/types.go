package gestures

import (
	"fmt"
	"strings"
)

// Kind identifies the family a recognized gesture belongs to
type Kind int

const (
	KindSwipe Kind = iota
	KindRotation
	KindPinch
)

// String returns the configuration category for the kind
func (k Kind) String() string {
	switch k {
	case KindSwipe:
		return "swipe"
	case KindRotation:
		return "rotation"
	case KindPinch:
		return "pinch"
	default:
		return "unknown"
	}
}

// Direction of a recognized gesture. Swipes use Up, Down, Left and Right,
// rotations use Left and Right, pinches use In and Out.
type Direction string

const (
	Up    Direction = "up"
	Down  Direction = "down"
	Left  Direction = "left"
	Right Direction = "right"
	In    Direction = "in"
	Out   Direction = "out"
)

// Title returns the direction with its first letter capitalized
func (d Direction) Title() string {
	if d == "" {
		return ""
	}
	return strings.ToUpper(string(d[:1])) + string(d[1:])
}

// Gesture is a discrete gesture produced by the classifier.
// Values are immutable once built; use Swipe, Rotation or Pinch to create them.
type Gesture struct {
	Kind      Kind      `json:"-"`
	Direction Direction `json:"direction"`
	Fingers   int       `json:"fingers,omitempty"`
	Angle     float64   `json:"angle,omitempty"`
	Scale     float64   `json:"scale,omitempty"`
}

// Swipe builds a swipe gesture
func Swipe(direction Direction, fingers int) Gesture {
	return Gesture{Kind: KindSwipe, Direction: direction, Fingers: fingers}
}

// Rotation builds a rotation gesture carrying the accumulated angle in degrees
func Rotation(direction Direction, angle float64) Gesture {
	return Gesture{Kind: KindRotation, Direction: direction, Angle: angle}
}

// Pinch builds a pinch gesture carrying the absolute scale at emission
func Pinch(direction Direction, scale float64) Gesture {
	return Gesture{Kind: KindPinch, Direction: direction, Scale: scale}
}

// SettingKey returns the configuration key for the gesture, e.g. "swipe.up.3"
func (g Gesture) SettingKey() string {
	switch g.Kind {
	case KindSwipe:
		return fmt.Sprintf("%s.%s.%d", g.Kind, g.Direction, g.Fingers)
	default:
		return fmt.Sprintf("%s.%s", g.Kind, g.Direction)
	}
}

// Category returns the human label used when listing settings
func (g Gesture) Category() string {
	switch g.Kind {
	case KindSwipe:
		return fmt.Sprintf("%d fingers Swipes", g.Fingers)
	case KindRotation:
		return "Rotations"
	case KindPinch:
		return "Pinches"
	default:
		return "Unknown"
	}
}

func (g Gesture) String() string {
	switch g.Kind {
	case KindSwipe:
		return fmt.Sprintf("Swipe(%s, %d)", g.Direction.Title(), g.Fingers)
	case KindRotation:
		return fmt.Sprintf("Rotation(%s, %.2f)", g.Direction.Title(), g.Angle)
	case KindPinch:
		return fmt.Sprintf("Pinch(%s, %.2f)", g.Direction.Title(), g.Scale)
	default:
		return "Unknown"
	}
}

// AllGestures lists the configurable gestures in display order
func AllGestures() []Gesture {
	return []Gesture{
		Swipe(Up, 3),
		Swipe(Down, 3),
		Swipe(Left, 3),
		Swipe(Right, 3),
		Swipe(Up, 4),
		Swipe(Down, 4),
		Swipe(Left, 4),
		Swipe(Right, 4),
		Pinch(In, 0),
		Pinch(Out, 0),
		Rotation(Left, 0),
		Rotation(Right, 0),
	}
}
