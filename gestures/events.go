package gestures

import "fmt"

// EventType tags a raw gesture-phase event
type EventType int

const (
	SwipeBegin EventType = iota
	SwipeUpdate
	SwipeEnd
	PinchBegin
	PinchUpdate
	PinchEnd
)

var eventTypeNames = map[EventType]string{
	SwipeBegin:  "swipe_begin",
	SwipeUpdate: "swipe_update",
	SwipeEnd:    "swipe_end",
	PinchBegin:  "pinch_begin",
	PinchUpdate: "pinch_update",
	PinchEnd:    "pinch_end",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("event(%d)", int(t))
}

// ParseEventType converts a name produced by String back into an EventType
func ParseEventType(name string) (EventType, error) {
	for t, n := range eventTypeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown event type %q", name)
}

// IsSwipe reports whether the event belongs to the swipe sub-machine
func (t EventType) IsSwipe() bool {
	return t == SwipeBegin || t == SwipeUpdate || t == SwipeEnd
}

// Event is a raw gesture-phase event as produced by an event source.
// Fingers is only meaningful on begin events, Cancelled only on end events.
type Event struct {
	Type       EventType
	Fingers    int
	DX         float64
	DY         float64
	AngleDelta float64
	Scale      float64
	Cancelled  bool
}

func (e Event) String() string {
	switch e.Type {
	case SwipeBegin, PinchBegin:
		return fmt.Sprintf("%s fingers=%d scale=%.2f", e.Type, e.Fingers, e.Scale)
	case SwipeEnd, PinchEnd:
		return fmt.Sprintf("%s scale=%.2f cancelled=%t", e.Type, e.Scale, e.Cancelled)
	default:
		return fmt.Sprintf("%s (%.2f, %.2f) angle=%.2f scale=%.2f", e.Type, e.DX, e.DY, e.AngleDelta, e.Scale)
	}
}
