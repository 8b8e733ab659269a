package gestures

import (
	"fmt"
	"math"
)

const (
	// swipes whose angle falls strictly between these bounds are vertical
	verticalMinAngle = 75.0
	verticalMaxAngle = 105.0

	// swipes whose angle falls strictly between zero and this bound are horizontal
	horizontalMaxAngle = 15.0
)

// SwipeState accumulates the motion of one swipe between begin and end.
// The zero value is idle.
type SwipeState struct {
	active  bool
	fingers int
	dx      float64
	dy      float64
}

// Active reports whether a swipe is in progress
func (s SwipeState) Active() bool {
	return s.active
}

// Next applies a swipe event and returns the new state with its outcome.
// Events of other kinds leave the state untouched.
func (s SwipeState) Next(ev Event) (SwipeState, Outcome) {
	switch ev.Type {
	case SwipeBegin:
		return SwipeState{active: true, fingers: ev.Fingers}, pending()

	case SwipeUpdate:
		if !s.active {
			return s, Outcome{Result: ResultNoBuilder}
		}
		s.dx += ev.DX
		s.dy += ev.DY
		return s, pending()

	case SwipeEnd:
		if !s.active {
			return SwipeState{}, Outcome{Result: ResultNoBuilder}
		}
		if ev.Cancelled {
			return SwipeState{}, Outcome{Result: ResultCancelled}
		}
		direction, ok := swipeDirection(s.fingers, s.dx, s.dy)
		if !ok {
			return SwipeState{}, Outcome{Result: ResultUnrecognized}
		}
		return SwipeState{}, emit(ResultEmitted, Swipe(direction, s.fingers))
	}

	return s, pending()
}

func (s SwipeState) String() string {
	return fmt.Sprintf("(%.2f, %.2f) fingers = %d active = %t", s.dx, s.dy, s.fingers, s.active)
}

// swipeDirection classifies the accumulated motion of a swipe.
// Two finger swipes on some touchpads only report horizontal motion, so
// they are classified by the sign of dx alone: Right when dx > 0, otherwise
// Left, even with no motion at all. A perfectly horizontal swipe of three or
// more fingers (angle 0) is left unrecognized.
func swipeDirection(fingers int, dx, dy float64) (Direction, bool) {
	if fingers == 2 {
		if dx > 0 {
			return Right, true
		}
		return Left, true
	}

	if dx == 0 && dy == 0 {
		return "", false
	}

	angle := swipeAngle(dx, dy)
	switch {
	case angle > verticalMinAngle && angle < verticalMaxAngle:
		if dy > 0 {
			return Down, true
		}
		return Up, true
	case angle > 0 && angle < horizontalMaxAngle:
		if dx > 0 {
			return Right, true
		}
		return Left, true
	}

	return "", false
}

// swipeAngle returns the absolute angle of the motion vector against the
// horizontal axis, in degrees within [0, 90]. A vertical vector is 90.
func swipeAngle(dx, dy float64) float64 {
	if dx == 0 {
		return 90
	}
	return math.Abs(math.Atan(dy/dx) * 180 / math.Pi)
}
