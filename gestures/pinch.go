package gestures

import (
	"fmt"
	"math"
)

// rotations win over pinches once the accumulated angle exceeds this many degrees
const rotationThreshold = 50.0

// defaultScale is the scale touchpads report at the start of a pinch
const defaultScale = 1.0

// Triggers are the scale-delta magnitudes at which a pinch fires before it ends.
// A zero value disables early firing for that direction.
type Triggers struct {
	PinchIn  float64
	PinchOut float64
}

// TriggerSource supplies the trigger thresholds in effect when a pinch begins
type TriggerSource interface {
	Triggers() Triggers
}

// StaticTriggers is a TriggerSource that always returns the same thresholds
type StaticTriggers Triggers

// Triggers returns the fixed thresholds
func (t StaticTriggers) Triggers() Triggers {
	return Triggers(t)
}

// PinchState accumulates a pinch or rotation between begin and end.
// The zero value is idle.
type PinchState struct {
	active   bool
	baseline float64
	scale    float64
	dx       float64
	dy       float64
	angle    float64
	triggers Triggers
	fired    bool
}

// Active reports whether a pinch is in progress
func (s PinchState) Active() bool {
	return s.active
}

// Delta is the scale change since the baseline. Positive values mean the
// fingers moved together.
func (s PinchState) Delta() float64 {
	return s.baseline - s.scale
}

// Next applies a pinch event and returns the new state with its outcome.
// The triggers are only consulted on PinchBegin.
func (s PinchState) Next(ev Event, triggers Triggers) (PinchState, Outcome) {
	switch ev.Type {
	case PinchBegin:
		scale := ev.Scale
		if scale <= 0 {
			scale = defaultScale
		}
		return PinchState{
			active:   true,
			baseline: scale,
			scale:    scale,
			triggers: Triggers{PinchIn: math.Abs(triggers.PinchIn), PinchOut: math.Abs(triggers.PinchOut)},
		}, pending()

	case PinchUpdate:
		if !s.active {
			return s, Outcome{Result: ResultNoBuilder}
		}
		s.dx += ev.DX
		s.dy += ev.DY
		s.angle += ev.AngleDelta
		if ev.Scale > 0 {
			s.scale = ev.Scale
		}

		g, ok := s.classify()
		if !ok || g.Kind != KindPinch || !s.crossed() {
			return s, pending()
		}

		// rebaseline so the same physical pinch can fire again
		s.baseline = s.scale
		s.dx, s.dy, s.angle = 0, 0, 0
		s.fired = true
		return s, emit(ResultEarlyFired, g)

	case PinchEnd:
		if !s.active {
			return PinchState{}, Outcome{Result: ResultNoBuilder}
		}
		if ev.Cancelled {
			return PinchState{}, Outcome{Result: ResultCancelled}
		}
		if ev.Scale > 0 {
			s.scale = ev.Scale
		}

		g, ok := s.classify()
		switch {
		case s.fired && (!ok || g.Kind == KindPinch):
			return PinchState{}, Outcome{Result: ResultFinished}
		case !ok:
			return PinchState{}, Outcome{Result: ResultUnrecognized}
		}
		return PinchState{}, emit(ResultEmitted, g)
	}

	return s, pending()
}

// classify applies rotation-first precedence, then the sign of the scale delta
func (s PinchState) classify() (Gesture, bool) {
	switch {
	case s.angle > rotationThreshold:
		return Rotation(Right, s.angle), true
	case s.angle < -rotationThreshold:
		return Rotation(Left, s.angle), true
	}

	delta := s.Delta()
	switch {
	case delta > 0:
		return Pinch(In, s.scale), true
	case delta < 0:
		return Pinch(Out, s.scale), true
	}

	return Gesture{}, false
}

func (s PinchState) crossed() bool {
	delta := s.Delta()
	if s.triggers.PinchIn != 0 && delta >= s.triggers.PinchIn {
		return true
	}
	return s.triggers.PinchOut != 0 && delta <= -s.triggers.PinchOut
}

func (s PinchState) String() string {
	return fmt.Sprintf("scale = %.3f (baseline %.3f), (%.2f, %.2f) angle = %.2f active = %t",
		s.scale, s.baseline, s.dx, s.dy, s.angle, s.active)
}
