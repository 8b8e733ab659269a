package gestures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func beginPinch(scale float64, triggers Triggers) PinchState {
	s, _ := PinchState{}.Next(Event{Type: PinchBegin, Fingers: 2, Scale: scale}, triggers)
	return s
}

func TestPinch_EarlyFireRebaselines(t *testing.T) {
	s := beginPinch(1.0, Triggers{PinchIn: 0.3})

	s, outcome := s.Next(Event{Type: PinchUpdate, Scale: 0.65}, Triggers{})
	g, ok := outcome.Gesture()
	require.True(t, ok)
	assert.Equal(t, ResultEarlyFired, outcome.Result)
	assert.Equal(t, KindPinch, g.Kind)
	assert.Equal(t, In, g.Direction)
	assert.InDelta(t, 0.65, g.Scale, 1e-9)

	// still mid-gesture, measured from the new baseline
	assert.True(t, s.Active())
	assert.InDelta(t, 0.0, s.Delta(), 1e-9)

	s, outcome = s.Next(Event{Type: PinchUpdate, Scale: 0.5}, Triggers{})
	_, ok = outcome.Gesture()
	assert.False(t, ok, "0.15 below the new baseline must not fire")

	s, outcome = s.Next(Event{Type: PinchUpdate, Scale: 0.3}, Triggers{})
	_, ok = outcome.Gesture()
	assert.True(t, ok, "0.35 below the new baseline fires again")

	s, outcome = s.Next(Event{Type: PinchEnd, Scale: 0.28}, Triggers{})
	_, ok = outcome.Gesture()
	assert.False(t, ok)
	assert.Equal(t, ResultFinished, outcome.Result)
	assert.False(t, s.Active())
}

func TestPinch_EarlyFireOut(t *testing.T) {
	s := beginPinch(1.0, Triggers{PinchOut: 0.5})

	s, outcome := s.Next(Event{Type: PinchUpdate, Scale: 1.3}, Triggers{})
	_, ok := outcome.Gesture()
	assert.False(t, ok)

	_, outcome = s.Next(Event{Type: PinchUpdate, Scale: 1.6}, Triggers{})
	g, ok := outcome.Gesture()
	require.True(t, ok)
	assert.Equal(t, Out, g.Direction)
}

func TestPinch_NoTriggersEmitsOnEnd(t *testing.T) {
	s := beginPinch(1.0, Triggers{})

	s, outcome := s.Next(Event{Type: PinchUpdate, Scale: 0.2}, Triggers{})
	_, ok := outcome.Gesture()
	assert.False(t, ok, "zero thresholds never fire early")

	_, outcome = s.Next(Event{Type: PinchEnd, Scale: 0.2}, Triggers{})
	g, ok := outcome.Gesture()
	require.True(t, ok)
	assert.Equal(t, Pinch(In, 0.2), g)
}

func TestPinch_RotationPrecedence(t *testing.T) {
	s := beginPinch(1.0, Triggers{})
	for i := 0; i < 6; i++ {
		s, _ = s.Next(Event{Type: PinchUpdate, AngleDelta: 10, Scale: 0.8}, Triggers{})
	}

	_, outcome := s.Next(Event{Type: PinchEnd, Scale: 0.8}, Triggers{})
	g, ok := outcome.Gesture()
	require.True(t, ok)
	assert.Equal(t, KindRotation, g.Kind)
	assert.Equal(t, Right, g.Direction)
	assert.InDelta(t, 60.0, g.Angle, 1e-9)
}

func TestPinch_RotationSuppressesEarlyFire(t *testing.T) {
	s := beginPinch(1.0, Triggers{PinchIn: 0.1, PinchOut: 0.1})

	s, outcome := s.Next(Event{Type: PinchUpdate, AngleDelta: -70, Scale: 0.5}, Triggers{})
	_, ok := outcome.Gesture()
	assert.False(t, ok)

	_, outcome = s.Next(Event{Type: PinchEnd}, Triggers{})
	g, ok := outcome.Gesture()
	require.True(t, ok)
	assert.Equal(t, Rotation(Left, -70), g)
}

func TestPinch_InconclusiveAndCancelled(t *testing.T) {
	s := beginPinch(1.0, Triggers{})
	s, _ = s.Next(Event{Type: PinchUpdate, AngleDelta: 20, Scale: 1.0}, Triggers{})

	_, outcome := s.Next(Event{Type: PinchEnd, Scale: 1.0}, Triggers{})
	assert.Equal(t, ResultUnrecognized, outcome.Result)
	assert.ErrorIs(t, outcome.Err(), ErrGestureUnrecognized)

	s = beginPinch(1.0, Triggers{})
	s, _ = s.Next(Event{Type: PinchUpdate, AngleDelta: 80, Scale: 0.1}, Triggers{})
	s, outcome = s.Next(Event{Type: PinchEnd, Cancelled: true}, Triggers{})
	_, ok := outcome.Gesture()
	assert.False(t, ok)
	assert.Equal(t, ResultCancelled, outcome.Result)
	assert.False(t, s.Active())
}

func TestPinch_DefaultsBaselineWhenScaleMissing(t *testing.T) {
	s := beginPinch(0, Triggers{})
	assert.InDelta(t, 0.0, s.Delta(), 1e-9)

	_, outcome := s.Next(Event{Type: PinchEnd, Scale: 1.4}, Triggers{})
	g, ok := outcome.Gesture()
	require.True(t, ok)
	assert.Equal(t, Out, g.Direction)
}

func TestPinch_UpdateWithoutBegin(t *testing.T) {
	s, outcome := PinchState{}.Next(Event{Type: PinchUpdate, Scale: 0.5}, Triggers{})
	assert.Equal(t, ResultNoBuilder, outcome.Result)
	assert.False(t, s.Active())
}
