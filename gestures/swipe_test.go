package gestures

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runSwipe(fingers int, cancelled bool, deltas ...[2]float64) (SwipeState, Outcome) {
	s, _ := SwipeState{}.Next(Event{Type: SwipeBegin, Fingers: fingers})
	for _, d := range deltas {
		s, _ = s.Next(Event{Type: SwipeUpdate, DX: d[0], DY: d[1]})
	}
	return s.Next(Event{Type: SwipeEnd, Cancelled: cancelled})
}

func TestSwipe_VerticalUp(t *testing.T) {
	state, outcome := runSwipe(3, false, [2]float64{0, -50})

	g, ok := outcome.Gesture()
	require.True(t, ok)
	assert.Equal(t, Swipe(Up, 3), g)
	assert.Equal(t, ResultEmitted, outcome.Result)
	assert.False(t, state.Active())
}

func TestSwipe_Directions(t *testing.T) {
	tests := []struct {
		name    string
		fingers int
		deltas  [][2]float64
		want    Direction
	}{
		{"down", 3, [][2]float64{{1, 20}, {0, 30}}, Down},
		{"up four fingers", 4, [][2]float64{{-2, -40}}, Up},
		{"right", 3, [][2]float64{{40, 3}}, Right},
		{"left", 4, [][2]float64{{-40, 2}, {-10, 1}}, Left},
		{"nearly horizontal", 3, [][2]float64{{-25, 1}}, Left},
		{"two fingers right ignores dy", 2, [][2]float64{{1, 90}}, Right},
		{"two fingers left ignores dy", 2, [][2]float64{{-1, -90}}, Left},
		{"two fingers without horizontal motion", 2, [][2]float64{{0, 40}}, Left},
		{"two fingers without motion", 2, nil, Left},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, outcome := runSwipe(tt.fingers, false, tt.deltas...)
			g, ok := outcome.Gesture()
			require.True(t, ok, "expected a gesture")
			assert.Equal(t, KindSwipe, g.Kind)
			assert.Equal(t, tt.want, g.Direction)
			assert.Equal(t, tt.fingers, g.Fingers)
		})
	}
}

func TestSwipe_VerticalBandFollowsSignOfDY(t *testing.T) {
	for degrees := 76.0; degrees < 105; degrees += 2.5 {
		rad := degrees * math.Pi / 180
		dx := 100 * math.Cos(rad)

		_, up := runSwipe(3, false, [2]float64{dx, -100 * math.Sin(rad)})
		g, ok := up.Gesture()
		require.True(t, ok, "angle %.1f", degrees)
		assert.Equal(t, Up, g.Direction, "angle %.1f", degrees)

		_, down := runSwipe(3, false, [2]float64{dx, 100 * math.Sin(rad)})
		g, ok = down.Gesture()
		require.True(t, ok, "angle %.1f", degrees)
		assert.Equal(t, Down, g.Direction, "angle %.1f", degrees)
	}
}

func TestSwipe_Unrecognized(t *testing.T) {
	tests := []struct {
		name    string
		fingers int
		deltas  [][2]float64
	}{
		{"diagonal", 3, [][2]float64{{30, 30}}},
		{"steep but not vertical", 3, [][2]float64{{10, 30}}},
		{"no motion", 4, nil},
		{"exact horizontal right", 3, [][2]float64{{50, 0}}},
		{"exact horizontal left", 4, [][2]float64{{-25, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, outcome := runSwipe(tt.fingers, false, tt.deltas...)
			_, ok := outcome.Gesture()
			assert.False(t, ok)
			assert.Equal(t, ResultUnrecognized, outcome.Result)
			assert.ErrorIs(t, outcome.Err(), ErrGestureUnrecognized)
			assert.False(t, state.Active())
		})
	}
}

func TestSwipe_CancelledNeverEmits(t *testing.T) {
	deltas := [][2]float64{{30, 2}, {0, -50}, {-40, 0}, {0, 0}}
	for _, d := range deltas {
		state, outcome := runSwipe(4, true, d)
		_, ok := outcome.Gesture()
		assert.False(t, ok)
		assert.Equal(t, ResultCancelled, outcome.Result)
		assert.ErrorIs(t, outcome.Err(), ErrGestureCancelled)
		assert.False(t, state.Active())
	}
}

func TestSwipe_UpdateWithoutBegin(t *testing.T) {
	state, outcome := SwipeState{}.Next(Event{Type: SwipeUpdate, DX: 10})
	assert.Equal(t, ResultNoBuilder, outcome.Result)
	assert.False(t, state.Active())

	state, outcome = state.Next(Event{Type: SwipeEnd})
	assert.Equal(t, ResultNoBuilder, outcome.Result)
	assert.ErrorIs(t, outcome.Err(), ErrNoBuilder)
	assert.False(t, state.Active())
}

func TestSwipeAngle(t *testing.T) {
	assert.Equal(t, 90.0, swipeAngle(0, 10))
	assert.Equal(t, 90.0, swipeAngle(0, -10))
	assert.InDelta(t, 45.0, swipeAngle(-10, 10), 1e-9)
	assert.InDelta(t, 0.0, swipeAngle(10, 0), 1e-9)
}
