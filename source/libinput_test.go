package source

import (
	"context"
	"strings"
	"testing"

	"github.com/pguedes/gesticle/gestures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const debugEventsOutput = `-event7   DEVICE_ADDED     SynPS/2 Synaptics TouchPad        seat0 default group7  cap:pg  size 70x50mm tap(dl off) left scroll-nat scroll-2fg-edge click-buttonareas-clickfinger dwt-on
 event7   POINTER_MOTION   +0.812s	  1.25/  0.00 ( 1.00/ 0.00)
 event7   GESTURE_SWIPE_BEGIN +1.234s	3
 event7   GESTURE_SWIPE_UPDATE +1.240s	3  3.41/-21.20 ( 9.20/-30.24 unaccelerated)
 event7   GESTURE_SWIPE_UPDATE +1.250s	3  0.10/-18.00 ( 0.30/-25.00 unaccelerated)
 event7   GESTURE_SWIPE_END +1.300s	3
 event7   GESTURE_HOLD_BEGIN +1.900s	2
 event7   GESTURE_HOLD_END +1.950s	2 cancelled
 event7   GESTURE_PINCH_BEGIN +2.000s	2
 event7   GESTURE_PINCH_UPDATE +2.010s	2  1.30/ 0.50 ( 3.40/ 1.30 unaccelerated)  0.85 @ -0.93
 event7   GESTURE_PINCH_UPDATE +2.020s	2  garbage
 event7   GESTURE_PINCH_END +2.100s	2 cancelled
`

func TestParseDebugEventsLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want gestures.Event
	}{
		{
			name: "swipe begin",
			line: " event7   GESTURE_SWIPE_BEGIN +1.234s	4",
			want: gestures.Event{Type: gestures.SwipeBegin, Fingers: 4, Scale: 1.0},
		},
		{
			name: "swipe update",
			line: " event7   GESTURE_SWIPE_UPDATE +1.240s	3  3.41/-1.20 ( 9.20/-3.24 unaccelerated)",
			want: gestures.Event{Type: gestures.SwipeUpdate, Fingers: 3, DX: 3.41, DY: -1.20},
		},
		{
			name: "swipe end cancelled",
			line: " event7   GESTURE_SWIPE_END +1.300s	3 cancelled",
			want: gestures.Event{Type: gestures.SwipeEnd, Fingers: 3, Cancelled: true},
		},
		{
			name: "pinch update",
			line: " event7   GESTURE_PINCH_UPDATE +2.010s	2  1.30/ 0.50 ( 3.40/ 1.30 unaccelerated)  1.05 @ -0.93",
			want: gestures.Event{Type: gestures.PinchUpdate, Fingers: 2, DX: 1.30, DY: 0.50, Scale: 1.05, AngleDelta: -0.93},
		},
		{
			name: "pinch end",
			line: " event7   GESTURE_PINCH_END +2.100s	2",
			want: gestures.Event{Type: gestures.PinchEnd, Fingers: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := ParseDebugEventsLine(tt.line)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDebugEventsLine_Skips(t *testing.T) {
	for _, line := range []string{
		"",
		" event7   POINTER_MOTION   +0.812s	  1.25/  0.00 ( 1.00/ 0.00)",
		" event7   GESTURE_HOLD_BEGIN +1.900s	2",
	} {
		_, ok, err := ParseDebugEventsLine(line)
		assert.NoError(t, err)
		assert.False(t, ok, line)
	}

	_, ok, err := ParseDebugEventsLine(" event7   GESTURE_PINCH_UPDATE +2.010s	2  1.30/ 0.50")
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestScanDebugEvents(t *testing.T) {
	var got []gestures.Event
	err := ScanDebugEvents(context.Background(), strings.NewReader(debugEventsOutput), func(ev gestures.Event) error {
		got = append(got, ev)
		return nil
	})
	require.NoError(t, err)

	types := make([]gestures.EventType, 0, len(got))
	for _, ev := range got {
		types = append(types, ev.Type)
	}
	assert.Equal(t, []gestures.EventType{
		gestures.SwipeBegin,
		gestures.SwipeUpdate,
		gestures.SwipeUpdate,
		gestures.SwipeEnd,
		gestures.PinchBegin,
		gestures.PinchUpdate,
		gestures.PinchEnd,
	}, types)
	assert.True(t, got[len(got)-1].Cancelled)
}

func TestScanDebugEvents_ClassifiesSwipe(t *testing.T) {
	c := gestures.NewClassifier(nil)
	var recognized []gestures.Gesture

	err := ScanDebugEvents(context.Background(), strings.NewReader(debugEventsOutput), func(ev gestures.Event) error {
		recognized = append(recognized, c.Feed(ev)...)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []gestures.Gesture{gestures.Swipe(gestures.Up, 3)}, recognized)
}

func TestDebugEvents_Stream(t *testing.T) {
	d := &DebugEvents{Command: []string{"printf", "%s\n", " event7   GESTURE_SWIPE_BEGIN +1.234s	3"}}

	var got []gestures.Event
	err := d.Stream(context.Background(), func(ev gestures.Event) error {
		got = append(got, ev)
		return nil
	})
	assert.ErrorIs(t, err, ErrSourceClosed)
	require.Len(t, got, 1)
	assert.Equal(t, gestures.SwipeBegin, got[0].Type)
}

func TestDebugEvents_MissingCommand(t *testing.T) {
	d := &DebugEvents{Command: []string{"gesticle-no-such-binary"}}
	err := d.Stream(context.Background(), func(gestures.Event) error { return nil })
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrSourceClosed)
}
