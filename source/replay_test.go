package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pguedes/gesticle/gestures"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const replayInput = `# pinch in then swipe left
{"type":"pinch_begin","fingers":2,"scale":1}
{"type":"pinch_update","scale":0.4}
{"type":"pinch_end","scale":0.4}

{"type":"swipe_begin","fingers":4}
{"type":"swipe_update","dx":-60,"dy":3}
{"type":"swipe_end"}
`

func collect(t *testing.T, src EventSource) ([]gestures.Event, error) {
	t.Helper()
	var got []gestures.Event
	err := src.Stream(context.Background(), func(ev gestures.Event) error {
		got = append(got, ev)
		return nil
	})
	return got, err
}

func TestReplay(t *testing.T) {
	got, err := collect(t, NewReplay(strings.NewReader(replayInput)))
	require.NoError(t, err)
	require.Len(t, got, 6)

	assert.Equal(t, gestures.Event{Type: gestures.PinchBegin, Fingers: 2, Scale: 1}, got[0])
	assert.Equal(t, gestures.Event{Type: gestures.SwipeUpdate, DX: -60, DY: 3}, got[4])

	c := gestures.NewClassifier(nil)
	var recognized []gestures.Gesture
	for _, ev := range got {
		recognized = append(recognized, c.Feed(ev)...)
	}
	assert.Equal(t, []gestures.Gesture{
		gestures.Pinch(gestures.In, 0.4),
		gestures.Swipe(gestures.Left, 4),
	}, recognized)
}

func TestReplay_InvalidLine(t *testing.T) {
	_, err := collect(t, NewReplay(strings.NewReader("{\"type\":\"swipe_begin\"}\n{oops\n")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reader:2")

	_, err = collect(t, NewReplay(strings.NewReader(`{"type":"hold_begin"}`)))
	assert.Error(t, err)
}

func TestReplayFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(replayInput), 0644))

	got, err := collect(t, NewReplayFile(path))
	require.NoError(t, err)
	assert.Len(t, got, 6)

	_, err = collect(t, NewReplayFile(filepath.Join(t.TempDir(), "missing.jsonl")))
	assert.Error(t, err)
}

func TestReplayEvent_RoundTrip(t *testing.T) {
	ev := gestures.Event{Type: gestures.PinchUpdate, DX: 1, DY: 2, AngleDelta: 3, Scale: 0.9}
	back, err := NewReplayEvent(ev).ToEvent()
	require.NoError(t, err)
	assert.Equal(t, ev, back)
}

func TestEvents_StopsOnEmitError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := Events(
		gestures.Event{Type: gestures.SwipeBegin, Fingers: 3},
		gestures.Event{Type: gestures.SwipeEnd},
	).Stream(context.Background(), func(gestures.Event) error {
		calls++
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, calls)
}
