package handler

import (
	"bytes"
	"context"
	"errors"
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pguedes/gesticle/configuration"
	"github.com/pguedes/gesticle/dispatch"
	"github.com/pguedes/gesticle/gestures"
	"github.com/pguedes/gesticle/utils"
)

type recordingDispatcher struct {
	mu      sync.Mutex
	actions []string
	err     error
}

func (d *recordingDispatcher) Dispatch(_ context.Context, action string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.actions = append(d.actions, action)
	return d.err
}

func (d *recordingDispatcher) Actions() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.actions...)
}

func scenarioResolver() *configuration.Resolver {
	return configuration.NewStaticResolver(configuration.FromValues(map[string]string{
		"swipe.up.3":         "ctrl+t",
		"firefox.swipe.up.3": "ctrl+y",
		"chrome.swipe.up.3":  "",
		"pinch.in":           "ctrl+minus",
	}))
}

func TestGestureHandler_Handle(t *testing.T) {
	tests := []struct {
		name     string
		app      dispatch.AppContext
		gesture  gestures.Gesture
		outcome  Outcome
		action   string
		recorded string
	}{
		{"app override", dispatch.StaticApp("firefox"), gestures.Swipe(gestures.Up, 3), OutcomeDispatched, "ctrl+y", "ctrl+y"},
		{"app disables", dispatch.StaticApp("chrome"), gestures.Swipe(gestures.Up, 3), OutcomeDisabled, "", ""},
		{"other app inherits", dispatch.StaticApp("gedit"), gestures.Swipe(gestures.Up, 3), OutcomeDispatched, "ctrl+t", "ctrl+t"},
		{"no app context", nil, gestures.Swipe(gestures.Up, 3), OutcomeDispatched, "ctrl+t", "ctrl+t"},
		{"pinch", nil, gestures.Pinch(gestures.In, 0.4), OutcomeDispatched, "ctrl+minus", "ctrl+minus"},
		{"unconfigured", dispatch.StaticApp("firefox"), gestures.Swipe(gestures.Left, 4), OutcomeUnconfigured, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &recordingDispatcher{}
			history := NewHistory(10)
			h := NewGestureHandler(scenarioResolver(), d, tt.app, history)

			rec := h.Handle(context.Background(), tt.gesture)
			assert.Equal(t, tt.outcome, rec.Outcome)
			assert.Equal(t, tt.action, rec.Action)
			assert.Equal(t, tt.gesture.SettingKey(), rec.Setting)
			assert.NotEmpty(t, rec.ID)

			if tt.recorded == "" {
				assert.Empty(t, d.Actions())
			} else {
				assert.Equal(t, []string{tt.recorded}, d.Actions())
			}

			require.Len(t, history.Recent(0), 1)
			assert.Equal(t, rec, history.Recent(0)[0])
		})
	}
}

func TestGestureHandler_UnconfiguredCarriesError(t *testing.T) {
	h := NewGestureHandler(scenarioResolver(), &recordingDispatcher{}, nil, nil)
	rec := h.Handle(context.Background(), gestures.Rotation(gestures.Left, -70))
	assert.Equal(t, configuration.ErrSettingUnconfigured.Error(), rec.Error)
}

func TestGestureHandler_DispatchFailureContinues(t *testing.T) {
	d := &recordingDispatcher{err: errors.New("xdotool missing")}
	h := NewGestureHandler(scenarioResolver(), d, nil, nil)

	first := h.Handle(context.Background(), gestures.Swipe(gestures.Up, 3))
	assert.Equal(t, OutcomeFailed, first.Outcome)
	assert.Equal(t, "xdotool missing", first.Error)

	second := h.Handle(context.Background(), gestures.Pinch(gestures.In, 0.2))
	assert.Equal(t, OutcomeFailed, second.Outcome)
	assert.Equal(t, []string{"ctrl+t", "ctrl+minus"}, d.Actions())
	assert.NotEqual(t, first.ID, second.ID)
}

func TestGestureHandler_DispatchFailureLogsFields(t *testing.T) {
	var buf bytes.Buffer
	utils.SetOutput(&buf)
	defer utils.SetOutput(os.Stderr)

	d := &recordingDispatcher{err: errors.New("xdotool missing")}
	h := NewGestureHandler(scenarioResolver(), d, dispatch.StaticApp("firefox"), nil)
	h.Handle(context.Background(), gestures.Swipe(gestures.Up, 3))

	out := buf.String()
	assert.Contains(t, out, "setting=swipe.up.3")
	assert.Contains(t, out, "app=firefox")
	assert.Contains(t, out, "action=ctrl+y")
}

func TestHistory_Recent(t *testing.T) {
	h := NewHistory(3)
	for _, id := range []string{"a", "b", "c", "d"} {
		h.Publish(Record{ID: id})
	}

	ids := func(recs []Record) []string {
		var out []string
		for _, r := range recs {
			out = append(out, r.ID)
		}
		return out
	}

	assert.Equal(t, []string{"d", "c", "b"}, ids(h.Recent(0)))
	assert.Equal(t, []string{"d", "c"}, ids(h.Recent(2)))
	assert.Equal(t, []string{"d", "c", "b"}, ids(h.Recent(10)))
}

func TestPublishers(t *testing.T) {
	var got []string
	pubs := Publishers{
		PublisherFunc(func(rec Record) { got = append(got, "first:"+rec.ID) }),
		nil,
		PublisherFunc(func(rec Record) { got = append(got, "second:"+rec.ID) }),
	}
	pubs.Publish(Record{ID: "x"})
	assert.Equal(t, []string{"first:x", "second:x"}, got)
}
