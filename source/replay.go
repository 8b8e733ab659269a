package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pguedes/gesticle/gestures"
)

// ReplayEvent is the JSON-lines form of a gestures.Event
type ReplayEvent struct {
	Type       string  `json:"type"`
	Fingers    int     `json:"fingers,omitempty"`
	DX         float64 `json:"dx,omitempty"`
	DY         float64 `json:"dy,omitempty"`
	AngleDelta float64 `json:"angle,omitempty"`
	Scale      float64 `json:"scale,omitempty"`
	Cancelled  bool    `json:"cancelled,omitempty"`
}

// ToEvent converts the record into a classifier event
func (r ReplayEvent) ToEvent() (gestures.Event, error) {
	typ, err := gestures.ParseEventType(r.Type)
	if err != nil {
		return gestures.Event{}, err
	}

	return gestures.Event{
		Type:       typ,
		Fingers:    r.Fingers,
		DX:         r.DX,
		DY:         r.DY,
		AngleDelta: r.AngleDelta,
		Scale:      r.Scale,
		Cancelled:  r.Cancelled,
	}, nil
}

// NewReplayEvent converts a classifier event into its JSON-lines form
func NewReplayEvent(ev gestures.Event) ReplayEvent {
	return ReplayEvent{
		Type:       ev.Type.String(),
		Fingers:    ev.Fingers,
		DX:         ev.DX,
		DY:         ev.DY,
		AngleDelta: ev.AngleDelta,
		Scale:      ev.Scale,
		Cancelled:  ev.Cancelled,
	}
}

// Replay reads recorded events, one JSON object per line. Blank lines and
// lines starting with # are ignored. Unlike live input, a bad line stops
// the replay.
type Replay struct {
	open func() (io.ReadCloser, error)
	name string
}

// NewReplay replays events from r
func NewReplay(r io.Reader) *Replay {
	return &Replay{
		open: func() (io.ReadCloser, error) { return io.NopCloser(r), nil },
		name: "reader",
	}
}

// NewReplayFile replays events from the file at path, or stdin for "-"
func NewReplayFile(path string) *Replay {
	if path == "-" {
		return &Replay{
			open: func() (io.ReadCloser, error) { return io.NopCloser(os.Stdin), nil },
			name: "stdin",
		}
	}

	return &Replay{
		open: func() (io.ReadCloser, error) {
			// #nosec G304 - replay file is chosen by the user
			return os.Open(path)
		},
		name: path,
	}
}

func (r *Replay) Stream(ctx context.Context, emit func(gestures.Event) error) error {
	in, err := r.open()
	if err != nil {
		return fmt.Errorf("failed to open replay %s: %w", r.name, err)
	}
	defer in.Close()

	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var rec ReplayEvent
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			return fmt.Errorf("%s:%d: invalid event: %w", r.name, lineNo, err)
		}
		ev, err := rec.ToEvent()
		if err != nil {
			return fmt.Errorf("%s:%d: %w", r.name, lineNo, err)
		}

		if err := emit(ev); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read replay %s: %w", r.name, err)
	}
	return nil
}
