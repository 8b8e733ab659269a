package source

import (
	"context"
	"errors"

	"github.com/pguedes/gesticle/gestures"
)

// ErrSourceClosed is returned by sources that ran out of input
var ErrSourceClosed = errors.New("event source closed")

// EventSource produces raw gesture-phase events. Stream blocks, calling emit
// for every event in arrival order, until ctx is done, the input ends or emit
// returns an error.
type EventSource interface {
	Stream(ctx context.Context, emit func(gestures.Event) error) error
}

// EventSourceFunc adapts a function literal to the EventSource interface
type EventSourceFunc func(ctx context.Context, emit func(gestures.Event) error) error

// Stream calls the underlying function
func (f EventSourceFunc) Stream(ctx context.Context, emit func(gestures.Event) error) error {
	return f(ctx, emit)
}

// Events is a fixed list of events, handy for tests and scripted runs
func Events(events ...gestures.Event) EventSource {
	return EventSourceFunc(func(ctx context.Context, emit func(gestures.Event) error) error {
		for _, ev := range events {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := emit(ev); err != nil {
				return err
			}
		}
		return nil
	})
}
