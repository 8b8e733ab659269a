package handler

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/pguedes/gesticle/gestures"
	"github.com/pguedes/gesticle/source"
	"github.com/pguedes/gesticle/utils"
)

const defaultBuffer = 64

// Loop wires an event source through the classifier into the handler.
// Events are classified and gestures handled one at a time, in order.
type Loop struct {
	Source     source.EventSource
	Classifier *gestures.Classifier
	Handler    *GestureHandler
	Buffer     int
}

// Run processes events until ctx is done or the source ends. Cancellation
// through ctx is not an error; a live source going away is.
func (l *Loop) Run(ctx context.Context) error {
	buffer := l.Buffer
	if buffer <= 0 {
		buffer = defaultBuffer
	}

	events := make(chan gestures.Event, buffer)
	recognized := make(chan gestures.Gesture, buffer)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(events)
		return l.Source.Stream(gctx, func(ev gestures.Event) error {
			select {
			case events <- ev:
				return nil
			case <-gctx.Done():
				return gctx.Err()
			}
		})
	})

	g.Go(func() error {
		l.Classifier.Run(gctx, events, recognized)
		return nil
	})

	g.Go(func() error {
		for gesture := range recognized {
			utils.Verbose("triggered gesture: %s", gesture)
			l.Handler.Handle(gctx, gesture)
		}
		return nil
	})

	err := g.Wait()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, context.Canceled) && ctx.Err() != nil:
		return nil
	default:
		return err
	}
}
