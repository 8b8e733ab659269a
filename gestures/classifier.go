package gestures

import (
	"context"

	"github.com/pguedes/gesticle/utils"
)

// Classifier turns raw gesture-phase events into discrete gestures.
// It keeps one swipe and one pinch state and is not safe for concurrent use;
// a single goroutine should own it.
type Classifier struct {
	swipe    SwipeState
	pinch    PinchState
	triggers TriggerSource
}

// NewClassifier creates a classifier. triggers may be nil, in which case
// pinches never fire early.
func NewClassifier(triggers TriggerSource) *Classifier {
	return &Classifier{triggers: triggers}
}

// Feed applies one event and returns the gestures it produced, usually none
// or one. Suppressed outcomes are logged here.
func (c *Classifier) Feed(ev Event) []Gesture {
	var outcome Outcome

	if ev.Type.IsSwipe() {
		before := c.swipe
		c.swipe, outcome = c.swipe.Next(ev)
		c.report(ev, outcome, before.String())
	} else {
		var triggers Triggers
		if ev.Type == PinchBegin && c.triggers != nil {
			triggers = c.triggers.Triggers()
		}
		before := c.pinch
		c.pinch, outcome = c.pinch.Next(ev, triggers)
		c.report(ev, outcome, before.String())
	}

	if g, ok := outcome.Gesture(); ok {
		return []Gesture{g}
	}
	return nil
}

func (c *Classifier) report(ev Event, outcome Outcome, accumulated string) {
	switch outcome.Result {
	case ResultEmitted:
		utils.Verbose("recognized gesture %s", outcome.gesture)
	case ResultEarlyFired:
		utils.Verbose("pinch trigger reached, firing %s", outcome.gesture)
	case ResultFinished:
		utils.Verbose("pinch finished after firing early: %s", accumulated)
	case ResultCancelled:
		utils.Verbose("%s: %s", ErrGestureCancelled, accumulated)
	case ResultUnrecognized:
		utils.Warn("%s: %s", ErrGestureUnrecognized, accumulated)
	case ResultNoBuilder:
		utils.Verbose("ignoring %s: %s", ev.Type, ErrNoBuilder)
	}
}

// Run classifies events until the context is done or events is closed,
// sending every produced gesture to out. out is closed on return.
func (c *Classifier) Run(ctx context.Context, events <-chan Event, out chan<- Gesture) {
	defer close(out)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			for _, g := range c.Feed(ev) {
				select {
				case out <- g:
				case <-ctx.Done():
					return
				}
			}
		}
	}
}
