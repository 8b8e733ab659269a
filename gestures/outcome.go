package gestures

// Result describes what a state transition produced
type Result int

const (
	// ResultPending means the event was absorbed and nothing is ready yet
	ResultPending Result = iota
	// ResultEmitted means the gesture ended and was recognized
	ResultEmitted
	// ResultEarlyFired means a pinch crossed its trigger threshold mid-gesture
	ResultEarlyFired
	// ResultFinished means a gesture ended after already firing early
	ResultFinished
	// ResultCancelled means the end event was flagged cancelled
	ResultCancelled
	// ResultUnrecognized means the accumulated motion was ambiguous
	ResultUnrecognized
	// ResultNoBuilder means an update or end arrived with no gesture in progress
	ResultNoBuilder
)

func (r Result) String() string {
	switch r {
	case ResultPending:
		return "pending"
	case ResultEmitted:
		return "emitted"
	case ResultEarlyFired:
		return "early-fired"
	case ResultFinished:
		return "finished"
	case ResultCancelled:
		return "cancelled"
	case ResultUnrecognized:
		return "unrecognized"
	case ResultNoBuilder:
		return "no-builder"
	default:
		return "unknown"
	}
}

// Outcome is the optional gesture produced by a single transition
type Outcome struct {
	Result  Result
	gesture Gesture
}

func pending() Outcome {
	return Outcome{Result: ResultPending}
}

func emit(result Result, g Gesture) Outcome {
	return Outcome{Result: result, gesture: g}
}

// Gesture returns the produced gesture, if any
func (o Outcome) Gesture() (Gesture, bool) {
	if o.Result == ResultEmitted || o.Result == ResultEarlyFired {
		return o.gesture, true
	}
	return Gesture{}, false
}

// Err maps suppressed outcomes onto the package's sentinel errors
func (o Outcome) Err() error {
	switch o.Result {
	case ResultCancelled:
		return ErrGestureCancelled
	case ResultUnrecognized:
		return ErrGestureUnrecognized
	case ResultNoBuilder:
		return ErrNoBuilder
	default:
		return nil
	}
}
