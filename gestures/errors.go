package gestures

import "errors"

var (
	// ErrGestureUnrecognized indicates the accumulated motion did not match any direction
	ErrGestureUnrecognized = errors.New("gesture not recognized")

	// ErrGestureCancelled indicates the end event was flagged as cancelled
	ErrGestureCancelled = errors.New("gesture cancelled")

	// ErrNoBuilder indicates an update or end arrived without a matching begin
	ErrNoBuilder = errors.New("no gesture in progress")
)
