package daemon

import "errors"

var (
	// ErrDaemonNotRunning indicates no gesticle daemon answered the request
	ErrDaemonNotRunning = errors.New("gesticle daemon is not running")

	// ErrReloadTimeout indicates the daemon did not answer within the timeout
	ErrReloadTimeout = errors.New("timed out waiting for the daemon")

	// ErrAlreadyRunning indicates another daemon owns the bus name
	ErrAlreadyRunning = errors.New("another gesticle daemon is already running")
)
