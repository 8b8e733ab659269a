package daemon

import (
	"fmt"
	"io"
	"sync"

	"github.com/pguedes/gesticle/utils"
)

// ShutdownHook collects the resources a running daemon must release when it
// stops: the bus name, the control server, the log file.
type ShutdownHook struct {
	mu    sync.Mutex
	hooks []namedHook
}

type namedHook struct {
	name string
	fn   func() error
}

func NewShutdownHook() *ShutdownHook {
	return &ShutdownHook{}
}

// Register adds a cleanup function. Cleanups run in reverse registration
// order, so later resources may depend on earlier ones.
func (s *ShutdownHook) Register(name string, cleanupFn func() error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, namedHook{name: name, fn: cleanupFn})
	utils.Verbose("registered shutdown hook: %s", name)
}

// RegisterCloser registers c.Close under name
func (s *ShutdownHook) RegisterCloser(name string, c io.Closer) {
	if c == nil {
		return
	}
	s.Register(name, c.Close)
}

// Shutdown runs every cleanup, continuing past failures, and clears the list
func (s *ShutdownHook) Shutdown() error {
	s.mu.Lock()
	hooks := s.hooks
	s.hooks = nil
	s.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		hook := hooks[i]
		utils.Verbose("running shutdown hook: %s", hook.name)
		if err := hook.fn(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", hook.name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown failed with %d error(s): %v", len(errs), errs)
	}
	return nil
}

// Count returns the number of pending cleanups
func (s *ShutdownHook) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.hooks)
}
