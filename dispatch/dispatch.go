package dispatch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/pguedes/gesticle/utils"
)

// ErrDispatchFailure wraps every failure to deliver an action
var ErrDispatchFailure = errors.New("failed to dispatch action")

// Dispatcher executes a configured action string, such as a key sequence
type Dispatcher interface {
	Dispatch(ctx context.Context, action string) error
}

// DispatcherFunc adapts a function to the Dispatcher interface
type DispatcherFunc func(ctx context.Context, action string) error

func (f DispatcherFunc) Dispatch(ctx context.Context, action string) error {
	return f(ctx, action)
}

// Runner runs an external command and returns its combined output
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec
func ExecRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	// #nosec G204 - arguments are key sequences from the user's configuration
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// KeyDispatcher sends key sequences to the focused window through xdotool.
// An action may hold several space separated sequences, sent in order.
type KeyDispatcher struct {
	Binary string
	Run    Runner
}

// NewKeyDispatcher creates a dispatcher using the xdotool on PATH
func NewKeyDispatcher() *KeyDispatcher {
	return &KeyDispatcher{Binary: "xdotool", Run: ExecRunner}
}

func (k *KeyDispatcher) Dispatch(ctx context.Context, action string) error {
	keys := strings.Fields(action)
	if len(keys) == 0 {
		return fmt.Errorf("%w: empty action", ErrDispatchFailure)
	}

	args := append([]string{"key", "--clearmodifiers"}, keys...)
	utils.Verbose("sending key sequence: %s %s", k.Binary, strings.Join(args, " "))

	output, err := k.Run(ctx, k.Binary, args...)
	if err != nil {
		return fmt.Errorf("%w %q: %v\nOutput: %s", ErrDispatchFailure, action, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// DryRun only logs the actions it would have performed
type DryRun struct{}

func (DryRun) Dispatch(_ context.Context, action string) error {
	utils.Info("dry run: would send %q", action)
	return nil
}
