package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/pguedes/gesticle/gestures"
	"github.com/pguedes/gesticle/utils"
)

// DefaultDebugEventsCommand is the libinput tool that prints touchpad events
var DefaultDebugEventsCommand = []string{"libinput", "debug-events"}

var (
	gestureLineRe = regexp.MustCompile(`GESTURE_(SWIPE|PINCH|HOLD)_(BEGIN|UPDATE|END)\s+\+?[0-9.]+s\s+(\d+)(.*)$`)
	deltaRe       = regexp.MustCompile(`^\s*(-?[0-9.]+)/\s*(-?[0-9.]+)`)
	pinchRe       = regexp.MustCompile(`\)\s+(-?[0-9.]+)\s+@\s+(-?[0-9.]+)`)
)

var lineEventTypes = map[string]gestures.EventType{
	"SWIPE_BEGIN":  gestures.SwipeBegin,
	"SWIPE_UPDATE": gestures.SwipeUpdate,
	"SWIPE_END":    gestures.SwipeEnd,
	"PINCH_BEGIN":  gestures.PinchBegin,
	"PINCH_UPDATE": gestures.PinchUpdate,
	"PINCH_END":    gestures.PinchEnd,
}

// ParseDebugEventsLine parses one line of `libinput debug-events` output.
// ok is false for lines that carry no swipe or pinch event; err is set for
// gesture lines that could not be understood.
func ParseDebugEventsLine(line string) (ev gestures.Event, ok bool, err error) {
	m := gestureLineRe.FindStringSubmatch(line)
	if m == nil || m[1] == "HOLD" {
		return gestures.Event{}, false, nil
	}

	typ := lineEventTypes[m[1]+"_"+m[2]]
	fingers, err := strconv.Atoi(m[3])
	if err != nil {
		return gestures.Event{}, false, fmt.Errorf("invalid finger count in %q: %w", line, err)
	}

	ev = gestures.Event{Type: typ, Fingers: fingers}
	rest := m[4]

	switch typ {
	case gestures.SwipeBegin, gestures.PinchBegin:
		ev.Scale = 1.0

	case gestures.SwipeUpdate, gestures.PinchUpdate:
		d := deltaRe.FindStringSubmatch(rest)
		if d == nil {
			return gestures.Event{}, false, fmt.Errorf("missing motion delta in %q", line)
		}
		if ev.DX, err = strconv.ParseFloat(d[1], 64); err != nil {
			return gestures.Event{}, false, fmt.Errorf("invalid dx in %q: %w", line, err)
		}
		if ev.DY, err = strconv.ParseFloat(d[2], 64); err != nil {
			return gestures.Event{}, false, fmt.Errorf("invalid dy in %q: %w", line, err)
		}

		if typ == gestures.PinchUpdate {
			p := pinchRe.FindStringSubmatch(rest)
			if p == nil {
				return gestures.Event{}, false, fmt.Errorf("missing scale and angle in %q", line)
			}
			if ev.Scale, err = strconv.ParseFloat(p[1], 64); err != nil {
				return gestures.Event{}, false, fmt.Errorf("invalid scale in %q: %w", line, err)
			}
			if ev.AngleDelta, err = strconv.ParseFloat(p[2], 64); err != nil {
				return gestures.Event{}, false, fmt.Errorf("invalid angle in %q: %w", line, err)
			}
		}

	case gestures.SwipeEnd, gestures.PinchEnd:
		ev.Cancelled = strings.Contains(rest, "cancelled")
	}

	return ev, true, nil
}

// ScanDebugEvents parses debug-events output from r. Malformed gesture
// lines are logged and skipped.
func ScanDebugEvents(ctx context.Context, r io.Reader, emit func(gestures.Event) error) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		ev, ok, err := ParseDebugEventsLine(scanner.Text())
		if err != nil {
			utils.Warn("skipping event line: %v", err)
			continue
		}
		if !ok {
			continue
		}

		if err := emit(ev); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read events: %w", err)
	}
	return nil
}

// DebugEvents reads touchpad gestures from a running `libinput debug-events`
type DebugEvents struct {
	Command []string
}

// NewDebugEvents creates a source using DefaultDebugEventsCommand
func NewDebugEvents() *DebugEvents {
	return &DebugEvents{Command: DefaultDebugEventsCommand}
}

// Stream starts the command and parses its output until ctx is done. The
// process is killed when the context is cancelled.
func (d *DebugEvents) Stream(ctx context.Context, emit func(gestures.Event) error) error {
	if len(d.Command) == 0 {
		return errors.New("no debug-events command configured")
	}

	// #nosec G204 - command comes from our own defaults or flags
	cmd := exec.CommandContext(ctx, d.Command[0], d.Command[1:]...)
	utils.ConfigureDetachedProcAttr(cmd)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("failed to open %s output: %w", d.Command[0], err)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", strings.Join(d.Command, " "), err)
	}
	utils.Verbose("reading gestures from %s (pid %d)", strings.Join(d.Command, " "), cmd.Process.Pid)

	scanErr := ScanDebugEvents(ctx, stdout, emit)
	if scanErr != nil {
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	if scanErr != nil {
		return scanErr
	}
	if waitErr != nil {
		return fmt.Errorf("%s exited: %w", d.Command[0], waitErr)
	}
	return ErrSourceClosed
}
