package dispatch

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/pguedes/gesticle/utils"
)

const processCacheSize = 128

// AppContext reports the application owning the focused window
type AppContext interface {
	CurrentApp(ctx context.Context) (string, bool)
}

// NoAppContext never reports an application, so only global settings apply
type NoAppContext struct{}

func (NoAppContext) CurrentApp(context.Context) (string, bool) {
	return "", false
}

// StaticApp always reports the same application
type StaticApp string

func (s StaticApp) CurrentApp(context.Context) (string, bool) {
	return string(s), s != ""
}

// WindowContext finds the focused window's process through xdotool and
// resolves its name. Names are cached per pid and start time, so a reused
// pid is looked up again.
type WindowContext struct {
	Binary string
	Run    Runner

	// ProcessName resolves a pid to its executable name
	ProcessName func(ctx context.Context, pid int32) (string, error)

	// ProcessStart returns the creation time of pid in milliseconds
	ProcessStart func(ctx context.Context, pid int32) (int64, error)

	names *lru.Cache[int32, cachedProcess]
}

type cachedProcess struct {
	name    string
	started int64
}

// NewWindowContext creates a window context backed by xdotool and gopsutil
func NewWindowContext() *WindowContext {
	names, err := lru.New[int32, cachedProcess](processCacheSize)
	if err != nil {
		// only fails for a non-positive size
		panic(err)
	}

	return &WindowContext{
		Binary:       "xdotool",
		Run:          ExecRunner,
		ProcessName:  processName,
		ProcessStart: processStart,
		names:        names,
	}
}

func processName(ctx context.Context, pid int32) (string, error) {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return "", err
	}
	return proc.NameWithContext(ctx)
}

func processStart(ctx context.Context, pid int32) (int64, error) {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return 0, err
	}
	return proc.CreateTimeWithContext(ctx)
}

// ActivePID returns the pid owning the currently focused window
func (w *WindowContext) ActivePID(ctx context.Context) (int32, error) {
	output, err := w.Run(ctx, w.Binary, "getactivewindow", "getwindowpid")
	if err != nil {
		return 0, fmt.Errorf("failed to get active window: %v", err)
	}

	pid, err := strconv.ParseInt(strings.TrimSpace(string(output)), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("failed to parse window pid %q: %w", strings.TrimSpace(string(output)), err)
	}
	return int32(pid), nil
}

// CurrentApp returns the lowercased process name of the focused window.
// Detection failures are logged and yield no application context.
func (w *WindowContext) CurrentApp(ctx context.Context) (string, bool) {
	pid, err := w.ActivePID(ctx)
	if err != nil {
		utils.Error("could not detect current window: %v", err)
		return "", false
	}

	started, err := w.ProcessStart(ctx, pid)
	if err != nil {
		utils.Error("failed to read process start time for pid %d: %v", pid, err)
		return "", false
	}

	if cached, ok := w.names.Get(pid); ok && cached.started == started {
		return cached.name, true
	}

	name, err := w.ProcessName(ctx, pid)
	if err != nil {
		utils.Error("failed to read process name for pid %d: %v", pid, err)
		return "", false
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}

	w.names.Add(pid, cachedProcess{name: name, started: started})
	utils.Verbose("active window belongs to %s (pid %d)", name, pid)
	return name, true
}
