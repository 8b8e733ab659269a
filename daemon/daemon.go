package daemon

import (
	"fmt"
	"os"

	"github.com/sevlyar/go-daemon"
)

// DaemonEnvVar is the environment variable that marks a daemon child process
const DaemonEnvVar = "GESTICLE_DAEMON_CHILD"

// Daemonize detaches the process and returns the child process handle.
// If the returned process is nil, this is the child process.
// If the returned process is non-nil, this is the parent process.
func Daemonize() (*os.Process, error) {
	// the child opens its own log file, so go-daemon gets none;
	// the working directory is kept so relative --config paths still resolve
	wd, err := os.Getwd()
	if err != nil {
		wd = "/"
	}

	ctx := &daemon.Context{
		WorkDir: wd,
		Umask:   027,
		Args:    os.Args,
		Env:     append(os.Environ(), fmt.Sprintf("%s=1", DaemonEnvVar)),
	}

	child, err := ctx.Reborn()
	if err != nil {
		return nil, fmt.Errorf("failed to daemonize: %w", err)
	}

	return child, nil
}

// IsChild returns true if this is the daemon child process
func IsChild() bool {
	return os.Getenv(DaemonEnvVar) == "1"
}
