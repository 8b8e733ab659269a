//go:build windows

package utils

import (
	"os/exec"
)

// ConfigureDetachedProcAttr is a no-op on Windows; context cancellation
// stops the child
func ConfigureDetachedProcAttr(cmd *exec.Cmd) {}
