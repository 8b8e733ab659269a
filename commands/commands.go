package commands

import (
	"errors"

	"github.com/pguedes/gesticle/configuration"
	"github.com/pguedes/gesticle/handler"
)

// ErrNotLoaded is returned by commands that need a configuration before
// SetResolver was called
var ErrNotLoaded = errors.New("configuration is not loaded")

// CommandResponse represents a standardized response format for all commands
type CommandResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) *CommandResponse {
	return &CommandResponse{
		Status: "ok",
		Data:   data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(err error) *CommandResponse {
	return &CommandResponse{
		Status: "error",
		Error:  err.Error(),
	}
}

// IsError reports whether the response carries an error
func (r *CommandResponse) IsError() bool {
	return r.Status == "error"
}

// resolver is the configuration shared by the daemon loop, the control
// server and the CLI. It is set once at startup via SetResolver.
var resolver *configuration.Resolver

// history holds recently handled gestures, when a daemon is running
var history *handler.History

// SetResolver sets the configuration used by every command
func SetResolver(r *configuration.Resolver) {
	resolver = r
}

// GetResolver returns the current configuration, nil before SetResolver
func GetResolver() *configuration.Resolver {
	return resolver
}

// SetHistory sets the record history served by RecentCommand
func SetHistory(h *handler.History) {
	history = h
}

// GetHistory returns the current record history, nil when not running
func GetHistory() *handler.History {
	return history
}

func requireResolver() (*configuration.Resolver, error) {
	if resolver == nil {
		return nil, ErrNotLoaded
	}
	return resolver, nil
}
