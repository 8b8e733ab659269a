package commands

import (
	"fmt"

	"github.com/pguedes/gesticle/handler"
)

const defaultRecentLimit = 20

// RecentRequest represents the parameters for listing handled gestures
type RecentRequest struct {
	Limit int `json:"limit,omitempty"`
}

// RecentCommand returns the most recently handled gestures, newest first
func RecentCommand(req RecentRequest) *CommandResponse {
	if history == nil {
		return NewErrorResponse(fmt.Errorf("no gesture history: daemon loop is not running"))
	}

	limit := req.Limit
	if limit <= 0 {
		limit = defaultRecentLimit
	}

	records := history.Recent(limit)
	if records == nil {
		records = []handler.Record{}
	}
	return NewSuccessResponse(records)
}
