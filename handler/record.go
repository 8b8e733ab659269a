package handler

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pguedes/gesticle/gestures"
)

// Outcome summarizes what happened to a handled gesture
type Outcome string

const (
	OutcomeDispatched   Outcome = "dispatched"
	OutcomeDisabled     Outcome = "disabled"
	OutcomeUnconfigured Outcome = "unconfigured"
	OutcomeFailed       Outcome = "failed"
)

// Record describes one handled gesture
type Record struct {
	ID      string           `json:"id"`
	Time    time.Time        `json:"time"`
	Setting string           `json:"setting"`
	Gesture gestures.Gesture `json:"gesture"`
	App     string           `json:"app,omitempty"`
	Action  string           `json:"action,omitempty"`
	Outcome Outcome          `json:"outcome"`
	Error   string           `json:"error,omitempty"`
}

func newRecord(g gestures.Gesture, app string) Record {
	return Record{
		ID:      uuid.New().String(),
		Time:    time.Now(),
		Setting: g.SettingKey(),
		Gesture: g,
		App:     app,
	}
}

// Publisher receives every handled gesture record. Publish must not block.
type Publisher interface {
	Publish(rec Record)
}

// PublisherFunc adapts a function to the Publisher interface
type PublisherFunc func(rec Record)

func (f PublisherFunc) Publish(rec Record) {
	f(rec)
}

// Publishers fans a record out to several publishers
type Publishers []Publisher

func (p Publishers) Publish(rec Record) {
	for _, pub := range p {
		if pub != nil {
			pub.Publish(rec)
		}
	}
}

// History keeps the most recent records in memory
type History struct {
	mu      sync.Mutex
	records []Record
	limit   int
}

// NewHistory creates a history holding at most limit records
func NewHistory(limit int) *History {
	if limit <= 0 {
		limit = 1
	}
	return &History{limit: limit}
}

func (h *History) Publish(rec Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.records = append(h.records, rec)
	if len(h.records) > h.limit {
		h.records = h.records[len(h.records)-h.limit:]
	}
}

// Recent returns up to n records, newest first. n <= 0 returns all.
func (h *History) Recent(n int) []Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	if n <= 0 || n > len(h.records) {
		n = len(h.records)
	}

	out := make([]Record, 0, n)
	for i := len(h.records) - 1; i >= len(h.records)-n; i-- {
		out = append(out, h.records[i])
	}
	return out
}
