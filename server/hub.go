package server

import (
	"sync"

	"github.com/pguedes/gesticle/handler"
	"github.com/pguedes/gesticle/utils"
)

const subscriberBuffer = 32

type subscriber struct {
	records chan handler.Record
	conn    *wsConnection
}

// Hub fans handled gesture records out to websocket subscribers. Slow
// subscribers lose records instead of stalling the gesture loop.
type Hub struct {
	mu     sync.Mutex
	subs   map[*subscriber]struct{}
	closed bool
}

func NewHub() *Hub {
	return &Hub{subs: make(map[*subscriber]struct{})}
}

// Publish implements handler.Publisher
func (h *Hub) Publish(rec handler.Record) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subs {
		select {
		case sub.records <- rec:
		default:
			utils.Verbose("dropping gesture record %s for slow subscriber", rec.ID)
		}
	}
}

func (h *Hub) subscribe(conn *wsConnection) (*subscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, false
	}

	sub := &subscriber{records: make(chan handler.Record, subscriberBuffer), conn: conn}
	h.subs[sub] = struct{}{}
	go sub.forward()
	return sub, true
}

func (h *Hub) unsubscribe(sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subs[sub]; ok {
		delete(h.subs, sub)
		close(sub.records)
	}
}

// Count returns the number of live subscribers
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Close drops every subscriber and closes their connections
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for sub := range h.subs {
		delete(h.subs, sub)
		close(sub.records)
		_ = sub.conn.conn.Close()
	}
}

func (s *subscriber) forward() {
	for rec := range s.records {
		if err := s.conn.sendNotification(NotificationGestureHandled, rec); err != nil {
			utils.Verbose("failed to send gesture record: %v", err)
		}
	}
}
