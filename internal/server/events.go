// internal/server/events.go
package server

import (
	"sync"
	"time"
)

// MatchEvent is one ranked match announcement pushed to connected
// event stream clients.
type MatchEvent struct {
	CampaignID string    `json:"campaignId"`
	AthleteID  string    `json:"athleteId"`
	MatchScore float64   `json:"matchScore"`
	Confidence string    `json:"confidence"`
	OccurredAt time.Time `json:"occurredAt"`
}

// eventHub fans match events out to subscribed streams. Publish never
// blocks; a subscriber whose buffer is full misses the event.
type eventHub struct {
	mu   sync.Mutex
	subs map[chan MatchEvent]struct{}
}

func newEventHub() *eventHub {
	return &eventHub{subs: make(map[chan MatchEvent]struct{})}
}

func (h *eventHub) subscribe() chan MatchEvent {
	ch := make(chan MatchEvent, 16)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *eventHub) unsubscribe(ch chan MatchEvent) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
}

func (h *eventHub) publish(event MatchEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}
