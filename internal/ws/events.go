package ws

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	defaultLogMaxLen = 1000
	defaultLogMaxAge = time.Hour
)

// Event is the structured message sent to WebSocket clients.
type Event struct {
	Type     string          `json:"type"`
	ID       uint64          `json:"id"`
	TenantID string          `json:"-"`
	Data     json.RawMessage `json:"data"`
	Time     time.Time       `json:"time"`
}

// SubscribeMsg is sent by the client to request replay of missed events.
type SubscribeMsg struct {
	Type        string `json:"type"`
	LastEventID uint64 `json:"last_event_id"`
}

// ResetMsg tells the client to do a full refresh (requested events too old).
type ResetMsg struct {
	Type   string `json:"type"`
	Reason string `json:"reason"`
}

type tenantLog struct {
	seq    uint64
	events []Event
}

// EventLog numbers events per tenant and keeps the most recent ones for
// replay. Numbering and storage happen under one lock, so buffered order
// always matches id order.
type EventLog struct {
	mu      sync.RWMutex
	tenants map[string]*tenantLog
	maxLen  int
	maxAge  time.Duration
	now     func() time.Time
}

// NewEventLog creates an EventLog keeping at most maxLen events no older
// than maxAge per tenant.
func NewEventLog(maxLen int, maxAge time.Duration) *EventLog {
	return &EventLog{
		tenants: make(map[string]*tenantLog),
		maxLen:  maxLen,
		maxAge:  maxAge,
		now:     time.Now,
	}
}

// Append assigns the next id of the tenant's sequence to a new event and
// stores it.
func (l *EventLog) Append(tenantID, eventType string, data json.RawMessage) Event {
	l.mu.Lock()
	defer l.mu.Unlock()

	tl, ok := l.tenants[tenantID]
	if !ok {
		tl = &tenantLog{}
		l.tenants[tenantID] = tl
	}

	now := l.now()
	tl.seq++
	evt := Event{Type: eventType, ID: tl.seq, TenantID: tenantID, Data: data, Time: now}

	tl.events = append(l.trim(tl.events, now), evt)
	if over := len(tl.events) - l.maxLen; over > 0 {
		tl.events = tl.events[over:]
	}

	return evt
}

// trim drops events older than maxAge from the front.
func (l *EventLog) trim(events []Event, now time.Time) []Event {
	cutoff := now.Add(-l.maxAge)

	i := 0
	for i < len(events) && events[i].Time.Before(cutoff) {
		i++
	}

	return events[i:]
}

// Since returns the tenant's buffered events with id > lastEventID. ok is
// false when events after lastEventID have already been evicted, so a
// replay would have gaps.
func (l *EventLog) Since(tenantID string, lastEventID uint64) (events []Event, ok bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tl, found := l.tenants[tenantID]
	if !found {
		return nil, true
	}

	buf := l.trim(tl.events, l.now())
	if lastEventID >= tl.seq {
		return nil, true
	}

	if len(buf) == 0 || buf[0].ID > lastEventID+1 {
		return nil, false
	}

	start := int(lastEventID + 1 - buf[0].ID)
	out := make([]Event, len(buf)-start)
	copy(out, buf[start:])

	return out, true
}

// LastID returns the newest id issued for the tenant, or 0.
func (l *EventLog) LastID(tenantID string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if tl, ok := l.tenants[tenantID]; ok {
		return tl.seq
	}

	return 0
}
