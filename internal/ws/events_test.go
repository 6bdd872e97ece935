package ws

import (
	"encoding/json"
	"testing"
	"time"
)

func eventIDs(events []Event) []uint64 {
	out := make([]uint64, len(events))
	for i, e := range events {
		out[i] = e.ID
	}

	return out
}

func TestEventLogSequencesPerTenant(t *testing.T) {
	l := NewEventLog(10, time.Hour)

	a1 := l.Append("t1", "user.create", json.RawMessage(`{}`))
	b1 := l.Append("t2", "user.create", json.RawMessage(`{}`))
	a2 := l.Append("t1", "user.update", json.RawMessage(`{}`))

	if a1.ID != 1 || a2.ID != 2 || b1.ID != 1 {
		t.Errorf("ids = %d,%d,%d want 1,2,1", a1.ID, a2.ID, b1.ID)
	}

	if l.LastID("t1") != 2 || l.LastID("t3") != 0 {
		t.Errorf("LastID = %d/%d", l.LastID("t1"), l.LastID("t3"))
	}
}

func TestEventLogSince(t *testing.T) {
	l := NewEventLog(3, time.Hour)
	for range 5 {
		l.Append("t1", "x", nil)
	}

	tests := []struct {
		name   string
		last   uint64
		want   []uint64
		wantOK bool
	}{
		{"up to date", 5, nil, true},
		{"ahead", 9, nil, true},
		{"within buffer", 3, []uint64{4, 5}, true},
		{"exactly at oldest boundary", 2, []uint64{3, 4, 5}, true},
		{"evicted", 1, nil, false},
		{"from scratch after eviction", 0, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.Since("t1", tt.last)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}

			if ids := eventIDs(got); len(ids) != len(tt.want) {
				t.Errorf("ids = %v, want %v", ids, tt.want)
			} else {
				for i := range ids {
					if ids[i] != tt.want[i] {
						t.Errorf("ids = %v, want %v", ids, tt.want)
						break
					}
				}
			}
		})
	}

	if got, ok := l.Since("unknown", 0); !ok || got != nil {
		t.Errorf("unknown tenant = %v, %v", got, ok)
	}
}

func TestEventLogAgesOut(t *testing.T) {
	l := NewEventLog(100, time.Minute)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Append("t1", "x", nil)
	l.Append("t1", "x", nil)

	now = now.Add(2 * time.Minute)

	if _, ok := l.Since("t1", 0); ok {
		t.Error("aged-out events should force a reset")
	}

	l.Append("t1", "x", nil)

	got, ok := l.Since("t1", 2)
	if !ok || len(got) != 1 || got[0].ID != 3 {
		t.Errorf("Since = %v, %v; want [3]", eventIDs(got), ok)
	}
}
