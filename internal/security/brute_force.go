// Package security holds protections shared by the login flow.
package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	LoginMaxAttempts = 5
	LoginWindow      = 15 * time.Minute
	LoginLockout     = 5 * time.Minute
	loginCleanup     = 60 * time.Second
	loginMaxRecords  = 10000
)

type failureRecord struct {
	attempts  int
	firstFail time.Time
	lockedAt  time.Time
}

// LoginGuard counts failed logins per username and locks a username out
// once it fails LoginMaxAttempts times within LoginWindow.
type LoginGuard struct {
	mu      sync.Mutex
	records map[string]*failureRecord
	log     *logrus.Logger
	now     func() time.Time
}

// NewLoginGuard creates a guard and starts a cleanup goroutine that stops
// when ctx is cancelled.
func NewLoginGuard(ctx context.Context, log *logrus.Logger) *LoginGuard {
	g := newLoginGuard(log, time.Now)
	go g.cleanupLoop(ctx)

	return g
}

func newLoginGuard(log *logrus.Logger, now func() time.Time) *LoginGuard {
	return &LoginGuard{records: make(map[string]*failureRecord), log: log, now: now}
}

// Usernames are compared case-insensitively and only their hash is kept.
func userKey(username string) string {
	h := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(username))))
	return hex.EncodeToString(h[:])
}

// IsLocked reports whether username is currently locked out.
func (g *LoginGuard) IsLocked(username string) bool {
	key := userKey(username)

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[key]
	if !ok || rec.lockedAt.IsZero() {
		return false
	}

	return g.now().Sub(rec.lockedAt) < LoginLockout
}

// RecordFailure counts a failed login for username.
func (g *LoginGuard) RecordFailure(username string) {
	key := userKey(username)
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	rec, ok := g.records[key]
	if !ok || now.Sub(rec.firstFail) > LoginWindow {
		g.records[key] = &failureRecord{attempts: 1, firstFail: now}
		return
	}

	rec.attempts++
	if rec.attempts >= LoginMaxAttempts && rec.lockedAt.IsZero() {
		rec.lockedAt = now
		g.log.WithField("user_hash", key[:16]).Warn("login locked out after repeated failures")
	}
}

// Reset clears the failures of username after a successful login.
func (g *LoginGuard) Reset(username string) {
	key := userKey(username)

	g.mu.Lock()
	delete(g.records, key)
	g.mu.Unlock()
}

func (g *LoginGuard) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(loginCleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.sweep()
		}
	}
}

// sweep drops expired lockouts and stale windows, then caps the table size.
func (g *LoginGuard) sweep() {
	now := g.now()

	g.mu.Lock()
	defer g.mu.Unlock()

	for k, rec := range g.records {
		if !rec.lockedAt.IsZero() && now.Sub(rec.lockedAt) >= LoginLockout {
			delete(g.records, k)
		} else if rec.lockedAt.IsZero() && now.Sub(rec.firstFail) >= LoginWindow {
			delete(g.records, k)
		}
	}

	if over := len(g.records) - loginMaxRecords; over > 0 {
		g.evictOldest(over)
	}
}

// evictOldest removes the n records with the oldest first failure.
// Caller must hold g.mu.
func (g *LoginGuard) evictOldest(n int) {
	type entry struct {
		key  string
		time time.Time
	}

	entries := make([]entry, 0, len(g.records))
	for k, rec := range g.records {
		entries = append(entries, entry{k, rec.firstFail})
	}

	slices.SortFunc(entries, func(a, b entry) int { return a.time.Compare(b.time) })

	for _, e := range entries[:n] {
		delete(g.records, e.key)
	}
}
