package security

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestGuard() (*LoginGuard, *fakeClock) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	clock := &fakeClock{t: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}

	return newLoginGuard(log, clock.now), clock
}

func TestLoginGuard_LocksAfterMaxFailures(t *testing.T) {
	g, _ := newTestGuard()

	for range LoginMaxAttempts - 1 {
		g.RecordFailure("admin@system.com")
	}

	if g.IsLocked("admin@system.com") {
		t.Fatal("locked before max failures")
	}

	g.RecordFailure("admin@system.com")

	if !g.IsLocked("admin@system.com") {
		t.Fatal("not locked after max failures")
	}

	if !g.IsLocked("  ADMIN@system.com ") {
		t.Error("username comparison should ignore case and surrounding space")
	}

	if g.IsLocked("other@system.com") {
		t.Error("unrelated username locked")
	}
}

func TestLoginGuard_ResetClearsFailures(t *testing.T) {
	g, _ := newTestGuard()

	for range LoginMaxAttempts {
		g.RecordFailure("u")
	}

	g.Reset("u")

	if g.IsLocked("u") {
		t.Fatal("locked after reset")
	}
}

func TestLoginGuard_LockoutExpires(t *testing.T) {
	g, clock := newTestGuard()

	for range LoginMaxAttempts {
		g.RecordFailure("u")
	}

	clock.advance(LoginLockout - time.Second)
	if !g.IsLocked("u") {
		t.Fatal("lockout ended early")
	}

	clock.advance(2 * time.Second)
	if g.IsLocked("u") {
		t.Fatal("lockout did not expire")
	}
}

func TestLoginGuard_WindowRestartsCount(t *testing.T) {
	g, clock := newTestGuard()

	for range LoginMaxAttempts - 1 {
		g.RecordFailure("u")
	}

	clock.advance(LoginWindow + time.Minute)
	g.RecordFailure("u")

	if g.IsLocked("u") {
		t.Fatal("failures outside the window should not accumulate")
	}
}

func TestLoginGuard_SweepDropsStaleRecords(t *testing.T) {
	g, clock := newTestGuard()

	g.RecordFailure("stale")

	for range LoginMaxAttempts {
		g.RecordFailure("locked")
	}

	clock.advance(LoginWindow)
	g.sweep()

	if n := len(g.records); n != 0 {
		t.Errorf("records after sweep = %d, want 0", n)
	}
}
