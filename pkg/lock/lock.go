// Package lock provides the global mutual-exclusion lock serializing every
// sheet request. The lock is deliberately coarse: one request at a time
// across ALL collections, matching the consistency model of the
// whole-collection read-modify-write writes layered on top of it.
//
// Two drivers are available:
//   - "memory" — in-process lock, the default for single-replica installs
//   - "redis"  — SET NX lock shared across replicas
//
// Boot once at startup:
//
//	lock.Connect()
//	release, ok := lock.Global().TryLock(ctx, 10*time.Second)
package lock

import (
	"context"
	"time"

	"cofoodie/config"
	"cofoodie/pkg/logger"
)

// Locker is the global-lock driver interface.
type Locker interface {
	// TryLock waits up to wait for the lock. On success it returns a release
	// function and true; on timeout it returns a no-op release and false.
	// Release must be safe to call exactly once, including on error paths.
	TryLock(ctx context.Context, wait time.Duration) (release func(), ok bool)
}

var global Locker = newMemoryLocker()

// Connect selects the lock driver from config. Falls back to the in-process
// lock when redis is configured but unreachable, so a dead redis never takes
// the endpoint down with it.
func Connect() {
	if config.LockDriver() != "redis" {
		global = newMemoryLocker()
		return
	}

	r, err := newRedisLocker()
	if err != nil {
		logger.Warn("lock: redis unavailable, using in-process lock", "error", err)
		global = newMemoryLocker()
		return
	}
	global = r
}

// Global returns the configured global locker.
func Global() Locker {
	return global
}

// Register swaps in a custom Locker. Tests use this to observe lock traffic.
func Register(l Locker) {
	global = l
}
