package lock

import (
	"context"
	"time"
)

// memoryLocker is a channel-based mutex with a bounded wait.
type memoryLocker struct {
	ch chan struct{}
}

func newMemoryLocker() *memoryLocker {
	l := &memoryLocker{ch: make(chan struct{}, 1)}
	l.ch <- struct{}{}
	return l
}

func (l *memoryLocker) TryLock(ctx context.Context, wait time.Duration) (func(), bool) {
	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-l.ch:
		var released bool
		return func() {
			if released {
				return
			}
			released = true
			l.ch <- struct{}{}
		}, true
	case <-timer.C:
		return func() {}, false
	case <-ctx.Done():
		return func() {}, false
	}
}
