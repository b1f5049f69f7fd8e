package lock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryLockerSerializes(t *testing.T) {
	l := newMemoryLocker()

	release, ok := l.TryLock(context.Background(), time.Second)
	require.True(t, ok)

	// Second acquire must time out while the first holder is alive.
	_, ok = l.TryLock(context.Background(), 50*time.Millisecond)
	require.False(t, ok)

	release()

	release2, ok := l.TryLock(context.Background(), time.Second)
	require.True(t, ok)
	release2()
}

func TestMemoryLockerReleaseIdempotent(t *testing.T) {
	l := newMemoryLocker()

	release, ok := l.TryLock(context.Background(), time.Second)
	require.True(t, ok)

	release()
	release() // second call must not unblock a phantom holder

	release2, ok := l.TryLock(context.Background(), time.Second)
	require.True(t, ok)

	_, ok = l.TryLock(context.Background(), 50*time.Millisecond)
	require.False(t, ok)
	release2()
}

func TestMemoryLockerHonoursContext(t *testing.T) {
	l := newMemoryLocker()

	release, ok := l.TryLock(context.Background(), time.Second)
	require.True(t, ok)
	defer release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok = l.TryLock(ctx, 10*time.Second)
	require.False(t, ok)
}
