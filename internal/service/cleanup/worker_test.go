package cleanup

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingEvictor struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (c *countingEvictor) CleanupIdleSessions(idle time.Duration) int {
	c.idle.Store(int64(idle))
	c.calls.Add(1)
	return 0
}

func TestWorkerSweepsUntilCancelled(t *testing.T) {
	evictor := &countingEvictor{}
	w := NewWorker(evictor, time.Hour, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return evictor.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Equal(t, int64(time.Hour), evictor.idle.Load())
}
