package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/projectdesk/projectdesk-api/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestEnqueueProcessesJob(t *testing.T) {
	logger.Setup("test")
	w := NewWorker(1)
	t.Cleanup(w.Shutdown)

	done := make(chan struct{})
	w.Enqueue(func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("queued job never ran")
	}
}

func TestEnqueueFallsBackToSynchronousWhenQueueFull(t *testing.T) {
	logger.Setup("test")
	w := NewWorker(0) // nothing drains the queue
	t.Cleanup(w.Shutdown)

	for i := 0; i < 100; i++ {
		w.Enqueue(func(ctx context.Context) error { return nil })
	}

	ran := false
	w.Enqueue(func(ctx context.Context) error {
		ran = true
		return nil
	})
	assert.True(t, ran, "job past queue capacity should run in the caller")
}

func TestScheduleAtRunsOnce(t *testing.T) {
	logger.Setup("test")
	w := NewWorker(0)
	t.Cleanup(w.Shutdown)

	done := make(chan struct{})
	w.ScheduleAt(time.Now().Add(10*time.Millisecond), func(ctx context.Context) error {
		close(done)
		return nil
	})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled job never ran")
	}
}
