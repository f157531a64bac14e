package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testJob struct {
	executed *int32
	done     chan struct{}
}

func (j *testJob) Process(ctx context.Context) error {
	atomic.AddInt32(j.executed, 1)
	if j.done != nil {
		j.done <- struct{}{}
	}
	return nil
}

func waitN(t *testing.T, ch <-chan struct{}, n int) {
	t.Helper()
	timeout := time.After(TestWaitTimeout)
	for i := 0; i < n; i++ {
		select {
		case <-ch:
		case <-timeout:
			t.Fatalf("timed out after %d of %d jobs", i, n)
		}
	}
}

func TestPool(t *testing.T) {
	var executed int32
	done := make(chan struct{}, TestQueueSize)
	pool := NewPool(TestWorkerCount, TestQueueSize)
	pool.Start()

	job := &testJob{executed: &executed, done: done}
	pool.Enqueue(job)
	pool.Enqueue(job)

	waitN(t, done, TestExpectedJobCount)
	pool.Stop()

	assert.Equal(t, int32(TestExpectedJobCount), atomic.LoadInt32(&executed))
}

func TestPool_TryEnqueueFullQueue(t *testing.T) {
	// Not started: nothing drains the queue.
	pool := NewPool(1, 1)
	var executed int32

	assert.True(t, pool.TryEnqueue(&testJob{executed: &executed}))
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}), "second job must be dropped")

	pool.Stop()
	assert.False(t, pool.TryEnqueue(&testJob{executed: &executed}), "stopped pool rejects jobs")
}

func TestPool_FailingJobDoesNotKillWorker(t *testing.T) {
	done := make(chan struct{}, 2)
	pool := NewPool(1, 2)
	pool.Start()
	defer pool.Stop()

	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		done <- struct{}{}
		return errors.New("boom")
	}))
	pool.Enqueue(JobFunc(func(ctx context.Context) error {
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		done <- struct{}{}
		return nil
	}))

	waitN(t, done, 2)
}

func TestPool_StopIsIdempotent(t *testing.T) {
	pool := NewPool(1, 1)
	pool.Start()
	pool.Stop()
	assert.NotPanics(t, pool.Stop)
}
