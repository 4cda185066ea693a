package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/epicurean/epicurean/pkg/queue"
)

// ─── Job types ────────────────────────────────────────────────────────────────

var (
	emailsSent   atomic.Int32
	failAttempts atomic.Int32
)

type emailJob struct {
	OrderID string
}

func (j *emailJob) Handle() error {
	emailsSent.Add(1)
	return nil
}

type failJob struct{}

func (j *failJob) Handle() error {
	failAttempts.Add(1)
	return errors.New("smtp down")
}

func init() {
	queue.Register("*queue_test.emailJob", func() queue.Job { return &emailJob{} })
	queue.Register("*queue_test.failJob", func() queue.Job { return &failJob{} })
	queue.StartWorkers(context.Background(), 2)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not reached in time")
}

// ─── Tests ────────────────────────────────────────────────────────────────────

func TestDispatchAndProcess(t *testing.T) {
	before := emailsSent.Load()
	if err := queue.Dispatch(&emailJob{OrderID: "order-1"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, func() bool { return emailsSent.Load() > before })
}

func TestFailedJobRecorded(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	before := len(queue.FailedJobs())
	if err := queue.Dispatch(&failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, func() bool { return len(queue.FailedJobs()) > before })

	failed := queue.FailedJobs()
	last := failed[len(failed)-1]
	if last.Err == nil {
		t.Error("expected failure cause to be recorded")
	}
	if failAttempts.Load() == 0 {
		t.Error("expected the job to have run")
	}
}

func TestDispatchAfter(t *testing.T) {
	before := emailsSent.Load()
	queue.DispatchAfter(&emailJob{OrderID: "order-2"}, 50*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	if emailsSent.Load() > before {
		t.Error("job ran before its delay elapsed")
	}
	waitFor(t, func() bool { return emailsSent.Load() > before })
}
