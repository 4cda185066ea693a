package event_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/epicurean/epicurean/pkg/event"
)

func TestFireCallsListeners(t *testing.T) {
	defer event.Flush()

	var calls atomic.Int32
	event.Listen("order.created", func(payload interface{}) {
		calls.Add(1)
		if payload != "order-1" {
			t.Errorf("unexpected payload: %v", payload)
		}
	})
	event.Listen("order.created", func(payload interface{}) { calls.Add(1) })

	event.Fire("order.created", "order-1")
	if got := calls.Load(); got != 2 {
		t.Errorf("expected 2 calls, got %d", got)
	}
}

func TestFireUnknownEventIsNoop(t *testing.T) {
	defer event.Flush()
	event.Fire("order.vaporised", nil) // must not panic
}

func TestForget(t *testing.T) {
	defer event.Flush()

	var calls atomic.Int32
	token := event.Listen("order.status_changed", func(payload interface{}) { calls.Add(1) })
	event.Listen("order.status_changed", func(payload interface{}) { calls.Add(1) })

	event.Forget("order.status_changed", token)
	event.Fire("order.status_changed", nil)

	if got := calls.Load(); got != 1 {
		t.Errorf("expected only the surviving listener to run, got %d calls", got)
	}
}

func TestFireAsync(t *testing.T) {
	defer event.Flush()

	var wg sync.WaitGroup
	wg.Add(2)
	event.Listen("order.created", func(payload interface{}) { wg.Done() })
	event.Listen("order.created", func(payload interface{}) { wg.Done() })

	event.FireAsync("order.created", nil)

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("async listeners did not run")
	}
}
