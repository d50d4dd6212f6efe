package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bamsammich/repoprep/internal/event"
)

const defaultEventBuffer = 1024

// Task is one operation running on its own goroutine.
type Task struct {
	events  chan event.Event
	done    chan struct{}
	wake    chan struct{}
	cancel  context.CancelFunc
	result  Result
	dropped atomic.Int64

	mu       sync.Mutex
	queue    []event.Event
	lossy    int // Progress and EntrySkipped events waiting in queue
	maxLossy int
	finished bool
}

func newTask(buf int, cancel context.CancelFunc) *Task {
	t := &Task{
		events:   make(chan event.Event),
		done:     make(chan struct{}),
		wake:     make(chan struct{}, 1),
		cancel:   cancel,
		maxLossy: buf,
	}
	go t.pump()
	return t
}

// Events returns the ordered event stream. It is closed after the terminal
// event has been received. Warnings, errors and terminal events are always
// delivered; Progress and EntrySkipped events may be dropped when the
// consumer falls behind. Callers should drain it, even after Wait.
func (t *Task) Events() <-chan event.Event { return t.events }

// Done is closed once the result is available. It does not wait for the
// consumer to drain Events.
func (t *Task) Done() <-chan struct{} { return t.done }

// Cancel asks the operation to stop at the next entry boundary. It is safe
// to call any number of times, from any goroutine, before or after the
// operation finishes.
func (t *Task) Cancel() { t.cancel() }

// Wait blocks until the operation finishes and returns its result.
func (t *Task) Wait() Result {
	<-t.done
	return t.result
}

// Dropped reports how many Progress and EntrySkipped events were discarded
// because the consumer fell behind. The result counters are unaffected.
func (t *Task) Dropped() int64 { return t.dropped.Load() }

// sheddable reports whether e may be dropped under backpressure.
func sheddable(e event.Event) bool {
	return e.Type == event.Progress || e.Type == event.EntrySkipped
}

// send never blocks the walk. Once more than maxLossy sheddable events are
// queued, further ones are dropped; everything else is queued regardless.
func (t *Task) send(e event.Event) {
	t.mu.Lock()
	if sheddable(e) {
		if t.lossy >= t.maxLossy {
			t.mu.Unlock()
			t.dropped.Add(1)
			return
		}
		t.lossy++
	}
	t.queue = append(t.queue, e)
	t.mu.Unlock()
	t.notify()
}

// finish marks the end of the stream. The pump closes Events once the
// queue drains.
func (t *Task) finish() {
	t.mu.Lock()
	t.finished = true
	t.mu.Unlock()
	t.notify()
}

func (t *Task) notify() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}

// pump moves queued events to the consumer in order.
func (t *Task) pump() {
	defer close(t.events)
	for {
		t.mu.Lock()
		if len(t.queue) == 0 {
			finished := t.finished
			t.mu.Unlock()
			if finished {
				return
			}
			<-t.wake
			continue
		}
		e := t.queue[0]
		t.queue[0] = event.Event{}
		t.queue = t.queue[1:]
		if sheddable(e) {
			t.lossy--
		}
		t.mu.Unlock()

		t.events <- e
	}
}
