package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/bamsammich/repoprep/internal/event"
	"github.com/bamsammich/repoprep/internal/rules"
	"github.com/bamsammich/repoprep/internal/stats"
)

// DefaultProgressEvery is how many copied files separate Progress events.
const DefaultProgressEvery = 100

// Request describes a copy operation.
type Request struct {
	Src           string
	Dst           string
	Rules         *rules.Set // nil means rules.Default()
	ProgressEvery int        // <= 0 means DefaultProgressEvery
	Verify        bool       // re-hash every copied file after the walk
	BWLimit       int64      // bytes/sec, 0 = unlimited
	EventBuffer   int        // Start only; queued Progress/EntrySkipped cap, <= 0 means 1024
}

// Result is the terminal outcome of an operation. It is authoritative for
// counts even when events were dropped.
type Result struct {
	Err          error
	Stats        stats.Snapshot
	FilesCopied  int64
	ItemsSkipped int64
	DirsCreated  int64
	Status       Status
	ErrorKind    ErrorKind
	Success      bool
}

// Engine runs copy operations, one at a time.
type Engine struct {
	active atomic.Bool
}

// New creates an idle Engine.
func New() *Engine {
	return &Engine{}
}

// Running reports whether an operation is in progress.
func (e *Engine) Running() bool {
	return e.active.Load()
}

// Run executes a copy operation, blocking until complete. fn, if non-nil, is
// called synchronously for every event in processing order.
func (e *Engine) Run(ctx context.Context, req Request, fn event.Func) Result {
	if !e.active.CompareAndSwap(false, true) {
		return Result{
			Status:    StatusFailed,
			ErrorKind: Busy,
			Err:       ErrBusy,
		}
	}
	defer e.active.Store(false)

	return run(ctx, req, fn)
}

// Start launches a copy operation on a dedicated goroutine. It returns
// ErrBusy if another operation is active on e.
func (e *Engine) Start(ctx context.Context, req Request) (*Task, error) {
	if !e.active.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}

	buf := req.EventBuffer
	if buf <= 0 {
		buf = defaultEventBuffer
	}

	ctx, cancel := context.WithCancel(ctx)
	t := newTask(buf, cancel)

	go func() {
		defer cancel()
		t.result = run(ctx, req, t.send)
		e.active.Store(false)
		t.finish()
		close(t.done)
	}()

	return t, nil
}

func run(ctx context.Context, req Request, fn event.Func) Result {
	op := newOperation(req, fn)

	if err := ctx.Err(); err != nil {
		return op.cancelled(err)
	}

	if err := op.prepare(); err != nil {
		return op.failed(err)
	}

	slog.Debug("starting copy",
		"src", op.srcRoot,
		"dst", op.dstRoot,
		"progress_every", op.progressEvery,
		"verify", op.verify,
		"bwlimit", req.BWLimit,
	)

	if err := op.walkRoot(ctx); err != nil {
		if isCancel(err) {
			return op.cancelled(err)
		}
		return op.failed(err)
	}

	if op.verify {
		if err := op.verifyCopied(ctx); err != nil {
			return op.cancelled(err)
		}
	}

	return op.completed()
}

func (op *operation) result(status Status, kind ErrorKind, err error) Result {
	snap := op.stats.Snapshot()
	return Result{
		Err:          err,
		Stats:        snap,
		FilesCopied:  snap.FilesCopied,
		ItemsSkipped: snap.ItemsSkipped,
		DirsCreated:  snap.DirsCreated,
		Status:       status,
		ErrorKind:    kind,
		Success:      status == StatusSucceeded,
	}
}

func (op *operation) completed() Result {
	res := op.result(StatusSucceeded, KindNone, nil)
	op.emit(event.Event{
		Type:  event.OperationCompleted,
		Level: event.LevelInfo,
		Count: res.FilesCopied,
		Message: fmt.Sprintf("Operation completed: %d files copied, %d items skipped, %d directories created",
			res.FilesCopied, res.ItemsSkipped, res.DirsCreated),
	})
	return res
}

func (op *operation) cancelled(err error) Result {
	op.tmp.cleanup()
	res := op.result(StatusCancelled, KindNone, err)
	op.emit(event.Event{
		Type:  event.OperationCancelled,
		Level: event.LevelWarn,
		Count: res.FilesCopied,
		Message: fmt.Sprintf("Operation cancelled: %d files copied, %d items skipped",
			res.FilesCopied, res.ItemsSkipped),
	})
	return res
}

func (op *operation) failed(err error) Result {
	op.tmp.cleanup()
	kind := SourceUnreadable
	var fe *fatalError
	if errors.As(err, &fe) {
		kind = fe.kind
	}
	op.emit(event.Event{
		Type:    event.OperationFailed,
		Level:   event.LevelError,
		Err:     err,
		Message: "Error: " + err.Error(),
	})
	return op.result(StatusFailed, kind, err)
}
