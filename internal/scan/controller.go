// Package scan drives a duplicate-file scan on a dedicated worker goroutine,
// reporting 0-100 progress and delivering exactly one terminal event.
package scan

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/dupehound/dupehound/internal/catalog"
	"github.com/dupehound/dupehound/internal/dupes"
	"github.com/rs/zerolog"
)

// Events receives asynchronous notifications from the scan worker. Progress
// may still arrive after Cancel was requested; the terminal call (exactly
// one of Completed, Failed or Cancelled) is authoritative. Implementations
// are called from the worker goroutine.
type Events interface {
	Progress(percent int)
	Completed(result dupes.Result, filesSeen int)
	Failed(err error)
	Cancelled()
}

// takeoverGrace bounds how long a new scan waits for the previous worker to
// observe cancellation before abandoning it.
const takeoverGrace = 3 * time.Second

// Controller runs at most one scan at a time. Starting a new scan cancels
// the previous one first.
type Controller struct {
	log zerolog.Logger

	mu     sync.Mutex
	active *Handle
}

func NewController(log zerolog.Logger) *Controller {
	return &Controller{log: log}
}

// Handle identifies one in-flight scan.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	term   sync.Once
}

// Cancel requests cancellation. Idempotent; a no-op after the scan settled.
func (h *Handle) Cancel() { h.cancel() }

// Done is closed once the scan reached a terminal state.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the scan reached a terminal state.
func (h *Handle) Wait() { <-h.done }

// Scan validates root and starts the worker. Validation failures (missing
// directory, insufficient access) are returned synchronously and no worker
// starts. Everything after that is reported through ev.
func (c *Controller) Scan(root string, opts catalog.Options, ev Events) (*Handle, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan root: %w", err)
	}
	if !st.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", root)
	}
	if err := checkAccess(root); err != nil {
		return nil, fmt.Errorf("scan root %s: %w", root, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	h := &Handle{cancel: cancel, done: make(chan struct{})}

	c.mu.Lock()
	if prev := c.active; prev != nil {
		prev.Cancel()
		select {
		case <-prev.done:
		case <-time.After(takeoverGrace):
			c.log.Warn().Msg("previous scan did not settle in time, abandoning it")
		}
	}
	c.active = h
	c.mu.Unlock()

	go c.run(ctx, h, root, opts, ev)
	return h, nil
}

func (c *Controller) run(ctx context.Context, h *Handle, root string, opts catalog.Options, ev Events) {
	defer func() {
		// done must close before taking the mutex: a takeover in Scan waits
		// on it while holding c.mu.
		close(h.done)
		c.mu.Lock()
		if c.active == h {
			c.active = nil
		}
		c.mu.Unlock()
	}()

	progress := monotonic(ev.Progress)
	progress(0)

	started := time.Now()
	cat, err := catalog.Build(ctx, root, opts, c.log, progress)
	if err != nil {
		c.finish(h, ev, dupes.Result{}, 0, err)
		return
	}
	progress(50)

	res, err := dupes.GroupCatalog(ctx, cat, c.log, progress)
	if err != nil {
		c.finish(h, ev, dupes.Result{}, 0, err)
		return
	}
	c.log.Info().
		Int("files", cat.FilesSeen).
		Int("groups", len(res.Groups)).
		Dur("elapsed", time.Since(started)).
		Msg("scan complete")
	c.finish(h, ev, res, cat.FilesSeen, nil)
}

// finish delivers the single terminal event. Cancellation surfaces as its
// own outcome with partial results discarded; it is not an error.
func (c *Controller) finish(h *Handle, ev Events, res dupes.Result, filesSeen int, err error) {
	h.term.Do(func() {
		switch {
		case err == nil:
			ev.Completed(res, filesSeen)
		case errors.Is(err, context.Canceled):
			c.log.Info().Msg("scan cancelled")
			ev.Cancelled()
		default:
			c.log.Error().Err(err).Msg("scan failed")
			ev.Failed(err)
		}
	})
}

// monotonic wraps a progress sink so reported values never decrease and
// never exceed 100.
func monotonic(sink func(int)) func(int) {
	last := -1
	return func(pct int) {
		if pct > 100 {
			pct = 100
		}
		if pct <= last {
			return
		}
		last = pct
		sink(pct)
	}
}
