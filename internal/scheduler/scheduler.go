package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sourcegraph/conc"

	"go.dfds.cloud/codespaces-dashboard-refresher/internal/refresher"
)

const DefaultInterval = 30 * time.Second

// Job is one refresh operation driven by the scheduler.
type Job func(ctx context.Context) refresher.Result

// Handle owns a running polling loop. It must be stopped by whoever started it.
type Handle struct {
	cancel context.CancelFunc
	wg     *conc.WaitGroup
	done   chan struct{}
	once   sync.Once
}

// Start runs every job once right away and then again on every interval
// tick until Stop is called or ctx is canceled. Each job run gets its own
// goroutine, so a slow request never delays the next tick. Every result is
// passed to handle.
func Start(ctx context.Context, interval time.Duration, handle func(refresher.Result), jobs ...Job) *Handle {
	if interval <= 0 {
		interval = DefaultInterval
	}
	ctx, cancel := context.WithCancel(ctx)

	h := &Handle{
		cancel: cancel,
		wg:     &conc.WaitGroup{},
		done:   make(chan struct{}),
	}

	h.wg.Go(func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		h.dispatch(ctx, handle, jobs)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				h.dispatch(ctx, handle, jobs)
			}
		}
	})

	return h
}

func (h *Handle) dispatch(ctx context.Context, handle func(refresher.Result), jobs []Job) {
	for _, job := range jobs {
		job := job
		h.wg.Go(func() {
			res := job(ctx)
			if handle != nil {
				handle(res)
			}
		})
	}
}

// Stop cancels in-flight jobs, stops the ticker and waits for every
// goroutine started by the handle. It is safe to call more than once.
func (h *Handle) Stop() {
	h.once.Do(func() {
		h.cancel()
		h.wg.Wait()
		close(h.done)
	})
}

// Done is closed once Stop has returned.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}
