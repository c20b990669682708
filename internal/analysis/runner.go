package analysis

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/KaramelBytes/releve-cli/internal/logging"
)

// Run is one completed analysis.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Response   *Response
}

// Runner allows a single analysis in flight. A trigger while busy fails with
// ErrBusy instead of racing the first request.
type Runner struct {
	backend Backend
	busy    atomic.Bool

	// OnBusy, when set, is called with true before the request and false
	// after it, whatever the outcome.
	OnBusy func(bool)
}

// NewRunner wraps backend.
func NewRunner(backend Backend) *Runner { return &Runner{backend: backend} }

// Busy reports whether a run is in flight.
func (r *Runner) Busy() bool { return r.busy.Load() }

// Run submits src with the selected indices.
func (r *Runner) Run(ctx context.Context, src Source, indices []int) (*Run, error) {
	if len(indices) == 0 {
		return nil, &NoSelectionError{}
	}
	if !r.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer r.busy.Store(false)
	if r.OnBusy != nil {
		r.OnBusy(true)
		defer r.OnBusy(false)
	}

	run := &Run{ID: uuid.NewString(), StartedAt: time.Now()}
	resp, err := r.backend.Submit(ctx, src, indices)
	run.FinishedAt = time.Now()
	if err != nil {
		logging.Logger().Debug("analysis run failed", "run_id", run.ID, "err", err)
		return nil, err
	}
	run.Response = resp
	logging.Logger().Debug("analysis run done", "run_id", run.ID,
		"species", len(resp.Species), "duration", run.FinishedAt.Sub(run.StartedAt))
	return run, nil
}
