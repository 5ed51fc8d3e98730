package processors

import (
	// Go Internal Packages
	"context"
	"sync"

	// Local Packages
	errors "ledger-recon/errors"
	models "ledger-recon/models"

	// External Packages
	"go.uber.org/zap"
)

var (
	ErrRunInProgress = errors.E(errors.Locked, "a reconciliation is already running", nil)
	ErrRunnerClosed  = errors.E(errors.Internal, "runner is closed", nil)
)

type Processor interface {
	Run(ctx context.Context, req RunRequest, progress chan<- models.Progress) (*RunOutput, error)
}

// Outcome is delivered once per run, after the last progress checkpoint.
type Outcome struct {
	Output *RunOutput
	Err    error
}

// Runner executes one reconciliation at a time on a background goroutine.
type Runner struct {
	Logger    *zap.Logger
	Processor Processor

	mu      sync.Mutex
	running bool
	closed  bool
	wg      sync.WaitGroup
}

func NewRunner(logger *zap.Logger, processor Processor) *Runner {
	return &Runner{Logger: logger, Processor: processor}
}

// Start launches a run. The progress channel is closed before the outcome is sent.
// Cancelling ctx after Start returns does not stop the run.
func (r *Runner) Start(ctx context.Context, req RunRequest) (<-chan models.Progress, <-chan Outcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, nil, ErrRunnerClosed
	}
	if r.running {
		return nil, nil, ErrRunInProgress
	}
	r.running = true
	r.wg.Add(1)

	progress := make(chan models.Progress, 8)
	outcome := make(chan Outcome, 1)
	runCtx := context.WithoutCancel(ctx)

	go func() {
		defer r.wg.Done()
		out, err := r.Processor.Run(runCtx, req, progress)
		close(progress)

		r.mu.Lock()
		r.running = false
		r.mu.Unlock()

		if err != nil {
			r.Logger.Error("reconciliation failed", zap.String("left", req.Left), zap.String("right", req.Right), zap.Error(err))
		}
		outcome <- Outcome{Output: out, Err: err}
		close(outcome)
	}()

	return progress, outcome, nil
}

// Close rejects further runs and waits for the one in flight, if any.
func (r *Runner) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.wg.Wait()
}
