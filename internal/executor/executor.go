package executor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/s3types"
)

// TaskFunc processes the file at path.
type TaskFunc func(ctx context.Context, path string) (*s3types.UploadResult, error)

// Executor runs TaskFuncs over a file list in windows of at most limit files.
type Executor struct {
	limit int

	// Progress tracking
	progressTracker s3types.ProgressTracker

	logger *slog.Logger
}

// NewExecutor creates a new executor with the specified window size.
// A non-positive limit falls back to the default of 6.
func NewExecutor(limit int) *Executor {
	if limit <= 0 {
		limit = s3types.DefaultConcurrency
	}

	return &Executor{
		limit:  limit,
		logger: slog.Default(),
	}
}

// WithProgressTracker sets the progress tracker for the executor.
func (e *Executor) WithProgressTracker(tracker s3types.ProgressTracker) *Executor {
	e.progressTracker = tracker
	return e
}

// WithLogger sets the logger for the executor.
func (e *Executor) WithLogger(logger *slog.Logger) *Executor {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// ValidateConcurrency checks if the window size is valid.
func (e *Executor) ValidateConcurrency() error {
	return validation.ValidateConcurrency(e.limit)
}

// Result contains the outcome of an Execute call.
type Result struct {
	// Total is the number of paths handed to Execute
	Total int

	// Completed is the number of tasks that succeeded
	Completed int

	// Bytes is the sum of the sizes of the completed tasks
	Bytes int64

	// Windows is the number of windows dispatched
	Windows int

	// Keys lists the keys of the completed tasks in completion order
	Keys []string

	// Duration is how long Execute took
	Duration time.Duration
}

// Windows partitions paths into consecutive slices of at most size elements.
func Windows(paths []string, size int) [][]string {
	if size <= 0 {
		size = s3types.DefaultConcurrency
	}

	windows := make([][]string, 0, (len(paths)+size-1)/size)
	for start := 0; start < len(paths); start += size {
		end := min(start+size, len(paths))
		windows = append(windows, paths[start:end])
	}
	return windows
}

// Execute runs fn for every path, one window at a time.
//
// All tasks of a window run concurrently and the window settles fully before
// the next is dispatched. If any task in a window fails, the first error is
// returned once the window has settled and later windows are never started.
// Siblings of a failed task are not cancelled. A cancelled ctx stops new
// windows from being dispatched. The returned Result is valid on error too.
func (e *Executor) Execute(ctx context.Context, paths []string, fn TaskFunc) (*Result, error) {
	startTime := time.Now()
	result := &Result{Total: len(paths)}

	completions := make(chan *s3types.UploadResult, e.limit)
	aggregated := make(chan struct{})
	go e.aggregate(result, completions, aggregated)

	err := e.dispatch(ctx, paths, fn, result, completions)

	close(completions)
	<-aggregated

	result.Duration = time.Since(startTime)

	if e.progressTracker != nil {
		if err != nil {
			e.progressTracker.Error(err)
		} else {
			e.progressTracker.Complete()
		}
	}

	return result, err
}

func (e *Executor) dispatch(
	ctx context.Context,
	paths []string,
	fn TaskFunc,
	result *Result,
	completions chan<- *s3types.UploadResult,
) error {
	for i, window := range Windows(paths, e.limit) {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("context cancelled before window %d: %w", i+1, err)
		}

		result.Windows++
		e.logger.DebugContext(ctx, "dispatching window", "window", i+1, "files", len(window))

		var g errgroup.Group
		for _, path := range window {
			g.Go(func() error {
				res, err := fn(ctx, path)
				if err != nil {
					return err
				}
				completions <- res
				return nil
			})
		}

		if err := g.Wait(); err != nil {
			return err
		}
	}

	return nil
}

// aggregate owns the completion counter. It is the only writer of result's
// counters until done is closed.
func (e *Executor) aggregate(result *Result, completions <-chan *s3types.UploadResult, done chan<- struct{}) {
	defer close(done)

	for res := range completions {
		result.Completed++
		if res != nil {
			result.Bytes += res.Size
			result.Keys = append(result.Keys, res.Key)
		}
		if e.progressTracker != nil {
			e.progressTracker.Update(result.Completed, result.Total)
		}
	}
}
