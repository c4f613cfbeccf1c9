package executor

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/s3types"
)

func numberedPaths(n int) []string {
	paths := make([]string, n)
	for i := range paths {
		paths[i] = fmt.Sprintf("/dist/file%02d.txt", i)
	}
	return paths
}

// recorder is a TaskFunc that records start and end order of every task.
type recorder struct {
	mu       sync.Mutex
	seq      int
	started  map[string]int
	finished map[string]int
	fail     map[string]error
	delay    time.Duration
	inFlight testutil.InFlight
}

func newRecorder() *recorder {
	return &recorder{
		started:  make(map[string]int),
		finished: make(map[string]int),
		fail:     make(map[string]error),
	}
}

func (r *recorder) task(ctx context.Context, path string) (*s3types.UploadResult, error) {
	r.mu.Lock()
	r.seq++
	r.started[path] = r.seq
	r.mu.Unlock()

	r.inFlight.Enter()
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.inFlight.Leave()

	r.mu.Lock()
	r.seq++
	r.finished[path] = r.seq
	err := r.fail[path]
	r.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &s3types.UploadResult{Key: path, Size: 1}, nil
}

func (r *recorder) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.started))
	for p := range r.started {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func TestWindows(t *testing.T) {
	tests := []struct {
		name  string
		n     int
		size  int
		sizes []int
	}{
		{name: "13 files limit 6", n: 13, size: 6, sizes: []int{6, 6, 1}},
		{name: "exact multiple", n: 12, size: 6, sizes: []int{6, 6}},
		{name: "limit 1", n: 3, size: 1, sizes: []int{1, 1, 1}},
		{name: "limit larger than list", n: 2, size: 13, sizes: []int{2}},
		{name: "empty list", n: 0, size: 6, sizes: []int{}},
		{name: "non-positive size uses default", n: 7, size: 0, sizes: []int{6, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paths := numberedPaths(tt.n)
			windows := Windows(paths, tt.size)

			sizes := make([]int, 0, len(windows))
			var flattened []string
			for _, w := range windows {
				sizes = append(sizes, len(w))
				flattened = append(flattened, w...)
			}
			assert.Equal(t, tt.sizes, sizes)
			if tt.n > 0 {
				assert.Equal(t, paths, flattened, "windows must preserve list order")
			}
		})
	}
}

func TestExecutor_Execute_WindowOrdering(t *testing.T) {
	paths := numberedPaths(13)
	rec := newRecorder()
	rec.delay = 5 * time.Millisecond

	result, err := NewExecutor(6).Execute(context.Background(), paths, rec.task)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Windows)
	assert.Equal(t, 13, result.Completed)
	assert.Equal(t, int64(13), result.Bytes)
	assert.LessOrEqual(t, rec.inFlight.Max(), 6)

	// Every task of window w starts after every task of window w-1 finished.
	windows := Windows(paths, 6)
	for w := 1; w < len(windows); w++ {
		lastEnd := 0
		for _, p := range windows[w-1] {
			lastEnd = max(lastEnd, rec.finished[p])
		}
		for _, p := range windows[w] {
			assert.Greater(t, rec.started[p], lastEnd, "window %d started before window %d settled", w+1, w)
		}
	}
}

func TestExecutor_Execute_ConvergesAcrossLimits(t *testing.T) {
	paths := numberedPaths(13)

	for _, limit := range []int{1, 6, 13} {
		t.Run(fmt.Sprintf("limit %d", limit), func(t *testing.T) {
			rec := newRecorder()
			result, err := NewExecutor(limit).Execute(context.Background(), paths, rec.task)
			require.NoError(t, err)

			assert.Equal(t, numberedPaths(13), rec.calls())
			assert.Equal(t, 13, result.Completed)
			assert.Len(t, result.Keys, 13)
			assert.Equal(t, (13+limit-1)/limit, result.Windows)
		})
	}
}

func TestExecutor_Execute_FailureStopsLaterWindows(t *testing.T) {
	paths := numberedPaths(13)
	boom := errors.New("rejected")

	rec := newRecorder()
	rec.fail[paths[2]] = boom
	tracker := &testutil.MockProgressTracker{}

	result, err := NewExecutor(6).WithProgressTracker(tracker).Execute(context.Background(), paths, rec.task)
	require.ErrorIs(t, err, boom)

	// The whole first window settled, nothing after it ran.
	assert.Equal(t, paths[:6], rec.calls())
	assert.Equal(t, 1, result.Windows)
	assert.Equal(t, 5, result.Completed)

	assert.True(t, tracker.ErrorCalled)
	assert.ErrorIs(t, tracker.LastError, boom)
	assert.False(t, tracker.CompleteCalled)
}

func TestExecutor_Execute_Progress(t *testing.T) {
	paths := numberedPaths(4)
	tracker := &testutil.MockProgressTracker{}

	_, err := NewExecutor(2).WithProgressTracker(tracker).Execute(context.Background(), paths, newRecorder().task)
	require.NoError(t, err)

	require.Len(t, tracker.Updates, 4)
	for i, u := range tracker.Updates {
		assert.Equal(t, i+1, u.Completed, "progress must increase by one per completion")
		assert.Equal(t, 4, u.Total)
	}
	assert.True(t, tracker.CompleteCalled)
	assert.False(t, tracker.ErrorCalled)
}

func TestExecutor_Execute_Empty(t *testing.T) {
	tracker := &testutil.MockProgressTracker{}
	result, err := NewExecutor(6).WithProgressTracker(tracker).Execute(context.Background(), nil, newRecorder().task)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Windows)
	assert.Equal(t, 0, result.Completed)
	assert.True(t, tracker.CompleteCalled)
}

func TestExecutor_Execute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := newRecorder()
	result, err := NewExecutor(6).Execute(ctx, numberedPaths(3), rec.task)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, rec.calls())
	assert.Equal(t, 0, result.Windows)
}

func TestExecutor_ValidateConcurrency(t *testing.T) {
	assert.NoError(t, NewExecutor(6).ValidateConcurrency())
	assert.NoError(t, NewExecutor(0).ValidateConcurrency(), "zero falls back to the default")
	assert.Error(t, NewExecutor(101).ValidateConcurrency())
}
