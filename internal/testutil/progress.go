// Package testutil provides test utilities for progress tracking.
package testutil

import "sync"

// MockProgressTracker is a mock implementation of ProgressTracker for testing.
type MockProgressTracker struct {
	mu             sync.Mutex
	UpdateCalled   bool
	CompleteCalled bool
	ErrorCalled    bool
	LastError      error
	Updates        []ProgressUpdate // For detailed tracking
}

// ProgressUpdate represents a single progress update event.
type ProgressUpdate struct {
	Completed int
	Total     int
}

// Update records a progress update.
func (m *MockProgressTracker) Update(completed, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateCalled = true
	m.Updates = append(m.Updates, ProgressUpdate{
		Completed: completed,
		Total:     total,
	})
}

// Complete marks the operation as complete.
func (m *MockProgressTracker) Complete() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CompleteCalled = true
}

// Error records an error.
func (m *MockProgressTracker) Error(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorCalled = true
	m.LastError = err
}

// Completed returns the completed count of the last update.
func (m *MockProgressTracker) Completed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Updates) == 0 {
		return 0
	}
	return m.Updates[len(m.Updates)-1].Completed
}
