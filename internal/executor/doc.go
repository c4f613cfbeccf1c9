// Package executor runs uploads in fixed-size windows.
//
// Each window is dispatched concurrently and must settle before the next one
// starts, which bounds in-flight requests and buffered file contents to the
// window size. A failed window stops the batch.
package executor
