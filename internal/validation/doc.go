// Package validation provides centralized input validation logic.
// This includes bucket name, object key, content type and concurrency checks.
//
// All user inputs are validated before any request is sent so that a bad
// argument fails the run up front instead of partway through a batch.
package validation
