// Package errors provides error types and handling for upload operations.
package errors

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Error represents an upload operation error with context about the operation that failed.
// It wraps the underlying object-store or filesystem error with the bucket and key involved.
type Error struct {
	// Op is the operation that failed (e.g., "upload", "deriveKey", "scan")
	Op string

	// Bucket is the bucket name (if applicable)
	Bucket string

	// Key is the remote object key (if applicable)
	Key string

	// Err is the underlying error
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3upload.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3upload.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3upload.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3upload.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for argument, path and upload failures.
// These can be used with errors.Is() for error checking.
var (
	// ErrInvalidInput indicates that the provided input is invalid
	ErrInvalidInput = errors.New("s3upload: invalid input")

	// ErrMissingParameter indicates that a required parameter was not supplied
	ErrMissingParameter = errors.New("s3upload: missing required parameter")

	// ErrNotADirectory indicates that folder mode was given something other than a directory
	ErrNotADirectory = errors.New("s3upload: not a directory")

	// ErrNotAFile indicates that single-file mode was given something other than a regular file
	ErrNotAFile = errors.New("s3upload: not a file")

	// ErrPathOutsideRoot indicates that a file does not lie under the declared root folder
	ErrPathOutsideRoot = errors.New("s3upload: path outside root")

	// ErrInvalidBucketName indicates that the bucket name is invalid
	ErrInvalidBucketName = errors.New("s3upload: invalid bucket name")

	// ErrInvalidObjectKey indicates that the object key is invalid
	ErrInvalidObjectKey = errors.New("s3upload: invalid object key")

	// ErrBucketNotFound indicates that the target bucket does not exist
	ErrBucketNotFound = errors.New("s3upload: bucket not found")

	// ErrAccessDenied indicates that access to the resource is denied
	ErrAccessDenied = errors.New("s3upload: access denied")

	// ErrInvalidCredentials indicates that the access key or secret key were rejected
	ErrInvalidCredentials = errors.New("s3upload: invalid credentials")

	// ErrTooManyRequests indicates that the object store throttled the request
	ErrTooManyRequests = errors.New("s3upload: too many requests")
)

// Classify maps an object-store error to one of the sentinel errors.
// The returned error matches both the sentinel and the original error with errors.Is/As.
// Errors that carry no recognised API code are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	var sentinel error
	switch apiErr.ErrorCode() {
	case "AccessDenied", "AllAccessDisabled", "Forbidden":
		sentinel = ErrAccessDenied
	case "NoSuchBucket":
		sentinel = ErrBucketNotFound
	case "InvalidAccessKeyId", "SignatureDoesNotMatch", "ExpiredToken", "InvalidToken":
		sentinel = ErrInvalidCredentials
	case "SlowDown", "TooManyRequests", "Throttling", "ThrottlingException", "RequestLimitExceeded":
		sentinel = ErrTooManyRequests
	case "InvalidBucketName":
		sentinel = ErrInvalidBucketName
	case "KeyTooLongError":
		sentinel = ErrInvalidObjectKey
	default:
		return err
	}

	return fmt.Errorf("%w: %w", sentinel, err)
}

// CodeOf returns the ErrorCode classification for err.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingParameter),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNotADirectory),
		errors.Is(err, ErrNotAFile),
		errors.Is(err, ErrPathOutsideRoot),
		errors.Is(err, ErrInvalidBucketName),
		errors.Is(err, ErrInvalidObjectKey):
		return CodeInvalidInput
	case errors.Is(err, ErrBucketNotFound):
		return CodeNotFound
	case errors.Is(err, ErrAccessDenied):
		return CodeForbidden
	case errors.Is(err, ErrInvalidCredentials):
		return CodeUnauthorized
	case errors.Is(err, ErrTooManyRequests):
		return CodeRateLimit
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	case errors.Is(err, context.Canceled):
		return CodeCanceled
	}

	var opErr *Error
	if errors.As(err, &opErr) && opErr.Op == "upload" {
		return CodeUploadFailed
	}

	return CodeUnknown
}

// IsInvalidInput checks if an error indicates invalid input of any kind.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsInvalidInput(err error) bool {
	return CodeOf(err) == CodeInvalidInput
}

// IsAccessDenied checks if an error indicates access was denied.
func IsAccessDenied(err error) bool {
	return errors.Is(err, ErrAccessDenied)
}

// IsBucketNotFound checks if an error indicates that the bucket was not found.
func IsBucketNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}
