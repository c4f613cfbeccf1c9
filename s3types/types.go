// Package s3types provides shared type definitions for the s3upload module.
package s3types

import (
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
)

// Driver selects the object-store client implementation.
type Driver string

// Supported drivers
const (
	// DriverAWS uses aws-sdk-go-v2 (default)
	DriverAWS Driver = "aws"

	// DriverMinio uses minio-go
	DriverMinio Driver = "minio"
)

// Concurrency bounds for folder uploads.
const (
	// DefaultConcurrency is the number of files uploaded per window
	DefaultConcurrency = 6

	// MaxConcurrency is the largest accepted window size
	MaxConcurrency = 100
)

// DefaultRegion is used when no region is configured.
const DefaultRegion = "us-east-1"

// ProgressTracker receives batch progress as files complete.
// Implementations are called from a single goroutine and need no locking.
type ProgressTracker interface {
	// Update is called after each successful upload with the running count
	Update(completed, total int)

	// Complete is called once when every file has been uploaded
	Complete()

	// Error is called once when the batch stops because of err
	Error(err error)
}

// UploadTask describes one file to upload. It is built right before dispatch and never mutated.
type UploadTask struct {
	// LocalPath is the absolute path of the source file
	LocalPath string

	// Key is the derived remote object key
	Key string

	// ContentType is the MIME type to send; empty means none is sent
	ContentType string
}

// UploadResult contains the result of a single-file upload.
type UploadResult struct {
	// Key is the object key that was uploaded
	Key string

	// Size is the number of bytes sent
	Size int64

	// ETag is the entity tag returned by the object store
	ETag string

	// ContentType is the content type sent with the request
	ContentType string

	// DryRun is true when no request was issued
	DryRun bool

	// Duration is how long the upload took
	Duration time.Duration
}

// FolderResult contains the result of a folder upload.
type FolderResult struct {
	// FilesTotal is the number of files discovered by the walk
	FilesTotal int

	// FilesUploaded is the number of files uploaded successfully
	FilesUploaded int

	// BytesUploaded is the total bytes uploaded
	BytesUploaded int64

	// Windows is the number of windows dispatched
	Windows int

	// Keys lists the uploaded keys in completion order
	Keys []string

	// DryRun is true when no requests were issued
	DryRun bool

	// Duration is how long the folder upload took
	Duration time.Duration
}

// Configuration types for functional options

// ClientConfig holds configuration for the upload client.
type ClientConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool
	Driver          Driver
	Timeout         time.Duration
	CustomAWSConfig *aws.Config
	Filesystem      fs.Filesystem // Filesystem abstraction for file operations
	Logger          *slog.Logger
}

// UploadOptionConfig holds configuration for single-file uploads via functional options.
type UploadOptionConfig struct {
	ContentType       string
	DetectContentType bool
	DryRun            bool
}

// FolderOptionConfig holds configuration for folder uploads via functional options.
type FolderOptionConfig struct {
	Concurrency       int
	ExcludePatterns   []string
	DetectContentType bool
	DryRun            bool
	ProgressTracker   ProgressTracker
}

// Option is a functional option for configuring the upload client.
type (
	Option func(*ClientConfig)
	// UploadOption is a functional option for configuring single-file uploads.
	UploadOption func(*UploadOptionConfig)
	// FolderOption is a functional option for configuring folder uploads.
	FolderOption func(*FolderOptionConfig)
)
