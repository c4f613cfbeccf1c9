package s3upload

import (
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/s3types"
)

// WithRegion sets the region for requests. Default is us-east-1.
func WithRegion(region string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		if region != "" {
			c.Region = region
		}
	}
}

// WithEndpoint sets a custom endpoint URL.
// This is required for S3-compatible services and local testing with LocalStack or MinIO.
func WithEndpoint(endpoint string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Endpoint = endpoint
	}
}

// WithCredentials sets static credentials.
func WithCredentials(accessKeyID, secretAccessKey string) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.AccessKeyID = accessKeyID
		c.SecretAccessKey = secretAccessKey
	}
}

// WithForcePathStyle selects path-style addressing (bucket in the URL path).
// Default is true, which most S3-compatible services require.
func WithForcePathStyle(forcePathStyle bool) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.ForcePathStyle = forcePathStyle
	}
}

// WithDriver selects the object-store client implementation. Default is DriverAWS.
func WithDriver(driver s3types.Driver) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Driver = driver
	}
}

// WithTimeout sets the timeout for individual requests.
// Default is no timeout (0). Only the aws driver honours it.
func WithTimeout(timeout time.Duration) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Timeout = timeout
	}
}

// WithAWSConfig allows providing a custom AWS configuration.
// This overrides the default configuration loading behavior.
func WithAWSConfig(config *aws.Config) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.CustomAWSConfig = config
	}
}

// WithFilesystem sets a custom filesystem implementation for reading local files.
// If not specified, defaults to the OS filesystem.
func WithFilesystem(filesystem fs.Filesystem) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Filesystem = filesystem
	}
}

// WithLogger sets the logger for upload events.
// If not specified, defaults to slog.Default().
func WithLogger(logger *slog.Logger) s3types.Option {
	return func(c *s3types.ClientConfig) {
		c.Logger = logger
	}
}

// WithContentType sets an explicit content type for a single-file upload.
// It always wins over the extension table.
func WithContentType(contentType string) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.ContentType = contentType
	}
}

// WithFileContentDetection enables content sniffing for a single file with an unmapped extension.
func WithFileContentDetection(enabled bool) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.DetectContentType = enabled
	}
}

// WithFileDryRun derives the key and reads the file without sending a request.
func WithFileDryRun(dryRun bool) s3types.UploadOption {
	return func(c *s3types.UploadOptionConfig) {
		c.DryRun = dryRun
	}
}

// WithConcurrency sets the folder upload window size.
// Default is 6. Values must be between 1 and 100.
func WithConcurrency(concurrency int) s3types.FolderOption {
	return func(c *s3types.FolderOptionConfig) {
		c.Concurrency = concurrency
	}
}

// WithExcludePatterns skips files whose root-relative path matches one of patterns.
func WithExcludePatterns(patterns ...string) s3types.FolderOption {
	return func(c *s3types.FolderOptionConfig) {
		c.ExcludePatterns = append(c.ExcludePatterns, patterns...)
	}
}

// WithContentDetection enables content sniffing for files with unmapped extensions.
func WithContentDetection(enabled bool) s3types.FolderOption {
	return func(c *s3types.FolderOptionConfig) {
		c.DetectContentType = enabled
	}
}

// WithDryRun derives every key and reads every file without sending requests.
func WithDryRun(dryRun bool) s3types.FolderOption {
	return func(c *s3types.FolderOptionConfig) {
		c.DryRun = dryRun
	}
}

// WithProgress sets a progress tracker for folder uploads.
func WithProgress(tracker s3types.ProgressTracker) s3types.FolderOption {
	return func(c *s3types.FolderOptionConfig) {
		c.ProgressTracker = tracker
	}
}
