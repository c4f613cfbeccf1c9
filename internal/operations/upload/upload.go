package upload

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/s3types"
)

// Uploader handles single-file uploads.
type Uploader struct {
	s3Client s3api.S3API
	fs       fs.Filesystem
	logger   *slog.Logger
	dryRun   bool
}

// New creates a new Uploader instance.
func New(s3Client s3api.S3API, filesystem fs.Filesystem, logger *slog.Logger, dryRun bool) *Uploader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Uploader{
		s3Client: s3Client,
		fs:       filesystem,
		logger:   logger,
		dryRun:   dryRun,
	}
}

// Upload reads task.LocalPath fully and puts it at task.Key in bucket.
// The request carries a content type only when task.ContentType is set.
func (u *Uploader) Upload(ctx context.Context, bucket string, task s3types.UploadTask) (*s3types.UploadResult, error) {
	startTime := time.Now()

	data, err := u.fs.ReadFile(task.LocalPath)
	if err != nil {
		u.logger.ErrorContext(ctx, "upload failed", "key", task.Key, "path", task.LocalPath, "error", err)
		return nil, errors.NewObjectError("upload", bucket, task.Key, err).
			WithMessage("reading " + task.LocalPath)
	}

	size := int64(len(data))

	if u.dryRun {
		u.logger.InfoContext(ctx, "dry run", "key", task.Key, "path", task.LocalPath, "size", size)
		return &s3types.UploadResult{
			Key:         task.Key,
			Size:        size,
			ContentType: task.ContentType,
			DryRun:      true,
			Duration:    time.Since(startTime),
		}, nil
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(task.Key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
	}
	if task.ContentType != "" {
		input.ContentType = aws.String(task.ContentType)
	}

	output, err := u.s3Client.PutObject(ctx, input)
	if err != nil {
		u.logger.ErrorContext(ctx, "upload failed", "key", task.Key, "error", err)
		return nil, errors.NewObjectError("upload", bucket, task.Key, errors.Classify(err))
	}

	u.logger.InfoContext(ctx, "uploaded", "key", task.Key, "size", size)

	result := &s3types.UploadResult{
		Key:         task.Key,
		Size:        size,
		ContentType: task.ContentType,
		Duration:    time.Since(startTime),
	}
	if output != nil && output.ETag != nil {
		result.ETag = strings.Trim(*output.ETag, `"`)
	}

	return result, nil
}
