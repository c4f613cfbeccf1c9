package s3upload

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/contenttype"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/executor"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/keys"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/operations/upload"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/scanner"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/validation"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/s3types"
)

// UploadFile uploads the single file at path to bucket.
//
// The key is prefix joined with path as given, so "build/app.zip" under
// prefix "releases" becomes "releases/build/app.zip". Leading ".." segments
// and any drive letter are dropped, so "../build/app.zip" maps to the same
// key. The content type comes from WithContentType when set, otherwise from
// the file extension.
//
// Errors:
//   - ErrInvalidBucketName: If bucket is not a valid bucket name
//   - ErrInvalidInput: If path does not exist or the content type is malformed
//   - ErrNotAFile: If path is a directory
//   - ErrInvalidObjectKey: If the derived key is not a valid object key
func (c *Client) UploadFile(
	ctx context.Context,
	bucket, prefix, path string,
	opts ...s3types.UploadOption,
) (*s3types.UploadResult, error) {
	config := &s3types.UploadOptionConfig{}
	for _, opt := range opts {
		opt(config)
	}

	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}
	if err := validation.ValidateContentType(config.ContentType); err != nil {
		return nil, err
	}

	filesystem := c.filesystem()
	if err := checkFile(filesystem, path); err != nil {
		return nil, err
	}

	key, err := keys.Derive("", prefix, path)
	if err != nil {
		return nil, err
	}

	var detector *contenttype.Detector
	if config.DetectContentType {
		detector = contenttype.NewDetector(filesystem)
	}

	task := s3types.UploadTask{
		LocalPath:   path,
		Key:         key,
		ContentType: contenttype.Resolve(path, config.ContentType, detector),
	}

	return upload.New(c.s3Client, filesystem, c.logger, config.DryRun).Upload(ctx, bucket, task)
}

// UploadFolder uploads every file under root to bucket.
//
// Each file's key is prefix joined with its path relative to root. The whole
// tree is listed first, then uploaded in windows of the configured
// concurrency. The first failed upload stops the batch after its window
// settles; files in later windows are never attempted and nothing already
// uploaded is rolled back. The returned FolderResult is non-nil whenever the
// upload phase started, including on failure.
//
// Errors:
//   - ErrInvalidBucketName: If bucket is not a valid bucket name
//   - ErrInvalidInput: If root does not exist, the concurrency is out of range or a pattern is malformed
//   - ErrMissingParameter: If root is empty
//   - ErrNotADirectory: If root is not a directory
//   - *errors.Error with Op "upload": If an upload fails
func (c *Client) UploadFolder(
	ctx context.Context,
	bucket, prefix, root string,
	opts ...s3types.FolderOption,
) (*s3types.FolderResult, error) {
	config := &s3types.FolderOptionConfig{
		Concurrency: s3types.DefaultConcurrency,
	}
	for _, opt := range opts {
		opt(config)
	}

	if err := validation.ValidateBucketName(bucket); err != nil {
		return nil, err
	}

	if err := validation.ValidateConcurrency(config.Concurrency); err != nil {
		return nil, err
	}

	exec := executor.NewExecutor(config.Concurrency).WithLogger(c.logger)
	if config.ProgressTracker != nil {
		exec = exec.WithProgressTracker(config.ProgressTracker)
	}

	startTime := time.Now()
	filesystem := c.filesystem()

	if root == "" {
		return nil, errors.NewError("scan", errors.ErrMissingParameter).WithMessage("root")
	}
	root, err := fs.GetAbs(root)
	if err != nil {
		return nil, errors.NewError("scan", err)
	}

	files, err := scanner.NewScanner(filesystem).ScanLocal(ctx, root, config.ExcludePatterns)
	if err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "scanned folder", "path", root, "files", len(files))

	var detector *contenttype.Detector
	if config.DetectContentType {
		detector = contenttype.NewDetector(filesystem)
	}
	uploader := upload.New(c.s3Client, filesystem, c.logger, config.DryRun)

	execResult, err := exec.Execute(ctx, files, func(ctx context.Context, path string) (*s3types.UploadResult, error) {
		key, err := keys.Derive(root, prefix, path)
		if err != nil {
			return nil, err
		}
		return uploader.Upload(ctx, bucket, s3types.UploadTask{
			LocalPath:   path,
			Key:         key,
			ContentType: contenttype.Resolve(path, "", detector),
		})
	})

	result := &s3types.FolderResult{
		FilesTotal:    execResult.Total,
		FilesUploaded: execResult.Completed,
		BytesUploaded: execResult.Bytes,
		Windows:       execResult.Windows,
		Keys:          execResult.Keys,
		DryRun:        config.DryRun,
		Duration:      time.Since(startTime),
	}

	if err != nil {
		return result, err
	}

	c.logger.InfoContext(ctx, "folder uploaded",
		"bucket", bucket, "files", result.FilesUploaded, "bytes", result.BytesUploaded, "windows", result.Windows)

	return result, nil
}

// checkFile verifies that path exists and is not a directory.
func checkFile(filesystem fs.Filesystem, path string) error {
	if path == "" {
		return errors.NewError("stat", errors.ErrMissingParameter).WithMessage("path")
	}

	info, err := filesystem.Stat(path)
	if stderrors.Is(err, os.ErrNotExist) {
		return errors.NewError("stat", fmt.Errorf("%w: %w", errors.ErrInvalidInput, err)).
			WithMessage(path + " does not exist")
	}
	if err != nil {
		return errors.NewError("stat", err)
	}
	if info.IsDir() {
		return errors.NewError("stat", errors.ErrNotAFile).WithMessage(path)
	}
	return nil
}
