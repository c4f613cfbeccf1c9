// Package s3upload uploads a local folder, or a single file, to an
// S3-compatible bucket.
//
// Remote keys are derived from a prefix and each file's path relative to the
// folder root. Folder uploads run in fixed-size windows: every file in a
// window is uploaded concurrently and the window settles before the next one
// starts. A failed upload stops the batch. There are no retries.
//
// Key features:
//   - Static credentials with custom endpoints and path-style addressing
//   - aws-sdk-go-v2 or minio-go as the underlying driver
//   - Extension-based content types with optional content sniffing
//   - Exclude patterns, dry runs and progress reporting
//
// Example usage:
//
//	client, err := s3upload.New(ctx,
//	    s3upload.WithRegion("us-east-1"),
//	    s3upload.WithEndpoint("http://localhost:9000"),
//	    s3upload.WithCredentials("minioadmin", "minioadmin"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	result, err := client.UploadFolder(ctx, "my-bucket", "assets", "./dist",
//	    s3upload.WithConcurrency(6),
//	)
package s3upload
