// Package s3api defines the object-store interface the uploader depends on.
package s3api

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3API defines the interface for S3 operations used by this module.
// Only PutObject is needed. The minio driver adapts its client to the same contract.
type S3API interface {
	// PutObject uploads an object to S3
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Ensure the AWS SDK client implements our interface
var _ S3API = (*s3.Client)(nil)
