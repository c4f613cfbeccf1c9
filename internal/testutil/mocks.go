// Package testutil provides test utilities and mocks for upload operations.
// This package is internal and should only be used for testing within the module.
package testutil

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/s3api"
)

// Ensure the mock implements the S3API interface
var _ s3api.S3API = (*MockS3Client)(nil)

// PutObjectCall records the request fields of one PutObject call.
type PutObjectCall struct {
	Bucket        string
	Key           string
	ContentType   string
	ContentLength int64
}

// MockS3Client is a mock implementation of the S3API interface for testing.
// Every PutObject call is recorded before PutObjectFunc runs. It is safe for concurrent use.
type MockS3Client struct {
	PutObjectFunc func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)

	mu    sync.Mutex
	calls []PutObjectCall
}

// PutObject mocks the S3 PutObject operation.
func (m *MockS3Client) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	m.calls = append(m.calls, PutObjectCall{
		Bucket:        aws.ToString(params.Bucket),
		Key:           aws.ToString(params.Key),
		ContentType:   aws.ToString(params.ContentType),
		ContentLength: aws.ToInt64(params.ContentLength),
	})
	m.mu.Unlock()

	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

// Calls returns a copy of the recorded PutObject calls in arrival order.
func (m *MockS3Client) Calls() []PutObjectCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PutObjectCall, len(m.calls))
	copy(out, m.calls)
	return out
}

// Keys returns the keys of the recorded PutObject calls in arrival order.
func (m *MockS3Client) Keys() []string {
	calls := m.Calls()
	keys := make([]string, len(calls))
	for i, c := range calls {
		keys[i] = c.Key
	}
	return keys
}
