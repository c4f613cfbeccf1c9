// Package testutil provides a builder for creating mock S3 clients.
package testutil

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// MockBuilder provides a fluent interface for building MockS3Client instances.
type MockBuilder struct {
	client   *MockS3Client
	failures map[string]error
	delay    time.Duration
	inFlight *InFlight
}

// NewMockBuilder creates a new MockBuilder.
func NewMockBuilder() *MockBuilder {
	return &MockBuilder{
		client:   &MockS3Client{},
		failures: make(map[string]error),
	}
}

// Build returns the configured MockS3Client.
// Unless WithPutObject was used, PutObject drains the body and fails for keys registered
// with WithFailureForKey.
func (b *MockBuilder) Build() *MockS3Client {
	if b.client.PutObjectFunc == nil {
		b.client.PutObjectFunc = b.defaultPutObject
	}
	return b.client
}

// WithPutObject configures the PutObject behavior.
func (b *MockBuilder) WithPutObject(
	fn func(context.Context, *s3.PutObjectInput) (*s3.PutObjectOutput, error),
) *MockBuilder {
	b.client.PutObjectFunc = func(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return fn(ctx, params)
	}
	return b
}

// WithSuccessfulUpload configures the mock to always return successful uploads.
func (b *MockBuilder) WithSuccessfulUpload() *MockBuilder {
	b.client.PutObjectFunc = func(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		// Consume the body if provided
		if params.Body != nil {
			_, _ = io.Copy(io.Discard, params.Body)
		}
		return &s3.PutObjectOutput{
			ETag: StringPtr(`"test-etag"`),
		}, nil
	}
	return b
}

// WithFailedUpload configures the mock to fail every upload with err.
func (b *MockBuilder) WithFailedUpload(err error) *MockBuilder {
	b.client.PutObjectFunc = func(ctx context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return nil, err
	}
	return b
}

// WithFailureForKey makes uploads of key fail with err.
func (b *MockBuilder) WithFailureForKey(key string, err error) *MockBuilder {
	b.failures[key] = err
	return b
}

// WithDelay makes every upload take at least d.
func (b *MockBuilder) WithDelay(d time.Duration) *MockBuilder {
	b.delay = d
	return b
}

// WithInFlight records how many uploads run at the same time.
func (b *MockBuilder) WithInFlight(tracker *InFlight) *MockBuilder {
	b.inFlight = tracker
	return b
}

func (b *MockBuilder) defaultPutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	if b.inFlight != nil {
		b.inFlight.Enter()
		defer b.inFlight.Leave()
	}

	if params.Body != nil {
		_, _ = io.Copy(io.Discard, params.Body)
	}

	if b.delay > 0 {
		select {
		case <-time.After(b.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err, ok := b.failures[aws.ToString(params.Key)]; ok {
		return nil, err
	}

	return &s3.PutObjectOutput{
		ETag: StringPtr(`"test-etag"`),
	}, nil
}

// InFlight tracks concurrent calls and the highest concurrency observed.
type InFlight struct {
	current atomic.Int64
	mu      sync.Mutex
	max     int64
}

// Enter records the start of a call.
func (f *InFlight) Enter() {
	n := f.current.Add(1)
	f.mu.Lock()
	if n > f.max {
		f.max = n
	}
	f.mu.Unlock()
}

// Leave records the end of a call.
func (f *InFlight) Leave() {
	f.current.Add(-1)
}

// Max returns the highest number of concurrent calls observed.
func (f *InFlight) Max() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(f.max)
}
