package s3upload

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	s3errors "github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/testutil"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/s3types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    []s3types.Option
		wantErr error
	}{
		{
			name: "aws driver with static credentials",
			opts: []s3types.Option{
				WithRegion("eu-west-1"),
				WithCredentials("AKIDEXAMPLE", "secret"),
				WithEndpoint("http://localhost:4566"),
			},
		},
		{
			name: "aws driver with custom config",
			opts: []s3types.Option{
				WithAWSConfig(&aws.Config{Region: "us-west-2"}),
				WithTimeout(5 * time.Second),
			},
		},
		{
			name: "minio driver",
			opts: []s3types.Option{
				WithDriver(s3types.DriverMinio),
				WithEndpoint("http://localhost:9000"),
				WithCredentials("minio", "minio123"),
			},
		},
		{
			name:    "unknown driver",
			opts:    []s3types.Option{WithDriver("gcs")},
			wantErr: s3errors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(context.Background(), tt.opts...)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, client)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, client)
			assert.NotNil(t, client.s3Client)
			assert.NoError(t, client.Close())
		})
	}
}

func TestNewWithClient(t *testing.T) {
	mock := testutil.NewMockBuilder().Build()
	memfs := billy.NewInMemoryFS()
	logger := slog.New(slog.DiscardHandler)

	client := NewWithClient(mock, WithFilesystem(memfs), WithLogger(logger))

	assert.Same(t, mock, client.s3Client)
	assert.Same(t, memfs, client.filesystem())
	assert.Same(t, logger, client.logger)

	t.Run("defaults", func(t *testing.T) {
		c := NewWithClient(mock)
		assert.NotNil(t, c.filesystem())
		assert.Same(t, slog.Default(), c.logger)
	})

	t.Run("set filesystem", func(t *testing.T) {
		other := billy.NewInMemoryFS()
		client.SetFilesystem(other)
		assert.Same(t, other, client.filesystem())
	})
}
