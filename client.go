package s3upload

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/errors"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/fs/billy"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/driver/minio"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/s3upload/s3types"
)

// Client uploads files to one object store. It is built once per run and
// shared by every upload; it is safe for concurrent use.
type Client struct {
	// s3Client is the object-store client every PutObject goes through
	s3Client s3api.S3API

	// fs is the filesystem abstraction local files are read through
	fs fs.Filesystem

	logger *slog.Logger

	// mu protects concurrent access to client configuration
	mu sync.RWMutex
}

// New creates a new Client with the provided options.
// Without WithCredentials the AWS default credential chain is used.
//
// Example:
//
//	client, err := s3upload.New(ctx,
//	    s3upload.WithRegion("eu-west-1"),
//	    s3upload.WithCredentials(accessKey, secretKey),
//	)
func New(ctx context.Context, opts ...s3types.Option) (*Client, error) {
	clientCfg := defaultClientConfig()
	for _, opt := range opts {
		opt(clientCfg)
	}

	var (
		api s3api.S3API
		err error
	)

	switch clientCfg.Driver {
	case s3types.DriverAWS, "":
		api, err = newAWSClient(ctx, clientCfg)
	case s3types.DriverMinio:
		api, err = minio.New(minio.Config{
			Endpoint:        clientCfg.Endpoint,
			Region:          clientCfg.Region,
			AccessKeyID:     clientCfg.AccessKeyID,
			SecretAccessKey: clientCfg.SecretAccessKey,
			ForcePathStyle:  clientCfg.ForcePathStyle,
		})
	default:
		err = fmt.Errorf("%w: unknown driver %q", errors.ErrInvalidInput, clientCfg.Driver)
	}
	if err != nil {
		return nil, errors.NewError("client initialization", err)
	}

	return newClient(api, clientCfg), nil
}

// NewWithClient creates a new Client around a custom S3API implementation.
// This is primarily used for testing with mocked clients.
func NewWithClient(s3Client s3api.S3API, opts ...s3types.Option) *Client {
	clientCfg := defaultClientConfig()
	for _, opt := range opts {
		opt(clientCfg)
	}
	return newClient(s3Client, clientCfg)
}

// SetFilesystem sets the filesystem implementation for the client.
func (c *Client) SetFilesystem(filesystem fs.Filesystem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fs = filesystem
}

// Close releases any resources held by the client.
// Currently a no-op but included for future extensibility.
func (c *Client) Close() error {
	return nil
}

func (c *Client) filesystem() fs.Filesystem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fs
}

func defaultClientConfig() *s3types.ClientConfig {
	return &s3types.ClientConfig{
		Region:         s3types.DefaultRegion,
		ForcePathStyle: true,
		Driver:         s3types.DriverAWS,
	}
}

func newClient(api s3api.S3API, clientCfg *s3types.ClientConfig) *Client {
	filesystem := clientCfg.Filesystem
	if filesystem == nil {
		filesystem = billy.NewNativeFS()
	}

	logger := clientCfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		s3Client: api,
		fs:       filesystem,
		logger:   logger,
	}
}

// newAWSClient builds an aws-sdk-go-v2 S3 client with retries disabled.
func newAWSClient(ctx context.Context, clientCfg *s3types.ClientConfig) (*s3.Client, error) {
	var cfg aws.Config

	if clientCfg.CustomAWSConfig != nil {
		cfg = *clientCfg.CustomAWSConfig
	} else {
		loadOpts := []func(*config.LoadOptions) error{
			config.WithRegion(clientCfg.Region),
			config.WithRetryer(func() aws.Retryer { return aws.NopRetryer{} }),
		}
		if clientCfg.AccessKeyID != "" || clientCfg.SecretAccessKey != "" {
			loadOpts = append(loadOpts, config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(clientCfg.AccessKeyID, clientCfg.SecretAccessKey, ""),
			))
		}

		var err error
		cfg, err = config.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, fmt.Errorf("loading aws config: %w", err)
		}
	}

	if clientCfg.Region != "" {
		cfg.Region = clientCfg.Region
	}

	s3Opts := []func(*s3.Options){
		func(o *s3.Options) {
			o.UsePathStyle = clientCfg.ForcePathStyle
			o.Retryer = aws.NopRetryer{}
		},
	}

	if clientCfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(clientCfg.Endpoint)
		})
	}

	// Handle custom HTTP client for timeout
	if clientCfg.Timeout > 0 {
		httpClient := &http.Client{
			Timeout: clientCfg.Timeout,
		}
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = httpClient
		})
	}

	return s3.NewFromConfig(cfg, s3Opts...), nil
}
