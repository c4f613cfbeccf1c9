// Package minio adapts a minio-go client to the PutObject contract of s3api.S3API.
package minio

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/input-output-hk/catalyst-forge-libs/s3upload/internal/s3api"
)

// defaultEndpoint is used when no endpoint is configured.
const defaultEndpoint = "https://s3.amazonaws.com"

var _ s3api.S3API = (*Client)(nil)

// Config holds the connection parameters for a minio-backed client.
type Config struct {
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool
}

// Client issues PutObject requests through minio-go.
type Client struct {
	client *minio.Client
}

// New creates a Client. Endpoint may be a URL or a bare host; bare hosts use TLS.
func New(cfg Config) (*Client, error) {
	host, secure, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	lookup := minio.BucketLookupAuto
	if cfg.ForcePathStyle {
		lookup = minio.BucketLookupPath
	}

	client, err := minio.New(host, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure:       secure,
		Region:       cfg.Region,
		BucketLookup: lookup,
		// A single attempt; failures surface immediately.
		MaxRetries: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &Client{client: client}, nil
}

// PutObject uploads params.Body as a single object.
// Only Bucket, Key, Body, ContentLength and ContentType are honoured. optFns are ignored.
func (c *Client) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	_ ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	size := aws.ToInt64(params.ContentLength)
	if params.ContentLength == nil {
		size = -1
	}

	var body io.Reader = params.Body
	if body == nil {
		body = strings.NewReader("")
		size = 0
	}

	info, err := c.client.PutObject(ctx,
		aws.ToString(params.Bucket),
		aws.ToString(params.Key),
		body,
		size,
		minio.PutObjectOptions{
			ContentType: aws.ToString(params.ContentType),
		},
	)
	if err != nil {
		return nil, translateError(err)
	}

	return &s3.PutObjectOutput{
		ETag:      aws.String(info.ETag),
		VersionId: nilIfEmpty(info.VersionID),
	}, nil
}

// apiError is a smithy.APIError that still unwraps to the minio error it came from.
type apiError struct {
	smithy.GenericAPIError
	err error
}

func (e *apiError) Unwrap() error { return e.err }

// translateError exposes minio error codes as a smithy.APIError so that the
// same classification applies to both drivers.
func translateError(err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "" {
		return err
	}
	return &apiError{
		GenericAPIError: smithy.GenericAPIError{
			Code:    resp.Code,
			Message: resp.Message,
		},
		err: err,
	}
}

func parseEndpoint(endpoint string) (host string, secure bool, err error) {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		return strings.TrimSuffix(endpoint, "/"), true, nil
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return "", false, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	switch u.Scheme {
	case "http":
		return u.Host, false, nil
	case "https":
		return u.Host, true, nil
	default:
		return "", false, fmt.Errorf("invalid endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
