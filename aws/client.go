package aws

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/bucket-browser/fetch"
)

// DefaultRegion is used when neither a flag nor the environment names one
const DefaultRegion = "us-east-1"

// ListObjectsAPI is the subset of the S3 client used for listings
type ListObjectsAPI interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Options configures NewClient
type Options struct {
	// Profile selects a shared config profile. Without one, requests are unsigned.
	Profile string
	Region  string
	// Endpoint overrides the S3 endpoint and switches to path-style addressing
	Endpoint string
}

// Client wraps the AWS S3 client with configuration
type Client struct {
	S3     ListObjectsAPI
	Config aws.Config
}

// NewClient creates a new S3 client from the given options
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	var loadOpts []func(*config.LoadOptions) error

	// Profile implies the SDK credential chain; otherwise stay anonymous
	if opts.Profile != "" {
		loadOpts = append(loadOpts, config.WithSharedConfigProfile(opts.Profile))
	} else {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(aws.AnonymousCredentials{}))
	}

	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Client{
		S3:     s3Client,
		Config: cfg,
	}, nil
}

// ListObjectsXML performs a single ListObjectsV2 request and returns the raw
// response document. Continuation tokens are not followed.
func (c *Client) ListObjectsXML(ctx context.Context, bucket, prefix string, maxKeys int32) (string, error) {
	input := &s3.ListObjectsV2Input{
		Bucket:     aws.String(bucket),
		FetchOwner: aws.Bool(true),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	if maxKeys > 0 {
		input.MaxKeys = aws.Int32(maxKeys)
	}

	var body bytes.Buffer
	_, err := c.S3.ListObjectsV2(ctx, input, func(o *s3.Options) {
		o.APIOptions = append(o.APIOptions, captureResponseBody(&body))
	})
	if err != nil {
		// The SDK could not decode a successful response. Hand the raw text on
		// so the listing parser reports what is wrong with it.
		var deserErr *smithy.DeserializationError
		if errors.As(err, &deserErr) && body.Len() > 0 {
			log.Warn().Err(err).Str("bucket", bucket).Msg("SDK could not decode listing, passing raw document on")
			return body.String(), nil
		}
		return "", &fetch.TransportError{Op: "list-objects", Source: bucket, StatusCode: statusCode(err), Err: err}
	}

	return body.String(), nil
}

// captureResponseBody copies the raw HTTP response body of a successful
// request into dst before the SDK deserializer consumes it.
func captureResponseBody(dst *bytes.Buffer) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Deserialize.Add(middleware.DeserializeMiddlewareFunc("CaptureListingBody",
			func(ctx context.Context, in middleware.DeserializeInput, next middleware.DeserializeHandler) (
				middleware.DeserializeOutput, middleware.Metadata, error,
			) {
				out, metadata, err := next.HandleDeserialize(ctx, in)
				if err != nil {
					return out, metadata, err
				}

				resp, ok := out.RawResponse.(*smithyhttp.Response)
				if !ok || resp.StatusCode < 200 || resp.StatusCode > 299 {
					return out, metadata, err
				}

				data, readErr := io.ReadAll(resp.Body)
				resp.Body.Close()
				if readErr != nil {
					return out, metadata, readErr
				}
				// Retried attempts must not accumulate
				dst.Reset()
				dst.Write(data)
				resp.Body = io.NopCloser(bytes.NewReader(data))

				return out, metadata, nil
			}), middleware.After)
	}
}

// statusCode extracts the HTTP status from an SDK error, or 0 when there was no response
func statusCode(err error) int {
	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		return respErr.HTTPStatusCode()
	}
	return 0
}
