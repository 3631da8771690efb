// Package fetch obtains raw listing documents for the parser.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Fetcher returns the complete text of one listing document
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
	// Source identifies where documents come from, for logs and cache keys
	Source() string
}

// DefaultTimeout bounds a single HTTP fetch
const DefaultTimeout = 30 * time.Second

// MaxDocumentSize caps how much of a response body is read
const MaxDocumentSize = 64 << 20

// HTTPFetcher downloads a listing document with a plain GET
type HTTPFetcher struct {
	url    string
	client *http.Client
}

// Option is a functional option for configuring HTTPFetcher
type Option func(*HTTPFetcher)

// WithHTTPClient replaces the default client
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// NewHTTPFetcher creates a fetcher for url
func NewHTTPFetcher(url string, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		url:    url,
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Source returns the URL being fetched
func (f *HTTPFetcher) Source() string {
	return f.url
}

// Fetch performs the GET and returns the body. Any failure is a *TransportError.
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", &TransportError{Op: "get", Source: f.url, Err: err}
	}
	req.Header.Set("Accept", "application/xml, text/xml")

	log.Debug().Str("source", f.url).Msg("Fetching listing document")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &TransportError{Op: "get", Source: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused
		_, _ = io.CopyN(io.Discard, resp.Body, 4096)
		return "", &TransportError{Op: "get", Source: f.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxDocumentSize+1))
	if err != nil {
		return "", &TransportError{Op: "get", Source: f.url, StatusCode: resp.StatusCode, Err: err}
	}
	if len(body) > MaxDocumentSize {
		return "", &TransportError{
			Op:         "get",
			Source:     f.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("document larger than %d bytes", MaxDocumentSize),
		}
	}

	log.Debug().Str("source", f.url).Int("bytes", len(body)).Msg("Fetched listing document")
	return string(body), nil
}
