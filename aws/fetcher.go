package aws

import (
	"context"

	"github.com/yourusername/bucket-browser/fetch"
)

// Fetcher adapts a Client to fetch.Fetcher for one bucket and prefix
type Fetcher struct {
	client  *Client
	bucket  string
	prefix  string
	maxKeys int32
}

var _ fetch.Fetcher = (*Fetcher)(nil)

// NewFetcher creates a fetcher listing bucket under prefix
func NewFetcher(client *Client, bucket, prefix string, maxKeys int32) *Fetcher {
	return &Fetcher{
		client:  client,
		bucket:  bucket,
		prefix:  prefix,
		maxKeys: maxKeys,
	}
}

// Source returns the bucket in s3:// form
func (f *Fetcher) Source() string {
	return "s3://" + f.bucket + "/" + f.prefix
}

// Fetch returns one ListObjectsV2 document
func (f *Fetcher) Fetch(ctx context.Context) (string, error) {
	return f.client.ListObjectsXML(ctx, f.bucket, f.prefix, f.maxKeys)
}
