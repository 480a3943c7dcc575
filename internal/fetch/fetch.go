// Package fetch discovers and downloads bulk snapshot archives from an
// S3-style public listing.
package fetch

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the public snapshot bucket listing.
	DefaultBaseURL = "https://unpaywall-data-snapshots.s3-us-west-2.amazonaws.com/"

	// DefaultTimeout bounds the listing request. Downloads run without a
	// client timeout; they are bounded by context cancellation instead.
	DefaultTimeout = 60 * time.Second

	// RateLimit caps requests per second against the snapshot host.
	RateLimit = 2.0

	// downloadChunkSize is the copy buffer for streaming a snapshot to disk.
	downloadChunkSize = 8192
)

// ErrNoSnapshot is returned when the listing contains no snapshot archive.
var ErrNoSnapshot = errors.New("no snapshot found online")

// StatusError reports a non-success HTTP response.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request for %s failed with status code %d", e.URL, e.StatusCode)
}

// Snapshot describes one archive discovered in the listing.
type Snapshot struct {
	URL          string
	Key          string
	LastModified time.Time
	Size         int64
}

// Client is a rate-limited HTTP client for the snapshot host.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithBaseURL overrides the snapshot listing URL.
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a snapshot client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// listBucketResult is the subset of the S3 listing XML we consume.
type listBucketResult struct {
	Contents []struct {
		Key          string    `xml:"Key"`
		LastModified time.Time `xml:"LastModified"`
		Size         int64     `xml:"Size"`
	} `xml:"Contents"`
}

// Latest returns the newest snapshot in the listing: the final Contents
// entry, which the bucket keys chronologically. Returns ErrNoSnapshot for
// an empty listing.
func (c *Client) Latest(ctx context.Context) (*Snapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating listing request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching snapshot listing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: c.baseURL}
	}

	var listing listBucketResult
	if err := xml.NewDecoder(resp.Body).Decode(&listing); err != nil {
		return nil, fmt.Errorf("parsing snapshot listing: %w", err)
	}
	if len(listing.Contents) == 0 {
		return nil, ErrNoSnapshot
	}

	entry := listing.Contents[len(listing.Contents)-1]
	return &Snapshot{
		URL:          c.baseURL + entry.Key,
		Key:          entry.Key,
		LastModified: entry.LastModified,
		Size:         entry.Size,
	}, nil
}

// Download streams the archive at url to w in fixed-size chunks, each
// chunk fully written before the next is requested. A partial file is left
// behind on failure; callers treat any non-clean termination as requiring
// a full rerun.
func (c *Client) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("downloading snapshot: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	buf := make([]byte, downloadChunkSize)
	n, err := io.CopyBuffer(w, resp.Body, buf)
	if err != nil {
		return n, fmt.Errorf("writing snapshot: %w", err)
	}
	return n, nil
}
