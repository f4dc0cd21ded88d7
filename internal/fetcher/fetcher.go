// Package fetcher turns RSS feeds and seed URLs into pipeline items.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"syscall"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/sethvargo/go-retry"

	"rss_digest/internal/model"
	"rss_digest/internal/urlnorm"
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

const (
	defaultTimeout = 20 * time.Second
	defaultBackoff = 2 * time.Second

	// One retry after the initial attempt.
	maxRetries = 1

	maxBodyBytes = 5 * 1024 * 1024
)

// Fetcher downloads and parses RSS feeds one at a time.
type Fetcher struct {
	client   HTTPClient
	timeout  time.Duration
	backoff  time.Duration
	maxItems int
}

// New creates a Fetcher that keeps at most maxItems entries per feed.
func New(client HTTPClient, maxItems int) *Fetcher {
	return &Fetcher{
		client:   client,
		timeout:  defaultTimeout,
		backoff:  defaultBackoff,
		maxItems: maxItems,
	}
}

// SetBackoff overrides the default 2-second retry backoff.
func (f *Fetcher) SetBackoff(d time.Duration) {
	f.backoff = d
}

// SetTimeout overrides the default 20-second per-request timeout.
func (f *Fetcher) SetTimeout(d time.Duration) {
	f.timeout = d
}

// Fetch downloads one feed and converts its entries into items, retrying
// once after a fixed backoff when the failure is classified retryable.
// The returned items carry the feed's host label as their source.
func (f *Fetcher) Fetch(ctx context.Context, feedURL string) ([]model.Item, error) {
	var feed *gofeed.Feed

	b := retry.WithMaxRetries(maxRetries, retry.NewConstant(f.backoff))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		got, err := f.fetchOnce(ctx, feedURL)
		if err != nil {
			if retryable(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		feed = got
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", feedURL, err)
	}

	source := urlnorm.HostLabel(feedURL)
	items := make([]model.Item, 0, min(len(feed.Items), f.maxItems))
	for _, entry := range feed.Items {
		if len(items) >= f.maxItems {
			break
		}
		if entry.Link == "" {
			continue
		}
		items = append(items, model.Item{
			Title:     entryTitle(entry),
			URL:       entry.Link,
			Source:    source,
			Published: ResolveDate(entry),
		})
	}
	return items, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "rss-digest/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http get: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, &statusError{code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	feed, err := gofeed.NewParser().ParseString(string(body))
	if err != nil {
		return nil, &feedParseError{err: err}
	}
	return feed, nil
}

func entryTitle(entry *gofeed.Item) string {
	if entry.Title != "" {
		return entry.Title
	}
	return entry.Link
}

// statusError reports an HTTP error status (>= 400) from a feed endpoint.
type statusError struct {
	code int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d", e.code)
}

// feedParseError reports feed content gofeed could not parse at all.
type feedParseError struct {
	err error
}

func (e *feedParseError) Error() string {
	return fmt.Sprintf("parse feed: %v", e.err)
}

func (e *feedParseError) Unwrap() error {
	return e.err
}

// retryable decides whether a per-feed failure is worth one more
// attempt: timeouts, connection-level errors, HTTP error statuses, and
// unparseable feed bodies. Anything else fails the feed immediately.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return true
	}
	var pe *feedParseError
	if errors.As(err, &pe) {
		return true
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return true
	}
	var oe *net.OpError
	if errors.As(err, &oe) {
		return true
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.EPIPE):
		return true
	}
	return false
}
