// Package fetcher retrieves raw feed payloads. It makes no assumptions
// about format; adapters deal with the bytes.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	// Per-request ceiling; one slow host must not stall a whole run.
	requestTimeout = 15 * time.Second
	maxBodyBytes   = 10 * 1024 * 1024
)

// HTTPClient is the interface for performing HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Outcome is the result of fetching one URL: a payload or a failure,
// never both.
type Outcome struct {
	URL  string
	Body []byte
	Err  error
}

// Fetcher downloads feed payloads concurrently.
type Fetcher struct {
	client  HTTPClient
	timeout time.Duration
}

// New creates a Fetcher. A nil client gets a default with the standard
// per-request timeout.
func New(client HTTPClient) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	return &Fetcher{client: client, timeout: requestTimeout}
}

// FetchAll retrieves every URL concurrently and returns one outcome per
// URL, in input order. A failed URL never cancels its siblings; there
// is no retry at this layer.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []Outcome {
	outcomes := make([]Outcome, len(urls))
	var wg sync.WaitGroup
	for i, u := range urls {
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			body, err := f.fetch(ctx, u)
			outcomes[i] = Outcome{URL: u, Body: body, Err: err}
		}(i, u)
	}
	wg.Wait()
	return outcomes
}

func (f *Fetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	slog.Debug("fetcher: requesting", "url", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: create request: %w", url, err)
	}
	req.Header.Set("User-Agent", "newswatch/1.0")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", url, err)
	}
	return body, nil
}
