package fetcher

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
)

// mockTransport serves canned responses keyed by URL.
type mockTransport struct {
	mu        sync.Mutex
	responses map[string]mockResponse
	calls     []string
}

type mockResponse struct {
	body       string
	statusCode int
	err        error
}

func (m *mockTransport) Do(req *http.Request) (*http.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req.URL.String())
	r, ok := m.responses[req.URL.String()]
	m.mu.Unlock()
	if !ok {
		return nil, io.ErrUnexpectedEOF
	}
	if r.err != nil {
		return nil, r.err
	}
	return &http.Response{
		StatusCode: r.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(r.body)),
	}, nil
}

func TestFetchAllIsolatesFailures(t *testing.T) {
	transport := &mockTransport{responses: map[string]mockResponse{
		"https://a.example/rss": {body: "<rss/>", statusCode: 200},
		"https://b.example/rss": {statusCode: 503, body: "try later"},
		"https://c.example/rss": {err: io.ErrUnexpectedEOF},
	}}
	f := New(transport)

	urls := []string{"https://a.example/rss", "https://b.example/rss", "https://c.example/rss"}
	outcomes := f.FetchAll(context.Background(), urls)
	if len(outcomes) != 3 {
		t.Fatalf("got %d outcomes, want 3", len(outcomes))
	}

	// Outcomes are in input order regardless of completion order.
	for i, u := range urls {
		if outcomes[i].URL != u {
			t.Errorf("outcome[%d].URL = %q, want %q", i, outcomes[i].URL, u)
		}
	}

	if outcomes[0].Err != nil {
		t.Errorf("healthy URL failed: %v", outcomes[0].Err)
	}
	if string(outcomes[0].Body) != "<rss/>" {
		t.Errorf("body = %q", outcomes[0].Body)
	}
	if outcomes[1].Err == nil || !strings.Contains(outcomes[1].Err.Error(), "status 503") {
		t.Errorf("expected status failure, got %v", outcomes[1].Err)
	}
	if outcomes[2].Err == nil {
		t.Errorf("expected transport failure")
	}
}

func TestFetchAllAllFail(t *testing.T) {
	transport := &mockTransport{responses: map[string]mockResponse{}}
	f := New(transport)

	outcomes := f.FetchAll(context.Background(), []string{"https://x.example", "https://y.example"})
	for _, o := range outcomes {
		if o.Err == nil {
			t.Errorf("expected failure for %s", o.URL)
		}
	}
}

func TestFetchSetsUserAgent(t *testing.T) {
	var gotUA string
	f := New(doFunc(func(req *http.Request) (*http.Response, error) {
		gotUA = req.Header.Get("User-Agent")
		return &http.Response{StatusCode: 200, Body: io.NopCloser(bytes.NewBufferString("ok"))}, nil
	}))
	f.FetchAll(context.Background(), []string{"https://a.example"})
	if gotUA == "" {
		t.Errorf("request sent without User-Agent")
	}
}

type doFunc func(req *http.Request) (*http.Response, error)

func (f doFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }
