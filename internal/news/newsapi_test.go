package news

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const okPayload = `{
	"status": "ok",
	"articles": [
		{
			"source": {"name": "CoinDesk"},
			"title": "ETC network upgrade announced",
			"description": "The upgrade lands next month.",
			"url": "https://example.com/a",
			"publishedAt": "2026-08-30T12:00:00Z"
		},
		{
			"source": {"name": "Reuters"},
			"title": "Miners switch to ETC",
			"description": "Hashrate is moving.",
			"url": "https://example.com/b",
			"publishedAt": "2026-08-29T09:30:00Z"
		},
		{
			"source": {"name": "Blog"},
			"title": "Third item",
			"description": "Over the cap.",
			"url": "https://example.com/c",
			"publishedAt": "2026-08-28T08:00:00Z"
		}
	]
}`

func TestFetch_ParsesBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "test-key" {
			t.Errorf("expected api key header, got %q", got)
		}
		if got := r.URL.Query().Get("sortBy"); got != "publishedAt" {
			t.Errorf("expected sortBy=publishedAt, got %q", got)
		}
		if got := r.URL.Query().Get("language"); got != "en" {
			t.Errorf("expected language=en, got %q", got)
		}
		fmt.Fprint(w, okPayload)
	}))
	defer srv.Close()

	c := NewNewsAPIClient(srv.URL, "test-key")
	items := c.Fetch(context.Background(), "Ethereum Classic OR ETC", 2)

	if len(items) != 2 {
		t.Fatalf("expected batch capped at 2 items, got %d", len(items))
	}
	first := items[0]
	if first.Title != "ETC network upgrade announced" {
		t.Errorf("unexpected title %q", first.Title)
	}
	if first.Source != "CoinDesk" {
		t.Errorf("unexpected source %q", first.Source)
	}
	if first.URL != "https://example.com/a" {
		t.Errorf("unexpected url %q", first.URL)
	}
	want := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Errorf("expected publish time %v, got %v", want, first.PublishedAt)
	}
}

func TestFetch_ProviderStatusNotOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status": "error", "message": "apiKeyInvalid"}`)
	}))
	defer srv.Close()

	c := NewNewsAPIClient(srv.URL, "bad-key")
	if items := c.Fetch(context.Background(), "ETC", 5); len(items) != 0 {
		t.Errorf("expected empty batch on provider error, got %d items", len(items))
	}
}

func TestFetch_HTTPErrorFailsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewNewsAPIClient(srv.URL, "test-key")
	if items := c.Fetch(context.Background(), "ETC", 5); len(items) != 0 {
		t.Errorf("expected empty batch on HTTP error, got %d items", len(items))
	}
}

func TestFetch_TransportErrorFailsSoft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewNewsAPIClient(srv.URL, "test-key")
	if items := c.Fetch(context.Background(), "ETC", 5); len(items) != 0 {
		t.Errorf("expected empty batch on transport error, got %d items", len(items))
	}
}
