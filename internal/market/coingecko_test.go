package market

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const goodPayload = `{
	"market_data": {
		"current_price": {"usd": 18.5, "eur": 17.1},
		"price_change_percentage_24h": 3.2,
		"price_change_percentage_30d": 10.0,
		"market_cap": {"usd": 2800000000},
		"total_volume": {"usd": 150000000},
		"ath": {"usd": 45.0},
		"ath_date": {"usd": "2021-05-06T13:45:00.000Z"},
		"circulating_supply": 148000000,
		"max_supply": null
	}
}`

func newTestFetcher(srvURL string) (*CoinGeckoFetcher, *[]time.Duration) {
	f := NewCoinGeckoFetcher(srvURL)
	sleeps := &[]time.Duration{}
	f.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return f, sleeps
}

func TestFetch_RateLimitBackoff(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls <= 2 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, goodPayload)
	}))
	defer srv.Close()

	f, sleeps := newTestFetcher(srv.URL)
	q, err := f.Fetch(context.Background(), "ethereum-classic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	// Escalating, not exponential: 60s after the first 429, 120s after the second.
	want := []time.Duration{60 * time.Second, 120 * time.Second}
	if len(*sleeps) != len(want) {
		t.Fatalf("expected backoff sequence %v, got %v", want, *sleeps)
	}
	for i := range want {
		if (*sleeps)[i] != want[i] {
			t.Errorf("backoff %d: expected %v, got %v", i, want[i], (*sleeps)[i])
		}
	}

	if q.PriceUSD != 18.5 {
		t.Errorf("expected price 18.5, got %v", q.PriceUSD)
	}
	if q.PriceEUR != 17.1 {
		t.Errorf("expected eur price 17.1, got %v", q.PriceEUR)
	}
	if q.Change7d != 0 {
		t.Errorf("absent 7d change must default to 0, got %v", q.Change7d)
	}
	if q.Change24h != 3.2 {
		t.Errorf("expected 24h change 3.2, got %v", q.Change24h)
	}
	if q.ATHDate != "2021-05-06" {
		t.Errorf("expected ath date 2021-05-06, got %q", q.ATHDate)
	}
	if q.MaxSupply != defaultMaxSupply {
		t.Errorf("null max_supply must default to %v, got %v", float64(defaultMaxSupply), q.MaxSupply)
	}
}

func TestFetch_TransientErrorsExhaustRetries(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f, sleeps := newTestFetcher(srv.URL)
	_, err := f.Fetch(context.Background(), "ethereum-classic")
	if !errors.Is(err, ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}

	if calls != 3 {
		t.Errorf("expected 3 attempts, got %d", calls)
	}
	want := []time.Duration{10 * time.Second, 10 * time.Second}
	if len(*sleeps) != 2 || (*sleeps)[0] != want[0] || (*sleeps)[1] != want[1] {
		t.Errorf("expected fixed 10s waits %v, got %v", want, *sleeps)
	}
}

func TestFetch_MalformedPayloadIsFatal(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{"market_data": {"current_price": {"eur": 17.1}}}`)
	}))
	defer srv.Close()

	f, sleeps := newTestFetcher(srv.URL)
	_, err := f.Fetch(context.Background(), "ethereum-classic")
	if !errors.Is(err, ErrMalformedQuote) {
		t.Fatalf("expected ErrMalformedQuote, got %v", err)
	}

	// A malformed 200 payload is not retried.
	if calls != 1 {
		t.Errorf("expected a single attempt, got %d", calls)
	}
	if len(*sleeps) != 0 {
		t.Errorf("expected no backoff, got %v", *sleeps)
	}
}

func TestFetch_MixedFailuresThenSuccess(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		switch calls {
		case 1:
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			fmt.Fprint(w, goodPayload)
		}
	}))
	defer srv.Close()

	f, sleeps := newTestFetcher(srv.URL)
	q, err := f.Fetch(context.Background(), "ethereum-classic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.PriceUSD != 18.5 {
		t.Errorf("expected price 18.5, got %v", q.PriceUSD)
	}
	want := []time.Duration{60 * time.Second, 10 * time.Second}
	if len(*sleeps) != 2 || (*sleeps)[0] != want[0] || (*sleeps)[1] != want[1] {
		t.Errorf("expected waits %v, got %v", want, *sleeps)
	}
}
