package market

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"ETCTracker/internal/logger"
	"ETCTracker/internal/model"
)

const (
	maxAttempts = 3
	// CoinGecko's public quota resets per minute, so the rate-limit wait
	// escalates linearly: 60s after the first 429, 120s after the second.
	rateLimitWait = 60 * time.Second
	transientWait = 10 * time.Second

	// defaultMaxSupply is the ETC protocol cap, used when the provider omits it.
	defaultMaxSupply = 210_700_000
)

// CoinGeckoFetcher implements Fetcher using the CoinGecko coins endpoint.
type CoinGeckoFetcher struct {
	BaseURL string
	Client  *http.Client

	sleep func(time.Duration)
}

// NewCoinGeckoFetcher creates a fetcher against the given API base URL.
func NewCoinGeckoFetcher(baseURL string) *CoinGeckoFetcher {
	return &CoinGeckoFetcher{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
		sleep:   time.Sleep,
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// geckoCoin is the subset of the CoinGecko response the tracker uses.
type geckoCoin struct {
	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		PriceChangePercentage24h *float64           `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  *float64           `json:"price_change_percentage_7d"`
		PriceChangePercentage30d *float64           `json:"price_change_percentage_30d"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		ATH                      map[string]float64 `json:"ath"`
		ATHDate                  map[string]string  `json:"ath_date"`
		CirculatingSupply        *float64           `json:"circulating_supply"`
		MaxSupply                *float64           `json:"max_supply"`
	} `json:"market_data"`
}

// Fetch retrieves the current quote with up to three attempts. HTTP 429 waits
// 60s x attempt number; other transient failures wait a fixed 10s. A malformed
// 200 payload is fatal immediately.
func (f *CoinGeckoFetcher) Fetch(ctx context.Context, assetID string) (*model.Quote, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		quote, status, err := f.fetchOnce(ctx, assetID)
		if err == nil {
			return quote, nil
		}
		if errors.Is(err, ErrMalformedQuote) {
			return nil, err
		}
		lastErr = err
		if attempt == maxAttempts {
			break
		}
		wait := transientWait
		if status == http.StatusTooManyRequests {
			wait = time.Duration(attempt) * rateLimitWait
		}
		logger.Log.Warnf("coingecko attempt %d/%d failed: %v — retrying in %s", attempt, maxAttempts, err, wait)
		f.sleep(wait)
	}
	return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, lastErr)
}

func (f *CoinGeckoFetcher) fetchOnce(ctx context.Context, assetID string) (*model.Quote, int, error) {
	u := fmt.Sprintf("%s/coins/%s?localization=false&tickers=false&market_data=true&community_data=false&developer_data=false&sparkline=false",
		f.BaseURL, url.PathEscape(assetID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("coingecko fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("coingecko read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, fmt.Errorf("coingecko: status %d, body: %s", resp.StatusCode, snippet(body))
	}

	var coin geckoCoin
	if err := json.Unmarshal(body, &coin); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: decode: %v", ErrMalformedQuote, err)
	}

	md := coin.MarketData
	priceUSD, ok := md.CurrentPrice["usd"]
	if !ok || priceUSD <= 0 {
		return nil, resp.StatusCode, fmt.Errorf("%w: missing current_price.usd", ErrMalformedQuote)
	}
	athUSD, ok := md.ATH["usd"]
	if !ok || athUSD <= 0 {
		return nil, resp.StatusCode, fmt.Errorf("%w: missing ath.usd", ErrMalformedQuote)
	}

	athDate := md.ATHDate["usd"]
	if len(athDate) > 10 {
		athDate = athDate[:10]
	}

	quote := &model.Quote{
		PriceUSD:          priceUSD,
		PriceEUR:          md.CurrentPrice["eur"],
		Change24h:         deref(md.PriceChangePercentage24h),
		Change7d:          deref(md.PriceChangePercentage7d),
		Change30d:         deref(md.PriceChangePercentage30d),
		MarketCapUSD:      md.MarketCap["usd"],
		Volume24hUSD:      md.TotalVolume["usd"],
		ATHUSD:            athUSD,
		ATHDate:           athDate,
		CirculatingSupply: deref(md.CirculatingSupply),
		MaxSupply:         defaultMaxSupply,
		FetchedAt:         time.Now(),
	}
	if md.MaxSupply != nil && *md.MaxSupply > 0 {
		quote.MaxSupply = *md.MaxSupply
	}
	return quote, resp.StatusCode, nil
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func snippet(body []byte) string {
	if len(body) > 200 {
		body = body[:200]
	}
	return string(body)
}
