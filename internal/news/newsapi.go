package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"ETCTracker/internal/logger"
	"ETCTracker/internal/model"
)

// Fetcher retrieves recent news items for a free-text query. Implementations
// never fail hard: any error yields an empty batch, and the caller treats an
// empty batch as "no news stage this run".
type Fetcher interface {
	Fetch(ctx context.Context, query string, maxItems int) []model.NewsItem
	Name() string
}

// NewsAPIClient implements Fetcher using the NewsAPI /everything endpoint.
type NewsAPIClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

func NewNewsAPIClient(baseURL, apiKey string) *NewsAPIClient {
	return &NewsAPIClient{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *NewsAPIClient) Name() string { return "newsapi" }

type newsAPIResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// Fetch returns the most recent English-language items matching query, capped
// at maxItems. A stale or missing digest is acceptable, so there are no
// retries: every failure logs a warning and returns an empty batch.
func (c *NewsAPIClient) Fetch(ctx context.Context, query string, maxItems int) []model.NewsItem {
	u := fmt.Sprintf("%s/everything?q=%s&sortBy=publishedAt&language=en&pageSize=%d",
		c.BaseURL, url.QueryEscape(query), maxItems)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		logger.Log.Warnf("newsapi request: %v", err)
		return nil
	}
	req.Header.Set("Authorization", c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		logger.Log.Warnf("newsapi fetch: %v", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warnf("newsapi: status %d", resp.StatusCode)
		return nil
	}

	var raw newsAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		logger.Log.Warnf("newsapi decode: %v", err)
		return nil
	}
	if raw.Status != "ok" {
		logger.Log.Warnf("newsapi: provider status %q: %s", raw.Status, raw.Message)
		return nil
	}

	items := make([]model.NewsItem, 0, len(raw.Articles))
	for _, a := range raw.Articles {
		if len(items) == maxItems {
			break
		}
		publishedAt, err := time.Parse(time.RFC3339, a.PublishedAt)
		if err != nil {
			publishedAt = time.Time{}
		}
		items = append(items, model.NewsItem{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			PublishedAt: publishedAt,
			URL:         a.URL,
		})
	}
	return items
}
