package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ETCTracker/internal/compose"
)

// BeehiivChannel publishes the document as a Beehiiv newsletter post.
type BeehiivChannel struct {
	BaseURL       string
	APIKey        string
	PublicationID string
	Client        *http.Client
}

func NewBeehiivChannel(apiKey, publicationID string) *BeehiivChannel {
	return &BeehiivChannel{
		BaseURL:       "https://api.beehiiv.com/v2",
		APIKey:        apiKey,
		PublicationID: publicationID,
		Client:        &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *BeehiivChannel) Name() string { return "beehiiv" }

func (c *BeehiivChannel) Configured() bool {
	return c.APIKey != "" && c.PublicationID != ""
}

type beehiivPost struct {
	Title       string  `json:"title"`
	Subtitle    string  `json:"subtitle"`
	ContentHTML string  `json:"content_html"`
	Status      string  `json:"status"`
	SendAt      *string `json:"send_at"`
}

type beehiivResponse struct {
	Data struct {
		ID     string `json:"id"`
		WebURL string `json:"web_url"`
		URL    string `json:"url"`
	} `json:"data"`
}

func (c *BeehiivChannel) Publish(ctx context.Context, doc compose.Document) (string, string, error) {
	payload := beehiivPost{
		Title:       doc.Title,
		Subtitle:    doc.Subtitle,
		ContentHTML: doc.HTML,
		Status:      "confirmed", // published immediately
		SendAt:      nil,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("marshal post: %w", err)
	}

	endpoint := fmt.Sprintf("%s/publications/%s/posts", c.BaseURL, c.PublicationID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.Client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("beehiiv post: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if len(respBody) > 300 {
			respBody = respBody[:300]
		}
		return "", "", fmt.Errorf("beehiiv: status %d, body: %s", resp.StatusCode, respBody)
	}

	var parsed beehiivResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", "", fmt.Errorf("beehiiv decode: %w", err)
	}
	webURL := parsed.Data.WebURL
	if webURL == "" {
		webURL = parsed.Data.URL
	}
	return parsed.Data.ID, webURL, nil
}
