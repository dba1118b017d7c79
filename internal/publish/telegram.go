package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"ETCTracker/internal/compose"
)

// TelegramChannel pushes the report headline to a Telegram chat via the Bot
// API. The chat gets the title and subtitle; the full article lives on the
// site and in the newsletter.
type TelegramChannel struct {
	BaseURL  string
	BotToken string
	ChatID   string
	Client   *http.Client
}

func NewTelegramChannel(botToken, chatID string) *TelegramChannel {
	return &TelegramChannel{
		BaseURL:  "https://api.telegram.org",
		BotToken: botToken,
		ChatID:   chatID,
		Client:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (t *TelegramChannel) Name() string { return "telegram" }

func (t *TelegramChannel) Configured() bool {
	return t.BotToken != "" && t.ChatID != ""
}

type telegramResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		MessageID int64 `json:"message_id"`
	} `json:"result"`
}

func (t *TelegramChannel) Publish(ctx context.Context, doc compose.Document) (string, string, error) {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.BaseURL, t.BotToken)
	payload := map[string]string{
		"chat_id":    t.ChatID,
		"text":       fmt.Sprintf("<b>%s</b>\n\n%s", doc.Title, doc.Subtitle),
		"parse_mode": "HTML",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", "", fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		if len(respBody) > 300 {
			respBody = respBody[:300]
		}
		return "", "", fmt.Errorf("telegram API error: status %d, body: %s", resp.StatusCode, respBody)
	}

	var parsed telegramResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", "", fmt.Errorf("telegram decode: %w", err)
	}
	if !parsed.OK {
		return "", "", fmt.Errorf("telegram API error: body: %s", respBody)
	}
	return strconv.FormatInt(parsed.Result.MessageID, 10), "", nil
}
