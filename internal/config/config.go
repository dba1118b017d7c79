package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is assembled once at startup
// and passed into component constructors; no component reads the environment
// directly.
type Config struct {
	Asset struct {
		ID           string `yaml:"id"`
		QuoteBaseURL string `yaml:"quote_base_url"`
	} `yaml:"asset"`
	News struct {
		APIKey   string `yaml:"api_key"`
		BaseURL  string `yaml:"base_url"`
		Query    string `yaml:"query"`
		MaxItems int    `yaml:"max_items"`
	} `yaml:"news"`
	Anthropic struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"anthropic"`
	Beehiiv struct {
		APIKey        string `yaml:"api_key"`
		PublicationID string `yaml:"publication_id"`
	} `yaml:"beehiiv"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		MarketCron string `yaml:"market_cron"`
		NewsCron   string `yaml:"news_cron"`
	} `yaml:"schedule"`
	Content struct {
		Dir string `yaml:"dir"`
	} `yaml:"content"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ASSET_ID"); v != "" {
		cfg.Asset.ID = v
	}
	if v := os.Getenv("COINGECKO_BASE_URL"); v != "" {
		cfg.Asset.QuoteBaseURL = v
	}
	if v := os.Getenv("NEWSAPI_API_KEY"); v != "" {
		cfg.News.APIKey = v
	}
	if v := os.Getenv("NEWSAPI_MAX_ITEMS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.News.MaxItems = n
		}
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		cfg.Anthropic.APIKey = v
	}
	if v := os.Getenv("BEEHIIV_API_KEY"); v != "" {
		cfg.Beehiiv.APIKey = v
	}
	if v := os.Getenv("BEEHIIV_PUBLICATION_ID"); v != "" {
		cfg.Beehiiv.PublicationID = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("CRON_MARKET"); v != "" {
		cfg.Schedule.MarketCron = v
	}
	if v := os.Getenv("CRON_NEWS"); v != "" {
		cfg.Schedule.NewsCron = v
	}
	if v := os.Getenv("CONTENT_DIR"); v != "" {
		cfg.Content.Dir = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Asset.ID == "" {
		cfg.Asset.ID = "ethereum-classic"
	}
	if cfg.Asset.QuoteBaseURL == "" {
		cfg.Asset.QuoteBaseURL = "https://api.coingecko.com/api/v3"
	}
	if cfg.News.BaseURL == "" {
		cfg.News.BaseURL = "https://newsapi.org/v2"
	}
	if cfg.News.Query == "" {
		cfg.News.Query = "Ethereum Classic OR ETC"
	}
	if cfg.News.MaxItems == 0 {
		cfg.News.MaxItems = 5
	}
	if cfg.Schedule.MarketCron == "" {
		cfg.Schedule.MarketCron = "0 0 7 * * *"
	}
	if cfg.Schedule.NewsCron == "" {
		cfg.Schedule.NewsCron = "0 30 7 * * *"
	}
	if cfg.Content.Dir == "" {
		cfg.Content.Dir = "content"
	}

	return cfg, nil
}

// Validate checks that all required fields are set. Only the quote source is
// mandatory: absence of an optional key disables the stage that depends on it.
func (c *Config) Validate() error {
	if c.Asset.ID == "" {
		return fmt.Errorf("asset.id is required")
	}
	if c.Asset.QuoteBaseURL == "" {
		return fmt.Errorf("asset.quote_base_url is required")
	}
	if c.News.MaxItems <= 0 {
		return fmt.Errorf("news.max_items must be positive")
	}
	return nil
}
