package model

import "time"

// NewsItem is a single article returned by the news provider.
type NewsItem struct {
	Title       string
	Description string
	Source      string
	PublishedAt time.Time
	URL         string
}
