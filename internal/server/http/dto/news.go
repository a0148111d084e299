package dto

import "time"

// ArticleResponse is a news article.
type ArticleResponse struct {
	Title       string     `json:"title"`
	Source      string     `json:"source"`
	URL         string     `json:"url"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Description string     `json:"description"`
	ImageURL    *string    `json:"image_url,omitempty"`
}

// RelatedNewsRequest carries text to match news against.
type RelatedNewsRequest struct {
	Text string `json:"text"`
}

// NewsResponse lists articles. Warning is set when the news service failed.
type NewsResponse struct {
	Keywords []string          `json:"keywords,omitempty"`
	Articles []ArticleResponse `json:"articles"`
	Warning  string            `json:"warning,omitempty"`
}
