package model

import "time"

// NewsArticle is a transient search result, never persisted.
type NewsArticle struct {
	Title       string
	Source      string
	URL         string
	PublishedAt time.Time
	Description string
	ImageURL    *string
}

// NewsCategories lists categories accepted by the headlines endpoint.
var NewsCategories = []string{"business", "technology", "health", "science", "sports", "entertainment", "general"}

// IsNewsCategory reports whether c is a supported headlines category.
func IsNewsCategory(c string) bool {
	for _, known := range NewsCategories {
		if c == known {
			return true
		}
	}
	return false
}
