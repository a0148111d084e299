package news

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
)

// Unavailable stands in for the news service when NEWS_API_KEY is not configured.
type Unavailable struct{}

func (Unavailable) Search(context.Context, string, int) ([]model.NewsArticle, error) {
	return nil, fmt.Errorf("news search: %w", domainErrors.ErrConfigurationMissing)
}

func (Unavailable) Headlines(context.Context, string, int) ([]model.NewsArticle, error) {
	return nil, fmt.Errorf("news headlines: %w", domainErrors.ErrConfigurationMissing)
}
