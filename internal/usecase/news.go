package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/polkiloo/meetsum/internal/adapter/news"
	"github.com/polkiloo/meetsum/internal/cache"
	"github.com/polkiloo/meetsum/internal/config"
	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/metrics"
	"github.com/polkiloo/meetsum/internal/pkg/keywords"
)

// NewsUseCase matches free text against recent news.
type NewsUseCase struct {
	client   news.Client
	cache    cache.Cache
	logger   *slog.Logger
	metrics  *metrics.Metrics
	keywords int
	pageSize int
	ttl      time.Duration
	fallback string
}

// NewNewsUseCase constructs NewsUseCase.
func NewNewsUseCase(client news.Client, c cache.Cache, cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *NewsUseCase {
	fallback := cfg.News.FallbackCategory
	if !model.IsNewsCategory(fallback) {
		fallback = "technology"
	}
	return &NewsUseCase{
		client:   client,
		cache:    c,
		logger:   logger,
		metrics:  m,
		keywords: cfg.News.Keywords,
		pageSize: cfg.News.PageSize,
		ttl:      cfg.News.CacheTTL,
		fallback: fallback,
	}
}

// FallbackCategory is browsed when text yields no keywords.
func (u *NewsUseCase) FallbackCategory() string {
	return u.fallback
}

// Related extracts keywords from text and searches for them. Without keywords
// it returns the latest headlines of the fallback category instead. On failure
// the article list is empty, never nil.
func (u *NewsUseCase) Related(ctx context.Context, text string) ([]string, []model.NewsArticle, error) {
	words := keywords.Extract(text, u.keywords)
	if len(words) == 0 {
		articles, err := u.Latest(ctx, u.fallback)
		return words, articles, err
	}

	query := keywords.Query(words)
	key := "news:everything:" + strconv.Itoa(u.pageSize) + ":" + query
	articles, err := u.cached(ctx, "related", key, func() ([]model.NewsArticle, error) {
		return u.client.Search(ctx, query, u.pageSize)
	})
	return words, articles, err
}

// Latest returns top headlines of category.
func (u *NewsUseCase) Latest(ctx context.Context, category string) ([]model.NewsArticle, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = u.fallback
	}
	if !model.IsNewsCategory(category) {
		return []model.NewsArticle{}, domainErrors.ErrInvalidCategory
	}

	key := "news:top-headlines:" + strconv.Itoa(u.pageSize) + ":" + category
	return u.cached(ctx, "latest", key, func() ([]model.NewsArticle, error) {
		return u.client.Headlines(ctx, category, u.pageSize)
	})
}

func (u *NewsUseCase) cached(ctx context.Context, kind, key string, fetch func() ([]model.NewsArticle, error)) ([]model.NewsArticle, error) {
	if raw, ok, err := u.cache.Get(ctx, key); err != nil {
		u.logger.Warn("news cache read failed", slog.String("key", key), slog.Any("error", err))
	} else if ok {
		var articles []model.NewsArticle
		if err := json.Unmarshal(raw, &articles); err == nil {
			u.record(kind, "cache_hit")
			return articles, nil
		}
	}

	articles, err := fetch()
	if err != nil {
		u.record(kind, "error")
		return []model.NewsArticle{}, fmt.Errorf("fetch news: %w", err)
	}
	u.record(kind, "fetched")

	if raw, err := json.Marshal(articles); err == nil {
		if err := u.cache.Set(ctx, key, raw, u.ttl); err != nil {
			u.logger.Warn("news cache write failed", slog.String("key", key), slog.Any("error", err))
		}
	}
	return articles, nil
}

func (u *NewsUseCase) record(kind, result string) {
	if u.metrics != nil {
		u.metrics.NewsLookup(kind, result)
	}
}
