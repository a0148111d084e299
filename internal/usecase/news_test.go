package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/meetsum/internal/cache"
	"github.com/polkiloo/meetsum/internal/config"
	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/metrics"
	testhelpers "github.com/polkiloo/meetsum/internal/test"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newsConfig() *config.Config {
	return &config.Config{News: config.NewsConfig{
		Keywords:         2,
		PageSize:         5,
		CacheTTL:         time.Minute,
		FallbackCategory: "technology",
	}}
}

func newNewsUseCase(client *testhelpers.NewsClientStub) *NewsUseCase {
	return NewNewsUseCase(client, cache.NewMemory(nil), newsConfig(), discardLogger(), metrics.New())
}

func TestRelatedBuildsOrQuery(t *testing.T) {
	var gotQuery string
	var gotSize int
	client := &testhelpers.NewsClientStub{SearchFn: func(_ context.Context, q string, size int) ([]model.NewsArticle, error) {
		gotQuery, gotSize = q, size
		return []model.NewsArticle{{Title: "Marketing spend"}}, nil
	}}
	uc := newNewsUseCase(client)

	words, articles, err := uc.Related(context.Background(), "the budget meeting will cover sales sales marketing marketing marketing")
	require.NoError(t, err)
	require.Equal(t, []string{"marketing", "sales"}, words)
	require.Equal(t, "marketing OR sales", gotQuery)
	require.Equal(t, 5, gotSize)
	require.Len(t, articles, 1)
	require.Zero(t, client.HeadlinesCalls.Load())
}

func TestRelatedWithoutKeywordsUsesCategory(t *testing.T) {
	var gotCategory string
	client := &testhelpers.NewsClientStub{HeadlinesFn: func(_ context.Context, category string, _ int) ([]model.NewsArticle, error) {
		gotCategory = category
		return []model.NewsArticle{{Title: "Top tech"}}, nil
	}}
	uc := newNewsUseCase(client)

	for _, text := range []string{"", "the a an of is", "go to the big sea"} {
		words, articles, err := uc.Related(context.Background(), text)
		require.NoError(t, err)
		require.Empty(t, words)
		require.NotEmpty(t, articles)
	}
	require.Zero(t, client.SearchCalls.Load(), "keyword search must never run without keywords")
	require.Equal(t, "technology", gotCategory)
}

func TestRelatedTransportFailureReturnsEmptySlice(t *testing.T) {
	client := &testhelpers.NewsClientStub{SearchFn: func(context.Context, string, int) ([]model.NewsArticle, error) {
		return nil, domainErrors.ErrTransportFailure
	}}
	uc := newNewsUseCase(client)

	words, articles, err := uc.Related(context.Background(), "quarterly roadmap roadmap")
	require.ErrorIs(t, err, domainErrors.ErrTransportFailure)
	require.Equal(t, []string{"roadmap", "quarterly"}, words)
	require.NotNil(t, articles)
	require.Empty(t, articles)
}

func TestRelatedUsesCache(t *testing.T) {
	client := &testhelpers.NewsClientStub{}
	uc := newNewsUseCase(client)
	ctx := context.Background()

	_, first, err := uc.Related(ctx, "roadmap roadmap hiring")
	require.NoError(t, err)
	_, second, err := uc.Related(ctx, "roadmap hiring roadmap")
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.EqualValues(t, 1, client.SearchCalls.Load())
}

func TestFailuresAreNotCached(t *testing.T) {
	calls := 0
	client := &testhelpers.NewsClientStub{HeadlinesFn: func(context.Context, string, int) ([]model.NewsArticle, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("boom")
		}
		return []model.NewsArticle{{Title: "ok"}}, nil
	}}
	uc := newNewsUseCase(client)

	_, err := uc.Latest(context.Background(), "science")
	require.Error(t, err)
	articles, err := uc.Latest(context.Background(), "science")
	require.NoError(t, err)
	require.Len(t, articles, 1)
}

func TestLatestValidatesCategory(t *testing.T) {
	client := &testhelpers.NewsClientStub{}
	uc := newNewsUseCase(client)

	articles, err := uc.Latest(context.Background(), "gossip")
	require.ErrorIs(t, err, domainErrors.ErrInvalidCategory)
	require.Empty(t, articles)
	require.Zero(t, client.HeadlinesCalls.Load())

	articles, err = uc.Latest(context.Background(), " Sports ")
	require.NoError(t, err)
	require.Equal(t, "Top sports", articles[0].Title)

	articles, err = uc.Latest(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, "Top technology", articles[0].Title)
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("cache down")
}

func (failingCache) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("cache down")
}

func TestCacheFailuresAreIgnored(t *testing.T) {
	client := &testhelpers.NewsClientStub{}
	uc := NewNewsUseCase(client, failingCache{}, newsConfig(), discardLogger(), nil)

	articles, err := uc.Latest(context.Background(), "health")
	require.NoError(t, err)
	require.Len(t, articles, 1)
}

func TestUnknownFallbackCategoryDefaultsToTechnology(t *testing.T) {
	cfg := newsConfig()
	cfg.News.FallbackCategory = "weather"
	uc := NewNewsUseCase(&testhelpers.NewsClientStub{}, cache.NewMemory(nil), cfg, discardLogger(), nil)
	require.Equal(t, "technology", uc.FallbackCategory())
}
