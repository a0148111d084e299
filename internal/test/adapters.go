package test

import (
	"context"
	"sync/atomic"

	"github.com/polkiloo/meetsum/internal/domain/model"
)

// NewsClientStub counts calls to each endpoint.
type NewsClientStub struct {
	SearchFn    func(context.Context, string, int) ([]model.NewsArticle, error)
	HeadlinesFn func(context.Context, string, int) ([]model.NewsArticle, error)

	SearchCalls    atomic.Int32
	HeadlinesCalls atomic.Int32
}

// Search returns one article titled after the query by default.
func (s *NewsClientStub) Search(ctx context.Context, query string, pageSize int) ([]model.NewsArticle, error) {
	s.SearchCalls.Add(1)
	if s.SearchFn != nil {
		return s.SearchFn(ctx, query, pageSize)
	}
	return []model.NewsArticle{{Title: "About " + query, Source: "stub", URL: "#"}}, nil
}

// Headlines returns one article titled after the category by default.
func (s *NewsClientStub) Headlines(ctx context.Context, category string, pageSize int) ([]model.NewsArticle, error) {
	s.HeadlinesCalls.Add(1)
	if s.HeadlinesFn != nil {
		return s.HeadlinesFn(ctx, category, pageSize)
	}
	return []model.NewsArticle{{Title: "Top " + category, Source: "stub", URL: "#"}}, nil
}

// LLMStub answers every task with a fixed value unless overridden.
type LLMStub struct {
	DetectLanguageFn func(context.Context, string) (string, error)
	TranslateFn      func(context.Context, string, string) (string, error)
	SummarizeFn      func(context.Context, string, string) (string, error)
	SentimentFn      func(context.Context, string, model.SentimentMode) (string, error)
	ActionItemsFn    func(context.Context, string, string) ([]model.ActionItem, error)
	DeadlinesFn      func(context.Context, string) ([]string, error)
}

func (s LLMStub) DetectLanguage(ctx context.Context, text string) (string, error) {
	if s.DetectLanguageFn != nil {
		return s.DetectLanguageFn(ctx, text)
	}
	return model.DefaultLanguage, nil
}

func (s LLMStub) Translate(ctx context.Context, text, to string) (string, error) {
	if s.TranslateFn != nil {
		return s.TranslateFn(ctx, text, to)
	}
	return "[" + to + "] " + text, nil
}

func (s LLMStub) ImproveTranscript(_ context.Context, text string) (string, error) {
	return text, nil
}

func (s LLMStub) Summarize(ctx context.Context, text, language string) (string, error) {
	if s.SummarizeFn != nil {
		return s.SummarizeFn(ctx, text, language)
	}
	return "budget planning marketing marketing", nil
}

func (s LLMStub) Sentiment(ctx context.Context, text string, mode model.SentimentMode) (string, error) {
	if s.SentimentFn != nil {
		return s.SentimentFn(ctx, text, mode)
	}
	return "Positive (" + string(mode) + ")", nil
}

func (s LLMStub) ActionItems(ctx context.Context, text, language string) ([]model.ActionItem, error) {
	if s.ActionItemsFn != nil {
		return s.ActionItemsFn(ctx, text, language)
	}
	return []model.ActionItem{{Person: "Bob", Action: "Send budget", Deadline: "Friday"}}, nil
}

func (s LLMStub) Deadlines(ctx context.Context, text string) ([]string, error) {
	if s.DeadlinesFn != nil {
		return s.DeadlinesFn(ctx, text)
	}
	return []string{"2026-04-01"}, nil
}

// TrackerStub returns a fixed provenance record unless overridden.
type TrackerStub struct {
	TrackFn func(context.Context, string) (*model.Provenance, error)
}

func (s TrackerStub) Track(ctx context.Context, content string) (*model.Provenance, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, content)
	}
	return &model.Provenance{TxHash: "0xstub", CredibilityScore: 80}, nil
}
