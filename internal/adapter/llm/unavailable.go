package llm

import (
	"context"
	"fmt"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
)

// Unavailable is used when no API key is configured. It returns the
// fallback of every task along with ErrConfigurationMissing.
type Unavailable struct{}

func unavailable(task string) error {
	return fmt.Errorf("%s: %w", task, domainErrors.ErrConfigurationMissing)
}

func (Unavailable) DetectLanguage(context.Context, string) (string, error) {
	return model.DefaultLanguage, unavailable("detect language")
}

func (Unavailable) Translate(_ context.Context, text, _ string) (string, error) {
	return text, unavailable("translate")
}

func (Unavailable) ImproveTranscript(_ context.Context, text string) (string, error) {
	return text, unavailable("improve transcript")
}

func (Unavailable) Summarize(context.Context, string, string) (string, error) {
	return SummaryUnavailable, unavailable("summarize")
}

func (Unavailable) Sentiment(context.Context, string, model.SentimentMode) (string, error) {
	return SentimentUnavailable, unavailable("sentiment")
}

func (Unavailable) ActionItems(context.Context, string, string) ([]model.ActionItem, error) {
	return []model.ActionItem{}, unavailable("action items")
}

func (Unavailable) Deadlines(context.Context, string) ([]string, error) {
	return []string{}, unavailable("deadlines")
}
