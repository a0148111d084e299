package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/meetsum/internal/adapter/chain"
	"github.com/polkiloo/meetsum/internal/adapter/llm"
	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/domain/repository"
	"github.com/polkiloo/meetsum/internal/metrics"
)

// Warnings attached to analyses running in degraded mode.
const (
	WarnLLMUnavailable        = "Language model is not configured; results are placeholders."
	WarnProSentiment          = "Detailed and emotional sentiment analysis require Pro; standard analysis was used."
	WarnProLanguage           = "Multi-language summaries require Pro; the summary is in English."
	WarnNewsUnavailable       = "News service is not configured."
	WarnProvenanceUnavailable = "Provenance tracking is not configured."
)

// AnalysisUseCase accepts transcripts and runs the summarisation pipeline.
type AnalysisUseCase struct {
	analyses repository.AnalysisRepository
	users    repository.UserRepository
	llm      llm.Client
	news     *NewsUseCase
	tracker  chain.Tracker
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// NewAnalysisUseCase constructs AnalysisUseCase.
func NewAnalysisUseCase(
	analyses repository.AnalysisRepository,
	users repository.UserRepository,
	client llm.Client,
	newsUC *NewsUseCase,
	tracker chain.Tracker,
	m *metrics.Metrics,
	logger *slog.Logger,
) *AnalysisUseCase {
	return &AnalysisUseCase{
		analyses: analyses,
		users:    users,
		llm:      client,
		news:     newsUC,
		tracker:  tracker,
		metrics:  m,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Submit stores a NEW analysis of text for userID. Free users are held to
// standard sentiment and English output, with a warning when they asked for more.
func (u *AnalysisUseCase) Submit(ctx context.Context, userID, text string, opts model.AnalysisOptions) (*model.Analysis, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domainErrors.ErrInvalidInput
	}

	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	opts.Sentiment = model.ParseSentimentMode(string(opts.Sentiment))
	opts.Language = normalizeLanguage(opts.Language)

	var warnings []string
	if !usr.Pro {
		if opts.Sentiment != model.SentimentStandard {
			opts.Sentiment = model.SentimentStandard
			warnings = append(warnings, WarnProSentiment)
		}
		if opts.Language != model.DefaultLanguage {
			opts.Language = model.DefaultLanguage
			warnings = append(warnings, WarnProLanguage)
		}
	}

	now := u.now()
	analysis := &model.Analysis{
		ID:        u.newID(),
		UserID:    userID,
		Status:    model.AnalysisStatusNew,
		Text:      text,
		Options:   opts,
		Warnings:  warnings,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.analyses.Create(ctx, analysis); err != nil {
		return nil, err
	}
	return analysis, nil
}

// Get returns the analysis if it belongs to userID.
func (u *AnalysisUseCase) Get(ctx context.Context, userID, id string) (*model.Analysis, error) {
	analysis, err := u.analyses.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if analysis.UserID != userID {
		return nil, domainErrors.ErrNotFound
	}
	return analysis, nil
}

// PendingBatch claims up to limit NEW analyses for processing.
func (u *AnalysisUseCase) PendingBatch(ctx context.Context, limit int) ([]model.Analysis, error) {
	return u.analyses.SelectBatchForProcessing(ctx, limit)
}

// Process runs every pipeline step on analysis and saves the result. A failing
// step only degrades its own output. The job fails only when ctx ends first.
func (u *AnalysisUseCase) Process(ctx context.Context, analysis *model.Analysis) error {
	p := &pipeline{uc: u, a: analysis}
	p.run(ctx)

	analysis.Status = model.AnalysisStatusDone
	if ctx.Err() != nil {
		analysis.Status = model.AnalysisStatusFailed
	}
	analysis.UpdatedAt = u.now()

	if err := u.analyses.Save(context.WithoutCancel(ctx), analysis); err != nil {
		return fmt.Errorf("save analysis %s: %w", analysis.ID, err)
	}
	if u.metrics != nil {
		u.metrics.AnalysisFinished(string(analysis.Status))
	}
	return nil
}

type pipeline struct {
	uc              *AnalysisUseCase
	a               *model.Analysis
	llmUnavailable  bool
	newsUnavailable bool
}

func (p *pipeline) run(ctx context.Context) {
	a := p.a
	client := p.uc.llm

	pro := false
	if usr, err := p.uc.users.GetByID(ctx, a.UserID); err == nil {
		pro = usr.Pro
	} else {
		p.warn("user lookup", err)
	}

	lang, err := client.DetectLanguage(ctx, a.Text)
	p.warnLLM("language detection", err)
	a.Language = lang

	summary, summaryErr := client.Summarize(ctx, a.Text, model.DefaultLanguage)
	p.warnLLM("summary", summaryErr)
	a.SummaryEnglish = summary
	a.Summary = summary

	sentiment, err := client.Sentiment(ctx, a.Text, a.Options.Sentiment)
	p.warnLLM("sentiment", err)
	a.Sentiment = sentiment

	target := model.DefaultLanguage
	if pro && a.Options.Language != "" && a.Options.Language != model.DefaultLanguage {
		target = a.Options.Language

		translated, err := client.Translate(ctx, a.SummaryEnglish, target)
		p.warnLLM("summary translation", err)
		a.Summary = translated

		translated, err = client.Translate(ctx, a.Sentiment, target)
		p.warnLLM("sentiment translation", err)
		a.Sentiment = translated
	}

	items, err := client.ActionItems(ctx, a.Text, target)
	p.warnLLM("action items", err)
	a.ActionItems = items

	deadlines, err := client.Deadlines(ctx, a.Text)
	p.warnLLM("deadlines", err)
	a.Deadlines = deadlines

	newsText := a.SummaryEnglish
	if summaryErr != nil {
		newsText = a.Text
	}
	p.matchNews(ctx, newsText)

	if pro {
		provenance, err := p.uc.tracker.Track(ctx, a.Summary)
		if errors.Is(err, domainErrors.ErrConfigurationMissing) {
			a.Warnings = append(a.Warnings, WarnProvenanceUnavailable)
		} else {
			p.warn("provenance", err)
		}
		a.Provenance = provenance
	}
}

// matchNews searches news related to text and falls back to the latest
// headlines when the search fails or finds nothing.
func (p *pipeline) matchNews(ctx context.Context, text string) {
	words, articles, err := p.uc.news.Related(ctx, text)
	p.a.Keywords = words
	if err == nil && len(articles) > 0 {
		p.a.Articles = articles
		return
	}
	p.warnNews("related news", err)
	if len(words) == 0 {
		// Related already browsed the fallback category.
		p.a.Articles = articles
		return
	}

	articles, err = p.uc.news.Latest(ctx, p.uc.news.FallbackCategory())
	p.warnNews("latest news", err)
	p.a.Articles = articles
}

func (p *pipeline) warnLLM(step string, err error) {
	if errors.Is(err, domainErrors.ErrConfigurationMissing) {
		if !p.llmUnavailable {
			p.llmUnavailable = true
			p.a.Warnings = append(p.a.Warnings, WarnLLMUnavailable)
		}
		return
	}
	p.warn(step, err)
}

func (p *pipeline) warnNews(step string, err error) {
	if errors.Is(err, domainErrors.ErrConfigurationMissing) {
		if !p.newsUnavailable {
			p.newsUnavailable = true
			p.a.Warnings = append(p.a.Warnings, WarnNewsUnavailable)
		}
		return
	}
	p.warn(step, err)
}

func (p *pipeline) warn(step string, err error) {
	if err == nil {
		return
	}
	p.uc.logger.Warn("analysis step degraded",
		slog.String("analysis_id", p.a.ID),
		slog.String("step", step),
		slog.Any("error", err),
	)
	p.a.Warnings = append(p.a.Warnings, fmt.Sprintf("%s failed: %v", step, err))
}

func normalizeLanguage(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return model.DefaultLanguage
	}
	for _, known := range model.Languages {
		if strings.EqualFold(lang, known) {
			return known
		}
	}
	return model.DefaultLanguage
}
