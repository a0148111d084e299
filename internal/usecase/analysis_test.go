package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/polkiloo/meetsum/internal/adapter/chain"
	"github.com/polkiloo/meetsum/internal/adapter/llm"
	"github.com/polkiloo/meetsum/internal/adapter/news"
	"github.com/polkiloo/meetsum/internal/cache"
	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
	"github.com/polkiloo/meetsum/internal/metrics"
	"github.com/polkiloo/meetsum/internal/storage/memory"
	testhelpers "github.com/polkiloo/meetsum/internal/test"
)

const meetingText = "Alice opened the budget review. Bob will send the marketing plan by April 1st."

type analysisFixture struct {
	uc    *AnalysisUseCase
	users *testhelpers.UserRepositoryStub
	store *memory.AnalysisStore
	news  *testhelpers.NewsClientStub
}

func newAnalysisFixture(t *testing.T, client llm.Client, newsClient news.Client, tracker chain.Tracker) analysisFixture {
	t.Helper()
	users := testhelpers.NewUserRepositoryStub()
	ctx := context.Background()
	if _, err := users.Create(ctx, "free", "hash"); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if _, err := users.Create(ctx, "pro", "hash"); err != nil {
		t.Fatalf("create user failed: %v", err)
	}
	if _, err := users.SetPro(ctx, "pro", time.Now()); err != nil {
		t.Fatalf("set pro failed: %v", err)
	}

	stub, _ := newsClient.(*testhelpers.NewsClientStub)
	newsUC := NewNewsUseCase(newsClient, cache.NewMemory(nil), newsConfig(), discardLogger(), nil)
	store := memory.NewAnalysisStore(nil)

	uc := NewAnalysisUseCase(store, users, client, newsUC, tracker, metrics.New(), discardLogger())
	seq := 0
	uc.newID = func() string {
		seq++
		return fmt.Sprintf("analysis-%d", seq)
	}
	return analysisFixture{uc: uc, users: users, store: store, news: stub}
}

// submitAndProcess runs the whole pipeline for userID and returns the stored result.
func (f analysisFixture) submitAndProcess(t *testing.T, userID string, opts model.AnalysisOptions) *model.Analysis {
	t.Helper()
	ctx := context.Background()
	submitted, err := f.uc.Submit(ctx, userID, meetingText, opts)
	require.NoError(t, err)

	batch, err := f.uc.PendingBatch(ctx, 10)
	require.NoError(t, err)
	require.Len(t, batch, 1)
	require.Equal(t, submitted.ID, batch[0].ID)

	require.NoError(t, f.uc.Process(ctx, &batch[0]))
	stored, err := f.uc.Get(ctx, userID, submitted.ID)
	require.NoError(t, err)
	return stored
}

func TestSubmitValidatesInput(t *testing.T) {
	f := newAnalysisFixture(t, testhelpers.LLMStub{}, &testhelpers.NewsClientStub{}, testhelpers.TrackerStub{})

	_, err := f.uc.Submit(context.Background(), "free", "   ", model.AnalysisOptions{})
	require.ErrorIs(t, err, domainErrors.ErrInvalidInput)

	_, err = f.uc.Submit(context.Background(), "ghost", meetingText, model.AnalysisOptions{})
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestSubmitDowngradesFreeTierOptions(t *testing.T) {
	f := newAnalysisFixture(t, testhelpers.LLMStub{}, &testhelpers.NewsClientStub{}, testhelpers.TrackerStub{})

	a, err := f.uc.Submit(context.Background(), "free", meetingText, model.AnalysisOptions{
		Language:  "Spanish",
		Sentiment: model.SentimentEmotional,
	})
	require.NoError(t, err)
	require.Equal(t, model.AnalysisStatusNew, a.Status)
	require.Equal(t, model.DefaultLanguage, a.Options.Language)
	require.Equal(t, model.SentimentStandard, a.Options.Sentiment)
	require.ElementsMatch(t, []string{WarnProSentiment, WarnProLanguage}, a.Warnings)
}

func TestSubmitKeepsProOptions(t *testing.T) {
	f := newAnalysisFixture(t, testhelpers.LLMStub{}, &testhelpers.NewsClientStub{}, testhelpers.TrackerStub{})

	a, err := f.uc.Submit(context.Background(), "pro", meetingText, model.AnalysisOptions{
		Language:  "spanish",
		Sentiment: "detailed",
	})
	require.NoError(t, err)
	require.Equal(t, "Spanish", a.Options.Language)
	require.Equal(t, model.SentimentDetailed, a.Options.Sentiment)
	require.Empty(t, a.Warnings)
}

func TestGetHidesOtherUsersAnalyses(t *testing.T) {
	f := newAnalysisFixture(t, testhelpers.LLMStub{}, &testhelpers.NewsClientStub{}, testhelpers.TrackerStub{})

	a, err := f.uc.Submit(context.Background(), "free", meetingText, model.AnalysisOptions{})
	require.NoError(t, err)

	_, err = f.uc.Get(context.Background(), "pro", a.ID)
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
	_, err = f.uc.Get(context.Background(), "free", "missing")
	require.ErrorIs(t, err, domainErrors.ErrNotFound)
}

func TestProcessFreeTier(t *testing.T) {
	f := newAnalysisFixture(t, testhelpers.LLMStub{}, &testhelpers.NewsClientStub{}, testhelpers.TrackerStub{})

	a := f.submitAndProcess(t, "free", model.AnalysisOptions{})
	require.Equal(t, model.AnalysisStatusDone, a.Status)
	require.Equal(t, model.DefaultLanguage, a.Language)
	require.Equal(t, "budget planning marketing marketing", a.Summary)
	require.Equal(t, a.Summary, a.SummaryEnglish)
	require.Equal(t, "Positive (standard)", a.Sentiment)
	require.Len(t, a.ActionItems, 1)
	require.Equal(t, []string{"2026-04-01"}, a.Deadlines)
	require.Equal(t, []string{"marketing", "budget"}, a.Keywords)
	require.Equal(t, "About marketing OR budget", a.Articles[0].Title)
	require.Nil(t, a.Provenance, "provenance is a pro feature")
	require.Empty(t, a.Warnings)
}

func TestProcessProTierTranslatesAndTracks(t *testing.T) {
	f := newAnalysisFixture(t, testhelpers.LLMStub{}, &testhelpers.NewsClientStub{}, testhelpers.TrackerStub{})

	a := f.submitAndProcess(t, "pro", model.AnalysisOptions{Language: "French", Sentiment: model.SentimentEmotional})
	require.Equal(t, model.AnalysisStatusDone, a.Status)
	require.Equal(t, "[French] budget planning marketing marketing", a.Summary)
	require.Equal(t, "budget planning marketing marketing", a.SummaryEnglish)
	require.Equal(t, "[French] Positive (emotional)", a.Sentiment)
	require.NotNil(t, a.Provenance)
	require.Equal(t, "0xstub", a.Provenance.TxHash)
}

func TestProcessWithoutLanguageModel(t *testing.T) {
	f := newAnalysisFixture(t, llm.Unavailable{}, &testhelpers.NewsClientStub{}, chain.Unavailable{})

	a := f.submitAndProcess(t, "pro", model.AnalysisOptions{Language: "German"})
	require.Equal(t, model.AnalysisStatusDone, a.Status)
	require.Equal(t, llm.SummaryUnavailable, a.SummaryEnglish)
	require.Equal(t, llm.SummaryUnavailable, a.Summary, "translation falls back to its input")
	require.Empty(t, a.ActionItems)
	require.Contains(t, a.Warnings, WarnLLMUnavailable)
	require.Contains(t, a.Warnings, WarnProvenanceUnavailable)
	require.Nil(t, a.Provenance)

	count := 0
	for _, w := range a.Warnings {
		if w == WarnLLMUnavailable {
			count++
		}
	}
	require.Equal(t, 1, count, "unconfigured model is reported once")
	// News is matched on the transcript itself.
	require.Equal(t, []string{"alice", "opened"}, a.Keywords)
}

func TestProcessDegradesFailingSteps(t *testing.T) {
	client := testhelpers.LLMStub{
		SentimentFn: func(context.Context, string, model.SentimentMode) (string, error) {
			return llm.SentimentFailed, errors.New("upstream 500")
		},
		ActionItemsFn: func(context.Context, string, string) ([]model.ActionItem, error) {
			return []model.ActionItem{}, fmt.Errorf("action items: %w", domainErrors.ErrParseFailure)
		},
	}
	f := newAnalysisFixture(t, client, &testhelpers.NewsClientStub{}, testhelpers.TrackerStub{})

	a := f.submitAndProcess(t, "free", model.AnalysisOptions{})
	require.Equal(t, model.AnalysisStatusDone, a.Status)
	require.Equal(t, llm.SentimentFailed, a.Sentiment)
	require.Empty(t, a.ActionItems)
	require.Len(t, a.Warnings, 2)
}

func TestProcessFallsBackToLatestNews(t *testing.T) {
	newsClient := &testhelpers.NewsClientStub{SearchFn: func(context.Context, string, int) ([]model.NewsArticle, error) {
		return nil, domainErrors.ErrTransportFailure
	}}
	f := newAnalysisFixture(t, testhelpers.LLMStub{}, newsClient, testhelpers.TrackerStub{})

	a := f.submitAndProcess(t, "free", model.AnalysisOptions{})
	require.Equal(t, model.AnalysisStatusDone, a.Status)
	require.Len(t, a.Articles, 1)
	require.Equal(t, "Top technology", a.Articles[0].Title)
	require.EqualValues(t, 1, f.news.HeadlinesCalls.Load())
	require.Len(t, a.Warnings, 1)
}

func TestProcessWithoutNewsService(t *testing.T) {
	f := newAnalysisFixture(t, testhelpers.LLMStub{}, news.Unavailable{}, testhelpers.TrackerStub{})

	a := f.submitAndProcess(t, "free", model.AnalysisOptions{})
	require.Equal(t, model.AnalysisStatusDone, a.Status)
	require.Empty(t, a.Articles)
	require.Equal(t, []string{WarnNewsUnavailable}, a.Warnings)
}

func TestProcessCancelledContextFails(t *testing.T) {
	f := newAnalysisFixture(t, testhelpers.LLMStub{}, &testhelpers.NewsClientStub{}, testhelpers.TrackerStub{})
	a, err := f.uc.Submit(context.Background(), "free", meetingText, model.AnalysisOptions{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, f.uc.Process(ctx, a))

	stored, err := f.uc.Get(context.Background(), "free", a.ID)
	require.NoError(t, err)
	require.Equal(t, model.AnalysisStatusFailed, stored.Status)
}
