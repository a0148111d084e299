// Package llm is a client for OpenAI compatible chat completion APIs.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
)

// Fallback values returned alongside an error.
const (
	TooShortToSummarize  = "The transcript is too short to summarize."
	TooShortToAnalyze    = "The transcript is too short to analyze sentiment."
	SummaryFailed        = "Summary failed to generate."
	SentimentFailed      = "Sentiment analysis failed."
	SummaryUnavailable   = "Summary unavailable. API client not initialized."
	SentimentUnavailable = "Sentiment analysis unavailable. API client not initialized."
)

const (
	minTextLen       = 10
	minTranscriptLen = 50
	languageSample   = 1000
)

// Client runs the analysis tasks. Every method returns a usable fallback
// value together with any error.
type Client interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, to string) (string, error)
	ImproveTranscript(ctx context.Context, text string) (string, error)
	Summarize(ctx context.Context, text, language string) (string, error)
	Sentiment(ctx context.Context, text string, mode model.SentimentMode) (string, error)
	ActionItems(ctx context.Context, text, language string) ([]model.ActionItem, error)
	Deadlines(ctx context.Context, text string) ([]string, error)
}

// StatusError reports a non-200 completion response.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm responded %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return domainErrors.ErrTransportFailure
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	endpoint   string
	apiKey     string
	model      string
	httpClient *http.Client
	logger     *slog.Logger
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []message       `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewHTTPClient creates a chat completion client for baseURL, e.g. https://api.groq.com/openai/v1.
func NewHTTPClient(baseURL, apiKey, modelName string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse llm url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("llm url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	parsed.Path = path.Join(parsed.Path, "chat/completions")
	return &HTTPClient{
		endpoint:   parsed.String(),
		apiKey:     apiKey,
		model:      modelName,
		logger:     logger,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) DetectLanguage(ctx context.Context, text string) (string, error) {
	if len(strings.TrimSpace(text)) < minTextLen {
		return model.DefaultLanguage, nil
	}
	sample := text
	if len(sample) > languageSample {
		sample = sample[:languageSample]
	}
	out, err := c.complete(ctx, completionRequest{
		Messages:    prompt(detectLanguagePrompt, sample),
		Temperature: 0.1,
		MaxTokens:   50,
	})
	if err != nil {
		return model.DefaultLanguage, fmt.Errorf("detect language: %w", err)
	}
	return matchLanguage(out), nil
}

func (c *HTTPClient) Translate(ctx context.Context, text, to string) (string, error) {
	if len(strings.TrimSpace(text)) < minTextLen {
		return text, nil
	}
	out, err := c.complete(ctx, completionRequest{
		Messages:    prompt(fmt.Sprintf(translatePrompt, to), text),
		Temperature: 0.1,
	})
	if err != nil {
		return text, fmt.Errorf("translate to %s: %w", to, err)
	}
	return out, nil
}

func (c *HTTPClient) ImproveTranscript(ctx context.Context, text string) (string, error) {
	if len(strings.TrimSpace(text)) < minTranscriptLen {
		return text, nil
	}
	out, err := c.complete(ctx, completionRequest{
		Messages:    prompt(improvePrompt, text),
		Temperature: 0.1,
	})
	if err != nil {
		return text, fmt.Errorf("improve transcript: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) Summarize(ctx context.Context, text, language string) (string, error) {
	if len(strings.TrimSpace(text)) < minTranscriptLen {
		return TooShortToSummarize, nil
	}
	out, err := c.complete(ctx, completionRequest{
		Messages:    prompt(fmt.Sprintf(summarizePrompt, language), text),
		Temperature: 0.3,
	})
	if err != nil {
		return SummaryFailed, fmt.Errorf("summarize: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) Sentiment(ctx context.Context, text string, mode model.SentimentMode) (string, error) {
	if len(strings.TrimSpace(text)) < minTranscriptLen {
		return TooShortToAnalyze, nil
	}
	out, err := c.complete(ctx, completionRequest{
		Messages:    prompt(sentimentPrompts[model.ParseSentimentMode(string(mode))], text),
		Temperature: 0.2,
	})
	if err != nil {
		return SentimentFailed, fmt.Errorf("sentiment: %w", err)
	}
	return out, nil
}

func (c *HTTPClient) ActionItems(ctx context.Context, text, language string) ([]model.ActionItem, error) {
	if len(strings.TrimSpace(text)) < minTranscriptLen {
		return []model.ActionItem{}, nil
	}
	out, err := c.complete(ctx, completionRequest{
		Messages:       prompt(fmt.Sprintf(actionItemsPrompt, language), text),
		Temperature:    0.3,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return []model.ActionItem{}, fmt.Errorf("action items: %w", err)
	}
	var items []model.ActionItem
	if err := decodeList(out, &items); err != nil {
		return []model.ActionItem{}, fmt.Errorf("action items: %w", err)
	}
	return items, nil
}

func (c *HTTPClient) Deadlines(ctx context.Context, text string) ([]string, error) {
	if len(strings.TrimSpace(text)) < minTranscriptLen {
		return []string{}, nil
	}
	out, err := c.complete(ctx, completionRequest{
		Messages:       prompt(deadlinesPrompt, text),
		Temperature:    0.2,
		ResponseFormat: &responseFormat{Type: "json_object"},
	})
	if err != nil {
		return []string{}, fmt.Errorf("deadlines: %w", err)
	}
	var raw []string
	if err := decodeList(out, &raw); err != nil {
		return []string{}, fmt.Errorf("deadlines: %w", err)
	}
	return NormalizeDeadlines(raw), nil
}

func (c *HTTPClient) complete(ctx context.Context, req completionRequest) (string, error) {
	req.Model = c.model
	payload, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domainErrors.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domainErrors.ErrTransportFailure, err)
	}

	var data completionResponse
	decodeErr := json.Unmarshal(body, &data)

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		if decodeErr == nil && data.Error != nil {
			statusErr.Message = data.Error.Message
		}
		c.logger.Error("llm request failed", slog.Int("status", resp.StatusCode))
		return "", statusErr
	}
	if decodeErr != nil {
		return "", fmt.Errorf("%w: %w", domainErrors.ErrParseFailure, decodeErr)
	}
	if len(data.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", domainErrors.ErrParseFailure)
	}
	return strings.TrimSpace(data.Choices[0].Message.Content), nil
}

func prompt(instructions, text string) []message {
	return []message{{Role: "user", Content: instructions + "\n\n" + text}}
}

// decodeList accepts a bare JSON array or an object wrapping one,
// which is what json_object mode tends to produce.
func decodeList(content string, dst any) error {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "[") {
		if err := json.Unmarshal([]byte(content), dst); err != nil {
			return fmt.Errorf("%w: %w", domainErrors.ErrParseFailure, err)
		}
		return nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &wrapper); err != nil {
		return fmt.Errorf("%w: %w", domainErrors.ErrParseFailure, err)
	}
	for _, raw := range wrapper {
		if err := json.Unmarshal(raw, dst); err == nil {
			return nil
		}
	}
	if len(wrapper) == 0 {
		return nil
	}
	return fmt.Errorf("%w: no list in response", domainErrors.ErrParseFailure)
}

func matchLanguage(detected string) string {
	lower := strings.ToLower(detected)
	for _, lang := range model.Languages {
		if strings.Contains(lower, strings.ToLower(lang)) {
			return lang
		}
	}
	if detected == "" {
		return model.DefaultLanguage
	}
	return detected
}

var deadlineLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// NormalizeDeadlines rewrites recognised dates as YYYY-MM-DD and drops the rest.
func NormalizeDeadlines(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		for _, layout := range deadlineLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				out = append(out, t.Format("2006-01-02"))
				break
			}
		}
	}
	return out
}

// IsUnavailable reports whether err comes from an unconfigured client.
func IsUnavailable(err error) bool {
	return errors.Is(err, domainErrors.ErrConfigurationMissing)
}
