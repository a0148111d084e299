// Package news talks to a NewsAPI compatible search service.
package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/meetsum/internal/domain/errors"
	"github.com/polkiloo/meetsum/internal/domain/model"
)

// Article field defaults for incomplete upstream records.
const (
	DefaultTitle       = "No title"
	DefaultSource      = "Unknown source"
	DefaultURL         = "#"
	DefaultDescription = "No description available"
)

const (
	language     = "en"
	dateLayout   = "2006-01-02"
	searchWindow = 7 * 24 * time.Hour
)

// StatusError is returned for non-200 responses. It unwraps to ErrTransportFailure.
type StatusError struct {
	StatusCode int
	Message    string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("news service responded %d", e.StatusCode)
	}
	return fmt.Sprintf("news service responded %d: %s", e.StatusCode, e.Message)
}

func (e *StatusError) Unwrap() error {
	return domainErrors.ErrTransportFailure
}

// Client exposes the two search endpoints.
type Client interface {
	// Search runs a free text query over articles of the last seven days.
	Search(ctx context.Context, query string, pageSize int) ([]model.NewsArticle, error)
	// Headlines returns top headlines of a category.
	Headlines(ctx context.Context, category string, pageSize int) ([]model.NewsArticle, error)
}

// HTTPClient implements Client via HTTP API.
type HTTPClient struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

type response struct {
	Status   string    `json:"status"`
	Code     string    `json:"code"`
	Message  string    `json:"message"`
	Articles []article `json:"articles"`
}

type article struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
}

// NewHTTPClient creates a news client. A non-positive timeout means 10s.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse news url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("news url must be absolute")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		baseURL:    parsed,
		apiKey:     apiKey,
		logger:     logger,
		now:        time.Now,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) Search(ctx context.Context, query string, pageSize int) ([]model.NewsArticle, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("language", language)
	params.Set("from", c.now().Add(-searchWindow).Format(dateLayout))
	params.Set("sortBy", "relevancy")
	params.Set("pageSize", strconv.Itoa(pageSize))
	return c.get(ctx, "/v2/everything", params)
}

func (c *HTTPClient) Headlines(ctx context.Context, category string, pageSize int) ([]model.NewsArticle, error) {
	params := url.Values{}
	params.Set("category", category)
	params.Set("language", language)
	params.Set("pageSize", strconv.Itoa(pageSize))
	return c.get(ctx, "/v2/top-headlines", params)
}

func (c *HTTPClient) get(ctx context.Context, endpointPath string, params url.Values) ([]model.NewsArticle, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, endpointPath)
	params.Set("apiKey", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news request: %w: %w", domainErrors.ErrTransportFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read news response: %w: %w", domainErrors.ErrTransportFailure, err)
	}

	var data response
	decodeErr := json.Unmarshal(body, &data)

	if resp.StatusCode != http.StatusOK {
		statusErr := &StatusError{StatusCode: resp.StatusCode, Message: data.Message}
		if resp.StatusCode == http.StatusTooManyRequests {
			statusErr.RetryAfter = parseRetryAfter(resp.Header.Get("Retry-After"))
		}
		c.logger.Error("news request failed",
			slog.String("endpoint", endpointPath),
			slog.Int("status", resp.StatusCode),
			slog.String("code", data.Code),
		)
		return nil, statusErr
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode news response: %w: %w", domainErrors.ErrParseFailure, decodeErr)
	}

	articles := make([]model.NewsArticle, 0, len(data.Articles))
	for _, a := range data.Articles {
		articles = append(articles, a.toModel())
	}
	return articles, nil
}

func (a article) toModel() model.NewsArticle {
	result := model.NewsArticle{
		Title:       orDefault(a.Title, DefaultTitle),
		Source:      orDefault(a.Source.Name, DefaultSource),
		URL:         orDefault(a.URL, DefaultURL),
		Description: orDefault(a.Description, DefaultDescription),
	}
	if t, err := time.Parse(time.RFC3339, a.PublishedAt); err == nil {
		result.PublishedAt = t
	}
	if a.URLToImage != "" {
		image := a.URLToImage
		result.ImageURL = &image
	}
	return result
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
