package news

import (
	"testing"

	"github.com/polkiloo/meetsum/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{News: config.NewsConfig{APIKey: config.NewSecret("abc"), URL: "http://example.com"}}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := client.(*HTTPClient); !ok {
		t.Fatalf("expected http client, got %T", client)
	}
}

func TestNewClientWithoutKeyIsUnavailable(t *testing.T) {
	cfg := &config.Config{News: config.NewsConfig{APIKey: config.NewSecret("YOUR_NEWS_API_KEY"), URL: "http://example.com"}}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := client.(Unavailable); !ok {
		t.Fatalf("expected unavailable client, got %T", client)
	}
}
