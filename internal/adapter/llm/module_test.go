package llm

import (
	"testing"

	"github.com/polkiloo/meetsum/internal/config"
)

func TestNewClientUsesConfig(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{
		APIKey: config.NewSecret("gsk_test"),
		URL:    "https://api.groq.com/openai/v1",
		Model:  "llama3-70b-8192",
	}}
	client, err := newClient(clientParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := client.(*HTTPClient); !ok {
		t.Fatalf("expected http client, got %T", client)
	}
}

func TestNewClientWithoutKeyIsUnavailable(t *testing.T) {
	client, err := newClient(clientParams{Config: &config.Config{}, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := client.(Unavailable); !ok {
		t.Fatalf("expected unavailable client, got %T", client)
	}
}
