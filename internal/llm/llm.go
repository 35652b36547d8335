// Package llm talks to hosted chat-completion APIs.
package llm

import (
	"context"
	"fmt"
	"os"
	"time"
)

// Role of a conversation turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Message is one turn of a conversation.
type Message struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Generator produces the next model turn for a conversation.
type Generator interface {
	Chat(ctx context.Context, system string, history []Message) (string, error)
	Model() string
}

// Options configures a provider.
type Options struct {
	Model       string
	APIKey      string
	APIKeyEnv   string
	BaseURL     string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func (o Options) apiKey() (string, error) {
	if o.APIKey != "" {
		return o.APIKey, nil
	}
	if o.APIKeyEnv != "" {
		if key := os.Getenv(o.APIKeyEnv); key != "" {
			return key, nil
		}
	}
	return "", fmt.Errorf("API key not found in config or environment variable %s", o.APIKeyEnv)
}

func (o Options) timeout() time.Duration {
	if o.Timeout > 0 {
		return o.Timeout
	}
	return 60 * time.Second
}

func (o Options) maxTokens() int {
	if o.MaxTokens > 0 {
		return o.MaxTokens
	}
	return 1024
}

func (o Options) baseURL(fallback string) string {
	if o.BaseURL != "" {
		return o.BaseURL
	}
	return fallback
}
