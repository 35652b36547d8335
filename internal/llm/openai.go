package llm

import (
	"context"
	"fmt"
	"net/http"
)

type OpenAIGenerator struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
}

func NewOpenAI(opts Options) (*OpenAIGenerator, error) {
	apiKey, err := opts.apiKey()
	if err != nil {
		return nil, err
	}
	model := opts.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGenerator{
		apiKey:      apiKey,
		model:       model,
		baseURL:     opts.baseURL("https://api.openai.com"),
		temperature: opts.Temperature,
		maxTokens:   opts.maxTokens(),
		client:      &http.Client{Timeout: opts.timeout()},
	}, nil
}

func (g *OpenAIGenerator) Chat(ctx context.Context, system string, history []Message) (string, error) {
	messages := make([]openAIMessage, 0, len(history)+1)
	if system != "" {
		messages = append(messages, openAIMessage{Role: "system", Content: system})
	}
	for _, m := range history {
		role := "user"
		if m.Role == RoleModel {
			role = "assistant"
		}
		messages = append(messages, openAIMessage{Role: role, Content: m.Text})
	}

	req := openAIRequest{
		Model:       g.model,
		Messages:    messages,
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	}
	headers := map[string]string{"Authorization": fmt.Sprintf("Bearer %s", g.apiKey)}

	var resp openAIResponse
	if err := postJSON(ctx, g.client, g.baseURL+"/v1/chat/completions", headers, req, &resp); err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

func (g *OpenAIGenerator) Model() string {
	return g.model
}

var _ Generator = (*OpenAIGenerator)(nil)
