package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// GeminiGenerator calls the Google Generative Language generateContent endpoint.
type GeminiGenerator struct {
	apiKey      string
	model       string
	baseURL     string
	temperature float64
	maxTokens   int
	client      *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"systemInstruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
}

func NewGemini(opts Options) (*GeminiGenerator, error) {
	apiKey, err := opts.apiKey()
	if err != nil {
		return nil, err
	}
	model := opts.Model
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &GeminiGenerator{
		apiKey:      apiKey,
		model:       model,
		baseURL:     opts.baseURL("https://generativelanguage.googleapis.com"),
		temperature: opts.Temperature,
		maxTokens:   opts.maxTokens(),
		client:      &http.Client{Timeout: opts.timeout()},
	}, nil
}

func (g *GeminiGenerator) Chat(ctx context.Context, system string, history []Message) (string, error) {
	req := geminiRequest{}
	if system != "" {
		req.SystemInstruction = &geminiContent{Parts: []geminiPart{{Text: system}}}
	}
	for _, m := range history {
		req.Contents = append(req.Contents, geminiContent{
			Role:  string(m.Role),
			Parts: []geminiPart{{Text: m.Text}},
		})
	}
	req.GenerationConfig.Temperature = g.temperature
	req.GenerationConfig.MaxOutputTokens = g.maxTokens

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)
	var resp geminiResponse
	if err := postJSON(ctx, g.client, url, map[string]string{"x-goog-api-key": g.apiKey}, req, &resp); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", nil
	}

	var sb strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

func (g *GeminiGenerator) Model() string {
	return g.model
}

var _ Generator = (*GeminiGenerator)(nil)
