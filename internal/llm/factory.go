package llm

import "fmt"

// New creates the generator named by provider.
func New(provider string, opts Options) (Generator, error) {
	switch provider {
	case "gemini":
		return NewGemini(opts)
	case "openai":
		return NewOpenAI(opts)
	case "anthropic":
		return NewAnthropic(opts)
	case "mock":
		return NewMock(opts.Model), nil
	default:
		return nil, fmt.Errorf("unsupported chat provider: %s", provider)
	}
}
