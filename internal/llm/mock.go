package llm

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// MockGenerator answers offline by matching the last user message against
// the catalog lines of the system prompt.
type MockGenerator struct {
	model string
}

func NewMock(model string) *MockGenerator {
	if model == "" {
		model = "assistant"
	}
	return &MockGenerator{model: model}
}

func (g *MockGenerator) Chat(ctx context.Context, system string, history []Message) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var question string
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == RoleUser {
			question = strings.ToLower(history[i].Text)
			break
		}
	}
	if question == "" {
		return "How can I help you today?", nil
	}

	var matches []string
	for _, line := range strings.Split(system, "\n") {
		line = strings.TrimSpace(line)
		if !strings.Contains(line, "(ID:") {
			continue
		}
		name, _, _ := strings.Cut(line, " (ID:")
		for _, word := range strings.FieldsFunc(question, notWordRune) {
			if len(word) > 3 && strings.Contains(strings.ToLower(line), word) {
				matches = append(matches, name)
				break
			}
		}
	}
	if len(matches) == 0 {
		return "We don't stock that currently, but our catalog has plenty of alternatives worth a look.", nil
	}
	return fmt.Sprintf("You might like: %s.", strings.Join(matches, ", ")), nil
}

func notWordRune(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func (g *MockGenerator) Model() string {
	return g.model + "-mock"
}

var _ Generator = (*MockGenerator)(nil)
