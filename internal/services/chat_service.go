package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"storefront/internal/llm"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/state"
)

// Replies shown in place of a model answer.
const (
	ReplyOffline     = "I'm currently offline. Please check your API key configuration."
	ReplyUnavailable = "Connection interrupted. Please try again later."
	ReplyEmpty       = "I didn't catch that."
)

const systemPromptTemplate = `You are 'SAR', the advanced AI assistant for %[1]s.
Your goal is to help customers find premium products, explain technical features, and suggest items based on their sophisticated needs.

Here is our current Product Catalog:
%[2]s

Rules:
1. Only recommend products from this catalog.
2. If a user asks for something we don't have, politely suggest a similar item from the catalog or say we don't stock it currently.
3. Be concise, professional, and maintain a somewhat futuristic, high-end tone.
4. Format prices clearly (e.g., $199.99).
5. Do not invent products.
6. Refer to the store as "%[1]s".`

// ChatReply is the assistant's answer to one message.
type ChatReply struct {
	Text    string `json:"text"`
	IsError bool   `json:"is_error,omitempty"`
}

// ChatService runs the shopping assistant conversation of each session.
type ChatService struct {
	generator   llm.Generator // nil when no provider is configured
	sessions    *state.Store
	productRepo repositories.ProductRepository
	storeName   string
	maxHistory  int
}

// NewChatService creates a new ChatService. A nil generator leaves the
// assistant offline. maxHistory bounds the stored turns; zero keeps all.
func NewChatService(generator llm.Generator, sessions *state.Store, productRepo repositories.ProductRepository, storeName string, maxHistory int) *ChatService {
	return &ChatService{
		generator:   generator,
		sessions:    sessions,
		productRepo: productRepo,
		storeName:   storeName,
		maxHistory:  maxHistory,
	}
}

// Online reports whether a model provider is configured.
func (s *ChatService) Online() bool {
	return s.generator != nil
}

// SystemPrompt describes the assistant and lists the current catalog.
func (s *ChatService) SystemPrompt() (string, error) {
	products, err := s.productRepo.GetAll()
	if err != nil {
		return "", fmt.Errorf("failed to load catalog: %w", err)
	}
	return BuildSystemPrompt(s.storeName, products), nil
}

// BuildSystemPrompt renders the assistant instructions for a catalog.
func BuildSystemPrompt(storeName string, products []models.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		lines = append(lines, fmt.Sprintf("%s (ID: %d, Category: %s, Price: $%s): %s",
			p.Name, p.ID, p.Category, strconv.FormatFloat(p.Price, 'f', -1, 64), p.Description))
	}
	return fmt.Sprintf(systemPromptTemplate, storeName, strings.Join(lines, "\n"))
}

// Send forwards a message to the model with the session's history. Failures
// are turned into a reply and leave the history unchanged.
func (s *ChatService) Send(ctx context.Context, sessionID, text string) ChatReply {
	if s.generator == nil {
		return ChatReply{Text: ReplyOffline, IsError: true}
	}

	system, err := s.SystemPrompt()
	if err != nil {
		log.Printf("Chat: %v", err)
		return ChatReply{Text: ReplyUnavailable, IsError: true}
	}

	sess := s.sessions.GetOrCreate(sessionID)
	sess.Lock()
	history := append(append([]llm.Message(nil), sess.Chat...), llm.Message{Role: llm.RoleUser, Text: text})
	sess.Unlock()

	answer, err := s.generator.Chat(ctx, system, history)
	if err != nil {
		log.Printf("Chat: %s request failed: %v", s.generator.Model(), err)
		return ChatReply{Text: ReplyUnavailable, IsError: true}
	}
	if strings.TrimSpace(answer) == "" {
		answer = ReplyEmpty
	}

	sess.Lock()
	sess.Chat = append(sess.Chat,
		llm.Message{Role: llm.RoleUser, Text: text},
		llm.Message{Role: llm.RoleModel, Text: answer},
	)
	if s.maxHistory > 0 && len(sess.Chat) > s.maxHistory {
		kept := sess.Chat[len(sess.Chat)-s.maxHistory:]
		// A conversation must open with a user turn.
		if kept[0].Role == llm.RoleModel {
			kept = kept[1:]
		}
		sess.Chat = append([]llm.Message(nil), kept...)
	}
	sess.Unlock()

	return ChatReply{Text: answer}
}

// History returns a copy of the session's conversation.
func (s *ChatService) History(sessionID string) []llm.Message {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return []llm.Message{}
	}
	sess.Lock()
	defer sess.Unlock()

	return append([]llm.Message{}, sess.Chat...)
}

// Reset forgets the session's conversation.
func (s *ChatService) Reset(sessionID string) {
	sess, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	sess.Lock()
	sess.Chat = nil
	sess.Unlock()
}
