package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"sparta-mortgage/domain"
)

var (
	ErrEmptyMessage    = errors.New("message is required")
	ErrMessageTooLong  = errors.New("message is too long")
	ErrNoChatProvider  = errors.New("no chat provider configured")
	ErrUnknownProvider = errors.New("unknown chat provider")
)

const (
	probePrompt = `Hello, please respond with just "Test successful" if you can read this.`

	defaultSystemPrompt = `You are a helpful AI assistant for Sparta Mortgage, a professional mortgage company. You should:

1. **Focus on mortgage-related topics**: Help with questions about loan programs, mortgage calculators, application processes, rates, and company services.

2. **Provide accurate information**: Base your responses on the website content and general mortgage knowledge.

3. **Be professional and helpful**: Always maintain a professional tone and provide actionable information.

4. **Guide to human contact**: When appropriate, suggest contacting a real estate agent for personalized assistance.

5. **Stay within scope**: For non-mortgage questions, politely redirect to mortgage-related topics or suggest contacting the office directly.

**Website Information:**
- Company: Sparta Mortgage
- Services: Residential mortgages, refinancing, first-time homebuyer assistance, veteran benefits, rural development loans
- Loan Programs: Conventional (3-20% down), FHA (3.5% minimum), VA (0% down for veterans), USDA (0% down for rural areas), Jumbo loans
- Features: Interactive mortgage calculator, online application process, competitive rates
- Contact: Available through contact page or direct office calls

**Important Guidelines:**
- Always be accurate about mortgage information
- Don't make up specific rates or terms
- Encourage users to use the calculator for estimates
- Suggest contacting agents for personalized quotes
- Be helpful but professional
- Redirect off-topic questions appropriately`
)

// ProviderCallHook observes every provider call; err is nil on success.
type ProviderCallHook func(ctx context.Context, provider string, err error)

type ChatService struct {
	providers    []ChatProvider
	historyLimit int
	systemPrompt string
	logger       *slog.Logger
	hook         ProviderCallHook
}

// NewChatService creates a ChatService that tries providers in order until
// one answers.
func NewChatService(providers []ChatProvider, historyLimit int, logger *slog.Logger) *ChatService {
	if historyLimit <= 0 {
		historyLimit = DefaultChatHistoryLimit
	}
	return &ChatService{
		providers:    providers,
		historyLimit: historyLimit,
		systemPrompt: defaultSystemPrompt,
		logger:       logger,
	}
}

// OnProviderCall registers a hook, typically a metrics recorder.
func (s *ChatService) OnProviderCall(hook ProviderCallHook) {
	s.hook = hook
}

func (s *ChatService) Providers() []string {
	names := make([]string, 0, len(s.providers))
	for _, p := range s.providers {
		names = append(names, p.Name())
	}
	return names
}

// Reply forwards the conversation to the first provider that succeeds.
func (s *ChatService) Reply(ctx context.Context, req domain.ChatRequest) (domain.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return domain.ChatResponse{}, ErrEmptyMessage
	}
	if len(message) > MaxChatMessageLength {
		return domain.ChatResponse{}, fmt.Errorf("%w: limit is %d characters", ErrMessageTooLong, MaxChatMessageLength)
	}
	if len(s.providers) == 0 {
		return domain.ChatResponse{}, ErrNoChatProvider
	}

	messages := append(s.trimHistory(req.ConversationHistory),
		domain.ChatMessage{Role: "user", Content: message})

	var lastErr error
	for _, p := range s.providers {
		completion, err := p.Complete(ctx, s.systemPrompt, messages, ChatMaxTokens)
		s.observe(ctx, p.Name(), err)
		if err == nil {
			return domain.ChatResponse{
				Response: completion.Text,
				Usage:    completion.Usage,
				Provider: p.Name(),
			}, nil
		}

		lastErr = err
		s.logger.Warn("chat provider failed", "provider", p.Name(), "error", err)
		if ctx.Err() != nil {
			break
		}
	}

	return domain.ChatResponse{}, lastErr
}

// Probe sends a fixed test prompt to one named provider.
func (s *ChatService) Probe(ctx context.Context, name string) (domain.ChatResponse, error) {
	for _, p := range s.providers {
		if p.Name() != name {
			continue
		}
		completion, err := p.Complete(ctx, "", []domain.ChatMessage{
			{Role: "user", Content: probePrompt},
		}, ProbeMaxTokens)
		s.observe(ctx, p.Name(), err)
		if err != nil {
			return domain.ChatResponse{}, err
		}
		return domain.ChatResponse{Response: completion.Text, Usage: completion.Usage, Provider: name}, nil
	}
	return domain.ChatResponse{}, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
}

// trimHistory drops roles the providers do not accept and keeps the most
// recent historyLimit entries.
func (s *ChatService) trimHistory(history []domain.ChatMessage) []domain.ChatMessage {
	kept := make([]domain.ChatMessage, 0, len(history)+1)
	for _, m := range history {
		if (m.Role == "user" || m.Role == "assistant") && strings.TrimSpace(m.Content) != "" {
			kept = append(kept, m)
		}
	}
	if len(kept) > s.historyLimit {
		kept = kept[len(kept)-s.historyLimit:]
	}
	return kept
}

func (s *ChatService) observe(ctx context.Context, provider string, err error) {
	if s.hook != nil {
		s.hook(ctx, provider, err)
	}
}
