package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sparta-mortgage/domain"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderGrok       = "grok"

	openRouterURL   = "https://openrouter.ai/api/v1/chat/completions"
	openRouterModel = "anthropic/claude-3.5-sonnet"
	anthropicURL    = "https://api.anthropic.com/v1/messages"
	anthropicModel  = "claude-3-5-sonnet-20241022"
	anthropicAPIVer = "2023-06-01"
	grokURL         = "https://api.x.ai/v1/chat/completions"
	grokModel       = "grok-beta"

	minOpenRouterKeyLength = 20
)

var ErrInvalidAPIKey = errors.New("invalid API key format")

// Completion is a single provider answer.
type Completion struct {
	Text  string
	Usage domain.Usage
}

// ChatProvider sends one conversation to a third-party chat API.
type ChatProvider interface {
	Name() string
	Complete(ctx context.Context, system string, messages []domain.ChatMessage, maxTokens int) (Completion, error)
}

// ProviderConfig configures a provider; empty URL and Model fall back to the
// vendor defaults.
type ProviderConfig struct {
	APIKey     string
	URL        string
	Model      string
	HTTPClient *http.Client
}

func (c ProviderConfig) withDefaults(url, model string) ProviderConfig {
	if c.URL == "" {
		c.URL = url
	}
	if c.Model == "" {
		c.Model = model
	}
	if c.HTTPClient == nil {
		c.HTTPClient = http.DefaultClient
	}
	c.APIKey = strings.TrimSpace(c.APIKey)
	return c
}

// openAIProvider speaks the OpenAI chat-completions dialect used by
// OpenRouter and Grok.
type openAIProvider struct {
	name       string
	cfg        ProviderConfig
	headers    map[string]string
	validateFn func(apiKey string) error
}

type openAIRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
	Temperature float64              `json:"temperature,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message domain.ChatMessage `json:"message"`
	} `json:"choices"`
	Usage domain.Usage `json:"usage"`
}

func NewOpenRouterProvider(cfg ProviderConfig) ChatProvider {
	return &openAIProvider{
		name: ProviderOpenRouter,
		cfg:  cfg.withDefaults(openRouterURL, openRouterModel),
		headers: map[string]string{
			"HTTP-Referer": "https://spartamortgage.com",
			"X-Title":      "Sparta Mortgage Chatbot",
		},
		validateFn: func(apiKey string) error {
			if len(apiKey) < minOpenRouterKeyLength {
				return ErrInvalidAPIKey
			}
			return nil
		},
	}
}

func NewGrokProvider(cfg ProviderConfig) ChatProvider {
	return &openAIProvider{
		name: ProviderGrok,
		cfg:  cfg.withDefaults(grokURL, grokModel),
	}
}

func (p *openAIProvider) Name() string { return p.name }

func (p *openAIProvider) Complete(
	ctx context.Context,
	system string,
	messages []domain.ChatMessage,
	maxTokens int,
) (Completion, error) {
	if p.validateFn != nil {
		if err := p.validateFn(p.cfg.APIKey); err != nil {
			return Completion{}, err
		}
	}

	all := make([]domain.ChatMessage, 0, len(messages)+1)
	if system != "" {
		all = append(all, domain.ChatMessage{Role: "system", Content: system})
	}
	all = append(all, messages...)

	reqBody := openAIRequest{
		Model:       p.cfg.Model,
		Messages:    all,
		MaxTokens:   maxTokens,
		Temperature: ChatTemperature,
	}

	headers := map[string]string{"Authorization": "Bearer " + p.cfg.APIKey}
	for k, v := range p.headers {
		headers[k] = v
	}

	var resp openAIResponse
	if err := postJSON(ctx, p.cfg.HTTPClient, p.cfg.URL, headers, reqBody, &resp); err != nil {
		return Completion{}, fmt.Errorf("%s: %w", p.name, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return Completion{}, fmt.Errorf("%s: no response from AI", p.name)
	}

	return Completion{Text: resp.Choices[0].Message.Content, Usage: resp.Usage}, nil
}

type anthropicProvider struct {
	cfg ProviderConfig
}

type anthropicRequest struct {
	Model       string               `json:"model"`
	System      string               `json:"system,omitempty"`
	Messages    []domain.ChatMessage `json:"messages"`
	MaxTokens   int                  `json:"max_tokens"`
	Temperature float64              `json:"temperature,omitempty"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Usage struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func NewAnthropicProvider(cfg ProviderConfig) ChatProvider {
	return &anthropicProvider{cfg: cfg.withDefaults(anthropicURL, anthropicModel)}
}

func (p *anthropicProvider) Name() string { return ProviderAnthropic }

func (p *anthropicProvider) Complete(
	ctx context.Context,
	system string,
	messages []domain.ChatMessage,
	maxTokens int,
) (Completion, error) {
	reqBody := anthropicRequest{
		Model:       p.cfg.Model,
		System:      system,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: ChatTemperature,
	}
	headers := map[string]string{
		"x-api-key":         p.cfg.APIKey,
		"anthropic-version": anthropicAPIVer,
	}

	var resp anthropicResponse
	if err := postJSON(ctx, p.cfg.HTTPClient, p.cfg.URL, headers, reqBody, &resp); err != nil {
		return Completion{}, fmt.Errorf("%s: %w", ProviderAnthropic, err)
	}

	var text strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return Completion{}, fmt.Errorf("%s: no response from AI", ProviderAnthropic)
	}

	return Completion{
		Text: text.String(),
		Usage: domain.Usage{
			PromptTokens:     resp.Usage.InputTokens,
			CompletionTokens: resp.Usage.OutputTokens,
			TotalTokens:      resp.Usage.InputTokens + resp.Usage.OutputTokens,
		},
	}, nil
}

func postJSON(
	ctx context.Context,
	client *http.Client,
	url string,
	headers map[string]string,
	body any,
	out any,
) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
