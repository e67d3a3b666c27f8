package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultModel   = "gpt-4o-mini"
	requestTimeout = 15 * time.Second
	maxTokens      = 300
	temperature    = 0.2
)

const systemPrompt = "You are a helpful expense assistant. " +
	"Use the provided JSON context of the user's expenses for computations. " +
	"Be concise and numeric when appropriate. Currency is INR (₹)."

// OpenAI implements Client against the Chat Completions API. Construct
// it once and inject it; there is no lazy global client.
type OpenAI struct {
	client *openai.Client
	model  string
}

func NewOpenAI(apiKey, model string) *OpenAI {
	p := &OpenAI{model: strings.TrimSpace(model)}
	if p.model == "" {
		p.model = defaultModel
	}
	if key := strings.TrimSpace(apiKey); key != "" {
		p.client = openai.NewClient(key)
	}
	return p
}

func (p *OpenAI) Configured() bool {
	return p.client != nil
}

func (p *OpenAI) Answer(ctx context.Context, question string, expenses Context) (string, error) {
	if p.client == nil {
		return "", ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	payload, err := json.Marshal(expenses)
	if err != nil {
		return "", fmt.Errorf("llm: encode context: %w", err)
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Context: %s\n\nQuestion: %s", payload, question),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm: chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("llm: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// Ping performs a lightweight connectivity check against the model.
func (p *OpenAI) Ping(ctx context.Context) error {
	if p.client == nil {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     p.model,
		MaxTokens: 5,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a health-check bot."},
			{Role: openai.ChatMessageRoleUser, Content: "Reply with 'pong'."},
		},
	})
	if err != nil {
		return fmt.Errorf("llm: connectivity check: %w", err)
	}

	if len(resp.Choices) == 0 || !strings.Contains(strings.ToLower(resp.Choices[0].Message.Content), "pong") {
		return fmt.Errorf("llm: unexpected health-check reply")
	}

	return nil
}
