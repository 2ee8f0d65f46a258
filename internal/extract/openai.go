package extract

import (
	"context"
	"fmt"
	"os"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

// OpenAIExtractor implements Extractor using the OpenAI chat completions API.
type OpenAIExtractor struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	client  *openai.Client
}

// OpenAIOption configures the OpenAIExtractor.
type OpenAIOption func(*OpenAIExtractor)

// WithOpenAIModel sets the model to use.
func WithOpenAIModel(model string) OpenAIOption {
	return func(p *OpenAIExtractor) {
		p.model = model
	}
}

// WithOpenAIAPIKey sets the API key, overriding OPENAI_API_KEY.
func WithOpenAIAPIKey(key string) OpenAIOption {
	return func(p *OpenAIExtractor) {
		p.apiKey = key
	}
}

// WithOpenAIBaseURL points the client at a compatible endpoint.
func WithOpenAIBaseURL(url string) OpenAIOption {
	return func(p *OpenAIExtractor) {
		p.baseURL = url
	}
}

// WithOpenAITimeout bounds each request.
func WithOpenAITimeout(d time.Duration) OpenAIOption {
	return func(p *OpenAIExtractor) {
		p.timeout = d
	}
}

// NewOpenAIExtractor creates a new OpenAI extractor.
func NewOpenAIExtractor(opts ...OpenAIOption) *OpenAIExtractor {
	p := &OpenAIExtractor{
		apiKey:  os.Getenv("OPENAI_API_KEY"),
		model:   openai.GPT4oMini,
		timeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(p)
	}

	cfg := openai.DefaultConfig(p.apiKey)
	if p.baseURL != "" {
		cfg.BaseURL = p.baseURL
	}
	p.client = openai.NewClientWithConfig(cfg)

	return p
}

// Name returns the provider's unique identifier.
func (p *OpenAIExtractor) Name() string {
	return "openai"
}

// Available returns true if the provider is configured and ready.
func (p *OpenAIExtractor) Available() bool {
	return p.apiKey != ""
}

// Extract implements Extractor.
func (p *OpenAIExtractor) Extract(ctx context.Context, query string) (*entities.Entities, error) {
	if !p.Available() {
		return nil, fmt.Errorf("openai; %w", ErrProviderUnavailable)
	}
	q, err := checkQuery(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Temperature: 0,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: instructions},
			{Role: openai.ChatMessageRoleUser, Content: q},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai chat completion failed; %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai; %w; no choices", ErrMalformedResponse)
	}

	return Decode(resp.Choices[0].Message.Content)
}
