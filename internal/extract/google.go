package extract

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/leefowlercu/cinemalens/internal/entities"
)

// GoogleExtractor implements Extractor using the Gemini API.
type GoogleExtractor struct {
	apiKey  string
	model   string
	timeout time.Duration
	opts    []option.ClientOption

	mu     sync.Mutex
	client *genai.Client
}

// GoogleOption configures the GoogleExtractor.
type GoogleOption func(*GoogleExtractor)

// WithGoogleModel sets the model to use.
func WithGoogleModel(model string) GoogleOption {
	return func(p *GoogleExtractor) {
		p.model = model
	}
}

// WithGoogleAPIKey sets the API key, overriding GOOGLE_API_KEY.
func WithGoogleAPIKey(key string) GoogleOption {
	return func(p *GoogleExtractor) {
		p.apiKey = key
	}
}

// WithGoogleTimeout bounds each request.
func WithGoogleTimeout(d time.Duration) GoogleOption {
	return func(p *GoogleExtractor) {
		p.timeout = d
	}
}

// WithGoogleClientOptions appends client options such as a custom endpoint.
func WithGoogleClientOptions(opts ...option.ClientOption) GoogleOption {
	return func(p *GoogleExtractor) {
		p.opts = append(p.opts, opts...)
	}
}

// NewGoogleExtractor creates a new Google extractor. The client is created
// on first use.
func NewGoogleExtractor(opts ...GoogleOption) *GoogleExtractor {
	p := &GoogleExtractor{
		apiKey:  os.Getenv("GOOGLE_API_KEY"),
		model:   "gemini-1.5-flash",
		timeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Name returns the provider's unique identifier.
func (p *GoogleExtractor) Name() string {
	return "google"
}

// Available returns true if the provider is configured and ready.
func (p *GoogleExtractor) Available() bool {
	return p.apiKey != ""
}

// Close releases the underlying client.
func (p *GoogleExtractor) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}

func (p *GoogleExtractor) getClient(ctx context.Context) (*genai.Client, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client != nil {
		return p.client, nil
	}

	opts := append([]option.ClientOption{option.WithAPIKey(p.apiKey)}, p.opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client; %w", err)
	}
	p.client = client
	return client, nil
}

// Extract implements Extractor.
func (p *GoogleExtractor) Extract(ctx context.Context, query string) (*entities.Entities, error) {
	if !p.Available() {
		return nil, fmt.Errorf("google; %w", ErrProviderUnavailable)
	}
	q, err := checkQuery(query)
	if err != nil {
		return nil, err
	}

	client, err := p.getClient(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	model := client.GenerativeModel(p.model)
	model.SetTemperature(0)
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instructions)}}

	resp, err := model.GenerateContent(ctx, genai.Text(q))
	if err != nil {
		return nil, fmt.Errorf("gemini generate content failed; %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return nil, fmt.Errorf("google; %w; empty response", ErrMalformedResponse)
	}
	return Decode(text)
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
