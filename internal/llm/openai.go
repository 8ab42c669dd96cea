//go:generate go run go.uber.org/mock/mockgen -source=openai.go -destination=../../mocks/mock_llm.go -package=mocks

package llm

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Request is everything the generation service needs for one completion.
type Request struct {
	System      string
	User        string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Client defines the generation service used by the simplifier.  Generate
// performs exactly one completion; implementations must not retry.
type Client interface {
	Generate(ctx context.Context, req Request) (string, error)
}

// Options configures an OpenAIClient.  Zero values fall back to defaults.
type Options struct {
	APIKey  string
	BaseURL string
	// DefaultModel is used when a request does not name a model.
	DefaultModel string
	// RequestsPerMinute paces outgoing calls; 0 disables pacing.
	RequestsPerMinute int
}

// OpenAIClient calls the OpenAI chat completion API.
type OpenAIClient struct {
	client       *openai.Client
	defaultModel string
	limiter      *rate.Limiter
}

// NewOpenAIClient constructs an OpenAI-backed client.  A missing API key is
// not an error here; the first call fails with an authentication error.
func NewOpenAIClient(opts Options) *OpenAIClient {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}
	model := opts.DefaultModel
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	var limiter *rate.Limiter
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return &OpenAIClient{
		client:       openai.NewClientWithConfig(cfg),
		defaultModel: model,
		limiter:      limiter,
	}
}

// Generate sends the system and user messages and returns the trimmed
// assistant reply.  Failures are returned as *GenerationError.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	if c.client == nil {
		return "", &GenerationError{Kind: KindUnknown, Message: "openai client not initialized"}
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", &GenerationError{Kind: KindNetwork, Message: "waiting for rate limiter", Err: err}
		}
	}

	model := req.Model
	if model == "" {
		model = c.defaultModel
	}
	// Temperature is omitempty in go-openai; a literal 0 would be dropped and
	// the API would sample at its default.
	temperature := float32(req.Temperature)
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Kind: KindEmptyResponse, Message: "openai returned no choices"}
	}
	choice := resp.Choices[0]
	if choice.FinishReason == openai.FinishReasonContentFilter {
		return "", &GenerationError{Kind: KindContentPolicy, Message: "response blocked by content filter"}
	}
	text := strings.TrimSpace(choice.Message.Content)
	if text == "" {
		return "", &GenerationError{Kind: KindEmptyResponse, Message: "openai returned an empty message"}
	}
	return text, nil
}

// classify maps go-openai errors onto generation error kinds.
func classify(err error) *GenerationError {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		kind := kindForStatus(apiErr.HTTPStatusCode)
		if code, ok := apiErr.Code.(string); ok && code == "content_filter" {
			kind = KindContentPolicy
		}
		return &GenerationError{Kind: kind, StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &GenerationError{Kind: kindForStatus(reqErr.HTTPStatusCode), StatusCode: reqErr.HTTPStatusCode, Message: reqErr.Error(), Err: err}
	}
	// Transport failures and context cancellation surface as plain errors.
	return &GenerationError{Kind: KindNetwork, Message: err.Error(), Err: err}
}
