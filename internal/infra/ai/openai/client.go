package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	domai "github.com/bryanwahyu/truthcheck/internal/domain/ai"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "openai/gpt-oss-20b"
	DefaultTemperature = 0.2
	defaultMaxTokens   = 2048
)

// Options configures the upstream endpoint. The zero value talks to Groq.
type Options struct {
	BaseURL string
	// Temperature nil means DefaultTemperature; zero is sent as zero.
	Temperature *float32
	MaxTokens   int
	// Timeout bounds one upstream call; zero leaves it to the caller's context.
	Timeout time.Duration
}

// Client implements ai.Client on top of go-openai. It holds no credential:
// a fresh go-openai client is built for every call from the caller's key.
type Client struct {
	baseURL     string
	temperature float32
	maxTokens   int
	httpClient  *http.Client
}

var _ domai.Client = (*Client)(nil)

func NewClient(opts Options) *Client {
	c := &Client{
		baseURL:     opts.BaseURL,
		temperature: DefaultTemperature,
		maxTokens:   opts.MaxTokens,
		httpClient:  &http.Client{Timeout: opts.Timeout},
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if opts.Temperature != nil {
		c.temperature = *opts.Temperature
	}
	if c.maxTokens <= 0 {
		c.maxTokens = defaultMaxTokens
	}
	return c
}

func (c *Client) Invoke(ctx context.Context, credential, prompt, modelID string) (string, error) {
	model := modelID
	if model == "" {
		model = DefaultModel
	}

	cfg := openai.DefaultConfig(credential)
	cfg.BaseURL = c.baseURL
	cfg.HTTPClient = c.httpClient

	resp, err := openai.NewClientWithConfig(cfg).CreateChatCompletion(ctx, c.request(model, prompt))
	if err != nil {
		if isQuota(err) {
			return "", fmt.Errorf("%w: %v", domai.ErrQuotaExceeded, err)
		}
		// returned as is: the upstream message is shown to the user
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) request(model, prompt string) openai.ChatCompletionRequest {
	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	// and leave temperature at the provider default.
	if isReasoningModel(model) {
		req.MaxCompletionTokens = c.maxTokens
	} else {
		req.MaxTokens = c.maxTokens
		req.Temperature = c.temperature
		// temperature is omitempty upstream; this is how go-openai sends a zero
		if req.Temperature == 0 {
			req.Temperature = math.SmallestNonzeroFloat32
		}
	}
	return req
}

func isReasoningModel(model string) bool {
	for _, p := range []string{"o1", "o3", "o4", "gpt-5"} {
		if strings.HasPrefix(model, p) {
			return true
		}
	}
	return false
}

func isQuota(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
