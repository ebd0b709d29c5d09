// Package gemini sends insights prompts to Google's Gemini models.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"

	"pencil/internal/insights"
	"pencil/internal/logger"
)

const (
	defaultBackoff = 500 * time.Millisecond
	apiVersion     = "v1beta"
)

// Config configures a Client. Endpoint and HTTPClient are optional and mostly
// useful for pointing the client at a proxy or a test server.
type Config struct {
	APIKey      string
	Model       string
	Endpoint    string
	Timeout     time.Duration
	MaxAttempts int
	HTTPClient  *http.Client
}

// Client completes prompts with a Gemini model. It implements
// insights.Completer.
type Client struct {
	models      *genai.Models
	model       string
	timeout     time.Duration
	maxAttempts int
	backoff     time.Duration
}

var _ insights.Completer = (*Client)(nil)

// New creates a Client. It returns a KindServiceUnavailable error when no API
// key is configured.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, insights.Unavailable(errors.New("GEMINI_API_KEY is not configured"))
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("gemini model is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    cfg.Endpoint,
			APIVersion: apiVersion,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	return &Client{
		models:      client.Models,
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		maxAttempts: attempts,
		backoff:     defaultBackoff,
	}, nil
}

// Complete sends prompt to the model and returns the text of the first
// candidate. Each attempt is bounded by the configured timeout; failures are
// returned as KindUpstream errors.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		text, err := c.completeOnce(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt == c.maxAttempts || !retryable(ctx, err) {
			break
		}

		logger.Get().Warnw("Gemini request failed, retrying",
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"error", err,
		)

		select {
		case <-ctx.Done():
			return "", insights.Upstream(ctx.Err())
		case <-time.After(c.backoff * time.Duration(attempt)):
		}
	}
	return "", insights.Upstream(lastErr)
}

func (c *Client) completeOnce(ctx context.Context, prompt string) (string, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := firstCandidateText(resp)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("model returned no text")
	}
	return text, nil
}

func firstCandidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		var b strings.Builder
		for _, part := range cand.Content.Parts {
			if part != nil {
				b.WriteString(part.Text)
			}
		}
		if b.Len() > 0 {
			return b.String()
		}
	}
	return ""
}

// retryable reports whether another attempt could succeed. Client errors
// other than rate limiting are final, as is cancellation of the caller.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if code, ok := statusCode(err); ok {
		return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
	}
	return true
}

func statusCode(err error) (int, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, true
	}
	return 0, false
}
