// Package ai wraps the generative service used for entry titles, monthly
// narratives, and artwork images.
package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

// Generator is the capability features depend on.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateImage(ctx context.Context, prompt string, aspectRatio string) ([]byte, error)
}

// Failure variants surfaced to features. Everything else is a transport
// error wrapped with context.
var (
	ErrInvalidKey  = errors.New("ai: invalid api key")
	ErrRateLimited = errors.New("ai: rate limited")
	ErrServer      = errors.New("ai: server error")
)

type Client struct {
	httpClient       *resty.Client
	model            string
	imageModel       string
	maxRetryAttempts uint
}

// NewClient builds a client against an OpenAI-compatible API.
func NewClient(baseURL, apiKey, model, imageModel string, retryAttempts uint) *Client {
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient:       client,
		model:            model,
		imageModel:       imageModel,
		maxRetryAttempts: retryAttempts,
	}
}

func (c *Client) Close() error {
	return c.httpClient.Close()
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Size   string `json:"size"`
	N      int    `json:"n"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
}

func statusError(code int, body string) error {
	switch {
	case code == 401 || code == 403:
		return fmt.Errorf("%w: %s", ErrInvalidKey, body)
	case code == 429:
		return fmt.Errorf("%w: %s", ErrRateLimited, body)
	case code >= 500:
		return fmt.Errorf("%w: %d %s", ErrServer, code, body)
	default:
		return fmt.Errorf("ai: response error %d: %s", code, body)
	}
}

func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServer) {
		return true
	}
	if errors.Is(err, ErrInvalidKey) {
		return false
	}
	// Transport-level failures are worth another attempt.
	var netLike interface{ Timeout() bool }
	return errors.As(err, &netLike)
}

func (c *Client) withRetry(ctx context.Context, op func() error) error {
	return retry.Do(
		func() error {
			if err := op(); err != nil {
				if !isRetryable(err) {
					return retry.Unrecoverable(err)
				}
				return err
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.maxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
}

// GenerateText sends prompt to the chat model and returns the raw reply.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	var result string
	err := c.withRetry(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(chatRequest{
				Model:       c.model,
				Temperature: 0.7,
				Messages:    []message{{Role: "user", Content: prompt}},
			}).
			SetResult(&chatResponse{}).
			Post("/chat/completions")
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return statusError(response.StatusCode(), response.String())
		}
		body := response.Result().(*chatResponse)
		if body == nil || len(body.Choices) == 0 || body.Choices[0].Message.Content == "" {
			return fmt.Errorf("ai: empty response: %s", response.String())
		}
		slog.Debug("ai text response", "chars", len(body.Choices[0].Message.Content))
		result = body.Choices[0].Message.Content
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// GenerateImage renders prompt in the requested aspect ratio and returns
// decoded image bytes.
func (c *Client) GenerateImage(ctx context.Context, prompt string, aspectRatio string) ([]byte, error) {
	var result []byte
	err := c.withRetry(ctx, func() error {
		response, err := c.httpClient.R().
			SetContext(ctx).
			SetBody(imageRequest{
				Model:  c.imageModel,
				Prompt: prompt,
				Size:   ratioToSize(aspectRatio),
				N:      1,
			}).
			SetResult(&imageResponse{}).
			Post("/images/generations")
		if err != nil {
			return fmt.Errorf("httpClient.Post > %w", err)
		}
		if response.IsError() {
			return statusError(response.StatusCode(), response.String())
		}
		body := response.Result().(*imageResponse)
		if body == nil || len(body.Data) == 0 || body.Data[0].B64JSON == "" {
			return fmt.Errorf("ai: empty image response: %s", response.String())
		}
		decoded, err := base64.StdEncoding.DecodeString(body.Data[0].B64JSON)
		if err != nil {
			return fmt.Errorf("ai: decode image: %w", err)
		}
		slog.Debug("ai image response", "bytes", len(decoded))
		result = decoded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ratioToSize maps aspect ratios onto the sizes the image API accepts.
func ratioToSize(ratio string) string {
	switch ratio {
	case "3:4":
		return "1024x1536"
	case "4:3":
		return "1536x1024"
	default:
		return "1024x1024"
	}
}
