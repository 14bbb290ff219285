package vision

import (
	"context"
	"fmt"
	"net/http"

	"recipesnap/internal/infrastructure/config"
	"recipesnap/internal/pkg/common"

	"github.com/go-resty/resty/v2"
)

// CompletionRequest is a single inference call to the model service.
type CompletionRequest struct {
	Model       string
	Prompt      string
	ImageData   string // data URI, optional
	MaxTokens   int
	Temperature float64
}

// Inference is the calling contract for the external model service.
type Inference interface {
	Complete(ctx context.Context, req *CompletionRequest) (string, error)
	Close() error
}

// Client talks to an OpenAI-style chat completions endpoint serving the
// pretrained models.
type Client struct {
	cfg    *config.VisionConfig
	client *resty.Client
}

// NewClient creates an inference client from the vision configuration.
func NewClient(cfg *config.VisionConfig) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("vision base URL is required")
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	if cfg.ModelCacheDir != "" {
		// Hint for self-hosted inference servers that manage their own
		// weight downloads.
		client.SetHeader("X-Model-Cache-Dir", cfg.ModelCacheDir)
	}
	if cfg.UseGPU {
		client.SetHeader("X-Use-GPU", "1")
	}

	return &Client{
		cfg:    cfg,
		client: client,
	}, nil
}

// Complete sends one sampling-decoded completion request and returns the
// first candidate's text.
func (c *Client) Complete(ctx context.Context, req *CompletionRequest) (string, error) {
	content := []map[string]interface{}{
		{
			"type": "text",
			"text": req.Prompt,
		},
	}
	if req.ImageData != "" {
		content = append(content, map[string]interface{}{
			"type": "image_url",
			"image_url": map[string]string{
				"url": req.ImageData,
			},
		})
	}

	body := map[string]interface{}{
		"model": req.Model,
		"messages": []map[string]interface{}{
			{
				"role":    "user",
				"content": content,
			},
		},
		"max_tokens":  req.MaxTokens,
		"temperature": req.Temperature,
		"do_sample":   true,
		"n":           1,
	}

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("failed to send request to model service: %w", err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", fmt.Errorf("model service returned status %d: %s", resp.StatusCode(), resp.String())
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return "", fmt.Errorf("failed to parse model service response: %w", err)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("no choices in model service response")
	}

	return result.Choices[0].Message.Content, nil
}

// Close releases idle connections held by the client.
func (c *Client) Close() error {
	c.client.GetClient().CloseIdleConnections()
	return nil
}
