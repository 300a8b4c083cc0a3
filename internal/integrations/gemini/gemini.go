// Package gemini adapts the Google Generative Language API to the
// TextGenerator port.
package gemini

import (
	"context"
	"fmt"
	"strings"

	generativelanguage "google.golang.org/api/generativelanguage/v1beta"
	"google.golang.org/api/option"
)

// Client generates text through the Gemini API.
type Client struct {
	svc   *generativelanguage.Service
	model string
}

// NewClient creates a Gemini client authenticated with an API key.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}

	svc, err := generativelanguage.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create generative language service: %w", err)
	}

	return &Client{svc: svc, model: model}, nil
}

// GenerateText sends the prompt to the configured model and returns the
// first candidate's text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	req := &generativelanguage.GenerateContentRequest{
		Contents: []*generativelanguage.Content{
			{
				Role:  "user",
				Parts: []*generativelanguage.Part{{Text: prompt}},
			},
		},
	}

	resp, err := c.svc.Models.GenerateContent("models/"+c.model, req).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("gemini generate content failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}
