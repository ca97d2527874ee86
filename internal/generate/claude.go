// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"net/http"
	"strings"

	"github.com/pdiddy/draftwise/internal/httputil"
	"github.com/pdiddy/draftwise/pkg/types"
)

// claudeAPIURL is the Claude API endpoint. Package-level var for test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

const claudeMaxTokens = 4096

// Claude calls the Anthropic Messages API.
type Claude struct {
	APIKey string
	Client *http.Client
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// Generate sends prompt as a single user message and joins the text blocks
// of the reply.
func (c *Claude) Generate(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = DefaultClaudeModel
	}
	reqBody := claudeRequest{
		Model:     model,
		MaxTokens: claudeMaxTokens,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	}
	headers := map[string]string{
		"x-api-key":         c.APIKey,
		"anthropic-version": "2023-06-01",
	}

	var resp claudeResponse
	if err := httputil.PostJSON(ctx, c.Client, "Claude API", claudeAPIURL, headers, reqBody, &resp); err != nil {
		return finish(types.ProviderClaude, "", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	return finish(types.ProviderClaude, b.String(), nil)
}
