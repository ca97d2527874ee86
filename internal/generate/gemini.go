// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/draftwise/internal/httputil"
	"github.com/pdiddy/draftwise/pkg/types"
)

// geminiAPIBase is the Gemini models endpoint. Package-level var for test substitution.
var geminiAPIBase = "https://generativelanguage.googleapis.com/v1beta/models"

// Gemini calls the Google Generative Language generateContent endpoint.
type Gemini struct {
	APIKey string
	Client *http.Client
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends prompt as one user turn and returns the text of the first
// candidate.
func (g *Gemini) Generate(ctx context.Context, prompt, model string) (string, error) {
	if model == "" {
		model = DefaultModel
	}
	endpoint := geminiAPIBase + "/" + url.PathEscape(model) + ":generateContent"
	reqBody := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}
	headers := map[string]string{"x-goog-api-key": g.APIKey}

	var resp geminiResponse
	if err := httputil.PostJSON(ctx, g.Client, "Gemini API", endpoint, headers, reqBody, &resp); err != nil {
		return finish(types.ProviderGemini, "", err)
	}
	if len(resp.Candidates) == 0 {
		return finish(types.ProviderGemini, "", nil)
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return finish(types.ProviderGemini, b.String(), nil)
}
