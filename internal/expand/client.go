package expand

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const expandPrompt = `I will provide a short to-do item, and I want you to expand it ` +
	`into a detailed and comprehensive description. Your description should clarify ` +
	`the task, its purpose, and any necessary steps to complete it. If relevant, ` +
	`include deadlines, tools, or considerations.`

// ErrEmptyCompletion is returned when the model responds without any usable
// text.
var ErrEmptyCompletion = errors.New("expand: empty completion")

// Client calls a generative-language HTTP API to expand descriptions. The
// wire format follows the common generateContent shape (Gemini-style);
// which provider sits behind BaseURL is deliberately not this package's
// concern.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	// HTTPClient is used for requests. Defaults to a client with a 30s
	// timeout; per-call deadlines should still come from ctx.
	HTTPClient *http.Client
}

func NewClient(baseURL, apiKey, model string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		APIKey:     apiKey,
		Model:      model,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Expand sends the text to the model together with the expansion prompt and
// returns the completion as plain text.
func (c *Client) Expand(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{
			{Parts: []part{{Text: expandPrompt}}},
			{Parts: []part{{Text: text}}},
		},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.BaseURL, c.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.APIKey)

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("expand: upstream returned %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("expand: decode response: %w", err)
	}

	var b strings.Builder
	for _, cand := range parsed.Candidates {
		for _, p := range cand.Content.Parts {
			b.WriteString(p.Text)
		}
		break // only the first candidate is used
	}

	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", ErrEmptyCompletion
	}
	return out, nil
}
