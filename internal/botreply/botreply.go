// Package botreply talks to the Gemini generateContent endpoint on behalf of
// the resident bot user. Failures never surface as errors: every call
// returns usable text, falling back to fixed strings so the chat always has
// something to append.
package botreply

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com"
const model = "gemini-3-flash-preview"

const (
	fallbackNoKeyReply       = "Error: API Key not configured."
	fallbackReply            = "Something went wrong with my circuits!"
	fallbackEmptyReply       = "Thinking..."
	fallbackNoKeyDescription = "Description unavailable."
	fallbackDescription      = "Could not generate description."
)

type Client struct {
	sugar      *zap.SugaredLogger
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func New(sugar *zap.SugaredLogger, apiKey string) *Client {
	return &Client{
		sugar:      sugar,
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// ChatReply generates the bot's answer to a message, given speaker-labelled
// recent channel context.
func (c *Client) ChatReply(ctx context.Context, chatContext string, userMessage string) string {
	if c.apiKey == "" {
		return fallbackNoKeyReply
	}

	prompt := fmt.Sprintf(`You are a helpful, friendly AI assistant named "FurBot" in a social app for the furry community.
Keep responses concise, friendly, and helpful.
Context of current chat: %s

User said: %s

Your response:`, chatContext, userMessage)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.sugar.Errorf("chat reply generation: %v", err)
		return fallbackReply
	}
	if text == "" {
		return fallbackEmptyReply
	}
	return text
}

// VideoDescription generates a description for a video from its title.
func (c *Client) VideoDescription(ctx context.Context, title string) string {
	if c.apiKey == "" {
		return fallbackNoKeyDescription
	}

	prompt := fmt.Sprintf(`Write a short, engaging video description for a video titled "%s" uploaded to a furry fandom video site. Include a few relevant hashtags.`, title)

	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.sugar.Errorf("description generation: %v", err)
		return fallbackDescription
	}
	return text
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

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("generateContent returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
