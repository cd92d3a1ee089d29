// Package gemini calls the Gemini generateContent endpoint as the chat
// fallback for messages the knowledge base does not cover.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.0-flash"
	DefaultTimeout = 10 * time.Second

	maxErrorBody = 512
)

var (
	errQuotaExceeded = errors.New("gemini quota exceeded")
	errUnauthorised  = errors.New("gemini key rejected")
	errNoCandidate   = errors.New("no candidate text found")
)

const systemPrompt = `You are BrewHeaven Cafe's friendly and knowledgeable AI assistant.
Your role is to help customers with:
- Menu recommendations based on their preferences
- Information about our coffee drinks, pastries, and desserts
- Ordering process and pricing
- Customer service inquiries

Key cafe info:
- Name: BrewHeaven Cafe
- Location: 123 Coffee Street, Downtown District, Cebu City
- Specialty: Premium coffee drinks and fresh pastries
- Popular items: Cappuccino, Latte, Mocha, Iced Coffee, Croissant, Chocolate Cake

Guidelines:
- Be concise but friendly (2-3 sentences max)
- Use appropriate emojis to add warmth
- Always suggest looking at the menu or checking with staff for details you're unsure about
- Focus on customer satisfaction and experience
- If they ask something unrelated to the cafe, gently redirect them back to our services`

// Config holds client configuration.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// Client communicates with the Gemini API. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
	timeout    time.Duration
	logger     *slog.Logger
}

// New creates a Gemini client. Empty config fields take the package defaults.
func New(cfg Config, logger *slog.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		logger:     logger.With("component", "gemini"),
	}
}

// Complete asks the model to answer prompt as the cafe assistant. Any
// transport error, non-200 status or malformed body yields ("", false).
func (c *Client) Complete(ctx context.Context, prompt string) (string, bool) {
	text, err := c.generate(ctx, prompt)
	if err != nil {
		c.logger.Warn("gemini completion failed", "error", err, "model", c.model)
		return "", false
	}
	return text, true
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	bodyBytes, err := json.Marshal(buildRequest(prompt))
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini http: %w", redactKey(err, c.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return extractCandidateText(body)
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", errQuotaExceeded
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return "", errUnauthorised
	}
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return "", fmt.Errorf("gemini request failed: status=%d body=%s", resp.StatusCode, string(body))
}

// redactKey keeps the API key, which travels in the query string, out of logs.
func redactKey(err error, key string) error {
	if key == "" {
		return err
	}
	msg := err.Error()
	for _, k := range []string{key, url.QueryEscape(key)} {
		msg = strings.ReplaceAll(msg, k, "REDACTED")
	}
	if msg == err.Error() {
		return err
	}
	return errors.New(msg)
}

func buildRequest(prompt string) geminiRequest {
	return geminiRequest{
		Contents: []geminiContent{
			{
				Role: "user",
				Parts: []geminiPart{
					{Text: systemPrompt + "\n\nCustomer: " + prompt},
				},
			},
		},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 256,
			TopP:            0.95,
			TopK:            40,
		},
	}
}

func extractCandidateText(body []byte) (string, error) {
	var resp geminiResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}
	if len(resp.Candidates) == 0 {
		return "", errNoCandidate
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errNoCandidate
	}
	return text, nil
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	TopP            float64 `json:"topP,omitempty"`
	TopK            float64 `json:"topK,omitempty"`
	MaxOutputTokens int32   `json:"maxOutputTokens,omitempty"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}
