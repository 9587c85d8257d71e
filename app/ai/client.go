package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client is an AI provider able to return structured text and images.
type Client interface {
	// CompleteJSON sends a chat completion and decodes the JSON answer into out.
	CompleteJSON(ctx context.Context, system, user string, out any) error
	// GenerateImage returns the raw bytes of a generated image.
	GenerateImage(ctx context.Context, prompt, size string) ([]byte, error)
	// TextModel identifies the model answering CompleteJSON, for cache keys.
	TextModel() string
}

type Config struct {
	BaseURL     string
	APIKey      string
	TextModel   string
	ImageModel  string
	Temperature float64
	Timeout     time.Duration
}

// OpenAIClient talks to an OpenAI-compatible HTTP API.
type OpenAIClient struct {
	cfg  Config
	http *resty.Client
}

var ErrEmptyResponse = errors.New("ai: empty response")

func NewOpenAIClient(cfg Config) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.openai.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 90 * time.Second
	}
	c := resty.New().
		SetTimeout(cfg.Timeout).
		SetBaseURL(apiURL(cfg.BaseURL)).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		c.SetAuthToken(cfg.APIKey)
	}
	return &OpenAIClient{cfg: cfg, http: c}
}

func (c *OpenAIClient) TextModel() string { return c.cfg.TextModel }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string            `json:"model"`
	Messages       []chatMessage     `json:"messages"`
	Temperature    float64           `json:"temperature"`
	ResponseFormat map[string]string `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) CompleteJSON(ctx context.Context, system, user string, out any) error {
	body := chatRequest{
		Model: c.cfg.TextModel,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    c.cfg.Temperature,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	var resp chatResponse
	r, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&resp).Post("/chat/completions")
	if err != nil {
		return fmt.Errorf("chat completion: %w", err)
	}
	if r.IsError() {
		return fmt.Errorf("chat completion: %s; body: %s", r.Status(), abbreviate(r.String(), 500))
	}
	if len(resp.Choices) == 0 {
		return ErrEmptyResponse
	}

	content := ExtractJSON(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), out); err != nil {
		return fmt.Errorf("decoding completion %q: %w", abbreviate(content, 200), err)
	}
	return nil
}

type imageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Size           string `json:"size,omitempty"`
	N              int    `json:"n"`
	ResponseFormat string `json:"response_format,omitempty"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
		URL     string `json:"url"`
	} `json:"data"`
}

func (c *OpenAIClient) GenerateImage(ctx context.Context, prompt, size string) ([]byte, error) {
	if size == "" {
		size = "1024x1024"
	}
	body := imageRequest{
		Model:          c.cfg.ImageModel,
		Prompt:         prompt,
		Size:           size,
		N:              1,
		ResponseFormat: "b64_json",
	}

	var resp imageResponse
	r, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&resp).Post("/images/generations")
	if err != nil {
		return nil, fmt.Errorf("image generation: %w", err)
	}
	if r.IsError() {
		return nil, fmt.Errorf("image generation: %s; body: %s", r.Status(), abbreviate(r.String(), 500))
	}
	if len(resp.Data) == 0 {
		return nil, ErrEmptyResponse
	}

	d := resp.Data[0]
	if d.B64JSON != "" {
		img, err := base64.StdEncoding.DecodeString(d.B64JSON)
		if err != nil {
			return nil, fmt.Errorf("decoding image payload: %w", err)
		}
		return img, nil
	}
	if d.URL == "" {
		return nil, ErrEmptyResponse
	}

	// Hosted image URLs must not receive the API key.
	dl, err := resty.New().SetTimeout(c.cfg.Timeout).R().SetContext(ctx).Get(d.URL)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	if dl.IsError() {
		return nil, fmt.Errorf("downloading image: %s", dl.Status())
	}
	return dl.Body(), nil
}

// ExtractJSON pulls a JSON object out of model output that may be wrapped in
// a code fence or surrounded by prose.
func ExtractJSON(content string) string {
	s := strings.TrimSpace(content)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := strings.TrimPrefix(s[i+3:], "json")
		if j := strings.Index(rest, "```"); j >= 0 {
			s = strings.TrimSpace(rest[:j])
		}
	}
	if json.Valid([]byte(s)) {
		return s
	}
	if i := strings.Index(s, "{"); i >= 0 {
		if j := strings.LastIndex(s, "}"); j > i {
			return s[i : j+1]
		}
	}
	return s
}

// apiURL makes sure the base ends with /v1 exactly once.
func apiURL(base string) string {
	b := strings.TrimRight(base, "/")
	if i := strings.Index(b, "/v1"); i >= 0 {
		return b[:i+len("/v1")]
	}
	return b + "/v1"
}

func abbreviate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
