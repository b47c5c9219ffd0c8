package genai

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

// ErrNotConfigured is returned when no API key is set.
var ErrNotConfigured = errors.New("genai: GEMINI_API_KEY not configured")

// Client talks to the Gemini generateContent endpoint over plain HTTP.
type Client struct {
	cfg  *Config
	http *http.Client
}

func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
	}
}

// request mirrors the generateContent JSON body.
type request struct {
	SystemInstruction *content         `json:"systemInstruction,omitempty"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"` // base64
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType,omitempty"`
}

// GenerateText runs one prompt and returns the model's text. wantJSON asks
// the model for an application/json response. The call retries on
// quota/rate-limit/overload signatures with a stepped backoff, then moves to
// the fallback model; any other failure propagates immediately.
func (c *Client) GenerateText(ctx context.Context, systemInstruction, prompt string, image *InlineImage, wantJSON bool) (string, error) {
	if !c.cfg.IsEnabled() {
		return "", ErrNotConfigured
	}

	parts := []part{{Text: prompt}}
	if image != nil {
		parts = append(parts, part{InlineData: &inlineData{MimeType: image.MimeType, Data: image.Data}})
	}
	req := request{Contents: []content{{Parts: parts}}}
	if systemInstruction != "" {
		req.SystemInstruction = &content{Parts: []part{{Text: systemInstruction}}}
	}
	if wantJSON {
		req.GenerationConfig.ResponseMimeType = "application/json"
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	var lastErr error
	for _, model := range []string{c.cfg.Models.Primary, c.cfg.Models.Fallback} {
		if model == "" {
			continue
		}
		for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
			text, err := c.callOnce(ctx, model, body)
			if err == nil {
				return text, nil
			}
			lastErr = err
			if !retryable(err) {
				return "", err
			}
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(time.Duration(attempt+1) * c.cfg.BackoffStep):
			}
		}
	}
	return "", fmt.Errorf("genai: all models exhausted: %w", lastErr)
}

func (c *Client) callOnce(ctx context.Context, model string, body []byte) (string, error) {
	url := fmt.Sprintf("%s?key=%s", c.cfg.ModelEndpoint(model), c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode >= 400 {
		return "", &apiError{Status: resp.StatusCode, Body: string(respBody)}
	}

	var parsed struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("genai: bad response: %w", err)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("genai: empty response")
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}

type apiError struct {
	Status int
	Body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("genai: API error %d: %s", e.Status, e.Body)
}

// retryable matches the quota/rate-limit/overload signatures worth waiting
// out. Everything else (auth errors, bad requests, parse failures) is final.
func retryable(err error) bool {
	var ae *apiError
	if errors.As(err, &ae) {
		if ae.Status == http.StatusTooManyRequests || ae.Status == http.StatusServiceUnavailable {
			return true
		}
		low := strings.ToLower(ae.Body)
		return strings.Contains(low, "quota") ||
			strings.Contains(low, "resource_exhausted") ||
			strings.Contains(low, "overloaded")
	}
	return false
}
