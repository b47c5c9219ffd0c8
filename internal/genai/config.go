package genai

import (
	"os"
	"time"
)

// Models names the model used for each call path: Primary first, Fallback
// once the primary's retry budget is spent on quota errors.
type Models struct {
	Primary  string `json:"primary"`
	Fallback string `json:"fallback"`
}

// Config holds all Gemini-related settings.
type Config struct {
	APIKey      string        `json:"-"` // never serialize
	BaseURL     string        `json:"baseUrl"`
	Models      Models        `json:"models"`
	Timeout     time.Duration `json:"-"`
	MaxRetries  int           `json:"maxRetries"`
	BackoffStep time.Duration `json:"-"` // sleep = step * attempt number
}

// DefaultConfig reads the Gemini settings from the environment.
func DefaultConfig() *Config {
	return &Config{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: envOr("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta/models"),
		Models: Models{
			Primary:  envOr("GEMINI_MODEL_PRIMARY", "gemini-3-pro-preview"),
			Fallback: envOr("GEMINI_MODEL_FALLBACK", "gemini-3-flash-preview"),
		},
		Timeout:     60 * time.Second,
		MaxRetries:  4,
		BackoffStep: 3 * time.Second,
	}
}

// IsEnabled reports whether an API key is configured.
func (c *Config) IsEnabled() bool { return c.APIKey != "" }

// ModelEndpoint returns the generateContent endpoint for a model.
func (c *Config) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
