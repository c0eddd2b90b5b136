package config

import (
	"os"
	"time"
)

// GeminiModels defines which Gemini models to use for different tasks
type GeminiModels struct {
	// FollowUp is for mid-assessment follow-up generation (needs to be fast;
	// the engine races it against its timeout)
	FollowUp string `json:"followUp"`

	// Recommend is for post-assessment recommendation generation (quality
	// over speed, but still bounded by the same timeout)
	Recommend string `json:"recommend"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string       `json:"-"` // Never serialize
	BaseURL   string       `json:"baseUrl"`
	Models    GeminiModels `json:"models"`
	TimeoutMS int          `json:"timeoutMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("GEMINI_API_KEY"),
		BaseURL: "https://generativelanguage.googleapis.com/v1beta/models",
		Models: GeminiModels{
			FollowUp:  getEnvOrDefault("GEMINI_MODEL_FOLLOWUP", "gemini-2.5-flash-preview-05-20"),
			Recommend: getEnvOrDefault("GEMINI_MODEL_RECOMMEND", "gemini-2.0-flash"),
		},
		TimeoutMS: 10000, // 10 second default timeout
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ModelEndpoint returns the full endpoint for a given model
func (c *AIConfig) ModelEndpoint(model string) string {
	return c.BaseURL + "/" + model + ":generateContent"
}

// Timeout returns the configured AI deadline as a duration.
func (c *AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}
