package narrator

import (
	"context"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"google.golang.org/genai"

	"github.com/csvdeck/csvdeck/internal/core/errx"
)

// Config holds the language model settings, sourced from environment
// variables. The default base URL targets Groq's OpenAI-compatible endpoint.
type Config struct {
	Provider    string  `envconfig:"LLM_PROVIDER" default:"openai"`
	APIKey      string  `envconfig:"LLM_API_KEY" required:"true"`
	BaseURL     string  `envconfig:"LLM_BASE_URL" default:"https://api.groq.com/openai/v1"`
	Model       string  `envconfig:"LLM_MODEL" default:"llama-3.1-8b-instant"`
	MaxTokens   int     `envconfig:"LLM_MAX_TOKENS" default:"2000"`
	Temperature float32 `envconfig:"LLM_TEMPERATURE" default:"0.4"`
}

// NewChatModel creates the chat model for the configured provider. "gemini"
// selects the Gemini backend; anything else goes through the OpenAI-compatible
// client, which also covers Groq and self-hosted proxies.
func NewChatModel(ctx context.Context, cfg Config) (model.BaseChatModel, error) {
	switch cfg.Provider {
	case "gemini":
		clientCfg := &genai.ClientConfig{
			APIKey:  cfg.APIKey,
			Backend: genai.BackendGeminiAPI,
		}
		if cfg.BaseURL != "" {
			clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
		}
		client, err := genai.NewClient(ctx, clientCfg)
		if err != nil {
			return nil, errx.Wrap(errx.KindNarrator, err, "create gemini client")
		}
		cm, err := gemini.NewChatModel(ctx, &gemini.Config{
			Client:      client,
			Model:       cfg.Model,
			Temperature: &cfg.Temperature,
			MaxTokens:   &cfg.MaxTokens,
		})
		if err != nil {
			return nil, errx.Wrap(errx.KindNarrator, err, "create gemini chat model")
		}
		return cm, nil
	default:
		maxTokens := cfg.MaxTokens
		cm, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       cfg.Model,
			Temperature: &cfg.Temperature,
			MaxTokens:   &maxTokens,
		})
		if err != nil {
			return nil, errx.Wrap(errx.KindNarrator, err, "create openai chat model")
		}
		return cm, nil
	}
}
