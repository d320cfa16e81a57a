package llm

import (
	"context"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/pkg/log"
)

const DefaultGatewayBaseURL = "https://ai-gateway.vercel.sh"

// Gateway talks to an OpenAI compatible AI gateway.
type Gateway struct {
	*OpenAICompatible
}

func NewGateway(baseURL, apiKey, model string) *Gateway {
	if baseURL == "" {
		baseURL = DefaultGatewayBaseURL
	}
	return &Gateway{
		OpenAICompatible: NewOpenAICompatible(OpenAICompatibleConfig{
			BaseURL:    baseURL,
			APIKey:     apiKey,
			Model:      model,
			AuthHeader: "Authorization",
			AuthPrefix: "Bearer ",
			ExtraHeaders: map[string]string{
				"HTTP-Referer": core.FolioRepositoryURL,
				"X-Title":      core.FolioName,
				"User-Agent":   core.FolioUserAgent,
			},
		}),
	}
}

// NewGatewayFromConfig returns nil when no API key is configured.
func NewGatewayFromConfig(ctx context.Context, cfg core.GatewayConfig) *Gateway {
	if cfg.GetGatewayAPIKey() == "" {
		log.FromCtx(ctx).Warn().Msg("AI_GATEWAY_API_KEY is not set, /api/chat will answer 503")
		return nil
	}

	log.FromCtx(ctx).Info().
		Str("base_url", cfg.GetGatewayBaseURL()).
		Str("model", cfg.GetGatewayModel()).
		Msg("starting ai gateway provider")

	return NewGateway(cfg.GetGatewayBaseURL(), cfg.GetGatewayAPIKey(), cfg.GetGatewayModel())
}

// Model is the model id requests are sent with.
func (g *Gateway) Model() string {
	return g.model
}
