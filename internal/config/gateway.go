package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/folio/pkg/log"
)

// GatewayConfig configures the AI gateway behind /api/chat. The key is
// optional: without it the endpoint answers 503.
type GatewayConfig struct {
	APIKey  string `env:"AI_GATEWAY_API_KEY" mask:"true"`
	Model   string `env:"AI_GATEWAY_MODEL" envDefault:"openai/gpt-4o-mini"`
	BaseURL string `env:"AI_GATEWAY_BASE_URL" envDefault:"https://ai-gateway.vercel.sh"`
}

func ParseGatewayConfig() (*GatewayConfig, error) {
	c, err := env.ParseAs[GatewayConfig]()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func NewGatewayConfig(ctx context.Context) *GatewayConfig {
	c, err := ParseGatewayConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse AI gateway config")
	}
	return c
}

func (c GatewayConfig) GetGatewayAPIKey() string {
	return c.APIKey
}

func (c GatewayConfig) GetGatewayModel() string {
	return c.Model
}

func (c GatewayConfig) GetGatewayBaseURL() string {
	return c.BaseURL
}
