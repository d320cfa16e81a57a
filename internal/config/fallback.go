package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/folio/pkg/log"
)

// FallbackConfig points the bot at the endpoint that answers clarify turns.
// There is no default endpoint: without FOLIO_FALLBACK_URL every turn is
// answered locally.
type FallbackConfig struct {
	Enabled bool          `env:"FOLIO_ENABLE_FALLBACK" envDefault:"true"`
	URL     string        `env:"FOLIO_FALLBACK_URL"`
	Timeout time.Duration `env:"FOLIO_FALLBACK_TIMEOUT" envDefault:"20s"`
}

func ParseFallbackConfig() (*FallbackConfig, error) {
	c, err := env.ParseAs[FallbackConfig]()
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func NewFallbackConfig(ctx context.Context) *FallbackConfig {
	c, err := ParseFallbackConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse fallback config")
	}
	return c
}

// GetFallbackURL is empty when the fallback is disabled.
func (c FallbackConfig) GetFallbackURL() string {
	if !c.Enabled {
		return ""
	}
	return c.URL
}

func (c FallbackConfig) GetFallbackTimeout() time.Duration {
	return c.Timeout
}
