package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/folio/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"FOLIO_TELEGRAM_TOKEN,required,notEmpty" mask:"true"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c, err := env.ParseAs[TelegramConfig]()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return &c
}
