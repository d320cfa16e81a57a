package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/sandevgo/folio/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"FOLIO_RUNTIME_PATH" envDefault:".folio"`
	LogFormat   string `env:"FOLIO_LOG_FORMAT" envDefault:"console"`

	// Transport Flags
	EnableHTTP     bool `env:"FOLIO_ENABLE_HTTP" envDefault:"true"`
	EnableTelegram bool `env:"FOLIO_ENABLE_TELEGRAM" envDefault:"false"`
	EnableCLI      bool `env:"FOLIO_ENABLE_CLI" envDefault:"false"`

	HTTPAddr string `env:"FOLIO_HTTP_ADDR" envDefault:":8080"`

	// Conversations idle for longer than this are forgotten
	SessionTTL time.Duration `env:"FOLIO_SESSION_TTL" envDefault:"30m"`

	// Optional YAML rule catalog, reloaded on change
	RulesPath string `env:"FOLIO_RULES_PATH"`
}

func ParseAppConfig() (*AppConfig, error) {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		return nil, err
	}
	c.RuntimePath = resolveRuntimePath(c.RuntimePath)
	return c, nil
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c, err := ParseAppConfig()
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetHistoryPath() string {
	return filepath.Join(c.RuntimePath, "history")
}

func (c AppConfig) GetEnvPath() string {
	return filepath.Join(c.RuntimePath, ".env")
}

func (c AppConfig) GetHTTPAddr() string {
	return c.HTTPAddr
}

func (c AppConfig) GetSessionTTL() time.Duration {
	return c.SessionTTL
}

func (c AppConfig) GetRulesPath() string {
	return c.RulesPath
}

func (c AppConfig) IsHTTPSelected() bool {
	return c.EnableHTTP
}

func (c AppConfig) IsTelegramSelected() bool {
	return c.EnableTelegram
}

func (c AppConfig) IsCLISelected() bool {
	return c.EnableCLI
}
