package installer

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sandevgo/folio/pkg/env"
)

const (
	ChannelHTTP     = "HTTP API"
	ChannelTelegram = "Telegram"
	ChannelCLI      = "Terminal"
)

var ErrEnvExists = errors.New(".env file already exists")

// Settings is what the wizard writes to .env. Flags are strings so that an
// explicit "false" is kept instead of being dropped as a zero value.
type Settings struct {
	GatewayAPIKey  string `env:"AI_GATEWAY_API_KEY" mask:"true"`
	GatewayModel   string `env:"AI_GATEWAY_MODEL"`
	EnableHTTP     string `env:"FOLIO_ENABLE_HTTP"`
	EnableTelegram string `env:"FOLIO_ENABLE_TELEGRAM"`
	EnableCLI      string `env:"FOLIO_ENABLE_CLI"`
	TelegramToken  string `env:"FOLIO_TELEGRAM_TOKEN" mask:"true"`
	Debug          string `env:"FOLIO_DEBUG"`
}

type InstallState struct {
	Channels map[string]bool
	Settings Settings
}

func NewInstallState() *InstallState {
	return &InstallState{Channels: make(map[string]bool)}
}

// WriteEnv renders s into dir/.env. An existing file is never overwritten.
func WriteEnv(dir string, s Settings) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create runtime directory: %w", err)
	}

	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("%w at %s", ErrEnvExists, path)
	}

	content, err := env.MarshalEnv(s)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", err
	}
	return path, nil
}
