package core

import "time"

type AppConfig interface {
	GetRuntimePath() string
	GetHistoryPath() string
	GetHTTPAddr() string
	GetSessionTTL() time.Duration
	GetRulesPath() string
	IsTelegramSelected() bool
	IsHTTPSelected() bool
	IsCLISelected() bool
}

type GatewayConfig interface {
	GetGatewayAPIKey() string
	GetGatewayModel() string
	GetGatewayBaseURL() string
}

type FallbackConfig interface {
	GetFallbackURL() string
	GetFallbackTimeout() time.Duration
}
