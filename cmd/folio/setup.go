package main

import (
	"context"

	"github.com/sandevgo/folio/internal/config"
	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/providers/fallback"
	"github.com/sandevgo/folio/internal/providers/llm"
	"github.com/sandevgo/folio/internal/service/chatbot"
	"github.com/sandevgo/folio/internal/service/command"
	"github.com/sandevgo/folio/internal/service/conversation"
	"github.com/sandevgo/folio/internal/service/state"
	"github.com/sandevgo/folio/internal/transport/cli"
	"github.com/sandevgo/folio/internal/transport/http"
	"github.com/sandevgo/folio/internal/transport/telegram"
	"github.com/sandevgo/folio/pkg/log"
	"github.com/sandevgo/folio/pkg/srv"
)

func NewServices(ctx context.Context, stop context.CancelFunc) []srv.Service {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	fallbackCfg := config.NewFallbackConfig(ctx)
	gatewayCfg := config.NewGatewayConfig(ctx)

	// 2. Engine and conversations
	gs, store := initState(ctx, appCfg, fallbackCfg)
	services = append(services, conversation.NewJanitor(store, appCfg.GetSessionTTL()))

	// 3. Rule catalog hot reload
	if path := appCfg.GetRulesPath(); path != "" {
		watcher, err := state.NewRulesWatcher(gs, path)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to watch rule catalog")
		}
		services = append(services, watcher)
	}

	// 4. Transports
	router := command.New(command.NewCommands(store))
	transports, err := initTransports(ctx, appCfg, gatewayCfg, gs, router, stop)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize transports")
	}
	if len(transports) == 0 {
		logger.Warn().Msg("no transport enabled, set FOLIO_ENABLE_HTTP, FOLIO_ENABLE_TELEGRAM or FOLIO_ENABLE_CLI")
	}
	services = append(services, transports...)

	return services
}

// initState builds the engine, applies FOLIO_RULES_PATH and wraps both in a
// GlobalState over a fresh store.
func initState(ctx context.Context, appCfg *config.AppConfig, fallbackCfg *config.FallbackConfig) (*state.GlobalState, *conversation.Store) {
	logger := log.FromCtx(ctx)

	engine, err := chatbot.NewDefaultEngine(initFallback(ctx, fallbackCfg))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build chatbot engine")
	}

	store := conversation.NewStore()
	gs := state.NewGlobalState(engine, store)

	if path := appCfg.GetRulesPath(); path != "" {
		if err := gs.ReloadRules(ctx, path); err != nil {
			logger.Fatal().Err(err).Msg("failed to load rule catalog")
		}
	}

	return gs, store
}

func initFallback(ctx context.Context, cfg *config.FallbackConfig) core.FallbackFetcher {
	client := fallback.NewClientFromConfig(cfg)
	if client == nil {
		log.FromCtx(ctx).Info().Msg("ai fallback disabled")
		return nil
	}

	log.FromCtx(ctx).Info().
		Str("url", cfg.GetFallbackURL()).
		Dur("timeout", cfg.GetFallbackTimeout()).
		Msg("ai fallback enabled")
	return client
}

func initProvider(ctx context.Context, cfg *config.GatewayConfig) core.AIProvider {
	gw := llm.NewGatewayFromConfig(ctx, cfg)
	if gw == nil {
		return nil
	}
	return gw
}

func initTransports(
	ctx context.Context,
	cfg *config.AppConfig,
	gatewayCfg *config.GatewayConfig,
	chat core.Chatbot,
	router core.CmdRouter,
	stop context.CancelFunc,
) ([]srv.Service, error) {
	var services []srv.Service

	if cfg.IsHTTPSelected() {
		services = append(services, http.NewServer(ctx, cfg.GetHTTPAddr(), chat, initProvider(ctx, gatewayCfg)))
	}

	if cfg.IsTelegramSelected() {
		tgCfg := config.NewTelegramConfig(ctx)
		bot, err := telegram.NewBot(ctx, tgCfg, chat, router)
		if err != nil {
			return nil, err
		}
		services = append(services, bot)
	}

	if cfg.IsCLISelected() {
		rl, err := cli.NewReadLine(chat, router, cfg)
		if err != nil {
			return nil, err
		}
		services = append(services, &stopOnReturn{Service: rl, stop: stop})
	}

	return services, nil
}

// stopOnReturn ends the process once the wrapped service's Start returns,
// e.g. when the terminal user types exit.
type stopOnReturn struct {
	srv.Service
	stop context.CancelFunc
}

func (s *stopOnReturn) Start(ctx context.Context) error {
	defer s.stop()
	return s.Service.Start(ctx)
}
