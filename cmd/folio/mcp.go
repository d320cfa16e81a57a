package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/folio/internal/config"
	"github.com/sandevgo/folio/internal/service/conversation"
	"github.com/sandevgo/folio/internal/transport/mcp"
	"github.com/sandevgo/folio/pkg/srv"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve the chatbot as MCP tools over stdio",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// logs go to stderr, stdout belongs to the protocol
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)
		fallbackCfg := config.NewFallbackConfig(ctx)
		gs, store := initState(ctx, appCfg, fallbackCfg)

		janitor := conversation.NewJanitor(store, appCfg.GetSessionTTL())
		srv.StartServices(ctx, []srv.Service{janitor})

		return mcp.NewServer(gs).Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
