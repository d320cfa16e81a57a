package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/folio/pkg/log"
	"github.com/sandevgo/folio/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the Folio services",
	Long:  `Starts every enabled transport (HTTP, Telegram, terminal) plus the conversation janitor and the rule watcher.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting folio")

		services := NewServices(ctx, stop)

		srv.StartServices(ctx, services)

		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("folio has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
