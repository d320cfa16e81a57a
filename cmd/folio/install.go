package main

import (
	"fmt"

	"github.com/sandevgo/folio/internal/config"
	"github.com/sandevgo/folio/internal/service/installer"
	"github.com/sandevgo/folio/pkg/env"
	"github.com/sandevgo/folio/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:          "install",
	Short:        "Write a .env for Folio with an interactive wizard",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting installation process")

		// the wizard includes the save step
		state, err := installer.RunWizard()
		if err != nil {
			return err
		}

		summary, err := env.MarshalEnvMasked(state.Settings)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), summary)

		logger.Info().Msgf("initialized runtime directory at: %s", config.GetRuntimePath())
		logger.Info().Msg("Installation complete! You can now run 'folio start'.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
