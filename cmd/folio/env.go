package main

import (
	"fmt"

	"github.com/sandevgo/folio/internal/config"
	"github.com/sandevgo/folio/pkg/env"
	"github.com/spf13/cobra"
)

var envCmd = &cobra.Command{
	Use:          "env",
	Short:        "Print the effective configuration with secrets masked",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)
		configs := []any{
			appCfg,
			config.NewGatewayConfig(ctx),
			config.NewFallbackConfig(ctx),
		}
		if appCfg.IsTelegramSelected() {
			configs = append(configs, config.NewTelegramConfig(ctx))
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "# runtime: %s\n", appCfg.GetRuntimePath())
		for _, c := range configs {
			s, err := env.MarshalEnvMasked(c)
			if err != nil {
				return err
			}
			fmt.Fprint(out, s)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(envCmd)
}
