package main

import (
	"fmt"
	"os"

	"github.com/sandevgo/folio/internal/config"
	"github.com/sandevgo/folio/internal/service/chatbot"
	"github.com/sandevgo/folio/internal/service/intent"
	"github.com/sandevgo/folio/internal/service/ui"
	"github.com/spf13/cobra"
)

var selftestFixtures string

var selftestCmd = &cobra.Command{
	Use:          "selftest",
	Short:        "Run the classification fixtures and report accuracy",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)

		// local matching only, the fallback never runs here
		engine, err := chatbot.NewDefaultEngine(nil)
		if err != nil {
			return err
		}
		if path := appCfg.GetRulesPath(); path != "" {
			table, err := intent.LoadTable(path)
			if err != nil {
				return err
			}
			engine = engine.WithRules(table)
		}

		var report chatbot.Report
		if selftestFixtures != "" {
			data, err := os.ReadFile(selftestFixtures)
			if err != nil {
				return err
			}
			fixtures, err := chatbot.ParseFixtures(data)
			if err != nil {
				return err
			}
			report = chatbot.RunFixtureSuite(engine, fixtures)
		} else {
			report, err = chatbot.RunTests(engine)
			if err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		for _, f := range report.Failures {
			fmt.Fprintln(out, ui.ErrorStyle.Render("FAIL")+" "+f.String())
		}
		fmt.Fprintf(out, "%s %d/%d passed (%.1f%%)\n",
			ui.TitleStyle.Render("selftest"), report.Passed, report.Total, report.Accuracy*100)

		if report.Failed > 0 {
			return fmt.Errorf("%d of %d fixtures failed", report.Failed, report.Total)
		}
		return nil
	},
}

func init() {
	selftestCmd.Flags().StringVarP(&selftestFixtures, "fixtures", "f", "", "YAML fixture file to run instead of the built-in suite")
	rootCmd.AddCommand(selftestCmd)
}
