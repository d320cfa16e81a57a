package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sandevgo/folio/internal/config"
	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/conversation"
	"github.com/sandevgo/folio/internal/service/ui"
	"github.com/sandevgo/folio/pkg/conv"
	"github.com/spf13/cobra"
)

var (
	askJSON    bool
	askExplain bool
)

var askCmd = &cobra.Command{
	Use:          "ask [question]",
	Short:        "Ask a single question and print the reply",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		appCfg := config.NewAppConfig(ctx)
		fallbackCfg := config.NewFallbackConfig(ctx)
		gs, _ := initState(ctx, appCfg, fallbackCfg)

		reply := gs.Ask(ctx, conversation.NewID(), strings.Join(args, " "))

		out := cmd.OutOrStdout()
		if askJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(reply)
		}

		printReply(out, reply, askExplain)
		return nil
	},
}

func printReply(out io.Writer, reply core.ChatbotReply, explain bool) {
	fmt.Fprintln(out, conv.MarkdownToPlainText(reply.Text))

	if len(reply.Suggestions) > 0 {
		fmt.Fprintln(out)
		for _, s := range reply.Suggestions {
			fmt.Fprintf(out, "  › %s\n", s)
		}
	}

	if !explain {
		return
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s %s\n", ui.DescStyle.Render("intent:"), ui.Intent(reply.Intent, reply.Confidence))
	if reply.Entity != "" {
		fmt.Fprintf(out, "%s %s\n", ui.DescStyle.Render("entity:"), reply.Entity)
	}
	fmt.Fprintf(out, "%s %s\n", ui.DescStyle.Render("source:"), reply.Source)
	for _, h := range reply.Match.DebugHits {
		fmt.Fprintf(out, "  %s %s %q %+d\n", h.Rule, h.Kind, h.Value, h.Weight)
	}
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full reply as JSON")
	askCmd.Flags().BoolVarP(&askExplain, "explain", "e", false, "show the intent, confidence and scoring hits")
	rootCmd.AddCommand(askCmd)
}
