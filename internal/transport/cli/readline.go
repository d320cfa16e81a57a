package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/pkg/conv"
	"github.com/sandevgo/folio/pkg/log"
)

const defaultConversationID = "cli-local"

type ReadLine struct {
	chat   core.Chatbot
	router core.CmdRouter
	rl     *readline.Instance
}

func NewReadLine(chat core.Chatbot, router core.CmdRouter, cfg core.AppConfig) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.GetRuntimePath(), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "you › ",
		HistoryFile:     cfg.GetHistoryPath(),
		AutoComplete:    completer(router),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		chat:   chat,
		router: router,
		rl:     rl,
	}, nil
}

func completer(router core.CmdRouter) readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0)
	for _, c := range router.ListCommands() {
		items = append(items, readline.PcItem("/"+c.Name()))
	}
	return readline.NewPrefixCompleter(items...)
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("ReadLine chat started. Type 'exit' to quit.")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		r.handle(ctx, r.rl.Stdout(), line)
	}
}

func (r *ReadLine) handle(ctx context.Context, out io.Writer, line string) {
	if text, ok := r.router.Execute(ctx, defaultConversationID, line); ok {
		fmt.Fprintf(out, "%s\n\n", conv.MarkdownToPlainText(text))
		return
	}

	reply := r.chat.Ask(ctx, defaultConversationID, line)
	writeReply(out, reply)
}

func writeReply(out io.Writer, reply core.ChatbotReply) {
	fmt.Fprintf(out, "folio › %s\n", conv.MarkdownToPlainText(reply.Text))
	if reply.Source == core.SourceAI {
		fmt.Fprintln(out, "\033[38;5;240m(answered by the AI fallback)\033[0m")
	}
	for _, s := range reply.Suggestions {
		fmt.Fprintf(out, "  › %s\n", s)
	}
	fmt.Fprintln(out)
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
