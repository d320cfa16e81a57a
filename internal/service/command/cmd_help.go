package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/folio/internal/core"
)

type HelpCommand struct {
	list      func() []core.Command
	formatter *ResponseFormatter
}

func NewHelpCommand(list func() []core.Command) *HelpCommand {
	return &HelpCommand{list: list, formatter: NewResponseFormatter()}
}

func (c *HelpCommand) Name() string        { return "help" }
func (c *HelpCommand) Description() string { return "List commands" }

func (c *HelpCommand) Execute(_ context.Context, _ string, _ []string) (string, error) {
	var items []string
	for _, cmd := range New(c.list()).ListCommands() {
		items = append(items, fmt.Sprintf("/%s: %s", cmd.Name(), cmd.Description()))
	}

	return c.formatter.Combine(
		c.formatter.Info("Commands"),
		c.formatter.List(items),
		c.formatter.Info("Try asking"),
		c.formatter.List([]string{
			"What projects have you built?",
			"Tell me about DiligenceVault",
			"What is your tech stack?",
			"Are you open to work?",
		}),
	), nil
}
