package command

import (
	"github.com/sandevgo/folio/internal/core"
)

// NewCommands returns every slash command. /help lists the others.
func NewCommands(store core.ConversationStore) []core.Command {
	cmds := []core.Command{
		NewStartCommand(store),
		NewResetCommand(store),
		NewQuotaCommand(store),
		NewWhyCommand(store),
	}
	help := NewHelpCommand(func() []core.Command { return cmds })
	cmds = append(cmds, help)
	return cmds
}
