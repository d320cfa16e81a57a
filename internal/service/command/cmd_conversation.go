package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/quota"
)

type StartCommand struct {
	store     core.ConversationStore
	formatter *ResponseFormatter
}

func NewStartCommand(store core.ConversationStore) *StartCommand {
	return &StartCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *StartCommand) Name() string        { return "start" }
func (c *StartCommand) Description() string { return "Start a new conversation" }

func (c *StartCommand) Execute(ctx context.Context, conversationID string, _ []string) (string, error) {
	c.store.Reset(ctx, conversationID)
	return c.formatter.Combine(
		fmt.Sprintf("Hi! I'm %s, the assistant on this portfolio.", core.FolioName),
		"Ask me about my experience, projects, skills, education or how to get in touch.",
		c.formatter.Tip("send /help to see what else I understand."),
	), nil
}

type ResetCommand struct {
	store     core.ConversationStore
	formatter *ResponseFormatter
}

func NewResetCommand(store core.ConversationStore) *ResetCommand {
	return &ResetCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *ResetCommand) Name() string        { return "reset" }
func (c *ResetCommand) Description() string { return "Forget this conversation" }

func (c *ResetCommand) Execute(ctx context.Context, conversationID string, _ []string) (string, error) {
	c.store.Reset(ctx, conversationID)
	return c.formatter.Success("Conversation reset."), nil
}

type QuotaCommand struct {
	store     core.ConversationStore
	formatter *ResponseFormatter
}

func NewQuotaCommand(store core.ConversationStore) *QuotaCommand {
	return &QuotaCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *QuotaCommand) Name() string        { return "quota" }
func (c *QuotaCommand) Description() string { return "Show AI fallback usage" }

func (c *QuotaCommand) Execute(ctx context.Context, conversationID string, _ []string) (string, error) {
	snap, _ := c.store.Get(ctx, conversationID)
	q := snap.Quota

	return c.formatter.Combine(
		c.formatter.Info("AI fallback quota"),
		c.formatter.Label("Turns", fmt.Sprint(q.TotalTurns)),
		c.formatter.Label("AI turns", fmt.Sprint(q.AITurns)),
		c.formatter.Label("Available next turn", fmt.Sprint(quota.Remaining(q))),
		c.formatter.Tip(fmt.Sprintf("at most %d%% of turns are answered by the AI fallback.", quota.MaxAIPercent)),
	), nil
}
