package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/folio/internal/core"
)

// WhyCommand explains how the previous message was classified.
type WhyCommand struct {
	store     core.ConversationStore
	formatter *ResponseFormatter
}

func NewWhyCommand(store core.ConversationStore) *WhyCommand {
	return &WhyCommand{store: store, formatter: NewResponseFormatter()}
}

func (c *WhyCommand) Name() string        { return "why" }
func (c *WhyCommand) Description() string { return "Explain the last classification" }

func (c *WhyCommand) Execute(ctx context.Context, conversationID string, _ []string) (string, error) {
	snap, ok := c.store.Get(ctx, conversationID)
	if !ok || snap.LastMatch == nil {
		return "Nothing to explain yet. Ask me something first.", nil
	}
	m := snap.LastMatch

	entity := m.MatchedEntity
	if entity == "" {
		entity = "none"
	}

	hits := make([]string, 0, len(m.DebugHits))
	for _, h := range m.DebugHits {
		hits = append(hits, fmt.Sprintf("%s %s `%s` (%+d)", h.Rule, h.Kind, h.Value, h.Weight))
	}
	if len(hits) == 0 {
		hits = append(hits, "no rule matched")
	}

	return c.formatter.Combine(
		c.formatter.Info("Last classification"),
		c.formatter.Label("Intent", m.Intent),
		c.formatter.Label("Score", fmt.Sprintf("%d (runner-up %d)", m.Score, m.SecondBestScore)),
		c.formatter.Label("Confidence", fmt.Sprintf("%.2f", m.Confidence)),
		c.formatter.Label("Entity", entity),
		c.formatter.List(hits),
	), nil
}
