package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/chatbot"
	"github.com/sandevgo/folio/internal/service/command"
	"github.com/sandevgo/folio/internal/service/conversation"
	"github.com/sandevgo/folio/internal/service/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReadLine(t *testing.T) *ReadLine {
	t.Helper()
	engine, err := chatbot.NewDefaultEngine(nil)
	require.NoError(t, err)
	store := conversation.NewStore()
	return &ReadLine{
		chat:   state.NewGlobalState(engine, store),
		router: command.New(command.NewCommands(store)),
	}
}

func TestReadLine_Handle(t *testing.T) {
	r := newTestReadLine(t)
	var out bytes.Buffer

	r.handle(context.Background(), &out, "tell me about ledgerlens")
	assert.Contains(t, out.String(), "folio › LedgerLens")
	assert.NotContains(t, out.String(), "**")

	out.Reset()
	r.handle(context.Background(), &out, "/quota")
	assert.Contains(t, out.String(), "Turns")
	assert.Contains(t, out.String(), "1")
}

func TestWriteReply(t *testing.T) {
	var out bytes.Buffer
	writeReply(&out, core.ChatbotReply{
		Text:        "Not sure I got that.",
		Source:      core.SourceAI,
		Suggestions: []string{"Where have you worked?"},
	})

	assert.Contains(t, out.String(), "folio › Not sure I got that.")
	assert.Contains(t, out.String(), "AI fallback")
	assert.Contains(t, out.String(), "  › Where have you worked?")
}
