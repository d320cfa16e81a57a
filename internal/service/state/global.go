// Package state owns what the running bot shares across transports: the
// current engine and the live conversations.
package state

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/chatbot"
	"github.com/sandevgo/folio/internal/service/intent"
	"github.com/sandevgo/folio/internal/service/session"
	"github.com/sandevgo/folio/pkg/log"
)

type GlobalState struct {
	engine atomic.Pointer[chatbot.Engine]
	store  core.ConversationStore
}

func NewGlobalState(engine *chatbot.Engine, store core.ConversationStore) *GlobalState {
	s := &GlobalState{store: store}
	s.engine.Store(engine)
	return s
}

// Engine is the engine new turns run on.
func (s *GlobalState) Engine() *chatbot.Engine {
	return s.engine.Load()
}

// Store exposes the conversation store for commands.
func (s *GlobalState) Store() core.ConversationStore {
	return s.store
}

// Ask runs one turn of conversationID. Turns of the same conversation never
// overlap; a turn keeps the engine it started with even if rules are swapped.
func (s *GlobalState) Ask(ctx context.Context, conversationID, input string) core.ChatbotReply {
	engine := s.Engine()

	var out core.ChatbotReply
	s.store.Update(ctx, conversationID, func(snap core.Snapshot) core.Snapshot {
		var q core.QuotaState
		out, q = engine.Respond(ctx, input, snap.Session, snap.Quota)

		m := out.Match
		return core.Snapshot{
			Session:   out.Session,
			Quota:     q,
			LastMatch: &m,
		}
	})
	return out
}

// Classify matches input with a fresh session and keeps no state.
func (s *GlobalState) Classify(input string) core.MatchResult {
	return s.Engine().Classify(input, session.New())
}

// ReloadRules builds a new rule table from path and swaps it in. On any error
// the current engine keeps running.
func (s *GlobalState) ReloadRules(ctx context.Context, path string) error {
	table, err := intent.LoadTable(path)
	if err != nil {
		return fmt.Errorf("reload rules: %w", err)
	}

	s.engine.Store(s.Engine().WithRules(table))
	log.FromCtx(ctx).Info().Str("path", path).Int("rules", table.Len()).Msg("rules reloaded")
	return nil
}
