// Package chatbot runs one conversation turn end to end: normalize, match,
// render and, when allowed, escalate to the AI fallback.
package chatbot

import (
	"context"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/intent"
	"github.com/sandevgo/folio/internal/service/normalizer"
	"github.com/sandevgo/folio/internal/service/quota"
	"github.com/sandevgo/folio/internal/service/reply"
	"github.com/sandevgo/folio/internal/service/session"
	"github.com/sandevgo/folio/pkg/log"
)

// Engine is immutable. Swapping rules means building a new Engine.
type Engine struct {
	matcher  *intent.Matcher
	builder  *reply.Builder
	fallback core.FallbackFetcher
}

// NewEngine wires the pieces of a turn. fallback may be nil.
func NewEngine(matcher *intent.Matcher, builder *reply.Builder, fallback core.FallbackFetcher) *Engine {
	return &Engine{
		matcher:  matcher,
		builder:  builder,
		fallback: fallback,
	}
}

// NewDefaultEngine uses the rules and templates embedded in the binary.
func NewDefaultEngine(fallback core.FallbackFetcher) (*Engine, error) {
	table, err := intent.DefaultTable()
	if err != nil {
		return nil, err
	}
	builder, err := reply.DefaultBuilder()
	if err != nil {
		return nil, err
	}
	return NewEngine(intent.NewMatcher(table), builder, fallback), nil
}

// WithRules returns a copy of e that matches against table.
func (e *Engine) WithRules(table *intent.RuleTable) *Engine {
	return NewEngine(intent.NewMatcher(table), e.builder, e.fallback)
}

// Rules is the rule table the engine matches against.
func (e *Engine) Rules() *intent.RuleTable {
	return e.matcher.Table()
}

// Classify matches input without rendering a reply.
func (e *Engine) Classify(input string, s core.SessionState) core.MatchResult {
	return e.matcher.Match(normalizer.Normalize(input), s)
}

// GetResponse answers from local templates only.
func (e *Engine) GetResponse(ctx context.Context, input string, s core.SessionState) core.ChatbotReply {
	m := e.Classify(input, s)
	r := e.builder.Build(m.Intent, m.MatchedEntity, s)

	log.FromCtx(ctx).Debug().
		Str("intent", m.Intent).
		Int("score", m.Score).
		Float64("confidence", m.Confidence).
		Str("entity", m.MatchedEntity).
		Str("variant", r.VariantID).
		Msg("matched")

	return core.ChatbotReply{
		Text:        r.Text,
		Intent:      m.Intent,
		Confidence:  m.Confidence,
		Entity:      m.MatchedEntity,
		VariantID:   r.VariantID,
		Suggestions: r.Suggestions,
		Session:     session.Advance(s, m.Intent, m.MatchedEntity, r.VariantID),
		Match:       m,
		Source:      core.SourceMatcher,
	}
}

// Respond runs a full turn and counts it against q exactly once. When the
// fallback answers, the reply carries no VariantID and the session does not
// record the clarify template that was never shown.
func (e *Engine) Respond(ctx context.Context, input string, s core.SessionState, q core.QuotaState) (core.ChatbotReply, core.QuotaState) {
	out := e.GetResponse(ctx, input, s)

	used := false
	if e.fallback != nil && quota.ShouldUseAIFallback(out.Match, q) {
		text, ok := e.fallback.Fetch(ctx, core.FallbackPayload{
			Question:     input,
			MatcherReply: out.Text,
		})
		if ok {
			out.Text = text
			out.Source = core.SourceAI
			out.VariantID = ""
			out.Session = session.Advance(s, out.Intent, out.Entity, "")
			used = true
		}
	}

	next := quota.Next(q, used)
	log.FromCtx(ctx).Debug().
		Str("source", out.Source).
		Int("total_turns", next.TotalTurns).
		Int("ai_turns", next.AITurns).
		Msg("turn complete")

	return out, next
}
