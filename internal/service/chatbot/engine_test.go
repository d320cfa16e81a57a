package chatbot

import (
	"context"
	"testing"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/intent"
	"github.com/sandevgo/folio/internal/service/quota"
	"github.com/sandevgo/folio/internal/service/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFallback struct {
	text     string
	ok       bool
	calls    int
	payloads []core.FallbackPayload
}

func (f *fakeFallback) Fetch(_ context.Context, p core.FallbackPayload) (string, bool) {
	f.calls++
	f.payloads = append(f.payloads, p)
	return f.text, f.ok
}

func newEngine(t *testing.T, fb core.FallbackFetcher) *Engine {
	t.Helper()
	e, err := NewDefaultEngine(fb)
	require.NoError(t, err)
	return e
}

func TestGetResponse_GreetingVariants(t *testing.T) {
	e := newEngine(t, nil)
	ctx := context.Background()
	s := session.New()

	var ids []string
	for range 3 {
		r := e.GetResponse(ctx, "hi", s)
		assert.Equal(t, "greeting", r.Intent)
		assert.Equal(t, core.SourceMatcher, r.Source)
		ids = append(ids, r.VariantID)
		s = r.Session
	}

	assert.Equal(t, []string{"greeting:0", "greeting:1", "greeting:2"}, ids)
	assert.Equal(t, []string{"greeting", "greeting", "greeting"}, s.RecentIntents)
}

func TestGetResponse_EntityDetail(t *testing.T) {
	e := newEngine(t, nil)

	r := e.GetResponse(context.Background(), "tell me about diligencevault", session.New())
	assert.Equal(t, "experience", r.Intent)
	assert.Equal(t, "diligenceVault", r.Entity)
	assert.Equal(t, "experience:entity:diligenceVault", r.VariantID)
	assert.Contains(t, r.Text, "due-diligence workflows")
	assert.Equal(t, "diligenceVault", r.Session.LastEntity)
	assert.Equal(t, 1.0, r.Confidence)
}

func TestGetResponse_Scenarios(t *testing.T) {
	e := newEngine(t, nil)

	assert.Equal(t, "out_of_scope", e.GetResponse(context.Background(), "what is the weather today", session.New()).Intent)
	assert.Equal(t, "sensitive", e.GetResponse(context.Background(), "your father name", session.New()).Intent)

	r := e.GetResponse(context.Background(), "???", session.New())
	assert.Equal(t, core.IntentClarify, r.Intent)
	assert.Zero(t, r.Confidence)
	assert.NotEmpty(t, r.Suggestions)
}

func TestGetResponse_DoesNotMutateSession(t *testing.T) {
	e := newEngine(t, nil)
	s := session.Advance(session.New(), "project", "", "project:0")

	r := e.GetResponse(context.Background(), "hi", s)
	assert.Equal(t, []string{"project"}, s.RecentIntents)
	assert.Equal(t, []string{"project", "greeting"}, r.Session.RecentIntents)
}

func TestRespond_SensitiveNeverEscalates(t *testing.T) {
	fb := &fakeFallback{text: "remote answer", ok: true}
	e := newEngine(t, fb)

	r, q := e.Respond(context.Background(), "your father name", session.New(), core.QuotaState{})
	assert.Equal(t, "sensitive", r.Intent)
	assert.Equal(t, core.SourceMatcher, r.Source)
	assert.Zero(t, fb.calls)
	assert.Equal(t, core.QuotaState{TotalTurns: 1}, q)
}

func TestRespond_ClarifyUsesFallback(t *testing.T) {
	fb := &fakeFallback{text: "I surf on weekends.", ok: true}
	e := newEngine(t, fb)

	r, q := e.Respond(context.Background(), "do you surf", session.New(), core.QuotaState{})
	assert.Equal(t, core.IntentClarify, r.Intent)
	assert.Equal(t, core.SourceAI, r.Source)
	assert.Equal(t, "I surf on weekends.", r.Text)
	assert.Equal(t, core.QuotaState{TotalTurns: 1, AITurns: 1}, q)

	require.Len(t, fb.payloads, 1)
	assert.Equal(t, "do you surf", fb.payloads[0].Question)
	assert.NotEmpty(t, fb.payloads[0].MatcherReply)
}

func TestRespond_AIReplyDoesNotRecordTemplate(t *testing.T) {
	fb := &fakeFallback{text: "remote", ok: true}
	e := newEngine(t, fb)
	ctx := context.Background()

	s := session.Advance(session.New(), "greeting", "", "greeting:0")
	r, _ := e.Respond(ctx, "do you surf", s, core.QuotaState{})
	require.Equal(t, core.SourceAI, r.Source)
	assert.Empty(t, r.VariantID)
	assert.Equal(t, []string{"greeting:0"}, r.Session.RecentReplyVariantIDs)
	assert.Equal(t, []string{"greeting", core.IntentClarify}, r.Session.RecentIntents)
	assert.Equal(t, core.IntentClarify, r.Session.LastIntent)

	// The next local clarify reply still starts from the first template.
	r, _ = e.Respond(ctx, "zxcv", r.Session, core.QuotaState{TotalTurns: 1, AITurns: 1})
	require.Equal(t, core.SourceMatcher, r.Source)
	assert.Equal(t, "clarify:0", r.VariantID)
}

func TestRespond_FallbackFailureKeepsLocalReply(t *testing.T) {
	fb := &fakeFallback{ok: false}
	e := newEngine(t, fb)

	r, q := e.Respond(context.Background(), "do you surf", session.New(), core.QuotaState{})
	assert.Equal(t, core.SourceMatcher, r.Source)
	assert.Equal(t, "clarify:0", r.VariantID)
	assert.Equal(t, 1, fb.calls)
	assert.Equal(t, core.QuotaState{TotalTurns: 1}, q)
}

func TestRespond_TenClarifyTurns(t *testing.T) {
	fb := &fakeFallback{text: "remote", ok: true}
	e := newEngine(t, fb)
	ctx := context.Background()

	s, q := session.New(), core.QuotaState{}
	for range 10 {
		var r core.ChatbotReply
		r, q = e.Respond(ctx, "zxcv qwerty", s, q)
		require.Equal(t, core.IntentClarify, r.Intent)
		require.LessOrEqual(t, q.AITurns, quota.MaxAITurns(q.TotalTurns))
		s = r.Session
	}

	assert.Equal(t, 3, fb.calls)
	assert.Equal(t, core.QuotaState{TotalTurns: 10, AITurns: 3}, q)
}

func TestRespond_WithoutFallback(t *testing.T) {
	e := newEngine(t, nil)

	r, q := e.Respond(context.Background(), "zxcv", session.New(), core.QuotaState{})
	assert.Equal(t, core.SourceMatcher, r.Source)
	assert.Equal(t, core.QuotaState{TotalTurns: 1}, q)
}

func TestWithRules(t *testing.T) {
	e := newEngine(t, nil)
	table, err := intent.NewRuleTable([]core.IntentRule{{ID: "greeting", Phrases: []string{"ahoy"}}})
	require.NoError(t, err)

	swapped := e.WithRules(table)
	assert.Equal(t, "greeting", swapped.Classify("ahoy", session.New()).Intent)
	assert.Equal(t, core.IntentClarify, e.Classify("ahoy", session.New()).Intent)
	assert.Equal(t, 1, swapped.Rules().Len())
}
