package intent

import (
	"testing"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/normalizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultMatcher(t *testing.T) *Matcher {
	t.Helper()
	table, err := DefaultTable()
	require.NoError(t, err)
	return NewMatcher(table)
}

func match(m *Matcher, input string, s core.SessionState) core.MatchResult {
	return m.Match(normalizer.Normalize(input), s)
}

func TestMatch_Scenarios(t *testing.T) {
	m := defaultMatcher(t)

	tests := []struct {
		input      string
		wantIntent string
		wantEntity string
	}{
		{"hi", "greeting", ""},
		{"Hello there!", "greeting", ""},
		{"tell me about diligencevault", "experience", "diligenceVault"},
		{"what did you do at Northwind Labs?", "experience", "northwind"},
		{"what is the weather today", "out_of_scope", ""},
		{"your father name", "sensitive", ""},
		{"how much do u earn", "sensitive", ""},
		{"what's ur tech stack", "skills", ""},
		{"tell me about ledger lens", "project", "ledgerLens"},
		{"how can I contact you", "contact", ""},
		{"can i download your cv", "resume", ""},
		{"are you open to work?", "availability", ""},
		{"thx!", core.IntentThanks, ""},
		{"cya", core.IntentGoodbye, ""},
		{"", core.IntentClarify, ""},
		{"???", core.IntentClarify, ""},
		{"qwerty zxcv", core.IntentClarify, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := match(m, tt.input, core.SessionState{})
			assert.Equal(t, tt.wantIntent, got.Intent)
			assert.Equal(t, tt.wantEntity, got.MatchedEntity)
		})
	}
}

func TestMatch_WordBoundaries(t *testing.T) {
	m := defaultMatcher(t)

	tests := []struct {
		input      string
		wantIntent string
		wantEntity string
	}{
		{"tell me about diligencevault's product", "experience", "diligenceVault"},
		{"what did you do at northwind's office", "experience", "northwind"},
		{"'hi'", "greeting", ""},
		{"hi-five", "greeting", ""},
		{"your-projects", "project", ""},
		{"ledgerlens-style apps?", "project", "ledgerLens"},
		{"history", core.IntentClarify, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := match(m, tt.input, core.SessionState{})
			assert.Equal(t, tt.wantIntent, got.Intent)
			assert.Equal(t, tt.wantEntity, got.MatchedEntity)
		})
	}
}

func TestMatch_ScoresAndConfidence(t *testing.T) {
	m := defaultMatcher(t)

	got := match(m, "hi", core.SessionState{})
	assert.Equal(t, WeightPhrase, got.Score)
	assert.Equal(t, 0, got.SecondBestScore)
	assert.Equal(t, 1.0, got.Confidence)

	got = match(m, "tell me about diligencevault", core.SessionState{})
	assert.Equal(t, WeightEntity, got.Score)
	assert.Equal(t, 1.0, got.Confidence)

	got = match(m, "nothing relevant here", core.SessionState{})
	assert.Equal(t, core.IntentClarify, got.Intent)
	assert.Zero(t, got.Confidence)
	assert.Empty(t, got.MatchedEntity)
}

func TestMatch_RegisteredPhrasesWin(t *testing.T) {
	m := defaultMatcher(t)

	for _, rule := range m.Table().Rules() {
		for _, phrase := range rule.Phrases {
			got := match(m, phrase, core.SessionState{})
			assert.Equal(t, rule.ID, got.Intent, "phrase %q", phrase)
		}
	}
}

func TestMatch_BlockerVetoes(t *testing.T) {
	m := defaultMatcher(t)

	for _, rule := range m.Table().Rules() {
		if len(rule.Blockers) == 0 {
			continue
		}
		for _, blocker := range rule.Blockers {
			input := rule.Phrases[0] + " " + blocker
			got := match(m, input, core.SessionState{})
			assert.NotEqual(t, rule.ID, got.Intent, "input %q", input)
		}
	}

	got := match(m, "tell me about yourself and your salary", core.SessionState{})
	assert.Equal(t, "sensitive", got.Intent)

	var vetoed bool
	for _, h := range got.DebugHits {
		if h.Rule == "about" && h.Kind == HitBlocker {
			vetoed = true
			assert.Equal(t, BlockedScore, h.Weight)
		}
	}
	assert.True(t, vetoed)
}

func TestMatch_AllBlockedIsClarify(t *testing.T) {
	table, err := NewRuleTable([]core.IntentRule{
		{ID: "about", Phrases: []string{"about you"}, Blockers: []string{"salary"}},
	})
	require.NoError(t, err)

	got := NewMatcher(table).Match(normalizer.Normalize("about you and salary"), core.SessionState{})
	assert.Equal(t, core.IntentClarify, got.Intent)
	assert.Equal(t, BlockedScore, got.Score)
	assert.Zero(t, got.Confidence)
}

func TestMatch_TieGoesToFirstRule(t *testing.T) {
	table, err := NewRuleTable([]core.IntentRule{
		{ID: "first", Keywords: []string{"shared"}},
		{ID: "second", Keywords: []string{"shared"}},
	})
	require.NoError(t, err)

	got := NewMatcher(table).Match(normalizer.Normalize("shared"), core.SessionState{})
	assert.Equal(t, "first", got.Intent)
	assert.Equal(t, 1, got.Score)
	assert.Equal(t, 1, got.SecondBestScore)
	assert.Zero(t, got.Confidence)
}

func TestMatch_FirstEntityWins(t *testing.T) {
	m := defaultMatcher(t)

	got := match(m, "northwind or diligencevault", core.SessionState{})
	assert.Equal(t, "experience", got.Intent)
	assert.Equal(t, "diligenceVault", got.MatchedEntity)
	assert.Equal(t, 2*WeightEntity, got.Score)
}

func TestMatch_FollowUpBonus(t *testing.T) {
	m := defaultMatcher(t)

	cold := match(m, "tell me more", core.SessionState{})
	assert.Equal(t, core.IntentClarify, cold.Intent)

	s := core.SessionState{LastIntent: "project"}
	warm := match(m, "tell me more", s)
	assert.Equal(t, "project", warm.Intent)
	assert.Equal(t, WeightFollowUp, warm.Score)

	// contact does not support follow-ups
	s = core.SessionState{LastIntent: "contact"}
	assert.Equal(t, core.IntentClarify, match(m, "tell me more", s).Intent)

	// the bonus needs a marker
	s = core.SessionState{LastIntent: "project"}
	assert.Equal(t, core.IntentClarify, match(m, "interesting", s).Intent)
}

func TestMatch_ConfidenceBounds(t *testing.T) {
	m := defaultMatcher(t)
	inputs := []string{
		"", "hi", "hi and thanks", "projects and experience", "your father",
		"what is your salary for this project", "tell me more", "weather news stock",
		"skills skills skills", "bye thanks hi",
	}

	for _, in := range inputs {
		got := match(m, in, core.SessionState{LastIntent: "skills"})
		assert.GreaterOrEqual(t, got.Confidence, 0.0, in)
		assert.LessOrEqual(t, got.Confidence, 1.0, in)
		if got.Score <= 0 {
			assert.Zero(t, got.Confidence, in)
			assert.Equal(t, core.IntentClarify, got.Intent, in)
		}
	}
}
