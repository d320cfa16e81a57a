package intent

import (
	"strings"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/normalizer"
)

// Scoring weights.
const (
	WeightPhrase   = 3
	WeightKeyword  = 1
	WeightEntity   = 2
	WeightFollowUp = 2

	// BlockedScore replaces the score of a rule whose blocker matched.
	BlockedScore = -100
)

// Hit kinds reported in MatchResult.DebugHits.
const (
	HitPhrase   = "phrase"
	HitKeyword  = "keyword"
	HitEntity   = "entity"
	HitFollowUp = "followup"
	HitBlocker  = "blocker"
)

type Matcher struct {
	table *RuleTable
}

func NewMatcher(table *RuleTable) *Matcher {
	return &Matcher{table: table}
}

// Table returns the rule table the matcher was built with.
func (m *Matcher) Table() *RuleTable {
	return m.table
}

type ruleScore struct {
	score  int
	entity string
	hits   []core.Hit
}

// Match scores every rule against q and picks the winner. Ties go to the
// rule declared first. Without positive signal the result is clarify.
func (m *Matcher) Match(q core.QueryContext, s core.SessionState) core.MatchResult {
	plain := normalizer.Plain(q.Normalized)
	tokens := make(map[string]struct{}, len(q.Tokens))
	for _, tok := range strings.Fields(plain) {
		tokens[tok] = struct{}{}
	}

	scores := make([]ruleScore, len(m.table.rules))
	best := -1
	for i, cr := range m.table.rules {
		scores[i] = scoreRule(cr, plain, tokens, q.HasFollowUpMarker, s)
		if best < 0 || scores[i].score > scores[best].score {
			best = i
		}
	}

	var hits []core.Hit
	for _, sc := range scores {
		hits = append(hits, sc.hits...)
	}

	if best < 0 {
		return core.MatchResult{Intent: core.IntentClarify, DebugHits: hits}
	}

	top := scores[best].score
	second, seen := 0, false
	for i, sc := range scores {
		if i == best {
			continue
		}
		if !seen || sc.score > second {
			second, seen = sc.score, true
		}
	}

	if top <= 0 {
		return core.MatchResult{
			Intent:          core.IntentClarify,
			Score:           top,
			SecondBestScore: second,
			DebugHits:       hits,
		}
	}

	return core.MatchResult{
		Intent:          m.table.rules[best].rule.ID,
		Score:           top,
		SecondBestScore: second,
		Confidence:      clamp01(float64(top-second) / float64(top)),
		MatchedEntity:   scores[best].entity,
		DebugHits:       hits,
	}
}

func scoreRule(cr compiledRule, plain string, tokens map[string]struct{}, followUp bool, s core.SessionState) ruleScore {
	var rs ruleScore
	id := cr.rule.ID

	for _, p := range cr.phrases {
		if p.in(plain) {
			rs.score += WeightPhrase
			rs.hits = append(rs.hits, core.Hit{Rule: id, Kind: HitPhrase, Value: p.text, Weight: WeightPhrase})
		}
	}

	for _, k := range cr.keywords {
		if _, ok := tokens[k]; ok {
			rs.score += WeightKeyword
			rs.hits = append(rs.hits, core.Hit{Rule: id, Kind: HitKeyword, Value: k, Weight: WeightKeyword})
		}
	}

	for _, e := range cr.entities {
		for _, a := range e.aliases {
			if !a.in(plain) {
				continue
			}
			rs.score += WeightEntity
			rs.hits = append(rs.hits, core.Hit{Rule: id, Kind: HitEntity, Value: e.id, Weight: WeightEntity})
			if rs.entity == "" {
				rs.entity = e.id
			}
			break
		}
	}

	if followUp && cr.rule.SupportsFollowUp && s.LastIntent == id {
		rs.score += WeightFollowUp
		rs.hits = append(rs.hits, core.Hit{Rule: id, Kind: HitFollowUp, Value: s.LastIntent, Weight: WeightFollowUp})
	}

	for _, b := range cr.blockers {
		if b.in(plain) {
			rs.score = BlockedScore
			rs.hits = append(rs.hits, core.Hit{Rule: id, Kind: HitBlocker, Value: b.text, Weight: BlockedScore})
			break
		}
	}

	return rs
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
