// Package quota caps how often a conversation may escalate to the AI fallback.
package quota

import "github.com/sandevgo/folio/internal/core"

// MaxAIPercent is the share of turns, in percent, that may use the fallback.
const MaxAIPercent = 30

var eligible = map[string]struct{}{
	core.IntentClarify: {},
}

// Eligible reports whether intent may ever be escalated.
func Eligible(intent string) bool {
	_, ok := eligible[intent]
	return ok
}

// MaxAITurns is the number of AI turns allowed once totalTurns turns have
// been taken. A new conversation always gets at least one.
func MaxAITurns(totalTurns int) int {
	return max(1, totalTurns*MaxAIPercent/100)
}

// ShouldUseAIFallback decides, before the turn is counted, whether this turn
// may call the fallback.
func ShouldUseAIFallback(m core.MatchResult, q core.QuotaState) bool {
	if !Eligible(m.Intent) {
		return false
	}
	return q.AITurns < MaxAITurns(q.TotalTurns+1)
}

// Next counts one turn. used is true only when the fallback answered; an AI
// turn beyond the cap is counted as a local one.
func Next(q core.QuotaState, used bool) core.QuotaState {
	next := core.QuotaState{
		TotalTurns: q.TotalTurns + 1,
		AITurns:    q.AITurns,
	}
	if used && q.AITurns < MaxAITurns(next.TotalTurns) {
		next.AITurns++
	}
	return next
}

// Remaining is how many more AI turns the next turn could use.
func Remaining(q core.QuotaState) int {
	return max(0, MaxAITurns(q.TotalTurns+1)-q.AITurns)
}
