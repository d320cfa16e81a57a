package quota

import (
	"testing"

	"github.com/sandevgo/folio/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var clarify = core.MatchResult{Intent: core.IntentClarify}

func TestMaxAITurns(t *testing.T) {
	tests := []struct {
		total int
		want  int
	}{
		{0, 1},
		{1, 1},
		{3, 1},
		{6, 1},
		{7, 2},
		{10, 3},
		{20, 6},
		{100, 30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxAITurns(tt.total), "total %d", tt.total)
	}
}

func TestShouldUseAIFallback_OnlyClarify(t *testing.T) {
	q := core.QuotaState{}

	assert.True(t, ShouldUseAIFallback(clarify, q))
	for _, intent := range []string{"sensitive", "greeting", "out_of_scope", core.IntentThanks} {
		assert.False(t, ShouldUseAIFallback(core.MatchResult{Intent: intent}, q), intent)
	}
}

func TestShouldUseAIFallback_Exhausted(t *testing.T) {
	assert.False(t, ShouldUseAIFallback(clarify, core.QuotaState{TotalTurns: 1, AITurns: 1}))
	assert.True(t, ShouldUseAIFallback(clarify, core.QuotaState{TotalTurns: 6, AITurns: 1}))
	assert.Equal(t, 0, Remaining(core.QuotaState{TotalTurns: 2, AITurns: 1}))
	assert.Equal(t, 1, Remaining(core.QuotaState{TotalTurns: 9, AITurns: 2}))
}

func TestNext(t *testing.T) {
	q := Next(core.QuotaState{}, false)
	assert.Equal(t, core.QuotaState{TotalTurns: 1}, q)

	q = Next(q, true)
	assert.Equal(t, core.QuotaState{TotalTurns: 2, AITurns: 1}, q)
}

func TestNext_CapsAITurns(t *testing.T) {
	q := core.QuotaState{}
	for range 50 {
		q = Next(q, true)
		require.LessOrEqual(t, q.AITurns, MaxAITurns(q.TotalTurns), "after turn %d", q.TotalTurns)
	}
	assert.Equal(t, core.QuotaState{TotalTurns: 50, AITurns: 15}, q)

	// already at the cap: the turn counts, the AI turn does not
	q = Next(core.QuotaState{TotalTurns: 3, AITurns: 1}, true)
	assert.Equal(t, core.QuotaState{TotalTurns: 4, AITurns: 1}, q)
}

func TestQuota_TenClarifyTurns(t *testing.T) {
	q := core.QuotaState{}
	var usedOn []int

	for turn := 1; turn <= 10; turn++ {
		used := ShouldUseAIFallback(clarify, q)
		if used {
			usedOn = append(usedOn, turn)
		}
		q = Next(q, used)
	}

	assert.Equal(t, []int{1, 7, 10}, usedOn)
	assert.Equal(t, 3, q.AITurns)
	assert.LessOrEqual(t, q.AITurns, MaxAITurns(10))
}

func TestQuota_InvariantHolds(t *testing.T) {
	q := core.QuotaState{}

	for turn := range 200 {
		m := clarify
		if turn%3 == 0 {
			m = core.MatchResult{Intent: "project"}
		}
		// a flaky fallback only answers every other time
		used := ShouldUseAIFallback(m, q) && turn%2 == 0
		q = Next(q, used)

		require.LessOrEqual(t, q.AITurns, MaxAITurns(q.TotalTurns), "after turn %d", q.TotalTurns)
	}
}
