// Package session holds the pure helpers that move a conversation's rolling
// memory forward one turn at a time.
package session

import (
	"slices"

	"github.com/sandevgo/folio/internal/core"
)

// MaxRecent bounds both recent lists.
const MaxRecent = 5

// New returns the state of a conversation that has not had a turn yet.
func New() core.SessionState {
	return core.SessionState{
		RecentIntents:         []string{},
		RecentReplyVariantIDs: []string{},
	}
}

// Advance records one turn and returns the next state. s is left untouched.
// An empty variantID means no template was sent, so the recent variants stay
// as they were.
func Advance(s core.SessionState, intent, entity, variantID string) core.SessionState {
	variants := slices.Clone(s.RecentReplyVariantIDs)
	if variantID != "" {
		variants = pushBounded(s.RecentReplyVariantIDs, variantID)
	}
	if variants == nil {
		variants = []string{}
	}
	return core.SessionState{
		LastIntent:            intent,
		LastEntity:            entity,
		RecentIntents:         pushBounded(s.RecentIntents, intent),
		RecentReplyVariantIDs: variants,
	}
}

// Clone returns a deep copy of s.
func Clone(s core.SessionState) core.SessionState {
	out := s
	out.RecentIntents = slices.Clone(s.RecentIntents)
	out.RecentReplyVariantIDs = slices.Clone(s.RecentReplyVariantIDs)
	if out.RecentIntents == nil {
		out.RecentIntents = []string{}
	}
	if out.RecentReplyVariantIDs == nil {
		out.RecentReplyVariantIDs = []string{}
	}
	return out
}

// UsedVariant reports whether id is among the recently sent reply variants.
func UsedVariant(s core.SessionState, id string) bool {
	return slices.Contains(s.RecentReplyVariantIDs, id)
}

func pushBounded(list []string, v string) []string {
	start := 0
	if n := len(list) + 1; n > MaxRecent {
		start = n - MaxRecent
	}
	out := make([]string, 0, MaxRecent)
	out = append(out, list[start:]...)
	return append(out, v)
}
