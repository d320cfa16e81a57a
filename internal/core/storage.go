package core

import "context"

// Snapshot is everything a caller keeps between turns of one conversation.
type Snapshot struct {
	Session   SessionState `json:"session"`
	Quota     QuotaState   `json:"quota"`
	LastMatch *MatchResult `json:"lastMatch,omitempty"`
}

// ConversationStore keeps conversation snapshots in memory. Update runs fn
// under a per-conversation lock so two turns of the same conversation never
// interleave.
type ConversationStore interface {
	Get(ctx context.Context, conversationID string) (Snapshot, bool)
	Update(ctx context.Context, conversationID string, fn func(Snapshot) Snapshot) Snapshot
	Reset(ctx context.Context, conversationID string)
}
