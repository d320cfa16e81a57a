package core

import "context"

// AIProvider answers a chat completion request.
type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

// FallbackFetcher asks the remote AI for a reply. ok is false whenever no
// usable answer came back; callers then keep the local reply.
type FallbackFetcher interface {
	Fetch(ctx context.Context, payload FallbackPayload) (text string, ok bool)
}
