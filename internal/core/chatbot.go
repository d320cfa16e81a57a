package core

import "context"

// Chatbot answers turns of a conversation identified by an opaque id.
type Chatbot interface {
	Ask(ctx context.Context, conversationID, input string) ChatbotReply
	Classify(input string) MatchResult
}
