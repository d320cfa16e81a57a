package llm

import (
	"fmt"
	"strings"

	"github.com/sandevgo/folio/internal/core"
)

const systemPrompt = `You are the assistant on a software engineer's portfolio website and you speak as the engineer, in the first person.
Answer in at most three short sentences. Stay on the engineer's professional life: experience, projects, skills, education, availability and contact.
If the question is unrelated or personal, decline politely and suggest a portfolio topic instead. Never invent employers, dates or numbers.`

// PortfolioMessages builds the chat history sent for a fallback question.
// The local reply gives the model the bot's tone and what it already said.
func PortfolioMessages(p core.FallbackPayload) []core.Message {
	msgs := []core.Message{{Role: core.RoleSystem, Content: systemPrompt}}

	if reply := strings.TrimSpace(p.MatcherReply); reply != "" {
		msgs = append(msgs, core.Message{
			Role:    core.RoleSystem,
			Content: fmt.Sprintf("The rule based bot could not place this question and would have answered: %q", reply),
		})
	}

	return append(msgs, core.Message{Role: core.RoleUser, Content: strings.TrimSpace(p.Question)})
}
