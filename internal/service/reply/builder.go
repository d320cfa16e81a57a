// Package reply renders matched intents into response text.
package reply

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/session"
)

// Result is the rendered reply for one turn.
type Result struct {
	Text        string
	VariantID   string
	Suggestions []string
}

// Builder is immutable once constructed and safe for concurrent use.
type Builder struct {
	bank    Bank
	details map[string]EntityDetail
}

func NewBuilder(bank Bank, details map[string]EntityDetail) *Builder {
	return &Builder{
		bank:    bank,
		details: maps.Clone(details),
	}
}

// DefaultBuilder uses the templates and profile embedded in the binary.
func DefaultBuilder() (*Builder, error) {
	bank, err := ParseBank(defaultTemplates)
	if err != nil {
		return nil, err
	}
	details, err := ParseDetails(defaultProfile)
	if err != nil {
		return nil, err
	}
	return NewBuilder(bank, details), nil
}

// VariantID names the index-th template of intent.
func VariantID(intent string, index int) string {
	return fmt.Sprintf("%s:%d", intent, index)
}

// EntityVariantID names the detail narrative of entity under intent.
func EntityVariantID(intent, entity string) string {
	return fmt.Sprintf("%s:entity:%s", intent, entity)
}

// PickVariantIndex returns the first of count variants whose id was not sent
// recently. When every variant is recent it starts over at 0.
func PickVariantIndex(intent string, count int, s core.SessionState) int {
	for i := range count {
		if !session.UsedVariant(s, VariantID(intent, i)) {
			return i
		}
	}
	return 0
}

// Build renders intent for the given entity. Intents without templates are
// answered with the clarify bank.
func (b *Builder) Build(intent, entity string, s core.SessionState) Result {
	if text, ok := b.detail(intent, entity); ok {
		return Result{
			Text:        b.withInvitation(intent, text),
			VariantID:   EntityVariantID(intent, entity),
			Suggestions: b.suggestions(intent),
		}
	}

	bankIntent := intent
	tpl, ok := b.bank.Intents[intent]
	if !ok || len(tpl.Variants) == 0 {
		bankIntent = core.IntentClarify
		tpl = b.bank.Intents[core.IntentClarify]
	}

	idx := PickVariantIndex(bankIntent, len(tpl.Variants), s)
	return Result{
		Text:        b.withInvitation(bankIntent, tpl.Variants[idx]),
		VariantID:   VariantID(bankIntent, idx),
		Suggestions: b.suggestions(bankIntent),
	}
}

// ClarifyText is the first clarify template. It is what the AI fallback is
// given as context.
func (b *Builder) ClarifyText() string {
	return b.bank.Intents[core.IntentClarify].Variants[0]
}

// HasDetail reports whether entity has a detail narrative.
func (b *Builder) HasDetail(entity string) bool {
	_, ok := b.details[entity]
	return ok
}

// Intents lists the intents with at least one template, sorted.
func (b *Builder) Intents() []string {
	return slices.Sorted(maps.Keys(b.bank.Intents))
}

func (b *Builder) detail(intent, entity string) (string, bool) {
	if entity == "" || (intent != "experience" && intent != "project") {
		return "", false
	}
	d, ok := b.details[entity]
	if !ok {
		return "", false
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s**\n\n", d.Title)
	for _, part := range []string{d.Journey, d.Lesson, d.Impact} {
		if part == "" {
			continue
		}
		sb.WriteString(part)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String()), true
}

func (b *Builder) withInvitation(intent, text string) string {
	if b.bank.Invitation == "" || !invites(intent) {
		return text
	}
	return text + "\n\n" + b.bank.Invitation
}

func (b *Builder) suggestions(intent string) []string {
	if intent == core.IntentClarify {
		return slices.Clone(b.bank.ClarifySuggestions)
	}
	return slices.Clone(b.bank.Intents[intent].Suggestions)
}

func invites(intent string) bool {
	switch intent {
	case core.IntentClarify, core.IntentThanks, core.IntentGoodbye:
		return false
	default:
		return true
	}
}
