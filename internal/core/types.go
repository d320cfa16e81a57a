package core

const (
	FolioName          = "Folio"
	FolioUserAgent     = "Folio-Bot/0.1"
	FolioRepositoryURL = "https://github.com/sandevgo/folio"
	FolioVersion       = "0.1.0"
)

// Reserved intents every rule table understands.
const (
	IntentClarify = "clarify"
	IntentThanks  = "thanks"
	IntentGoodbye = "goodbye"
)

const (
	SourceMatcher = "matcher"
	SourceAI      = "ai"
)

// QueryContext is the canonical form of one user input.
type QueryContext struct {
	Normalized        string   `json:"normalized"`
	Tokens            []string `json:"tokens"`
	HasFollowUpMarker bool     `json:"hasFollowUpMarker"`
}

// EntityAliases lists the surface forms of a single named entity.
type EntityAliases struct {
	ID      string   `json:"id" yaml:"id"`
	Aliases []string `json:"aliases" yaml:"aliases"`
}

type IntentRule struct {
	ID               string          `json:"id" yaml:"id"`
	Phrases          []string        `json:"phrases" yaml:"phrases"`
	Keywords         []string        `json:"keywords" yaml:"keywords"`
	Blockers         []string        `json:"blockers,omitempty" yaml:"blockers,omitempty"`
	Entities         []EntityAliases `json:"entities,omitempty" yaml:"entities,omitempty"`
	SupportsFollowUp bool            `json:"supportsFollowUp,omitempty" yaml:"supportsFollowUp,omitempty"`
}

// Hit is one scoring contribution, kept for debugging.
type Hit struct {
	Rule   string `json:"rule"`
	Kind   string `json:"kind"`
	Value  string `json:"value"`
	Weight int    `json:"weight"`
}

type MatchResult struct {
	Intent          string  `json:"intent"`
	Score           int     `json:"score"`
	SecondBestScore int     `json:"secondBestScore"`
	Confidence      float64 `json:"confidence"`
	MatchedEntity   string  `json:"matchedEntity,omitempty"`
	DebugHits       []Hit   `json:"debugHits,omitempty"`
}

// SessionState is the rolling memory of a conversation. It is a value:
// helpers in the session package return a new copy on every change.
type SessionState struct {
	LastIntent            string   `json:"lastIntent,omitempty"`
	LastEntity            string   `json:"lastEntity,omitempty"`
	RecentIntents         []string `json:"recentIntents"`
	RecentReplyVariantIDs []string `json:"recentReplyVariantIds"`
}

type QuotaState struct {
	TotalTurns int `json:"totalTurns"`
	AITurns    int `json:"aiTurns"`
}

type ChatbotReply struct {
	Text        string       `json:"text"`
	Intent      string       `json:"intent"`
	Confidence  float64      `json:"confidence"`
	Entity      string       `json:"entity,omitempty"`
	VariantID   string       `json:"variantId"`
	Suggestions []string     `json:"suggestions,omitempty"`
	Session     SessionState `json:"session"`
	Match       MatchResult  `json:"match"`
	Source      string       `json:"source"`
}

// FallbackPayload is the body sent to the AI fallback endpoint.
type FallbackPayload struct {
	Question     string `json:"question"`
	MatcherReply string `json:"matcherReply"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Model struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
