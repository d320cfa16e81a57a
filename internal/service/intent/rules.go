package intent

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/sandevgo/folio/internal/core"
	"github.com/sandevgo/folio/internal/service/normalizer"
)

// pattern is a phrase compiled for whole-word matching against the plain
// form of a query, where apostrophes and hyphens already split words.
type pattern struct {
	text string
	re   *regexp.Regexp
}

func compilePattern(raw string) (pattern, error) {
	text := normalizer.Plain(normalizer.Normalize(raw).Normalized)
	if text == "" {
		return pattern{}, fmt.Errorf("%w: %q normalizes to nothing", ErrInvalidPattern, raw)
	}
	re := regexp.MustCompile(`(?:^| )` + regexp.QuoteMeta(text) + `(?: |$)`)
	return pattern{text: text, re: re}, nil
}

func (p pattern) in(plain string) bool {
	return p.re.MatchString(plain)
}

type compiledEntity struct {
	id      string
	aliases []pattern
}

type compiledRule struct {
	rule     core.IntentRule
	phrases  []pattern
	keywords []string
	blockers []pattern
	entities []compiledEntity
}

// RuleTable is an immutable, ordered set of intent rules. Declaration order
// is significant: it breaks score ties and entity ties.
type RuleTable struct {
	rules []compiledRule
}

// NewRuleTable validates and compiles rules. The input slice is copied, so
// later changes by the caller do not leak into the table.
func NewRuleTable(rules []core.IntentRule) (*RuleTable, error) {
	seen := make(map[string]struct{}, len(rules))
	compiled := make([]compiledRule, 0, len(rules))

	for _, r := range rules {
		if r.ID == "" {
			return nil, fmt.Errorf("%w: missing id", ErrEmptyRule)
		}
		if r.ID == core.IntentClarify {
			return nil, fmt.Errorf("%w: %q", ErrReservedIntent, r.ID)
		}
		if _, ok := seen[r.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRule, r.ID)
		}
		seen[r.ID] = struct{}{}

		if len(r.Phrases) == 0 && len(r.Keywords) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrEmptyRule, r.ID)
		}

		cr, err := compileRule(cloneRule(r))
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", r.ID, err)
		}
		compiled = append(compiled, cr)
	}

	return &RuleTable{rules: compiled}, nil
}

func compileRule(r core.IntentRule) (compiledRule, error) {
	cr := compiledRule{rule: r}

	for _, p := range r.Phrases {
		cp, err := compilePattern(p)
		if err != nil {
			return cr, err
		}
		cr.phrases = append(cr.phrases, cp)
	}

	for _, k := range r.Keywords {
		word := normalizer.Plain(normalizer.Normalize(k).Normalized)
		if word == "" || strings.Contains(word, " ") {
			return cr, fmt.Errorf("%w: keyword %q", ErrInvalidPattern, k)
		}
		if !slices.Contains(cr.keywords, word) {
			cr.keywords = append(cr.keywords, word)
		}
	}

	for _, b := range r.Blockers {
		cp, err := compilePattern(b)
		if err != nil {
			return cr, err
		}
		cr.blockers = append(cr.blockers, cp)
	}

	for _, e := range r.Entities {
		ce := compiledEntity{id: e.ID}
		for _, a := range e.Aliases {
			cp, err := compilePattern(a)
			if err != nil {
				return cr, err
			}
			ce.aliases = append(ce.aliases, cp)
		}
		cr.entities = append(cr.entities, ce)
	}

	return cr, nil
}

func cloneRule(r core.IntentRule) core.IntentRule {
	out := r
	out.Phrases = slices.Clone(r.Phrases)
	out.Keywords = slices.Clone(r.Keywords)
	out.Blockers = slices.Clone(r.Blockers)
	out.Entities = make([]core.EntityAliases, len(r.Entities))
	for i, e := range r.Entities {
		out.Entities[i] = core.EntityAliases{ID: e.ID, Aliases: slices.Clone(e.Aliases)}
	}
	return out
}

// Rules returns a copy of the declared rules in table order.
func (t *RuleTable) Rules() []core.IntentRule {
	out := make([]core.IntentRule, len(t.rules))
	for i, cr := range t.rules {
		out[i] = cloneRule(cr.rule)
	}
	return out
}

// Len reports the number of declared rules.
func (t *RuleTable) Len() int {
	return len(t.rules)
}

// Has reports whether id is declared in the table.
func (t *RuleTable) Has(id string) bool {
	for _, cr := range t.rules {
		if cr.rule.ID == id {
			return true
		}
	}
	return false
}
