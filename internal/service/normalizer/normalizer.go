// Package normalizer turns raw chat input into a canonical token stream.
package normalizer

import (
	"strings"
	"unicode"

	"github.com/sandevgo/folio/internal/core"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// keptPunctuation survives cleaning; every other punctuation or symbol
// becomes a space.
const keptPunctuation = "!?'.-"

// edgePunctuation is trimmed from a token before alias lookup and glued back
// afterwards, so "thx!" becomes "thanks!".
const edgePunctuation = "!?."

// Normalize never fails: input without letters or digits yields an empty
// QueryContext and the matcher decides what to do with it.
func Normalize(input string) core.QueryContext {
	s := stripControl(input)
	s = fold(s)
	s = strings.ToLower(s)
	s = clean(s)
	s = collapse(s)
	s = applyAliases(s)
	s = collapse(s)

	var tokens []string
	if s != "" {
		tokens = strings.Split(s, " ")
	} else {
		tokens = []string{}
	}

	return core.QueryContext{
		Normalized:        s,
		Tokens:            tokens,
		HasFollowUpMarker: hasFollowUpMarker(s),
	}
}

// Plain turns every kept punctuation mark into a word break, leaving words
// separated by single spaces: "northwind's well-known" -> "northwind s well
// known". Phrase, keyword and follow-up matching run on this form.
func Plain(normalized string) string {
	s := strings.Map(func(r rune) rune {
		if strings.ContainsRune(keptPunctuation, r) {
			return ' '
		}
		return r
	}, normalized)
	return collapse(s)
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			if unicode.IsSpace(r) {
				return ' '
			}
			return -1
		}
		return r
	}, s)
}

// fold maps compatibility forms and removes diacritics: "Ｃafé" -> "Cafe".
func fold(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r):
			b.WriteRune(r)
		case strings.ContainsRune(keptPunctuation, r):
			b.WriteRune(r)
		case unicode.IsSpace(r), unicode.IsPunct(r), unicode.IsSymbol(r):
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func applyAliases(s string) string {
	if s == "" {
		return s
	}
	words := strings.Split(s, " ")
	out := make([]string, 0, len(words))
	for _, w := range words {
		bare := strings.TrimRight(w, edgePunctuation)
		suffix := w[len(bare):]
		repl, ok := wordAliases[bare]
		if !ok {
			out = append(out, w)
			continue
		}
		if repl == "" {
			if suffix != "" && len(out) > 0 {
				out[len(out)-1] += suffix
			}
			continue
		}
		out = append(out, repl+suffix)
	}
	return strings.Join(out, " ")
}

func hasFollowUpMarker(normalized string) bool {
	plain := Plain(normalized)
	if plain == "" {
		return false
	}
	padded := " " + plain + " "
	for _, marker := range followUpMarkers {
		if strings.Contains(padded, " "+marker+" ") {
			return true
		}
	}
	return false
}
