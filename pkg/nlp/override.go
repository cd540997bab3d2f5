package nlp

import (
	"strings"
	"unicode"
)

// Override resolves the ambiguous disambiguator term ("profile") to a
// platform intent when a platform name appears next to it.
type Override struct {
	rules OverrideRules
}

func NewOverride(table *RuleTable) *Override {
	return &Override{rules: table.Override}
}

// Resolve returns the first platform, in table order, whose pattern matches
// text. It only fires when the term occurs as a whole word.
func (o *Override) Resolve(normalized string) (Intent, bool) {
	if !containsWord(normalized, o.rules.Term) {
		return "", false
	}

	for _, p := range o.rules.Platforms {
		if ok, err := p.Rule.Fires(normalized); err == nil && ok {
			return p.Intent, true
		}
	}

	return "", false
}

// containsWord reports whether word appears in text delimited by non-word
// runes or the text edges.
func containsWord(text, word string) bool {
	if word == "" {
		return false
	}
	for _, tok := range strings.FieldsFunc(text, notWordRune) {
		if tok == word {
			return true
		}
	}
	return false
}

func notWordRune(r rune) bool {
	return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
}
