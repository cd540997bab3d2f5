package fuzzy

import (
	"math"
	"strings"
	"unicode/utf8"
)

const (
	minTermRunes      = 4
	minValidRatio     = 0.4
	trustedConfidence = 70
)

// Validation is a second opinion on a search hit, based on how many of the
// query's significant words the hit actually contains.
type Validation struct {
	IsValid         bool     `json:"isValid"`
	ValidationScore int      `json:"validationScore"`
	MatchedTerms    []string `json:"matchedTerms"`
}

// Validate accepts result when at least 40% of the query's words longer than
// three runes occur in its content, or when search confidence alone is 70 or
// more. A query with no significant words scores 0.
func Validate(query string, result MatchResult) Validation {
	content := strings.ToLower(result.Content)

	terms := 0
	matched := []string{}
	for _, word := range strings.Fields(strings.ToLower(query)) {
		if utf8.RuneCountInString(word) < minTermRunes {
			continue
		}
		terms++
		if strings.Contains(content, word) {
			matched = append(matched, word)
		}
	}

	ratio := 0.0
	if terms > 0 {
		ratio = float64(len(matched)) / float64(terms)
	}

	return Validation{
		IsValid:         ratio >= minValidRatio || result.Confidence >= trustedConfidence,
		ValidationScore: int(math.Round(ratio * 100)),
		MatchedTerms:    matched,
	}
}
