package nlp

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	apostrophes = strings.NewReplacer("`", "'", "´", "'", "‘", "'", "’", "'", "ʼ", "'")
	contraction = regexp.MustCompile(`(\w+)'(s|re|ve|ll|d|m|t)\b`)
)

// Normalize canonicalizes a message for matching. It never fails and
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}

	// NFKC first so full-width and compatibility glyphs lower-case like ASCII.
	s = norm.NFKC.String(s)
	s = cases.Lower(language.Und).String(s)
	s = apostrophes.Replace(s)

	// "a's's" needs two passes before no contraction is left.
	for {
		next := contraction.ReplaceAllString(s, "$1 $2")
		if next == s {
			break
		}
		s = next
	}

	s = strings.Map(keepRune, s)

	return strings.Join(strings.Fields(s), " ")
}

func keepRune(r rune) rune {
	switch {
	case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
		return r
	case r == '_' || r == '?' || r == '!' || r == '.' || r == '\'' || r == '-':
		return r
	case unicode.IsSpace(r):
		return r
	default:
		return ' '
	}
}
