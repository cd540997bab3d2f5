package fuzzy

import (
	"fmt"
	"math"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/knowledge"
)

const (
	// Threshold is the largest per-field error ratio that still matches.
	Threshold     = 0.4
	// AcceptBound is the exclusive upper bound on an accepted entry score.
	AcceptBound   = 0.6
	// MinQueryRunes drops queries too short to match meaningfully.
	MinQueryRunes = 3

	fieldWeight = 0.5
	epsilon     = 2.220446049250313e-16
)

type EntryType string

const (
	TypeResponse EntryType = "response"
	TypePersonal EntryType = "personal"
)

type Entry struct {
	Type     EntryType `json:"type"`
	Key      string    `json:"key"`
	Content  string    `json:"content"`
	Keywords string    `json:"keywords"`
}

type MatchResult struct {
	Key        string    `json:"key"`
	Content    string    `json:"content"`
	Confidence int       `json:"confidence"`
	Type       EntryType `json:"type"`
	Score      float64   `json:"-"`
}

type indexed struct {
	entry    Entry
	keywords []rune
	content  []rune
}

// Index is immutable after construction and safe for concurrent searches.
type Index struct {
	entries []indexed
}

// NewIndex indexes every response variation and every personal string or
// array element of kb. Keys are visited in sorted order so ties resolve the
// same way on every run.
func NewIndex(kb *knowledge.Base) *Index {
	var entries []Entry

	for _, key := range kb.ResponseKeys() {
		for _, text := range kb.Responses[key] {
			entries = append(entries, Entry{
				Type:     TypeResponse,
				Key:      key,
				Content:  text,
				Keywords: strings.ReplaceAll(key, "_", " "),
			})
		}
	}

	for _, key := range kb.PersonalKeys() {
		switch v := kb.Personal[key].(type) {
		case string:
			entries = append(entries, Entry{Type: TypePersonal, Key: key, Content: v, Keywords: key})
		case []any:
			for i, item := range v {
				content, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(item)
				if err != nil {
					continue
				}
				entries = append(entries, Entry{
					Type:     TypePersonal,
					Key:      fmt.Sprintf("%s[%d]", key, i),
					Content:  content,
					Keywords: key,
				})
			}
		}
	}

	return FromEntries(entries)
}

// FromEntries builds an index over a fixed entry list, in order.
func FromEntries(entries []Entry) *Index {
	idx := &Index{entries: make([]indexed, 0, len(entries))}
	for _, e := range entries {
		idx.entries = append(idx.entries, indexed{
			entry:    e,
			keywords: []rune(strings.ToLower(e.Keywords)),
			content:  []rune(strings.ToLower(e.Content)),
		})
	}
	return idx
}

func (idx *Index) Len() int {
	return len(idx.entries)
}

// Search returns the best entry for query when its score is below
// AcceptBound. Lower scores are better; the first entry wins a tie.
func (idx *Index) Search(query string) (MatchResult, bool) {
	q := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(q) < MinQueryRunes || len(idx.entries) == 0 {
		return MatchResult{}, false
	}

	best := -1
	bestScore := math.Inf(1)
	for i := range idx.entries {
		score, ok := idx.entries[i].score(q)
		if ok && score < bestScore {
			best, bestScore = i, score
		}
	}

	if best < 0 || bestScore >= AcceptBound {
		return MatchResult{}, false
	}

	e := idx.entries[best].entry
	return MatchResult{
		Key:        e.Key,
		Content:    e.Content,
		Confidence: int(math.Round((1 - bestScore) * 100)),
		Type:       e.Type,
		Score:      bestScore,
	}, true
}

func (in *indexed) score(q []rune) (float64, bool) {
	total := 1.0
	matched := false

	for _, field := range [][]rune{in.keywords, in.content} {
		s, ok := fieldScore(q, field, Threshold)
		if !ok {
			continue
		}
		matched = true
		total *= math.Pow(max(s, epsilon), fieldWeight)
	}

	return total, matched
}
