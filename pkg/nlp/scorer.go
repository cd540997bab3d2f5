package nlp

import (
	"sort"
	"strings"
)

// Scorer counts trigger hits per weighted intent.
type Scorer struct {
	table WeightedTable
	term  string
}

func NewScorer(table *RuleTable) *Scorer {
	return &Scorer{table: table.Weighted, term: table.Override.Term}
}

type intentScore struct {
	intent Intent
	score  int
}

// rank returns every weighted intent with its score, best first. Ties keep
// table order.
func (s *Scorer) rank(normalized string) []intentScore {
	hasTerm := containsWord(normalized, s.term)

	scores := make([]intentScore, 0, len(s.table.Intents))
	for _, w := range s.table.Intents {
		n := 0
		for _, tr := range w.Triggers {
			if strings.Contains(normalized, tr) {
				n++
			}
		}
		if hasTerm && w.Keyword != "" && strings.Contains(normalized, w.Keyword) {
			n += s.table.Bonus
		}
		scores = append(scores, intentScore{intent: w.Intent, score: n})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	return scores
}

// Score returns the best intent when its score reaches the table minimum.
func (s *Scorer) Score(normalized string) (Intent, bool) {
	scores := s.rank(normalized)
	if len(scores) == 0 || scores[0].score < s.table.MinScore {
		return "", false
	}
	return scores[0].intent, true
}
