package nlp

import (
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
)

const DefaultMemoSize = 1024

// Classifier composes the stages into one decision: anchored intents,
// then the profile-term override, then the weighted scorer, then the full
// pattern matcher. The first stage that answers wins.
type Classifier struct {
	log      *logrus.Logger
	table    *RuleTable
	matcher  *Matcher
	override *Override
	scorer   *Scorer
	memo     *lru.Cache[string, Classification]
}

// NewClassifier builds a classifier over table. memoSize <= 0 disables
// memoization.
func NewClassifier(log *logrus.Logger, table *RuleTable, memoSize int) (*Classifier, error) {
	c := &Classifier{
		log:      log,
		table:    table,
		matcher:  NewMatcher(log, table),
		override: NewOverride(table),
		scorer:   NewScorer(table),
	}

	if memoSize > 0 {
		memo, err := lru.New[string, Classification](memoSize)
		if err != nil {
			return nil, err
		}
		c.memo = memo
	}

	return c, nil
}

// Classify always returns a classification; IntentDefault with StageNone
// means nothing fired.
func (c *Classifier) Classify(raw string) Classification {
	// Raw-text rules see the trimmed original, so the memo key must too.
	key := strings.TrimSpace(raw)
	if c.memo != nil {
		if cl, ok := c.memo.Get(key); ok {
			return cl
		}
	}

	cl := c.classify(key)

	if c.memo != nil {
		c.memo.Add(key, cl)
	}

	c.log.WithFields(logrus.Fields{
		"intent": cl.Intent,
		"stage":  cl.Stage,
	}).Debug("message classified")

	return cl
}

func (c *Classifier) classify(original string) Classification {
	normalized := Normalize(original)
	cl := Classification{Intent: IntentDefault, Stage: StageNone, Normalized: normalized}
	if normalized == "" {
		return cl
	}

	if intent, ok := c.matcher.MatchAnchored(normalized, original); ok {
		cl.Intent, cl.Stage = intent, StageAnchored
		return cl
	}
	if intent, ok := c.override.Resolve(normalized); ok {
		cl.Intent, cl.Stage = intent, StageOverride
		return cl
	}
	if intent, ok := c.scorer.Score(normalized); ok {
		cl.Intent, cl.Stage = intent, StageWeighted
		return cl
	}
	if intent, ok := c.matcher.Match(normalized, original); ok {
		cl.Intent, cl.Stage = intent, StagePattern
		return cl
	}

	return cl
}

// Intents returns the rule table's intents in priority order.
func (c *Classifier) Intents() []Intent {
	return c.table.PriorityOrder()
}
