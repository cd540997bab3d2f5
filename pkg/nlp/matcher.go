package nlp

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Matcher walks the rule table in priority order and returns the first
// intent with a firing rule.
type Matcher struct {
	log   *logrus.Logger
	table *RuleTable
}

func NewMatcher(log *logrus.Logger, table *RuleTable) *Matcher {
	return &Matcher{log: log, table: table}
}

// Match tests normalized text, and for match_raw intents the trimmed original
// as well.
func (m *Matcher) Match(normalized, original string) (Intent, bool) {
	return m.match(normalized, original, false)
}

// MatchAnchored only considers intents whose rules are anchored to the start
// of the message.
func (m *Matcher) MatchAnchored(normalized, original string) (Intent, bool) {
	return m.match(normalized, original, true)
}

func (m *Matcher) match(normalized, original string, onlyAnchored bool) (Intent, bool) {
	original = strings.TrimSpace(original)

	for _, ir := range m.table.Intents {
		if onlyAnchored && !ir.Anchored {
			continue
		}
		for _, rule := range ir.Rules {
			if m.fires(ir.Intent, rule, normalized) {
				return ir.Intent, true
			}
			if ir.MatchRaw && original != normalized && m.fires(ir.Intent, rule, original) {
				return ir.Intent, true
			}
		}
	}

	return "", false
}

func (m *Matcher) fires(intent Intent, rule Rule, text string) bool {
	if text == "" {
		return false
	}
	ok, err := rule.Fires(text)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"intent":  intent,
			"pattern": rule.Source,
			"error":   err.Error(),
		}).Warn("rule evaluation failed")
		return false
	}
	return ok
}
