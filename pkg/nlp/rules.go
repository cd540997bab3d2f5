package nlp

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRules []byte

// RuleMatchTimeout bounds a single pattern evaluation. Patterns with nested
// wildcards can backtrack badly on long input.
const RuleMatchTimeout = 50 * time.Millisecond

type ruleFile struct {
	Intents []struct {
		Name     string   `yaml:"name"`
		Anchored bool     `yaml:"anchored"`
		MatchRaw bool     `yaml:"match_raw"`
		Rules    []string `yaml:"rules"`
	} `yaml:"intents"`
	Override struct {
		Term      string `yaml:"term"`
		Platforms []struct {
			Intent  string `yaml:"intent"`
			Pattern string `yaml:"pattern"`
		} `yaml:"platforms"`
	} `yaml:"override"`
	Weighted struct {
		MinScore int `yaml:"min_score"`
		Bonus    int `yaml:"bonus"`
		Intents  []struct {
			Intent   string   `yaml:"intent"`
			Keyword  string   `yaml:"keyword"`
			Triggers []string `yaml:"triggers"`
		} `yaml:"intents"`
	} `yaml:"weighted"`
}

// Rule is one compiled pattern. It is safe for concurrent use.
type Rule struct {
	Source string
	re     *regexp2.Regexp
}

func compileRule(pattern string) (Rule, error) {
	re, err := regexp2.Compile(pattern, regexp2.ECMAScript|regexp2.IgnoreCase)
	if err != nil {
		return Rule{}, err
	}
	re.MatchTimeout = RuleMatchTimeout
	return Rule{Source: pattern, re: re}, nil
}

// Fires reports whether the rule matches anywhere in text.
func (r Rule) Fires(text string) (bool, error) {
	return r.re.MatchString(text)
}

type IntentRules struct {
	Intent   Intent
	Anchored bool
	MatchRaw bool
	Rules    []Rule
}

type Platform struct {
	Intent Intent
	Rule   Rule
}

type OverrideRules struct {
	Term      string
	Platforms []Platform
}

type WeightedIntent struct {
	Intent   Intent
	Keyword  string
	Triggers []string
}

type WeightedTable struct {
	MinScore int
	Bonus    int
	Intents  []WeightedIntent
}

// RuleTable is the parsed, compiled form of rules.yaml. Intents are kept in
// priority order.
type RuleTable struct {
	Intents  []IntentRules
	Override OverrideRules
	Weighted WeightedTable
}

// DefaultRuleTable parses the embedded rule table. The embedded file is part
// of the binary, so a failure here is a programming error.
func DefaultRuleTable() *RuleTable {
	t, err := LoadRuleTable(defaultRules)
	if err != nil {
		panic(fmt.Sprintf("nlp: embedded rule table: %v", err))
	}
	return t
}

// LoadRuleTable parses and compiles a YAML rule table.
func LoadRuleTable(data []byte) (*RuleTable, error) {
	var f ruleFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rule table: %w", err)
	}

	t := &RuleTable{}
	seen := make(map[Intent]bool)

	for _, in := range f.Intents {
		intent := Intent(in.Name)
		if !intent.IsKnown() || intent == IntentDefault {
			return nil, fmt.Errorf("rule table: unknown intent %q", in.Name)
		}
		if seen[intent] {
			return nil, fmt.Errorf("rule table: intent %q listed twice", in.Name)
		}
		seen[intent] = true

		if len(in.Rules) == 0 {
			return nil, fmt.Errorf("rule table: intent %q has no rules", in.Name)
		}

		ir := IntentRules{Intent: intent, Anchored: in.Anchored, MatchRaw: in.MatchRaw}
		for _, p := range in.Rules {
			r, err := compileRule(p)
			if err != nil {
				return nil, fmt.Errorf("rule table: intent %q pattern %q: %w", in.Name, p, err)
			}
			ir.Rules = append(ir.Rules, r)
		}
		t.Intents = append(t.Intents, ir)
	}

	term := strings.ToLower(strings.TrimSpace(f.Override.Term))
	if term == "" {
		return nil, fmt.Errorf("rule table: override term is empty")
	}
	t.Override.Term = term
	for _, p := range f.Override.Platforms {
		intent := Intent(p.Intent)
		if !seen[intent] {
			return nil, fmt.Errorf("rule table: override platform references unknown intent %q", p.Intent)
		}
		r, err := compileRule(p.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule table: override pattern %q: %w", p.Pattern, err)
		}
		t.Override.Platforms = append(t.Override.Platforms, Platform{Intent: intent, Rule: r})
	}

	if f.Weighted.MinScore < 1 {
		return nil, fmt.Errorf("rule table: weighted min_score must be positive, got %d", f.Weighted.MinScore)
	}
	t.Weighted.MinScore = f.Weighted.MinScore
	t.Weighted.Bonus = f.Weighted.Bonus
	for _, w := range f.Weighted.Intents {
		intent := Intent(w.Intent)
		if !seen[intent] {
			return nil, fmt.Errorf("rule table: weighted entry references unknown intent %q", w.Intent)
		}
		triggers := make([]string, 0, len(w.Triggers))
		for _, tr := range w.Triggers {
			if tr = strings.ToLower(strings.TrimSpace(tr)); tr != "" {
				triggers = append(triggers, tr)
			}
		}
		t.Weighted.Intents = append(t.Weighted.Intents, WeightedIntent{
			Intent:   intent,
			Keyword:  strings.ToLower(w.Keyword),
			Triggers: triggers,
		})
	}

	return t, nil
}

// PriorityOrder lists intents in the order the matcher evaluates them.
func (t *RuleTable) PriorityOrder() []Intent {
	out := make([]Intent, 0, len(t.Intents))
	for _, ir := range t.Intents {
		out = append(out, ir.Intent)
	}
	return out
}
