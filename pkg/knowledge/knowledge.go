package knowledge

import (
	"errors"
	"fmt"
	"os"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultFallback is served when the knowledge base has no "fallback" entry.
const DefaultFallback = "I'm not sure about that one. Try asking about skills, projects, education or how to get in touch."

var ErrNoResponses = errors.New("knowledge base has no responses")

// Base is the read-only knowledge base loaded at startup.
type Base struct {
	Bot       Bot                   `json:"bot"`
	Personal  map[string]any        `json:"personal"`
	Social    Social                `json:"social"`
	Education []Education           `json:"education,omitempty"`
	Responses map[string]Variations `json:"responses"`
}

type Bot struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Description string `json:"description,omitempty"`
}

type Social struct {
	GitHub       string        `json:"github"`
	LeetCode     string        `json:"leetcode"`
	Medium       string        `json:"medium"`
	LinkedIn     string        `json:"linkedin"`
	Email        string        `json:"email,omitempty"`
	LinkedInData *LinkedInData `json:"linkedin_data,omitempty"`
}

// LinkedInData is maintained by hand; LinkedIn has no open profile API.
type LinkedInData struct {
	ProfileURL  string        `json:"profileUrl"`
	Connections int           `json:"connections,omitempty"`
	Followers   int           `json:"followers,omitempty"`
	LatestPost  *LinkedInPost `json:"latestPost,omitempty"`
}

type LinkedInPost struct {
	Text     string `json:"text"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Shares   int    `json:"shares"`
	URL      string `json:"url"`
}

// Education is one academic record. CGPA and Percentage are kept as raw
// values since the file mixes numbers and strings.
type Education struct {
	Level       string `json:"level"`
	Institution string `json:"institution,omitempty"`
	Field       string `json:"field,omitempty"`
	Year        any    `json:"year,omitempty"`
	CGPA        any    `json:"cgpa,omitempty"`
	Percentage  any    `json:"percentage,omitempty"`
}

// Variations holds the authored phrasings of one response. In the file it
// is either a single string or a list of strings.
type Variations []string

func (v *Variations) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*v = Variations{one}
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("response must be a string or a list of strings: %w", err)
	}
	*v = many
	return nil
}

// LoadFile reads and parses a knowledge base from disk.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read knowledge base %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a knowledge base document.
func Parse(data []byte) (*Base, error) {
	var kb Base
	if err := json.Unmarshal(data, &kb); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	if len(kb.Responses) == 0 {
		return nil, ErrNoResponses
	}
	if kb.Personal == nil {
		kb.Personal = map[string]any{}
	}
	return &kb, nil
}

// Response returns the variations authored for key.
func (kb *Base) Response(key string) (Variations, bool) {
	v, ok := kb.Responses[key]
	if !ok || len(v) == 0 {
		return nil, false
	}
	return v, true
}

// Fallback is the designated "no confident answer" text.
func (kb *Base) Fallback() string {
	if v, ok := kb.Response("fallback"); ok && v[0] != "" {
		return v[0]
	}
	return DefaultFallback
}

// ResponseKeys returns response keys in sorted order.
func (kb *Base) ResponseKeys() []string {
	keys := make([]string, 0, len(kb.Responses))
	for k := range kb.Responses {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PersonalKeys returns personal keys in sorted order.
func (kb *Base) PersonalKeys() []string {
	keys := make([]string, 0, len(kb.Personal))
	for k := range kb.Personal {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// PersonalString returns personal[key] when it is a string.
func (kb *Base) PersonalString(key string) string {
	s, _ := kb.Personal[key].(string)
	return s
}

// EducationRecords prefers the top-level education list and falls back to
// personal.education.
func (kb *Base) EducationRecords() []Education {
	if len(kb.Education) > 0 {
		return kb.Education
	}

	raw, ok := kb.Personal["education"]
	if !ok {
		return nil
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return nil
	}
	var out []Education
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}
