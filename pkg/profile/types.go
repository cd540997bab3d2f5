package profile

import "time"

type GitHub struct {
	Username  string `json:"username"`
	Repos     int    `json:"repos"`
	Stars     int    `json:"stars"`
	Followers int    `json:"followers"`
	Languages string `json:"languages"`
	TopRepos  []Repo `json:"topRepos"`
}

type Repo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Stars       int    `json:"stars"`
	Language    string `json:"language"`
}

type LeetCode struct {
	Username string `json:"username"`
	Total    int    `json:"total"`
	Easy     int    `json:"easy"`
	Medium   int    `json:"medium"`
	Hard     int    `json:"hard"`
}

type Medium struct {
	Posts  []Post `json:"posts"`
	Latest *Post  `json:"latest"`
}

type Post struct {
	Title string `json:"title"`
	Link  string `json:"link"`
	Date  string `json:"date"`
}

type LinkedIn struct {
	ProfileURL  string        `json:"profileUrl"`
	Connections int           `json:"connections,omitempty"`
	Followers   int           `json:"followers,omitempty"`
	LatestPost  *LinkedInPost `json:"latestPost"`
}

type LinkedInPost struct {
	Text     string `json:"text"`
	Likes    int    `json:"likes"`
	Comments int    `json:"comments"`
	Shares   int    `json:"shares"`
	URL      string `json:"url"`
}

// Snapshot is the external data cache as one value. A nil slot means the
// source was unavailable on the last refresh.
type Snapshot struct {
	GitHub    *GitHub   `json:"github"`
	LeetCode  *LeetCode `json:"leetcode"`
	Medium    *Medium   `json:"medium"`
	LinkedIn  *LinkedIn `json:"linkedin"`
	LastFetch time.Time `json:"lastFetch"`
}

// Presence reports which slots are populated.
func (s Snapshot) Presence() map[string]bool {
	return map[string]bool{
		"github":   s.GitHub != nil,
		"leetcode": s.LeetCode != nil,
		"medium":   s.Medium != nil,
		"linkedin": s.LinkedIn != nil,
	}
}
