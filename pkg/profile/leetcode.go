package profile

import (
	"context"
	"fmt"
	"net/http"
)

const DefaultLeetCodeAPI = "https://leetcode.com/graphql"

const leetCodeQuery = `query($username: String!) {
  matchedUser(username: $username) {
    username
    submitStatsGlobal {
      acSubmissionNum {
        difficulty
        count
      }
    }
  }
}`

type LeetCodeFetcher struct {
	client   *http.Client
	endpoint string
	username string
}

func NewLeetCodeFetcher(client *http.Client, endpoint, username string) *LeetCodeFetcher {
	if endpoint == "" {
		endpoint = DefaultLeetCodeAPI
	}
	return &LeetCodeFetcher{client: client, endpoint: endpoint, username: username}
}

type leetCodeRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables"`
}

type leetCodeResponse struct {
	Data struct {
		MatchedUser *struct {
			Username          string `json:"username"`
			SubmitStatsGlobal struct {
				AcSubmissionNum []struct {
					Difficulty string `json:"difficulty"`
					Count      int    `json:"count"`
				} `json:"acSubmissionNum"`
			} `json:"submitStatsGlobal"`
		} `json:"matchedUser"`
	} `json:"data"`
}

func (f *LeetCodeFetcher) Fetch(ctx context.Context) (*LeetCode, error) {
	if f.username == "" {
		return nil, fmt.Errorf("leetcode: no username configured")
	}

	body := leetCodeRequest{
		Query:     leetCodeQuery,
		Variables: map[string]string{"username": f.username},
	}

	var resp leetCodeResponse
	if err := doJSON(ctx, f.client, http.MethodPost, f.endpoint, body, &resp); err != nil {
		return nil, fmt.Errorf("leetcode: %w", err)
	}

	user := resp.Data.MatchedUser
	if user == nil {
		return nil, fmt.Errorf("leetcode: user %q not found", f.username)
	}

	out := &LeetCode{Username: user.Username}
	for _, s := range user.SubmitStatsGlobal.AcSubmissionNum {
		switch s.Difficulty {
		case "All":
			out.Total = s.Count
		case "Easy":
			out.Easy = s.Count
		case "Medium":
			out.Medium = s.Count
		case "Hard":
			out.Hard = s.Count
		}
	}

	return out, nil
}
