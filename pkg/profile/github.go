package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
)

const DefaultGitHubAPI = "https://api.github.com"

type GitHubFetcher struct {
	client   *http.Client
	baseURL  string
	username string
}

func NewGitHubFetcher(client *http.Client, baseURL, username string) *GitHubFetcher {
	if baseURL == "" {
		baseURL = DefaultGitHubAPI
	}
	return &GitHubFetcher{client: client, baseURL: strings.TrimRight(baseURL, "/"), username: username}
}

type githubUser struct {
	Login       string `json:"login"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
}

type githubRepo struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	HTMLURL     string  `json:"html_url"`
	Stars       int     `json:"stargazers_count"`
	Language    *string `json:"language"`
}

// Fetch loads the user and the ten most recently updated repositories in
// parallel.
func (f *GitHubFetcher) Fetch(ctx context.Context) (*GitHub, error) {
	if f.username == "" {
		return nil, fmt.Errorf("github: no username configured")
	}

	user := url.PathEscape(f.username)
	var (
		u     githubUser
		repos []githubRepo
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return doJSON(gctx, f.client, http.MethodGet, fmt.Sprintf("%s/users/%s", f.baseURL, user), nil, &u)
	})
	g.Go(func() error {
		return doJSON(gctx, f.client, http.MethodGet, fmt.Sprintf("%s/users/%s/repos?sort=updated&per_page=10", f.baseURL, user), nil, &repos)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("github: %w", err)
	}

	out := &GitHub{
		Username:  u.Login,
		Repos:     u.PublicRepos,
		Followers: u.Followers,
		Languages: strings.Join(topLanguages(repos, 3), ", "),
		TopRepos:  make([]Repo, 0, 2),
	}
	for i, r := range repos {
		out.Stars += r.Stars
		if i < 2 {
			out.TopRepos = append(out.TopRepos, Repo{
				Name:        r.Name,
				Description: deref(r.Description),
				URL:         r.HTMLURL,
				Stars:       r.Stars,
				Language:    deref(r.Language),
			})
		}
	}

	return out, nil
}

// topLanguages ranks languages by repository count; first appearance breaks
// ties.
func topLanguages(repos []githubRepo, n int) []string {
	counts := map[string]int{}
	var order []string
	for _, r := range repos {
		lang := deref(r.Language)
		if lang == "" {
			continue
		}
		if _, ok := counts[lang]; !ok {
			order = append(order, lang)
		}
		counts[lang]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
