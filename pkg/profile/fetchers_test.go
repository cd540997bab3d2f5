package profile

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/knowledge"
)

func TestGitHubFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/abc":
			io.WriteString(w, `{"login": "abc", "public_repos": 5, "followers": 3}`)
		case "/users/abc/repos":
			assert.Equal(t, "updated", r.URL.Query().Get("sort"))
			assert.Equal(t, "10", r.URL.Query().Get("per_page"))
			io.WriteString(w, `[
				{"name": "one", "description": "first", "html_url": "https://github.com/abc/one", "stargazers_count": 4, "language": "Rust"},
				{"name": "two", "description": null, "html_url": "https://github.com/abc/two", "stargazers_count": 6, "language": "Go"},
				{"name": "three", "html_url": "https://github.com/abc/three", "stargazers_count": 2, "language": "Go"},
				{"name": "four", "html_url": "https://github.com/abc/four", "stargazers_count": 0, "language": null},
				{"name": "five", "html_url": "https://github.com/abc/five", "stargazers_count": 0, "language": "Python"},
				{"name": "six", "html_url": "https://github.com/abc/six", "stargazers_count": 0, "language": "Shell"}
			]`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	gh, err := NewGitHubFetcher(srv.Client(), srv.URL, "abc").Fetch(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "abc", gh.Username)
	assert.Equal(t, 5, gh.Repos)
	assert.Equal(t, 3, gh.Followers)
	assert.Equal(t, 12, gh.Stars)
	assert.Equal(t, "Go, Rust, Python", gh.Languages)
	require.Len(t, gh.TopRepos, 2)
	assert.Equal(t, Repo{Name: "one", Description: "first", URL: "https://github.com/abc/one", Stars: 4, Language: "Rust"}, gh.TopRepos[0])
	assert.Empty(t, gh.TopRepos[1].Description)
}

func TestGitHubFetcherFailsOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/repos") {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		io.WriteString(w, `{"login": "abc"}`)
	}))
	defer srv.Close()

	gh, err := NewGitHubFetcher(srv.Client(), srv.URL, "abc").Fetch(context.Background())
	assert.Error(t, err)
	assert.Nil(t, gh)
}

func TestLeetCodeFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)

		var req leetCodeRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "lc-user", req.Variables["username"])
		assert.Contains(t, req.Query, "acSubmissionNum")

		io.WriteString(w, `{"data": {"matchedUser": {"username": "lc-user", "submitStatsGlobal": {"acSubmissionNum": [
			{"difficulty": "All", "count": 150},
			{"difficulty": "Easy", "count": 80},
			{"difficulty": "Medium", "count": 60},
			{"difficulty": "Hard", "count": 10}
		]}}}}`)
	}))
	defer srv.Close()

	lc, err := NewLeetCodeFetcher(srv.Client(), srv.URL, "lc-user").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &LeetCode{Username: "lc-user", Total: 150, Easy: 80, Medium: 60, Hard: 10}, lc)
}

func TestLeetCodeFetcherUnknownUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"data": {"matchedUser": null}}`)
	}))
	defer srv.Close()

	_, err := NewLeetCodeFetcher(srv.Client(), srv.URL, "ghost").Fetch(context.Background())
	assert.ErrorContains(t, err, "not found")
}

func TestMediumFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://medium.com/feed/@writer", r.URL.Query().Get("rss_url"))
		io.WriteString(w, `{"status": "ok", "items": [
			{"title": "p1", "link": "l1", "pubDate": "d1"},
			{"title": "p2", "link": "l2", "pubDate": "d2"},
			{"title": "p3", "link": "l3", "pubDate": "d3"},
			{"title": "p4", "link": "l4", "pubDate": "d4"},
			{"title": "p5", "link": "l5", "pubDate": "d5"},
			{"title": "p6", "link": "l6", "pubDate": "d6"}
		]}`)
	}))
	defer srv.Close()

	md, err := NewMediumFetcher(srv.Client(), srv.URL, "@writer").Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, md.Posts, 5)
	assert.Equal(t, "p5", md.Posts[4].Title)
	require.NotNil(t, md.Latest)
	assert.Equal(t, Post{Title: "p1", Link: "l1", Date: "d1"}, *md.Latest)
}

func TestMediumFetcherMissingItems(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"status": "error", "message": "bad feed"}`)
	}))
	defer srv.Close()

	_, err := NewMediumFetcher(srv.Client(), srv.URL, "@writer").Fetch(context.Background())
	assert.Error(t, err)
}

func TestFetcherHonoursContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewMediumFetcher(srv.Client(), srv.URL, "@writer").Fetch(ctx)
	assert.Error(t, err)
}

func TestLinkedInFetcher(t *testing.T) {
	f := NewLinkedInFetcher(knowledge.Social{
		LinkedIn: "someone",
		LinkedInData: &knowledge.LinkedInData{
			Connections: 500,
			LatestPost:  &knowledge.LinkedInPost{Text: "hello", Likes: 2},
		},
	})
	li, err := f.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://linkedin.com/in/someone", li.ProfileURL)
	assert.Equal(t, 500, li.Connections)
	require.NotNil(t, li.LatestPost)
	assert.Equal(t, "hello", li.LatestPost.Text)

	li, err = NewLinkedInFetcher(knowledge.Social{LinkedIn: "someone"}).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &LinkedIn{ProfileURL: "https://linkedin.com/in/someone"}, li)

	_, err = NewLinkedInFetcher(knowledge.Social{}).Fetch(context.Background())
	assert.Error(t, err)
}
