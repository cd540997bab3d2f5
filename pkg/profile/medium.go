package profile

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

const (
	DefaultMediumFeedAPI = "https://api.rss2json.com/v1/api.json"
	mediumPostLimit      = 5
)

type MediumFetcher struct {
	client   *http.Client
	feedAPI  string
	username string
}

func NewMediumFetcher(client *http.Client, feedAPI, username string) *MediumFetcher {
	if feedAPI == "" {
		feedAPI = DefaultMediumFeedAPI
	}
	return &MediumFetcher{client: client, feedAPI: feedAPI, username: username}
}

type feedResponse struct {
	Items *[]struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		PubDate string `json:"pubDate"`
	} `json:"items"`
}

// Fetch reads the Medium RSS feed through an RSS-to-JSON bridge.
func (f *MediumFetcher) Fetch(ctx context.Context) (*Medium, error) {
	if f.username == "" {
		return nil, fmt.Errorf("medium: no username configured")
	}

	q := url.Values{}
	q.Set("rss_url", "https://medium.com/feed/"+f.username)

	var resp feedResponse
	if err := doJSON(ctx, f.client, http.MethodGet, f.feedAPI+"?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("medium: %w", err)
	}
	if resp.Items == nil {
		return nil, fmt.Errorf("medium: feed has no items field")
	}

	items := *resp.Items
	out := &Medium{Posts: make([]Post, 0, mediumPostLimit)}
	for i, it := range items {
		p := Post{Title: it.Title, Link: it.Link, Date: it.PubDate}
		if i == 0 {
			latest := p
			out.Latest = &latest
		}
		if i < mediumPostLimit {
			out.Posts = append(out.Posts, p)
		}
	}

	return out, nil
}
