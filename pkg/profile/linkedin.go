package profile

import (
	"context"
	"fmt"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/knowledge"
)

// LinkedInFetcher serves the hand-maintained LinkedIn record from the
// knowledge base, or a profile-URL-only record when there is none.
type LinkedInFetcher struct {
	social knowledge.Social
}

func NewLinkedInFetcher(social knowledge.Social) *LinkedInFetcher {
	return &LinkedInFetcher{social: social}
}

func (f *LinkedInFetcher) Fetch(_ context.Context) (*LinkedIn, error) {
	if d := f.social.LinkedInData; d != nil {
		out := &LinkedIn{
			ProfileURL:  d.ProfileURL,
			Connections: d.Connections,
			Followers:   d.Followers,
		}
		if out.ProfileURL == "" {
			out.ProfileURL = LinkedInURL(f.social.LinkedIn)
		}
		if p := d.LatestPost; p != nil {
			out.LatestPost = &LinkedInPost{
				Text:     p.Text,
				Likes:    p.Likes,
				Comments: p.Comments,
				Shares:   p.Shares,
				URL:      p.URL,
			}
		}
		return out, nil
	}

	if f.social.LinkedIn == "" {
		return nil, fmt.Errorf("linkedin: no handle configured")
	}
	return &LinkedIn{ProfileURL: LinkedInURL(f.social.LinkedIn)}, nil
}

func LinkedInURL(handle string) string {
	return "https://linkedin.com/in/" + handle
}
