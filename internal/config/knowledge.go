package config

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/knowledge"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/s3"
)

const (
	defaultKnowledgeBasePath = "./knowledge-base.json"
	defaultKnowledgeBaseKey  = "knowledge-base.json"
)

// LoadKnowledgeBase reads the knowledge base from S3 when
// KNOWLEDGE_BASE_S3_BUCKET is set, and from KNOWLEDGE_BASE_PATH otherwise.
func LoadKnowledgeBase(ctx context.Context, log *logrus.Logger) (*knowledge.Base, error) {
	if bucket := os.Getenv("KNOWLEDGE_BASE_S3_BUCKET"); bucket != "" {
		key := envOr("KNOWLEDGE_BASE_S3_KEY", defaultKnowledgeBaseKey)

		client, err := s3.New(bucket)
		if err != nil {
			return nil, err
		}

		log.WithFields(logrus.Fields{
			"bucket": bucket,
			"key":    key,
		}).Info("Loading knowledge base from S3")
		return knowledge.LoadRemote(ctx, client, key)
	}

	path := envOr("KNOWLEDGE_BASE_PATH", defaultKnowledgeBasePath)
	log.WithField("path", path).Info("Loading knowledge base from file")
	return knowledge.LoadFile(path)
}

// NewProfileSources builds a fetcher for every platform the knowledge base
// names. Base URLs come from GITHUB_API_URL, LEETCODE_API_URL and
// MEDIUM_FEED_API_URL.
func NewProfileSources(kb *knowledge.Base, client *http.Client) profile.Sources {
	if client == nil {
		client = &http.Client{Timeout: profile.DefaultFetchTimeout + 5*time.Second}
	}

	var sources profile.Sources
	if u := kb.Social.GitHub; u != "" {
		sources.GitHub = profile.NewGitHubFetcher(client, os.Getenv("GITHUB_API_URL"), u)
	}
	if u := kb.Social.LeetCode; u != "" {
		sources.LeetCode = profile.NewLeetCodeFetcher(client, os.Getenv("LEETCODE_API_URL"), u)
	}
	if u := kb.Social.Medium; u != "" {
		sources.Medium = profile.NewMediumFetcher(client, os.Getenv("MEDIUM_FEED_API_URL"), u)
	}
	if kb.Social.LinkedIn != "" || kb.Social.LinkedInData != nil {
		sources.LinkedIn = profile.NewLinkedInFetcher(kb.Social)
	}
	return sources
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
