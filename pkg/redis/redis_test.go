package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/log"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
)

// Runs only against a live server, e.g. REDIS_ADDRESS=localhost:6379.
func TestSnapshotRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_ADDRESS")
	if addr == "" {
		t.Skip("REDIS_ADDRESS not set")
	}

	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	r := &redisClient{client: client, log: log.NewDiscardLogger(), key: "jinbo:test:" + t.Name(), ttl: time.Minute}
	defer r.Close()

	ctx := context.Background()
	defer client.Del(ctx, r.key)

	_, ok, err := r.LoadSnapshot(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	want := profile.Snapshot{
		GitHub:    &profile.GitHub{Username: "abc", Repos: 5, TopRepos: []profile.Repo{{Name: "one"}}},
		LastFetch: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, r.SaveSnapshot(ctx, want))

	got, ok, err := r.LoadSnapshot(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.GitHub, got.GitHub)
	assert.Nil(t, got.LeetCode)
	assert.True(t, want.LastFetch.Equal(got.LastFetch))

	ttl, err := client.TTL(ctx, r.key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestNewRequiresAddress(t *testing.T) {
	t.Setenv("REDIS_ADDRESS", "")
	_, err := New(log.NewDiscardLogger())
	assert.Error(t, err)
}
