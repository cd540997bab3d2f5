package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
)

const (
	SnapshotKey = "jinbo:profile:snapshot"
	// SnapshotTTL outlives the staleness window so a restart inside it can
	// still serve the last refresh.
	SnapshotTTL = 6 * time.Hour
)

type IRedis interface {
	SaveSnapshot(ctx context.Context, snap profile.Snapshot) error
	LoadSnapshot(ctx context.Context) (profile.Snapshot, bool, error)
	Close() error
}

type redisClient struct {
	client *redis.Client
	log    *logrus.Logger
	key    string
	ttl    time.Duration
}

// New connects using REDIS_ADDRESS, REDIS_PASSWORD and REDIS_DB. A failed
// ping is logged; callers decide whether persistence is optional.
func New(log *logrus.Logger) (IRedis, error) {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	if redisAddr == "" {
		return nil, fmt.Errorf("REDIS_ADDRESS is not set")
	}

	log.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
		_ = client.Close()
		return nil, err
	}
	log.Info("Successfully connected to Redis")

	return NewWithClient(client, log), nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client *redis.Client, log *logrus.Logger) IRedis {
	return &redisClient{client: client, log: log, key: SnapshotKey, ttl: SnapshotTTL}
}

func (r *redisClient) SaveSnapshot(ctx context.Context, snap profile.Snapshot) error {
	payload, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.key, payload, r.ttl).Err(); err != nil {
		r.log.Error(fmt.Sprintf("Error saving snapshot under %s: %v", r.key, err))
		return err
	}
	r.log.Debug(fmt.Sprintf("Saved snapshot under %s", r.key))
	return nil
}

func (r *redisClient) LoadSnapshot(ctx context.Context) (profile.Snapshot, bool, error) {
	val, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		r.log.Debug(fmt.Sprintf("No snapshot stored under %s", r.key))
		return profile.Snapshot{}, false, nil
	} else if err != nil {
		r.log.Error(fmt.Sprintf("Error loading snapshot from %s: %v", r.key, err))
		return profile.Snapshot{}, false, err
	}

	var snap profile.Snapshot
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(val, &snap); err != nil {
		return profile.Snapshot{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, true, nil
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
