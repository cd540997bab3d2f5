package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/Prateesh-Sulikeri/JinBo/internal/config"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/log"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/nlp"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/redis"
)

func main() {
	logger, err := newLogger()
	if err != nil {
		logger.Warnf("No .env file loaded: %v", err)
	}

	ctx := context.Background()

	kb, err := config.LoadKnowledgeBase(ctx, logger)
	if err != nil {
		logger.Fatalf("Failed to load knowledge base: %v", err)
	}

	classifier, err := nlp.NewClassifier(logger, nlp.DefaultRuleTable(), nlp.DefaultMemoSize)
	if err != nil {
		logger.Fatalf("Failed to build classifier: %v", err)
	}

	opts := []profile.Option{
		profile.WithPreserveOnFailure(os.Getenv("PROFILE_PRESERVE_STALE") == "true"),
	}

	var redisServer redis.IRedis
	if os.Getenv("REDIS_ADDRESS") != "" {
		redisServer, err = redis.New(logger)
		if err != nil {
			logger.Warnf("Profile snapshot persistence disabled: %v", err)
		} else {
			opts = append(opts, profile.WithPersister(redisServer))
		}
	}

	refresher := profile.NewRefresher(
		logger,
		profile.NewStore(profile.DefaultStaleAfter),
		config.NewProfileSources(kb, nil),
		opts...,
	)
	if !refresher.Warm(ctx) {
		go refresher.Refresh(ctx)
	}

	serverOpts := []config.ServerOption{
		config.WithFiber(config.NewFiber(logger, kb.Fallback())),
		config.WithLogger(logger),
		config.WithValidator(config.NewValidator()),
		config.WithDatabase(),
		config.WithMiddleware(),
		config.WithUtils(),
		config.WithKnowledgeBase(kb),
		config.WithClassifier(classifier),
		config.WithRefresher(refresher),
	}
	if redisServer != nil {
		serverOpts = append(serverOpts, config.WithRedisServer(redisServer))
	}

	server, err := config.NewServer(serverOpts...)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}

// newLogger loads .env before the logger is built so LOG_LEVEL and APP_ENV
// from the file apply to it.
func newLogger() (*logrus.Logger, error) {
	envErr := godotenv.Load()
	return log.NewLogger(), envErr
}
