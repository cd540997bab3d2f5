package config

import (
	"context"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/Prateesh-Sulikeri/JinBo/database/postgres"
	chatHandler "github.com/Prateesh-Sulikeri/JinBo/internal/api/chat/handler"
	chatRepository "github.com/Prateesh-Sulikeri/JinBo/internal/api/chat/repository"
	chatService "github.com/Prateesh-Sulikeri/JinBo/internal/api/chat/service"
	"github.com/Prateesh-Sulikeri/JinBo/internal/middleware"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/fuzzy"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/knowledge"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/nlp"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/redis"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/utils"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	db          *sqlx.DB
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	picker      utils.Picker
	handlers    []handler
	health      fiber.Handler
	kb          *knowledge.Base
	classifier  nlp.IClassifier
	refresher   chatService.ProfileRefresher
	redisServer redis.IRedis
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.kb == nil {
		return nil, fmt.Errorf("knowledge base is required")
	}
	if server.classifier == nil {
		return nil, fmt.Errorf("classifier is required")
	}
	if server.refresher == nil {
		return nil, fmt.Errorf("profile refresher is required")
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log)
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.picker == nil {
		server.picker = utils.NewRandomPicker()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects the chat log store when DB_HOST is set and is a
// no-op otherwise.
func WithDatabase() ServerOption {
	return func(s *Server) error {
		if !postgres.Enabled() {
			if s.log != nil {
				s.log.Info("DB_HOST not set, chat log disabled")
			}
			return nil
		}

		db, err := postgres.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}
		s.db = db
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func WithPicker(picker utils.Picker) ServerOption {
	return func(s *Server) error {
		s.picker = picker
		return nil
	}
}

func WithKnowledgeBase(kb *knowledge.Base) ServerOption {
	return func(s *Server) error {
		if kb == nil {
			return fmt.Errorf("knowledge base is nil")
		}
		s.kb = kb
		return nil
	}
}

func WithClassifier(classifier nlp.IClassifier) ServerOption {
	return func(s *Server) error {
		s.classifier = classifier
		return nil
	}
}

func WithRefresher(refresher chatService.ProfileRefresher) ServerOption {
	return func(s *Server) error {
		s.refresher = refresher
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Chat Domain
	chatRepo := chatRepository.New(s.db, s.log)
	index := fuzzy.NewIndex(s.kb)
	responder := chatService.NewResponder(s.kb, s.picker)
	chatServices := chatService.NewChatService(s.log, s.classifier, index, responder, s.refresher, s.kb, chatRepo, s.utils, s.validator)
	chatHandlers := chatHandler.New(s.log, s.validator, s.middleware, chatServices)

	s.log.WithField("entries", index.Len()).Info("Fuzzy knowledge index built")

	s.health = chatHandlers.Health
	s.handlers = append(s.handlers, chatHandlers)
}

// Mount installs the global middleware and every registered handler.
func (s *Server) Mount() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())
	s.setupHealthCheck()

	router := s.engine.Group("/api")
	for _, h := range s.handlers {
		h.Start(router)
	}
}

func (s *Server) Run() error {
	s.Mount()

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops the listener and releases the optional stores.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.engine.ShutdownWithContext(ctx)

	if s.redisServer != nil {
		if cerr := s.redisServer.Close(); cerr != nil {
			s.log.Warnf("Error closing redis: %v", cerr)
		}
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil {
			s.log.Warnf("Error closing database: %v", cerr)
		}
	}

	return err
}

func (s *Server) setupHealthCheck() {
	if s.health != nil {
		s.engine.Get("/health", s.health)
	}
}
