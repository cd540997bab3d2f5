package chatService

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Prateesh-Sulikeri/JinBo/internal/api/chat"
	chatRepository "github.com/Prateesh-Sulikeri/JinBo/internal/api/chat/repository"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/fuzzy"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/knowledge"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/nlp"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/utils"
)

type IChatService interface {
	ProcessMessage(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error)
	Refresh(ctx context.Context) profile.Snapshot
	Snapshot() profile.Snapshot
	KnowledgeInfo(query string) chat.KBInfoResponse
	Health() chat.HealthResponse
	IntentStats(ctx context.Context, since time.Time) (*chat.StatsResponse, error)
	Fallback() string
}

// ProfileRefresher is satisfied by *profile.Refresher.
type ProfileRefresher interface {
	Refresh(ctx context.Context) profile.Snapshot
	EnsureFresh(ctx context.Context) profile.Snapshot
	Snapshot() profile.Snapshot
}

type chatService struct {
	log        *logrus.Logger
	classifier nlp.IClassifier
	index      *fuzzy.Index
	responder  *Responder
	refresher  ProfileRefresher
	kb         *knowledge.Base
	chatRepo   chatRepository.Repository
	utils      utils.IUtils
	validator  *validator.Validate
}

func NewChatService(
	log *logrus.Logger,
	classifier nlp.IClassifier,
	index *fuzzy.Index,
	responder *Responder,
	refresher ProfileRefresher,
	kb *knowledge.Base,
	chatRepo chatRepository.Repository,
	utils utils.IUtils,
	validate *validator.Validate,
) IChatService {
	return &chatService{
		log:        log,
		classifier: classifier,
		index:      index,
		responder:  responder,
		refresher:  refresher,
		kb:         kb,
		chatRepo:   chatRepo,
		utils:      utils,
		validator:  validate,
	}
}
