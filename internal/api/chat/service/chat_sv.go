package chatService

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	sfuzzy "github.com/sahilm/fuzzy"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"github.com/Prateesh-Sulikeri/JinBo/internal/api/chat"
	"github.com/Prateesh-Sulikeri/JinBo/internal/entity"
	contextPkg "github.com/Prateesh-Sulikeri/JinBo/pkg/context"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/fuzzy"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/nlp"
	"github.com/Prateesh-Sulikeri/JinBo/pkg/profile"
)

func (s *chatService) ProcessMessage(ctx context.Context, req chat.ChatRequest) (*chat.ChatResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	req.Message = strings.TrimSpace(req.Message)
	if err := s.validate(req); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Debug("Rejected chat message")
		return nil, err
	}

	snap := s.refresher.EnsureFresh(ctx)
	cl := s.classifier.Classify(req.Message)

	resp := &chat.ChatResponse{
		Success: true,
		Debug: &chat.Debug{
			Intent: cl.Intent.String(),
			Method: chat.MethodIntent,
		},
	}

	var confidence *int
	if cl.Intent == nlp.IntentDefault {
		if res, ok := s.searchKnowledge(requestID, req.Message); ok {
			resp.Response = s.responder.FromFuzzy(res)
			resp.Debug.UsedFuzzySearch = true
			resp.Debug.Method = chat.MethodFuzzy
			confidence = &res.Confidence
		}
	}
	if resp.Response == "" {
		resp.Response = s.responder.Generate(cl.Intent, req.Message, snap)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"intent":     cl.Intent,
		"stage":      cl.Stage,
		"method":     resp.Debug.Method,
	}).Info("Chat message answered")

	s.recordChatLog(ctx, entity.ChatLog{
		RequestID:     requestID,
		Intent:        cl.Intent.String(),
		Method:        resp.Debug.Method,
		UsedFuzzy:     resp.Debug.UsedFuzzySearch,
		Confidence:    confidence,
		MessageLength: utf8.RuneCountInString(req.Message),
	})

	return resp, nil
}

func (s *chatService) validate(req chat.ChatRequest) error {
	err := s.validator.Struct(req)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		for _, fe := range validationErrs {
			if fe.Tag() == "max" {
				return chat.ErrMessageTooLong
			}
		}
	}
	return chat.ErrEmptyMessage
}

func (s *chatService) searchKnowledge(requestID, message string) (fuzzy.MatchResult, bool) {
	res, ok := s.index.Search(message)
	if !ok {
		return fuzzy.MatchResult{}, false
	}

	v := fuzzy.Validate(message, res)
	s.log.WithFields(logrus.Fields{
		"request_id":       requestID,
		"key":              res.Key,
		"confidence":       res.Confidence,
		"validation_score": v.ValidationScore,
		"valid":            v.IsValid,
	}).Debug("Fuzzy knowledge search hit")

	return res, v.IsValid
}

// recordChatLog never fails the request.
func (s *chatService) recordChatLog(ctx context.Context, chatLog entity.ChatLog) {
	if !s.chatRepo.Enabled() {
		return
	}

	now := time.Now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": chatLog.RequestID,
			"error":      err.Error(),
		}).Warn("Failed to generate ULID for chat log")
		return
	}
	chatLog.ID = id
	chatLog.CreatedAt = now

	repo, err := s.chatRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": chatLog.RequestID,
			"error":      err.Error(),
		}).Warn("Failed to create repository client")
		return
	}

	if err := repo.ChatLogs.CreateChatLog(ctx, chatLog); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": chatLog.RequestID,
			"error":      err.Error(),
		}).Warn("Failed to record chat log")
	}
}

func (s *chatService) Refresh(ctx context.Context) profile.Snapshot {
	return s.refresher.Refresh(ctx)
}

func (s *chatService) Snapshot() profile.Snapshot {
	return s.refresher.Snapshot()
}

// KnowledgeInfo lists the available intents, narrowed to those matching
// query when it is not blank.
func (s *chatService) KnowledgeInfo(query string) chat.KBInfoResponse {
	intents := s.classifier.Intents()
	names := make([]string, 0, len(intents))
	for _, in := range intents {
		names = append(names, in.String())
	}

	if q := strings.TrimSpace(query); q != "" {
		matches := sfuzzy.Find(strings.ToLower(q), names)
		filtered := make([]string, 0, len(matches))
		for _, m := range matches {
			filtered = append(filtered, m.Str)
		}
		names = filtered
	}

	return chat.KBInfoResponse{
		Name:             s.kb.PersonalString("name"),
		Title:            s.kb.PersonalString("title"),
		Experience:       s.kb.PersonalString("experience"),
		Bot:              s.kb.Bot.Name,
		AvailableIntents: names,
	}
}

func (s *chatService) Health() chat.HealthResponse {
	return chat.HealthResponse{
		Status: "ok",
		Bot:    s.kb.Bot.Name,
		Data:   s.refresher.Snapshot().Presence(),
	}
}

func (s *chatService) IntentStats(ctx context.Context, since time.Time) (*chat.StatsResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	if !s.chatRepo.Enabled() {
		return nil, chat.ErrChatLogUnavailable
	}

	repo, err := s.chatRepo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return nil, err
	}

	counts, err := repo.ChatLogs.CountByIntent(ctx, since)
	if err != nil {
		return nil, err
	}

	resp := &chat.StatsResponse{Intents: make([]chat.IntentStat, 0, len(counts))}
	for _, c := range counts {
		resp.Intents = append(resp.Intents, chat.IntentStat{Intent: c.Intent, Count: c.Count})
		resp.Total += c.Count
	}
	return resp, nil
}

func (s *chatService) Fallback() string {
	return s.kb.Fallback()
}
