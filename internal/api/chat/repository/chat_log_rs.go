package chatRepository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/Prateesh-Sulikeri/JinBo/internal/entity"
	contextPkg "github.com/Prateesh-Sulikeri/JinBo/pkg/context"
)

func (r *chatLogsRepository) CreateChatLog(ctx context.Context, chatLog entity.ChatLog) error {
	requestID := contextPkg.GetRequestID(ctx)
	argsKV := map[string]interface{}{
		"id":             chatLog.ID,
		"request_id":     chatLog.RequestID,
		"intent":         chatLog.Intent,
		"method":         chatLog.Method,
		"used_fuzzy":     chatLog.UsedFuzzy,
		"confidence":     chatLog.Confidence,
		"message_length": chatLog.MessageLength,
		"created_at":     chatLog.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateChatLog, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateChatLog")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating chat log")
		return err
	}

	return nil
}

func (r *chatLogsRepository) CountByIntent(ctx context.Context, since time.Time) ([]entity.IntentCount, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var counts []entity.IntentCount

	query, args, err := sqlx.Named(queryCountByIntent, map[string]interface{}{
		"since": since,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountByIntent named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &counts, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("CountByIntent execution err")
		return nil, err
	}

	return counts, nil
}
