package chatRepository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"github.com/Prateesh-Sulikeri/JinBo/internal/entity"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

// New returns a repository over db. A nil db yields a repository whose
// writes are dropped and whose reads return nothing.
func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
	Enabled() bool
}

func (r *repository) Enabled() bool {
	return r.DB != nil
}

func (r *repository) NewClient(tx bool) (Client, error) {
	noop := func() error { return nil }

	if r.DB == nil {
		return Client{
			ChatLogs: noopChatLogs{},
			Commit:   noop,
			Rollback: noop,
		}, nil
	}

	var sqlExecutor SQLExecutor = r.DB
	commitFunc, rollbackFunc := noop, noop

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	}

	return Client{
		ChatLogs: &chatLogsRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type ChatLogs interface {
	CreateChatLog(ctx context.Context, chatLog entity.ChatLog) error
	CountByIntent(ctx context.Context, since time.Time) ([]entity.IntentCount, error)
}

type Client struct {
	ChatLogs ChatLogs

	Commit   func() error
	Rollback func() error
}

type chatLogsRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type noopChatLogs struct{}

func (noopChatLogs) CreateChatLog(context.Context, entity.ChatLog) error {
	return nil
}

func (noopChatLogs) CountByIntent(context.Context, time.Time) ([]entity.IntentCount, error) {
	return nil, nil
}
