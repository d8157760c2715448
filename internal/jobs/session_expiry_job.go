package jobs

import (
	"context"
	"log/slog"

	"localstore/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// SessionExpiryJob deletes sessions whose tokens have expired.
type SessionExpiryJob struct {
	handler commands.ExpireSessionsCommandHandler
	spec    string
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewSessionExpiryJob(handler commands.ExpireSessionsCommandHandler, spec string, logger *slog.Logger) *SessionExpiryJob {
	return &SessionExpiryJob{
		handler: handler,
		spec:    spec,
		cron:    cron.New(cron.WithSeconds()),
		logger:  logger.With("component", "session_expiry_job"),
	}
}

func (j *SessionExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.spec, func() {
		ctx := context.Background()
		n, err := j.handler.Handle(ctx, commands.NewExpireSessionsCommand())
		if err != nil {
			j.logger.ErrorContext(ctx, "Session expiry job failed", "error", err)
			return
		}
		if n > 0 {
			j.logger.InfoContext(ctx, "Expired sessions removed", "count", n)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session expiry job started", "spec", j.spec)
	return nil
}

func (j *SessionExpiryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session expiry job stopped")
}
