package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

type RecentOrderPoller interface {
	PollRecentOrders(ctx context.Context) error
}

// RecentOrderPollJob refreshes the recent-orders snapshot of focused partners.
type RecentOrderPollJob struct {
	poller RecentOrderPoller
	spec   string
	cron   *cron.Cron
	logger *slog.Logger
}

func NewRecentOrderPollJob(poller RecentOrderPoller, spec string, logger *slog.Logger) *RecentOrderPollJob {
	return &RecentOrderPollJob{
		poller: poller,
		spec:   spec,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "recent_order_poll_job"),
	}
}

func (j *RecentOrderPollJob) Start() error {
	_, err := j.cron.AddJob(j.spec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(func() {
		ctx := context.Background()
		if err := j.poller.PollRecentOrders(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Recent order poll failed", "error", err)
		}
	})))
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Recent order poll job started", "spec", j.spec)
	return nil
}

func (j *RecentOrderPollJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Recent order poll job stopped")
}
