package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// NewOrderPoller is the part of the observer that checks focused partners
// for new orders.
type NewOrderPoller interface {
	PollNewOrders(ctx context.Context) (map[string][]string, error)
}

// NewOrderPollJob polls the NewOrders queue of every focused partner and
// starts an alarm for each order seen for the first time.
type NewOrderPollJob struct {
	poller NewOrderPoller
	spec   string
	cron   *cron.Cron
	logger *slog.Logger
}

// NewNewOrderPollJob creates the job. spec is a cron spec such as "@every 10s".
func NewNewOrderPollJob(poller NewOrderPoller, spec string, logger *slog.Logger) *NewOrderPollJob {
	return &NewOrderPollJob{
		poller: poller,
		spec:   spec,
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With("component", "new_order_poll_job"),
	}
}

func (j *NewOrderPollJob) Start() error {
	_, err := j.cron.AddJob(j.spec, cron.NewChain(cron.SkipIfStillRunning(cron.DiscardLogger)).Then(cron.FuncJob(j.run)))
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "New order poll job started", "spec", j.spec)
	return nil
}

func (j *NewOrderPollJob) run() {
	ctx := context.Background()
	fresh, err := j.poller.PollNewOrders(ctx)
	for phone, ids := range fresh {
		j.logger.InfoContext(ctx, "New orders arrived", "phone", phone, "orders", ids)
	}
	if err != nil {
		j.logger.ErrorContext(ctx, "New order poll failed", "error", err)
	}
}

// Stop stops the job and waits for a running poll to finish.
func (j *NewOrderPollJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "New order poll job stopped")
}
