package jobs

import (
	"fmt"
	"log/slog"

	"localstore/internal/core/application/usecases/commands"
)

// Schedules holds the cron spec of each job.
type Schedules struct {
	NewOrders     string
	RecentOrders  string
	SessionExpiry string
}

func DefaultSchedules() Schedules {
	return Schedules{
		NewOrders:     "@every 10s",
		RecentOrders:  "@every 30s",
		SessionExpiry: "@every 5m",
	}
}

type job interface {
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs []namedJob
}

type namedJob struct {
	name string
	job  job
}

// NewJobManager creates the polling jobs over watcher and the session
// expiry job.
func NewJobManager(
	watcher interface {
		NewOrderPoller
		RecentOrderPoller
	},
	expireSessions commands.ExpireSessionsCommandHandler,
	schedules Schedules,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{jobs: []namedJob{
		{name: "new order poll", job: NewNewOrderPollJob(watcher, schedules.NewOrders, logger)},
		{name: "recent order poll", job: NewRecentOrderPollJob(watcher, schedules.RecentOrders, logger)},
		{name: "session expiry", job: NewSessionExpiryJob(expireSessions, schedules.SessionExpiry, logger)},
	}}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	for i, j := range jm.jobs {
		if err := j.job.Start(); err != nil {
			// Stop already started jobs if this one fails
			for _, started := range jm.jobs[:i] {
				started.job.Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", j.name, err)
		}
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].job.Stop()
	}
}
