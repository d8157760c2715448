// Package jobs provides scheduled background tasks for the partner service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. NewOrderPollJob - checks focused delivery partners for new orders (default "@every 10s")
// 2. RecentOrderPollJob - refreshes the recent-orders snapshot of focused partners (default "@every 30s")
// 3. SessionExpiryJob - deletes expired sessions (default "@every 5m")
//
// # Usage
//
//	jobManager := jobs.NewJobManager(watcher, expireSessionsHandler, jobs.DefaultSchedules(), logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - Poll errors are logged and the next tick polls again
// - A poll still running when the next tick fires is skipped
// - Failed job starts will stop any already running jobs
package jobs
