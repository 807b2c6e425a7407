// Package jobs provides scheduled background tasks for the fulfillment service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field specs with seconds).
//
// # Available Jobs
//
// PendingOrdersJob picks a batch of Confirmed and Processing orders, oldest sale date
// first, and runs the order processor for each of them. Runs do not overlap.
//
// # Usage
//
//	job := jobs.NewPendingOrdersJob(pendingReader, processor, "*/30 * * * * *", 100, logger)
//	jobManager := jobs.NewJobManager(job)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - a locked order is skipped quietly, the holder is already processing it
//   - stock shortages and missing configuration are logged as warnings; the order
//     is skipped until its retry delay passes (github.com/cenkalti/backoff/v4,
//     see WithRetryDelays)
//   - everything else is logged as an error; the rest of the batch still runs
package jobs
