// Package jobs provides the scheduled background tasks of the dispatch service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six-field schedules with
// seconds) and managed through JobManager:
//
//	jobManager := jobs.NewJobManager(dispatchQueries, "*/30 * * * * *", logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// OverdueDeliveryJob logs every unfinished delivery past its estimated
// delivery time. It is informational and never cancels a simulation.
package jobs
