package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager starts and stops the scheduled jobs of the dispatch service.
type JobManager struct {
	overdueDeliveryJob *OverdueDeliveryJob
}

// NewJobManager prepares the jobs of the dispatch service. Nothing runs until
// StartAll.
func NewJobManager(lister OverdueDeliveryLister, overdueSchedule string, logger *slog.Logger) *JobManager {
	return &JobManager{
		overdueDeliveryJob: NewOverdueDeliveryJob(lister, overdueSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.overdueDeliveryJob.Start(); err != nil {
		return fmt.Errorf("failed to start overdue delivery job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs and waits for running checks to finish.
func (jm *JobManager) StopAll() {
	jm.overdueDeliveryJob.Stop()
}
