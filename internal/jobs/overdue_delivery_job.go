package jobs

import (
	"context"
	"log/slog"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// DefaultOverdueCheckSchedule runs the check every thirty seconds.
const DefaultOverdueCheckSchedule = "*/30 * * * * *"

// OverdueDeliveryLister returns the unfinished deliveries past their ETA.
type OverdueDeliveryLister interface {
	ListOverdue(ctx context.Context, query queries.ListOverdueDeliveriesQuery) ([]queries.DeliveryResponse, error)
}

// OverdueDeliveryJob reports deliveries that passed their estimated delivery
// time. It only logs; running simulations are never touched.
type OverdueDeliveryJob struct {
	lister   OverdueDeliveryLister
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOverdueDeliveryJob takes a six-field cron schedule (seconds first).
// An empty schedule means DefaultOverdueCheckSchedule.
func NewOverdueDeliveryJob(lister OverdueDeliveryLister, schedule string, logger *slog.Logger) *OverdueDeliveryJob {
	if schedule == "" {
		schedule = DefaultOverdueCheckSchedule
	}
	return &OverdueDeliveryJob{
		lister:   lister,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "overdue_delivery_job"),
	}
}

// Start schedules Run on the cron schedule.
func (j *OverdueDeliveryJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background(), time.Now().UTC())
	}); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue delivery job started", "schedule", j.schedule)
	return nil
}

// Run performs one check against now and returns the number of overdue deliveries.
func (j *OverdueDeliveryJob) Run(ctx context.Context, now time.Time) int {
	query, err := queries.NewListOverdueDeliveriesQuery(now)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue delivery job failed", "error", err)
		return 0
	}

	overdue, err := j.lister.ListOverdue(ctx, query)
	if err != nil {
		j.logger.ErrorContext(ctx, "Overdue delivery job failed", "error", err)
		return 0
	}

	for _, d := range overdue {
		j.logger.WarnContext(ctx, "Delivery is overdue",
			"deliveryId", d.ID,
			"orderId", d.OrderID,
			"driverId", d.DriverID,
			"status", d.Status,
			"estimatedDeliveryTime", d.EstimatedDeliveryTime,
			"late", now.Sub(d.EstimatedDeliveryTime).Round(time.Second).String())
	}
	return len(overdue)
}

// Stop waits for a running check to finish.
func (j *OverdueDeliveryJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Overdue delivery job stopped")
}
