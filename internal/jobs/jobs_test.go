package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOverdueLister struct{ mock.Mock }

func (m *MockOverdueLister) ListOverdue(
	ctx context.Context,
	query queries.ListOverdueDeliveriesQuery,
) ([]queries.DeliveryResponse, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.DeliveryResponse), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestOverdueDeliveryJob_Run(t *testing.T) {
	now := time.Date(2024, 5, 1, 13, 0, 0, 0, time.UTC)

	t.Run("counts overdue deliveries", func(t *testing.T) {
		lister := new(MockOverdueLister)
		lister.On("ListOverdue", mock.Anything, mock.Anything).Return([]queries.DeliveryResponse{
			{ID: "d-1", OrderID: "o-1", Status: "EN_ROUTE_TO_CUSTOMER", EstimatedDeliveryTime: now.Add(-5 * time.Minute)},
		}, nil).Once()

		job := jobs.NewOverdueDeliveryJob(lister, "", discardLogger())

		assert.Equal(t, 1, job.Run(t.Context(), now))
		lister.AssertExpectations(t)
	})

	t.Run("lister failures are logged, not raised", func(t *testing.T) {
		lister := new(MockOverdueLister)
		lister.On("ListOverdue", mock.Anything, mock.Anything).Return(nil, errors.New("store down")).Once()

		job := jobs.NewOverdueDeliveryJob(lister, "", discardLogger())

		assert.Zero(t, job.Run(t.Context(), now))
	})
}

func TestJobManager(t *testing.T) {
	t.Run("starts and stops with a valid schedule", func(t *testing.T) {
		lister := new(MockOverdueLister)
		lister.On("ListOverdue", mock.Anything, mock.Anything).Return([]queries.DeliveryResponse{}, nil).Maybe()

		jm := jobs.NewJobManager(lister, "* * * * * *", discardLogger())
		require.NoError(t, jm.StartAll())
		jm.StopAll()
	})

	t.Run("rejects an invalid schedule", func(t *testing.T) {
		jm := jobs.NewJobManager(new(MockOverdueLister), "every now and then", discardLogger())
		require.Error(t, jm.StartAll())
	})
}
