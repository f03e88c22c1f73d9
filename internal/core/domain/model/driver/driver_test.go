package driver_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokyo = kernel.MustNewLocation(35.6762, 139.6503, time.Time{})

func TestNewDriver(t *testing.T) {
	t.Run("should create an available driver", func(t *testing.T) {
		d, err := driver.NewDriver("driver-1", "Tanaka San", "090-1234-5678", driver.Motorcycle, tokyo)

		require.NoError(t, err)
		require.NoError(t, d.Validate())
		assert.True(t, d.IsAvailable())
		assert.Equal(t, "driver-1", d.ID())
		assert.Equal(t, driver.Motorcycle, d.Vehicle())
		assert.Equal(t, "090-1234-5678", d.Phone())
	})

	t.Run("should join every validation error", func(t *testing.T) {
		d, err := driver.NewDriver(" ", "", "", driver.VehicleType("boat"), kernel.Location{})

		require.Error(t, err)
		assert.Nil(t, d)
		require.ErrorIs(t, err, driver.ErrIDIsRequired)
		require.ErrorIs(t, err, driver.ErrNameIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.ErrorIs(t, err, kernel.ErrLocationIsNotConstructed)
	})
}

func TestDriver_ReserveRelease(t *testing.T) {
	d, err := driver.NewDriver("driver-2", "Suzuki San", "", driver.Bike, tokyo)
	require.NoError(t, err)

	t.Run("should reserve once", func(t *testing.T) {
		require.NoError(t, d.Reserve())
		assert.False(t, d.IsAvailable())

		require.ErrorIs(t, d.Reserve(), driver.ErrDriverIsBusy)
	})

	t.Run("should release at the final location", func(t *testing.T) {
		ginza := kernel.MustNewLocation(35.6739, 139.7658, time.Unix(10, 0))

		require.NoError(t, d.Release(ginza))

		assert.True(t, d.IsAvailable())
		assert.Equal(t, ginza, d.Location())
	})

	t.Run("should refuse to release at an unconstructed location", func(t *testing.T) {
		require.Error(t, d.Release(kernel.Location{}))
	})
}

func TestDriver_Clone(t *testing.T) {
	d, err := driver.NewDriver("driver-3", "Sato San", "", driver.Car, tokyo)
	require.NoError(t, err)

	c := d.Clone()
	require.NoError(t, c.Reserve())

	assert.True(t, d.IsAvailable())
}

func TestDefaultRoster(t *testing.T) {
	drivers, err := driver.DefaultRoster(tokyo, 0.01, time.Now())

	require.NoError(t, err)
	require.Len(t, drivers, 3)
	assert.Equal(t, "driver-1", drivers[0].ID())
	assert.Equal(t, driver.Bike, drivers[1].Vehicle())
	for _, d := range drivers {
		assert.True(t, d.IsAvailable())
		assert.InDelta(t, tokyo.Latitude(), d.Location().Latitude(), 0.005)
	}
}
