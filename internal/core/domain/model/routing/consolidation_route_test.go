package routing_test

import (
	"testing"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
	"postal/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeStops() []routing.Stop {
	return []routing.Stop{
		{WardCode: "00103", WardOfficeName: "Ward 3 Post", Order: 3},
		{WardCode: "00101", WardOfficeName: "Ward 1 Post", Order: 1},
		{WardCode: "00102", WardOfficeName: "Ward 2 Post", Order: 2},
	}
}

func TestValidateStops(t *testing.T) {
	t.Run("should accept unique contiguous orders", func(t *testing.T) {
		require.NoError(t, routing.ValidateStops(threeStops()))
	})

	t.Run("should reject empty sequence", func(t *testing.T) {
		err := routing.ValidateStops(nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject duplicate ward", func(t *testing.T) {
		stops := []routing.Stop{
			{WardCode: "00101", Order: 1},
			{WardCode: "00101", Order: 2},
		}

		err := routing.ValidateStops(stops)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "appears more than once")
	})

	t.Run("should reject duplicate or non-positive orders", func(t *testing.T) {
		err := routing.ValidateStops([]routing.Stop{
			{WardCode: "00101", Order: 1},
			{WardCode: "00102", Order: 1},
		})
		require.Error(t, err)

		err = routing.ValidateStops([]routing.Stop{{WardCode: "00101", Order: 0}})
		require.Error(t, err)
	})

	t.Run("should reject gaps in the sequence", func(t *testing.T) {
		err := routing.ValidateStops([]routing.Stop{
			{WardCode: "00101", Order: 1},
			{WardCode: "00102", Order: 3},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not contiguous")
	})

	t.Run("should reject negative stop distance", func(t *testing.T) {
		distance := decimal.NewFromInt(-2)
		err := routing.ValidateStops([]routing.Stop{
			{WardCode: "00101", Order: 1, DistanceKm: &distance},
		})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative distance")
	})
}

func TestNewConsolidationRoute(t *testing.T) {
	t.Run("should create route with stops sorted by sequence", func(t *testing.T) {
		r, err := routing.NewConsolidationRoute(
			kernel.NewUUID(),
			"Hanoi North Loop",
			"01",
			threeStops(),
			kernel.NewUUID(),
			decimal.NewFromInt(500),
			nil,
		)

		require.NoError(t, err)
		assert.True(t, r.IsActive())
		assert.Equal(t, []string{"00101", "00102", "00103"}, r.WardCodes())
		assert.Equal(t, int64(0), r.OrdersConsolidated())
		assert.Nil(t, r.LastRunAt())
	})

	t.Run("should reject invalid stop sequence", func(t *testing.T) {
		_, err := routing.NewConsolidationRoute(
			kernel.NewUUID(),
			"Hanoi North Loop",
			"01",
			nil,
			kernel.NewUUID(),
			decimal.NewFromInt(500),
			nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject non-positive capacity", func(t *testing.T) {
		_, err := routing.NewConsolidationRoute(
			kernel.NewUUID(),
			"Hanoi North Loop",
			"01",
			threeStops(),
			kernel.NewUUID(),
			decimal.Zero,
			nil,
		)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestConsolidationRoute_ContainsWard(t *testing.T) {
	t.Run("should answer pure membership checks", func(t *testing.T) {
		r, err := routing.NewConsolidationRoute(
			kernel.NewUUID(), "Hanoi North Loop", "01", threeStops(),
			kernel.NewUUID(), decimal.NewFromInt(500), nil,
		)
		require.NoError(t, err)

		assert.True(t, r.ContainsWard("00102"))
		assert.False(t, r.ContainsWard("99999"))
	})
}

func TestConsolidationRoute_RecordRun(t *testing.T) {
	t.Run("should bump cumulative metrics", func(t *testing.T) {
		r, err := routing.NewConsolidationRoute(
			kernel.NewUUID(), "Hanoi North Loop", "01", threeStops(),
			kernel.NewUUID(), decimal.NewFromInt(500), nil,
		)
		require.NoError(t, err)

		require.NoError(t, r.RecordRun(12))
		require.NoError(t, r.RecordRun(8))

		assert.Equal(t, int64(20), r.OrdersConsolidated())
		require.NotNil(t, r.LastRunAt())
	})

	t.Run("should reject negative counts", func(t *testing.T) {
		r, err := routing.NewConsolidationRoute(
			kernel.NewUUID(), "Hanoi North Loop", "01", threeStops(),
			kernel.NewUUID(), decimal.NewFromInt(500), nil,
		)
		require.NoError(t, err)

		require.Error(t, r.RecordRun(-1))
	})
}

func TestRestoreConsolidationRoute(t *testing.T) {
	t.Run("should tolerate an empty stop list", func(t *testing.T) {
		r, err := routing.RestoreConsolidationRoute(
			kernel.NewUUID(), "Hanoi North Loop", "01", nil,
			kernel.NewUUID(), decimal.NewFromInt(500), nil,
			true, 100, nil, 3,
		)

		require.NoError(t, err)
		assert.Empty(t, r.WardCodes())
		assert.False(t, r.ContainsWard("00101"))
		assert.Equal(t, int64(100), r.OrdersConsolidated())
		assert.Equal(t, 3, r.Version())
	})
}
