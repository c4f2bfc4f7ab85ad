package services_test

import (
	"testing"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consolidationRoute(t *testing.T, name string, wards ...string) *routing.ConsolidationRoute {
	t.Helper()

	stops := make([]routing.Stop, 0, len(wards))
	for i, ward := range wards {
		stops = append(stops, routing.Stop{
			WardCode:       ward,
			WardOfficeName: "Ward Post " + ward,
			Order:          i + 1,
		})
	}

	r, err := routing.NewConsolidationRoute(
		kernel.NewUUID(),
		name,
		"79",
		stops,
		kernel.NewUUID(),
		decimal.NewFromInt(500),
		nil,
	)
	require.NoError(t, err)

	return r
}

func TestConsolidationResolver_ResolveRoute(t *testing.T) {
	morning := consolidationRoute(t, "District 1 morning run", "26734", "26737", "26740")
	evening := consolidationRoute(t, "District 3 evening run", "26812", "26815")

	resolver, err := services.NewConsolidationResolver(
		[]*routing.ConsolidationRoute{morning, evening},
	)
	require.NoError(t, err)

	t.Run("should resolve a ward to its assigned route", func(t *testing.T) {
		got, resolveErr := resolver.ResolveRoute("26737")

		require.NoError(t, resolveErr)
		assert.True(t, got.ID().IsEqual(morning.ID()))
	})

	t.Run("should fail for an uncovered ward", func(t *testing.T) {
		_, resolveErr := resolver.ResolveRoute("99999")

		require.ErrorIs(t, resolveErr, services.ErrNoRouteAssigned)
	})

	t.Run("should skip deactivated routes", func(t *testing.T) {
		paused := consolidationRoute(t, "Paused run", "31303")
		paused.Deactivate()

		pausedResolver, newErr := services.NewConsolidationResolver(
			[]*routing.ConsolidationRoute{paused},
		)
		require.NoError(t, newErr)

		_, resolveErr := pausedResolver.ResolveRoute("31303")

		require.ErrorIs(t, resolveErr, services.ErrNoRouteAssigned)
	})
}

func TestConsolidationResolver_CheckWardExclusivity(t *testing.T) {
	morning := consolidationRoute(t, "District 1 morning run", "26734", "26737")

	resolver, err := services.NewConsolidationResolver(
		[]*routing.ConsolidationRoute{morning},
	)
	require.NoError(t, err)

	t.Run("should accept wards no active route claims", func(t *testing.T) {
		stops := []routing.Stop{
			{WardCode: "26900", WardOfficeName: "Ward Post 26900", Order: 1},
		}

		assert.NoError(t, resolver.CheckWardExclusivity(stops, nil))
	})

	t.Run("should reject a ward already claimed by another route", func(t *testing.T) {
		stops := []routing.Stop{
			{WardCode: "26737", WardOfficeName: "Ward Post 26737", Order: 1},
		}

		checkErr := resolver.CheckWardExclusivity(stops, nil)

		require.Error(t, checkErr)
		assert.Contains(t, checkErr.Error(), "26737")
	})

	t.Run("should ignore the route being edited", func(t *testing.T) {
		stops := []routing.Stop{
			{WardCode: "26737", WardOfficeName: "Ward Post 26737", Order: 1},
			{WardCode: "26900", WardOfficeName: "Ward Post 26900", Order: 2},
		}

		assert.NoError(t, resolver.CheckWardExclusivity(stops, morning))
	})
}

func TestConsolidationRoute_RecordRun(t *testing.T) {
	t.Run("should accumulate consolidated order counts", func(t *testing.T) {
		r := consolidationRoute(t, "District 1 morning run", "26734")

		require.NoError(t, r.RecordRun(12))
		require.NoError(t, r.RecordRun(8))

		assert.Equal(t, int64(20), r.OrdersConsolidated())
		require.NotNil(t, r.LastRunAt())
	})

	t.Run("should reject a negative order count", func(t *testing.T) {
		r := consolidationRoute(t, "District 1 morning run", "26734")

		assert.Error(t, r.RecordRun(-1))
	})
}
