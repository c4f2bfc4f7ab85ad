package order_test

import (
	"testing"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"
	"postal/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()

	o, err := order.NewOrder(
		kernel.NewUUID(),
		"VN123456789",
		kernel.NewUUID(),
		kernel.NewUUID(),
		decimal.NewFromFloat(2.5),
		30, 20, 10,
	)
	require.NoError(t, err)

	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		origin := kernel.NewUUID()
		destination := kernel.NewUUID()
		weight := decimal.NewFromFloat(1.75)

		o, err := order.NewOrder(id, "VN000000001", origin, destination, weight, 40, 30, 20)

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "VN000000001", o.TrackingNumber())
		assert.True(t, o.OriginOfficeID().IsEqual(origin))
		assert.True(t, o.DestinationOfficeID().IsEqual(destination))
		assert.True(t, o.WeightKg().Equal(weight))
		assert.Equal(t, order.Created, o.Status())
		assert.Nil(t, o.BatchID())
		assert.Equal(t, 0, o.Version())

		length, width, height := o.Dimensions()
		assert.Equal(t, 40, length)
		assert.Equal(t, 30, width)
		assert.Equal(t, 20, height)
	})

	t.Run("should record initial history entry", func(t *testing.T) {
		o := newTestOrder(t)

		history := o.History()
		require.Len(t, history, 1)
		assert.Equal(t, order.Created, history[0].Status)
		assert.False(t, history[0].Timestamp.IsZero())
	})

	t.Run("should reject invalid identifier", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.UUID{},
			"VN123456789",
			kernel.NewUUID(),
			kernel.NewUUID(),
			decimal.NewFromFloat(1.0),
			0, 0, 0,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject empty tracking number", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(),
			"   ",
			kernel.NewUUID(),
			kernel.NewUUID(),
			decimal.NewFromFloat(1.0),
			0, 0, 0,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject identical origin and destination", func(t *testing.T) {
		office := kernel.NewUUID()

		_, err := order.NewOrder(
			kernel.NewUUID(),
			"VN123456789",
			office,
			office,
			decimal.NewFromFloat(1.0),
			0, 0, 0,
		)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "origin and destination offices must differ")
	})

	t.Run("should reject non-positive weight", func(t *testing.T) {
		for _, weight := range []decimal.Decimal{decimal.Zero, decimal.NewFromFloat(-0.5)} {
			_, err := order.NewOrder(
				kernel.NewUUID(),
				"VN123456789",
				kernel.NewUUID(),
				kernel.NewUUID(),
				weight,
				0, 0, 0,
			)

			require.Error(t, err)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		}
	})

	t.Run("should reject negative dimensions", func(t *testing.T) {
		_, err := order.NewOrder(
			kernel.NewUUID(),
			"VN123456789",
			kernel.NewUUID(),
			kernel.NewUUID(),
			decimal.NewFromFloat(1.0),
			-1, 20, 10,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should restore order from persisted state", func(t *testing.T) {
		id := kernel.NewUUID()
		batchID := kernel.NewUUID()
		createdAt := time.Now().UTC().Add(-2 * time.Hour)
		history := []order.StatusChange{
			{Status: order.Created, Timestamp: createdAt},
			{Status: order.AtOriginOffice, Timestamp: createdAt.Add(time.Hour)},
		}

		o, err := order.RestoreOrder(
			id,
			"VN987654321",
			kernel.NewUUID(),
			kernel.NewUUID(),
			decimal.NewFromFloat(3.2),
			25, 25, 25,
			order.AtOriginOffice,
			history,
			&batchID,
			createdAt,
			4,
		)

		require.NoError(t, err)
		assert.Equal(t, order.AtOriginOffice, o.Status())
		assert.Len(t, o.History(), 2)
		require.NotNil(t, o.BatchID())
		assert.True(t, o.BatchID().IsEqual(batchID))
		assert.Equal(t, createdAt, o.CreatedAt())
		assert.Equal(t, 4, o.Version())
	})

	t.Run("should reject invalid status", func(t *testing.T) {
		_, err := order.RestoreOrder(
			kernel.NewUUID(),
			"VN987654321",
			kernel.NewUUID(),
			kernel.NewUUID(),
			decimal.NewFromFloat(3.2),
			0, 0, 0,
			order.Unknown,
			nil,
			nil,
			time.Now(),
			0,
		)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should validate constructed order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.Validate())
	})

	t.Run("should reject zero-value order", func(t *testing.T) {
		var o order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})

	t.Run("should reject nil order", func(t *testing.T) {
		var o *order.Order
		require.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)
	})
}

func TestOrder_TransitionTo(t *testing.T) {
	t.Run("should append history entry on transition", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.TransitionTo(order.AtOriginOffice, "received at counter", "Ward Office 00001")

		require.NoError(t, err)
		assert.Equal(t, order.AtOriginOffice, o.Status())

		history := o.History()
		require.Len(t, history, 2)
		assert.Equal(t, order.AtOriginOffice, history[1].Status)
		assert.Equal(t, "received at counter", history[1].Description)
		assert.Equal(t, "Ward Office 00001", history[1].Location)
	})

	t.Run("should keep history timestamps monotonic", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.TransitionTo(order.AtOriginOffice, "", ""))
		require.NoError(t, o.TransitionTo(order.SortedAtOrigin, "", ""))

		history := o.History()
		for i := 1; i < len(history); i++ {
			assert.False(t, history[i].Timestamp.Before(history[i-1].Timestamp))
		}
	})

	t.Run("should fail on illegal edge without mutating state", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.TransitionTo(order.Delivered, "", "")

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Equal(t, order.Created, o.Status())
		assert.Len(t, o.History(), 1)
	})

	t.Run("should fail when the same transition is requested twice", func(t *testing.T) {
		o := newTestOrder(t)

		require.NoError(t, o.TransitionTo(order.AtOriginOffice, "", ""))
		err := o.TransitionTo(order.AtOriginOffice, "", "")

		require.ErrorIs(t, err, order.ErrIllegalTransition)
		assert.Len(t, o.History(), 2)
	})

	t.Run("should produce a legal walk of the lifecycle graph", func(t *testing.T) {
		o := newTestOrder(t)

		path := []order.Status{
			order.PendingPickup,
			order.PickedUp,
			order.AtOriginOffice,
			order.SortedAtOrigin,
			order.InTransitToHub,
			order.OnHold,
			order.InTransitToHub,
			order.AtHub,
			order.InTransitToDestination,
			order.AtDestinationHub,
			order.InTransitToOffice,
			order.AtDestinationOffice,
			order.OutForDelivery,
			order.DeliveryFailed,
			order.OutForDelivery,
			order.Delivered,
		}
		for _, next := range path {
			require.NoError(t, o.TransitionTo(next, "", ""))
		}

		history := o.History()
		require.Len(t, history, len(path)+1)
		for i := 1; i < len(history); i++ {
			assert.True(t, history[i-1].Status.CanTransitionTo(history[i].Status),
				"history edge %s -> %s must be legal", history[i-1].Status, history[i].Status)
		}
	})
}

func TestOrder_BatchMembership(t *testing.T) {
	t.Run("should assign unbatched order at origin office", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.TransitionTo(order.AtOriginOffice, "", ""))

		batchID := kernel.NewUUID()
		err := o.AssignToBatch(batchID)

		require.NoError(t, err)
		require.NotNil(t, o.BatchID())
		assert.True(t, o.BatchID().IsEqual(batchID))
	})

	t.Run("should reject double assignment", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.TransitionTo(order.AtOriginOffice, "", ""))
		require.NoError(t, o.AssignToBatch(kernel.NewUUID()))

		err := o.AssignToBatch(kernel.NewUUID())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "already assigned")
	})

	t.Run("should reject assignment before arrival at origin office", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.AssignToBatch(kernel.NewUUID())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid status to join a batch")
	})

	t.Run("should release batched order", func(t *testing.T) {
		o := newTestOrder(t)
		require.NoError(t, o.TransitionTo(order.AtOriginOffice, "", ""))
		require.NoError(t, o.AssignToBatch(kernel.NewUUID()))

		require.NoError(t, o.ReleaseFromBatch())
		assert.Nil(t, o.BatchID())
	})

	t.Run("should reject release of unbatched order", func(t *testing.T) {
		o := newTestOrder(t)

		err := o.ReleaseFromBatch()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "not assigned to a batch")
	})
}

func TestOrder_IsEqual(t *testing.T) {
	t.Run("should compare orders by identity", func(t *testing.T) {
		o1 := newTestOrder(t)
		o2 := newTestOrder(t)

		assert.False(t, o1.IsEqual(o2))
		assert.True(t, o1.IsEqual(o1))
		assert.False(t, o1.IsEqual(nil))
	})
}
