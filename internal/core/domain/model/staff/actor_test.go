package staff_test

import (
	"testing"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/staff"
	"postal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewActor(t *testing.T) {
	t.Run("should create actor with valid parameters", func(t *testing.T) {
		id := kernel.NewUUID()
		officeID := kernel.NewUUID()

		actor, err := staff.NewActor(id, staff.HubManager, officeID)

		require.NoError(t, err)
		assert.True(t, actor.ID().IsEqual(id))
		assert.Equal(t, staff.HubManager, actor.Role())
		assert.True(t, actor.OfficeID().IsEqual(officeID))
		require.NoError(t, actor.Validate())
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		_, err := staff.NewActor(kernel.NewUUID(), staff.RoleUnknown, kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject zero-value actor", func(t *testing.T) {
		var actor staff.Actor
		require.ErrorIs(t, actor.Validate(), staff.ErrActorIsNotConstructed)
	})
}

func TestRole_ManagementScope(t *testing.T) {
	t.Run("should map roles to scopes", func(t *testing.T) {
		assert.Equal(t, staff.ScopeSystem, staff.SystemAdmin.ManagementScope())
		assert.Equal(t, staff.ScopeHub, staff.HubManager.ManagementScope())
		assert.Equal(t, staff.ScopeProvince, staff.BranchManager.ManagementScope())
		assert.Equal(t, staff.ScopeProvince, staff.ProvincePostManager.ManagementScope())
		assert.Equal(t, staff.ScopeWard, staff.WarehouseManager.ManagementScope())
		assert.Equal(t, staff.ScopeWard, staff.PostOfficeManager.ManagementScope())
		assert.Equal(t, staff.ScopeNone, staff.Clerk.ManagementScope())
		assert.Equal(t, staff.ScopeNone, staff.Shipper.ManagementScope())
	})
}
