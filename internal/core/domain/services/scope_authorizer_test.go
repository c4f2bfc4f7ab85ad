package services_test

import (
	"testing"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/office"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/model/staff"
	"postal/internal/core/domain/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// authorizerFixture is a minimal two-province slice of the national
// hierarchy: one hub over province 79, a second hub over province 01.
type authorizerFixture struct {
	hubSouth      *office.Office
	hubNorth      *office.Office
	provincePost  *office.Office // province 79, under hubSouth
	provinceOther *office.Office // province 01, under hubNorth
	wardPost      *office.Office // ward 26734, province 79
	wardOther     *office.Office // ward 00088, province 01
	authorizer    services.ScopeAuthorizer
}

func newAuthorizerFixture(t *testing.T) authorizerFixture {
	t.Helper()

	hubSouth, err := office.NewOffice(
		kernel.NewUUID(), "HUB-SG", "Southern Regional Hub", office.RegionalHub, nil, "", "",
	)
	require.NoError(t, err)

	hubNorth, err := office.NewOffice(
		kernel.NewUUID(), "HUB-HN", "Northern Regional Hub", office.RegionalHub, nil, "", "",
	)
	require.NoError(t, err)

	hubSouthID := hubSouth.ID()
	provincePost, err := office.NewOffice(
		kernel.NewUUID(), "PP-79", "HCMC Province Post", office.ProvincePost, &hubSouthID, "", "79",
	)
	require.NoError(t, err)

	hubNorthID := hubNorth.ID()
	provinceOther, err := office.NewOffice(
		kernel.NewUUID(), "PP-01", "Hanoi Province Post", office.ProvincePost, &hubNorthID, "", "01",
	)
	require.NoError(t, err)

	provincePostID := provincePost.ID()
	wardPost, err := office.NewOffice(
		kernel.NewUUID(), "WP-26734", "Ben Nghe Ward Post", office.WardPost, &provincePostID, "26734", "79",
	)
	require.NoError(t, err)

	provinceOtherID := provinceOther.ID()
	wardOther, err := office.NewOffice(
		kernel.NewUUID(), "WP-00088", "Hoan Kiem Ward Post", office.WardPost, &provinceOtherID, "00088", "01",
	)
	require.NoError(t, err)

	directory, err := services.NewOfficeDirectory([]*office.Office{
		hubSouth, hubNorth, provincePost, provinceOther, wardPost, wardOther,
	})
	require.NoError(t, err)

	return authorizerFixture{
		hubSouth:      hubSouth,
		hubNorth:      hubNorth,
		provincePost:  provincePost,
		provinceOther: provinceOther,
		wardPost:      wardPost,
		wardOther:     wardOther,
		authorizer:    services.NewScopeAuthorizer(directory),
	}
}

func newActor(t *testing.T, role staff.Role, officeID kernel.UUID) staff.Actor {
	t.Helper()

	actor, err := staff.NewActor(kernel.NewUUID(), role, officeID)
	require.NoError(t, err)

	return actor
}

func TestScopeAuthorizer_CanManageOffice(t *testing.T) {
	f := newAuthorizerFixture(t)

	t.Run("should let a system admin manage any office", func(t *testing.T) {
		admin := newActor(t, staff.SystemAdmin, f.hubNorth.ID())

		for _, target := range []kernel.UUID{f.hubSouth.ID(), f.provincePost.ID(), f.wardOther.ID()} {
			ok, err := f.authorizer.CanManageOffice(admin, target)
			require.NoError(t, err)
			assert.True(t, ok)
		}
	})

	t.Run("should scope a province manager to their own province", func(t *testing.T) {
		manager := newActor(t, staff.ProvincePostManager, f.provincePost.ID())

		ok, err := f.authorizer.CanManageOffice(manager, f.wardPost.ID())
		require.NoError(t, err)
		assert.True(t, ok, "ward office in province 79")

		ok, err = f.authorizer.CanManageOffice(manager, f.wardOther.ID())
		require.NoError(t, err)
		assert.False(t, ok, "ward office in province 01")
	})

	t.Run("should scope a ward manager to their own ward", func(t *testing.T) {
		manager := newActor(t, staff.PostOfficeManager, f.wardPost.ID())

		ok, err := f.authorizer.CanManageOffice(manager, f.wardPost.ID())
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.authorizer.CanManageOffice(manager, f.wardOther.ID())
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = f.authorizer.CanManageOffice(manager, f.provincePost.ID())
		require.NoError(t, err)
		assert.False(t, ok, "ward scope never reaches up the hierarchy")
	})

	t.Run("should let a hub manager manage descendants only", func(t *testing.T) {
		manager := newActor(t, staff.HubManager, f.hubSouth.ID())

		ok, err := f.authorizer.CanManageOffice(manager, f.hubSouth.ID())
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.authorizer.CanManageOffice(manager, f.wardPost.ID())
		require.NoError(t, err)
		assert.True(t, ok, "ward post descends from the southern hub")

		ok, err = f.authorizer.CanManageOffice(manager, f.provinceOther.ID())
		require.NoError(t, err)
		assert.False(t, ok, "province 01 hangs off the northern hub")
	})

	t.Run("should fail on an unknown target office", func(t *testing.T) {
		manager := newActor(t, staff.ProvincePostManager, f.provincePost.ID())

		_, err := f.authorizer.CanManageOffice(manager, kernel.NewUUID())

		require.Error(t, err)
	})
}

func TestScopeAuthorizer_CanManageProvince(t *testing.T) {
	f := newAuthorizerFixture(t)

	t.Run("should match the province manager's own code", func(t *testing.T) {
		manager := newActor(t, staff.ProvincePostManager, f.provincePost.ID())

		ok, err := f.authorizer.CanManageProvince(manager, "79")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.authorizer.CanManageProvince(manager, "01")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should let a hub manager cover provinces under the hub", func(t *testing.T) {
		manager := newActor(t, staff.HubManager, f.hubSouth.ID())

		ok, err := f.authorizer.CanManageProvince(manager, "79")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.authorizer.CanManageProvince(manager, "01")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should deny ward-scoped actors", func(t *testing.T) {
		clerk := newActor(t, staff.PostOfficeManager, f.wardPost.ID())

		ok, err := f.authorizer.CanManageProvince(clerk, "79")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestScopeAuthorizer_CanManageWard(t *testing.T) {
	f := newAuthorizerFixture(t)

	t.Run("should let a province manager cover wards in the province", func(t *testing.T) {
		manager := newActor(t, staff.ProvincePostManager, f.provincePost.ID())

		ok, err := f.authorizer.CanManageWard(manager, "26734")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.authorizer.CanManageWard(manager, "00088")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("should match the ward manager's own ward only", func(t *testing.T) {
		manager := newActor(t, staff.PostOfficeManager, f.wardPost.ID())

		ok, err := f.authorizer.CanManageWard(manager, "26734")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = f.authorizer.CanManageWard(manager, "00088")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestScopeAuthorizer_CanManageRoute(t *testing.T) {
	f := newAuthorizerFixture(t)

	route, err := routing.NewHubToHubRoute(
		kernel.NewUUID(),
		f.hubSouth.ID(),
		f.hubNorth.ID(),
		decimal.NewFromInt(1700),
		decimal.NewFromInt(32),
		1,
	)
	require.NoError(t, err)

	t.Run("should let a system admin manage any route", func(t *testing.T) {
		admin := newActor(t, staff.SystemAdmin, f.hubNorth.ID())

		ok, authErr := f.authorizer.CanManageRoute(admin, route)
		require.NoError(t, authErr)
		assert.True(t, ok)
	})

	t.Run("should let a hub manager manage routes touching their hub", func(t *testing.T) {
		manager := newActor(t, staff.HubManager, f.hubSouth.ID())

		ok, authErr := f.authorizer.CanManageRoute(manager, route)
		require.NoError(t, authErr)
		assert.True(t, ok)
	})

	t.Run("should deny a province manager", func(t *testing.T) {
		manager := newActor(t, staff.ProvincePostManager, f.provincePost.ID())

		ok, authErr := f.authorizer.CanManageRoute(manager, route)
		require.NoError(t, authErr)
		assert.False(t, ok)
	})

	t.Run("should wrap denial in the scope sentinel", func(t *testing.T) {
		manager := newActor(t, staff.ProvincePostManager, f.provincePost.ID())

		authErr := f.authorizer.AuthorizeRoute(manager, route)

		require.ErrorIs(t, authErr, services.ErrForbiddenScope)
	})
}

func TestScopeAuthorizer_CanCreateRoute(t *testing.T) {
	f := newAuthorizerFixture(t)

	t.Run("should let a system admin create routes anywhere", func(t *testing.T) {
		admin := newActor(t, staff.SystemAdmin, f.hubNorth.ID())

		ok, err := f.authorizer.CanCreateRoute(admin, f.hubSouth.ID())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("should let a hub manager create routes from their own hub", func(t *testing.T) {
		manager := newActor(t, staff.HubManager, f.hubSouth.ID())

		ok, err := f.authorizer.CanCreateRoute(manager, f.hubSouth.ID())
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("should deny a hub manager creating routes from another hub", func(t *testing.T) {
		manager := newActor(t, staff.HubManager, f.hubSouth.ID())

		ok, err := f.authorizer.CanCreateRoute(manager, f.hubNorth.ID())
		require.NoError(t, err)
		assert.False(t, ok)

		require.ErrorIs(t,
			f.authorizer.AuthorizeRouteCreation(manager, f.hubNorth.ID()),
			services.ErrForbiddenScope,
		)
	})

	t.Run("should deny narrower scopes", func(t *testing.T) {
		manager := newActor(t, staff.WarehouseManager, f.wardPost.ID())

		ok, err := f.authorizer.CanCreateRoute(manager, f.wardPost.ID())
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestOfficeDirectory(t *testing.T) {
	f := newAuthorizerFixture(t)

	directory, err := services.NewOfficeDirectory([]*office.Office{
		f.hubSouth, f.provincePost, f.wardPost,
	})
	require.NoError(t, err)

	t.Run("should find a registered office", func(t *testing.T) {
		got, getErr := directory.Get(f.wardPost.ID())

		require.NoError(t, getErr)
		assert.True(t, got.IsEqual(f.wardPost))
	})

	t.Run("should fail on an unregistered office", func(t *testing.T) {
		_, getErr := directory.Get(kernel.NewUUID())

		require.Error(t, getErr)
	})

	t.Run("should walk the parent chain for ancestry", func(t *testing.T) {
		ok, ancErr := directory.IsAncestorOf(f.hubSouth.ID(), f.wardPost.ID())
		require.NoError(t, ancErr)
		assert.True(t, ok)

		ok, ancErr = directory.IsAncestorOf(f.wardPost.ID(), f.hubSouth.ID())
		require.NoError(t, ancErr)
		assert.False(t, ok, "ancestry is directional")

		ok, ancErr = directory.IsAncestorOf(f.wardPost.ID(), f.wardPost.ID())
		require.NoError(t, ancErr)
		assert.False(t, ok, "an office is not its own ancestor")
	})

	t.Run("should expose ward and province codes", func(t *testing.T) {
		ward, codeErr := directory.WardCodeOf(f.wardPost.ID())
		require.NoError(t, codeErr)
		assert.Equal(t, "26734", ward)

		province, codeErr := directory.ProvinceCodeOf(f.wardPost.ID())
		require.NoError(t, codeErr)
		assert.Equal(t, "79", province)
	})
}
