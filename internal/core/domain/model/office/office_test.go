package office_test

import (
	"testing"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/office"
	"postal/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOffice(t *testing.T) {
	t.Run("should create ward office with full scope", func(t *testing.T) {
		id := kernel.NewUUID()
		parentID := kernel.NewUUID()

		o, err := office.NewOffice(id, "HN00101", "Ba Dinh Ward Post", office.WardPost, &parentID, "00101", "01")

		require.NoError(t, err)
		assert.True(t, o.ID().IsEqual(id))
		assert.Equal(t, "HN00101", o.Code())
		assert.Equal(t, office.WardPost, o.OfficeType())
		assert.Equal(t, "00101", o.WardCode())
		assert.Equal(t, "01", o.ProvinceCode())
		assert.True(t, o.IsActive())
		require.NotNil(t, o.ParentID())
		assert.True(t, o.ParentID().IsEqual(parentID))
	})

	t.Run("should create root hub without scope", func(t *testing.T) {
		o, err := office.NewOffice(kernel.NewUUID(), "HUB-N", "Northern Hub", office.RegionalHub, nil, "", "")

		require.NoError(t, err)
		assert.Nil(t, o.ParentID())
		assert.Empty(t, o.WardCode())
		assert.Empty(t, o.ProvinceCode())
	})

	t.Run("should require ward code for ward offices", func(t *testing.T) {
		_, err := office.NewOffice(kernel.NewUUID(), "HN00101", "Ward Post", office.WardPost, nil, "", "01")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should require province code for province offices", func(t *testing.T) {
		_, err := office.NewOffice(kernel.NewUUID(), "HN-WH", "Hanoi Warehouse", office.ProvinceWarehouse, nil, "", "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject blank code or name", func(t *testing.T) {
		_, err := office.NewOffice(kernel.NewUUID(), " ", "Ward Post", office.WardPost, nil, "00101", "01")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = office.NewOffice(kernel.NewUUID(), "HN00101", "", office.WardPost, nil, "00101", "01")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject unknown office type", func(t *testing.T) {
		_, err := office.NewOffice(kernel.NewUUID(), "HN00101", "Ward Post", office.TypeUnknown, nil, "00101", "01")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRestoreOffice(t *testing.T) {
	t.Run("should restore inactive office", func(t *testing.T) {
		o, err := office.RestoreOffice(kernel.NewUUID(), "HN00101", "Ward Post", office.WardPost, nil, "00101", "01", false)

		require.NoError(t, err)
		assert.False(t, o.IsActive())
	})
}

func TestType_IsTransferNode(t *testing.T) {
	t.Run("should classify transfer network nodes", func(t *testing.T) {
		assert.True(t, office.ProvinceWarehouse.IsTransferNode())
		assert.True(t, office.RegionalHub.IsTransferNode())
		assert.False(t, office.WardPost.IsTransferNode())
		assert.False(t, office.ProvincePost.IsTransferNode())
	})
}

func TestOffice_Validate(t *testing.T) {
	t.Run("should reject zero-value office", func(t *testing.T) {
		var o office.Office
		require.ErrorIs(t, o.Validate(), office.ErrOfficeIsNotConstructed)
	})
}
