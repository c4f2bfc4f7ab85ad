package services

import (
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/office"
	"postal/internal/pkg/errs"
)

// OfficeDirectory is an in-memory index of the office reference data,
// addressed by identifier. The office tree is represented as a flat map with
// parent references rather than live object pointers, keeping ancestry walks
// and cycle detection explicit.
//
// The directory is built once per operation from the repository snapshot; it
// never mutates the offices it holds.
type OfficeDirectory struct {
	offices map[kernel.UUID]*office.Office
}

// NewOfficeDirectory indexes the given offices by identifier.
func NewOfficeDirectory(offices []*office.Office) (*OfficeDirectory, error) {
	index := make(map[kernel.UUID]*office.Office, len(offices))
	for _, o := range offices {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		index[o.ID()] = o
	}

	return &OfficeDirectory{offices: index}, nil
}

// Get returns the office with the given identifier.
func (d *OfficeDirectory) Get(id kernel.UUID) (*office.Office, error) {
	o, ok := d.offices[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("officeID", id.String())
	}
	return o, nil
}

// WardCodeOf resolves an office to its ward code. Offices above ward level
// have no ward code; the empty string is returned for them.
func (d *OfficeDirectory) WardCodeOf(id kernel.UUID) (string, error) {
	o, err := d.Get(id)
	if err != nil {
		return "", err
	}
	return o.WardCode(), nil
}

// ProvinceCodeOf resolves an office to its province code via its ward or
// province scope. Hubs have no province code; the empty string is returned.
func (d *OfficeDirectory) ProvinceCodeOf(id kernel.UUID) (string, error) {
	o, err := d.Get(id)
	if err != nil {
		return "", err
	}
	return o.ProvinceCode(), nil
}

// IsAncestorOf reports whether ancestorID appears strictly above officeID in
// the parent chain. An office is not its own ancestor. The walk is bounded by
// the directory size, so a corrupt cyclic chain terminates instead of looping.
func (d *OfficeDirectory) IsAncestorOf(ancestorID, officeID kernel.UUID) (bool, error) {
	current, err := d.Get(officeID)
	if err != nil {
		return false, err
	}

	for steps := 0; steps < len(d.offices); steps++ {
		parentID := current.ParentID()
		if parentID == nil {
			return false, nil
		}
		if parentID.IsEqual(ancestorID) {
			return true, nil
		}

		current, err = d.Get(*parentID)
		if err != nil {
			return false, err
		}
	}

	return false, nil
}
