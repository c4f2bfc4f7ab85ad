package office

import (
	"errors"
	"fmt"
	"strings"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"
)

// ErrOfficeIsNotConstructed is returned when an Office instance was not created
// through the NewOffice factory method.
var ErrOfficeIsNotConstructed = errors.New("Office must be created via NewOffice")

// Type classifies an office's position in the postal network hierarchy.
type Type int

const (
	// TypeUnknown represents an invalid or undefined office type.
	TypeUnknown Type = iota

	// WardPost is a ward-level post office where shipments enter and leave the network.
	WardPost

	// WardWarehouse is a ward-level storage point feeding a consolidation route.
	WardWarehouse

	// ProvincePost is a province-level post office.
	ProvincePost

	// ProvinceWarehouse is the terminal of a consolidation route and the
	// province-side endpoint of transfer routes.
	ProvinceWarehouse

	// RegionalHub is a top-level sorting center connecting provinces.
	RegionalHub
)

func getTypeStrings() map[Type]string {
	return map[Type]string{
		TypeUnknown:       "Unknown",
		WardPost:          "WardPost",
		WardWarehouse:     "WardWarehouse",
		ProvincePost:      "ProvincePost",
		ProvinceWarehouse: "ProvinceWarehouse",
		RegionalHub:       "RegionalHub",
	}
}

// Validate checks if the Type value is one of the defined office types.
func (t Type) Validate() error {
	if _, ok := getTypeStrings()[t]; !ok || t == TypeUnknown {
		return errs.NewValueIsInvalidErrorWithCause("officeType is invalid", fmt.Errorf("%d is not a valid office type", t))
	}
	return nil
}

// String returns the human-readable name of the office type.
// This method implements the fmt.Stringer interface.
func (t Type) String() string {
	if str, ok := getTypeStrings()[t]; ok {
		return str
	}
	return "Unknown"
}

// IsTransferNode reports whether offices of this type participate in the
// transfer route network as graph nodes.
func (t Type) IsTransferNode() bool {
	return t == ProvinceWarehouse || t == RegionalHub
}

// Office is a reference-data entity describing one node of the postal network:
// a ward post office or warehouse, a province office or warehouse, or a
// regional hub. Offices form a tree through their parent references; the
// parent chain is acyclic and terminates at a root-level office.
//
// Offices are shared read-only by the routing and authorization components of
// this core; they are created and maintained by an external administration
// surface.
type Office struct {
	id           kernel.UUID
	code         string
	name         string
	officeType   Type
	parentID     *kernel.UUID
	wardCode     string
	provinceCode string
	active       bool

	guard kernel.ConstructorGuard
}

// NewOffice creates an Office with validation.
//
// Parameters:
//   - id: Unique identifier for the office
//   - code: Short administrative office code (used in batch codes)
//   - name: Display name
//   - officeType: Position in the network hierarchy
//   - parentID: Optional parent office (nil for root-level hubs)
//   - wardCode: Owning ward (required for ward-level offices)
//   - provinceCode: Owning province (required for every non-hub office)
//
// Returns:
//   - *Office: The created office if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOffice(
	id kernel.UUID,
	code string,
	name string,
	officeType Type,
	parentID *kernel.UUID,
	wardCode string,
	provinceCode string,
) (*Office, error) {
	o := &Office{
		active: true,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCode(code),
		o.setName(name),
		o.setType(officeType),
		o.setParentID(parentID),
		o.setScope(officeType, wardCode, provinceCode),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOffice reconstructs an Office from persistence, including its active flag.
func RestoreOffice(
	id kernel.UUID,
	code string,
	name string,
	officeType Type,
	parentID *kernel.UUID,
	wardCode string,
	provinceCode string,
	active bool,
) (*Office, error) {
	o, err := NewOffice(id, code, name, officeType, parentID, wardCode, provinceCode)
	if err != nil {
		return nil, err
	}

	o.active = active
	return o, nil
}

// Validate ensures the Office instance was properly constructed through a factory method.
func (o *Office) Validate() error {
	if o == nil {
		return ErrOfficeIsNotConstructed
	}
	return o.guard.Validate(ErrOfficeIsNotConstructed)
}

// IsEqual compares two offices by their unique identifiers.
func (o *Office) IsEqual(other *Office) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the office's unique identifier.
func (o *Office) ID() kernel.UUID {
	return o.id
}

// Code returns the short administrative office code.
func (o *Office) Code() string {
	return o.code
}

// Name returns the display name of the office.
func (o *Office) Name() string {
	return o.name
}

// OfficeType returns the office's position in the network hierarchy.
func (o *Office) OfficeType() Type {
	return o.officeType
}

// ParentID returns the parent office reference, or nil for root-level offices.
func (o *Office) ParentID() *kernel.UUID {
	return o.parentID
}

// WardCode returns the owning ward code (empty for province-level offices and hubs).
func (o *Office) WardCode() string {
	return o.wardCode
}

// ProvinceCode returns the owning province code (empty for hubs).
func (o *Office) ProvinceCode() string {
	return o.provinceCode
}

// IsActive reports whether the office is operational.
func (o *Office) IsActive() bool {
	return o.active
}

// setID validates and sets the office's unique identifier.
func (o *Office) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setCode validates and sets the administrative office code.
func (o *Office) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("code")
	}
	o.code = code
	return nil
}

// setName validates and sets the display name.
func (o *Office) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	o.name = name
	return nil
}

// setType validates and sets the office type.
func (o *Office) setType(officeType Type) error {
	if err := officeType.Validate(); err != nil {
		return err
	}
	o.officeType = officeType
	return nil
}

// setParentID validates and sets the parent office reference.
func (o *Office) setParentID(parentID *kernel.UUID) error {
	if parentID == nil {
		return nil
	}
	if err := parentID.Validate(); err != nil {
		return err
	}
	o.parentID = parentID
	return nil
}

// setScope validates the geographic scope against the office type:
// ward-level offices need a ward and a province, province-level offices need a
// province, and hubs carry no geographic scope of their own.
func (o *Office) setScope(officeType Type, wardCode, provinceCode string) error {
	switch officeType {
	case WardPost, WardWarehouse:
		if strings.TrimSpace(wardCode) == "" {
			return errs.NewValueIsRequiredError("wardCode")
		}
		if strings.TrimSpace(provinceCode) == "" {
			return errs.NewValueIsRequiredError("provinceCode")
		}
	case ProvincePost, ProvinceWarehouse:
		if strings.TrimSpace(provinceCode) == "" {
			return errs.NewValueIsRequiredError("provinceCode")
		}
	case RegionalHub, TypeUnknown:
		// hubs span provinces; no scope required
	}

	o.wardCode = strings.TrimSpace(wardCode)
	o.provinceCode = strings.TrimSpace(provinceCode)
	return nil
}
