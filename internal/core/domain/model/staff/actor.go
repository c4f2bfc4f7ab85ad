package staff

import (
	"errors"
	"fmt"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"
)

// ErrActorIsNotConstructed is returned when an Actor instance was not created
// through the NewActor factory method.
var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor")

// Scope is the jurisdiction breadth a role is authorized over.
type Scope int

const (
	// ScopeNone grants no management rights.
	ScopeNone Scope = iota

	// ScopeWard restricts management to offices in the actor's own ward.
	ScopeWard

	// ScopeProvince restricts management to offices in the actor's own province.
	ScopeProvince

	// ScopeHub restricts management to the actor's hub and its subtree.
	ScopeHub

	// ScopeSystem grants unconditional management rights.
	ScopeSystem
)

// Role identifies a staff member's function in the postal organization.
// The identity collaborator supplies the role together with the actor's
// assigned office; this core only maps it to a management scope.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// SystemAdmin administers the whole network.
	SystemAdmin

	// HubManager manages a regional hub and every office beneath it.
	HubManager

	// BranchManager manages the offices of one province.
	BranchManager

	// ProvincePostManager manages the post offices of one province.
	ProvincePostManager

	// WarehouseManager manages a single warehouse and its ward.
	WarehouseManager

	// PostOfficeManager manages a single ward post office.
	PostOfficeManager

	// Clerk performs counter operations without management rights.
	Clerk

	// Shipper is an external delivery partner without management rights.
	Shipper
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:         "Unknown",
		SystemAdmin:         "SystemAdmin",
		HubManager:          "HubManager",
		BranchManager:       "BranchManager",
		ProvincePostManager: "ProvincePostManager",
		WarehouseManager:    "WarehouseManager",
		PostOfficeManager:   "PostOfficeManager",
		Clerk:               "Clerk",
		Shipper:             "Shipper",
	}
}

// Validate checks if the Role value is one of the defined roles.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role is invalid", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// String returns the human-readable name of the role.
// This method implements the fmt.Stringer interface.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "Unknown"
}

// ManagementScope maps the role to its jurisdiction breadth.
func (r Role) ManagementScope() Scope {
	switch r {
	case SystemAdmin:
		return ScopeSystem
	case HubManager:
		return ScopeHub
	case BranchManager, ProvincePostManager:
		return ScopeProvince
	case WarehouseManager, PostOfficeManager:
		return ScopeWard
	default:
		return ScopeNone
	}
}

// Actor is an authenticated staff member as seen by the authorization checks:
// a role plus an assigned office. Credentials and identity are the
// authentication collaborator's concern; this value object never carries them.
type Actor struct {
	id       kernel.UUID
	role     Role
	officeID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewActor creates an Actor with validation.
func NewActor(id kernel.UUID, role Role, officeID kernel.UUID) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if err := officeID.Validate(); err != nil {
		return Actor{}, err
	}

	return Actor{
		id:       id,
		role:     role,
		officeID: officeID,
		guard:    kernel.NewConstructorGuard(),
	}, nil
}

// Validate ensures the Actor instance was properly constructed through NewActor.
func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

// ID returns the actor's unique identifier.
func (a Actor) ID() kernel.UUID {
	return a.id
}

// Role returns the actor's organizational role.
func (a Actor) Role() Role {
	return a.role
}

// OfficeID returns the actor's assigned office.
func (a Actor) OfficeID() kernel.UUID {
	return a.officeID
}
