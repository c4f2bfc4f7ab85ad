package services

import (
	"errors"
	"fmt"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/model/staff"
)

// ErrForbiddenScope is returned when an actor's role and assigned office do
// not cover the target of a management operation. Authorization failures are
// always surfaced, never retried and never silently downgraded.
var ErrForbiddenScope = errors.New("actor scope does not cover target")

// ScopeAuthorizer evaluates whether an actor may manage a given office,
// province, ward or transfer route, using the office hierarchy and each
// office's geographic scope.
//
// Decision rules per role scope:
//   - system: always allowed
//   - hub: allowed iff the actor's office is the target or a proper ancestor
//     of the target in the office parent chain
//   - province: allowed iff both offices resolve to the same province code
//   - ward: allowed iff both offices resolve to the same ward code
//   - none: never allowed
//
// Route management is keyed on the route's two endpoint hubs instead of the
// parent chain: a hub-scoped actor may manage a route iff their office is one
// of the two connected endpoints.
type ScopeAuthorizer struct {
	directory *OfficeDirectory
}

// NewScopeAuthorizer creates a ScopeAuthorizer over the given office directory.
func NewScopeAuthorizer(directory *OfficeDirectory) ScopeAuthorizer {
	return ScopeAuthorizer{directory: directory}
}

// CanManageOffice reports whether the actor may manage the target office.
func (a ScopeAuthorizer) CanManageOffice(actor staff.Actor, targetOfficeID kernel.UUID) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, err
	}

	switch actor.Role().ManagementScope() {
	case staff.ScopeSystem:
		return true, nil

	case staff.ScopeHub:
		if actor.OfficeID().IsEqual(targetOfficeID) {
			return true, nil
		}
		return a.directory.IsAncestorOf(actor.OfficeID(), targetOfficeID)

	case staff.ScopeProvince:
		actorProvince, err := a.directory.ProvinceCodeOf(actor.OfficeID())
		if err != nil {
			return false, err
		}
		targetProvince, err := a.directory.ProvinceCodeOf(targetOfficeID)
		if err != nil {
			return false, err
		}
		return actorProvince != "" && actorProvince == targetProvince, nil

	case staff.ScopeWard:
		actorWard, err := a.directory.WardCodeOf(actor.OfficeID())
		if err != nil {
			return false, err
		}
		targetWard, err := a.directory.WardCodeOf(targetOfficeID)
		if err != nil {
			return false, err
		}
		return actorWard != "" && actorWard == targetWard, nil

	default:
		return false, nil
	}
}

// CanManageProvince reports whether the actor may manage resources of the
// given province.
func (a ScopeAuthorizer) CanManageProvince(actor staff.Actor, provinceCode string) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, err
	}

	switch actor.Role().ManagementScope() {
	case staff.ScopeSystem:
		return true, nil
	case staff.ScopeHub:
		// hubs carry no province of their own; a hub manager covers a
		// province iff some office of that province sits beneath the hub
		return a.hubCoversProvince(actor.OfficeID(), provinceCode)
	case staff.ScopeProvince:
		actorProvince, err := a.directory.ProvinceCodeOf(actor.OfficeID())
		if err != nil {
			return false, err
		}
		return actorProvince != "" && actorProvince == provinceCode, nil
	default:
		return false, nil
	}
}

// CanManageWard reports whether the actor may manage resources of the given ward.
func (a ScopeAuthorizer) CanManageWard(actor staff.Actor, wardCode string) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, err
	}

	switch actor.Role().ManagementScope() {
	case staff.ScopeSystem:
		return true, nil
	case staff.ScopeWard:
		actorWard, err := a.directory.WardCodeOf(actor.OfficeID())
		if err != nil {
			return false, err
		}
		return actorWard != "" && actorWard == wardCode, nil
	case staff.ScopeProvince:
		actorProvince, err := a.directory.ProvinceCodeOf(actor.OfficeID())
		if err != nil {
			return false, err
		}
		wardProvince, ok := a.provinceOfWard(wardCode)
		return ok && actorProvince != "" && actorProvince == wardProvince, nil
	default:
		return false, nil
	}
}

// CanManageRoute reports whether the actor may manage the transfer route.
// System scope is always allowed; hub scope requires the actor's office to be
// one of the route's two endpoints; narrower scopes are never allowed.
func (a ScopeAuthorizer) CanManageRoute(actor staff.Actor, route *routing.TransferRoute) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, err
	}
	if err := route.Validate(); err != nil {
		return false, err
	}

	switch actor.Role().ManagementScope() {
	case staff.ScopeSystem:
		return true, nil
	case staff.ScopeHub:
		return route.ConnectsOffice(actor.OfficeID()), nil
	default:
		return false, nil
	}
}

// CanCreateRoute reports whether the actor may register a new transfer route
// starting at the given office. System scope is always allowed; hub scope
// requires the actor's office to be the route's from-endpoint; narrower
// scopes are never allowed.
func (a ScopeAuthorizer) CanCreateRoute(actor staff.Actor, fromOfficeID kernel.UUID) (bool, error) {
	if err := actor.Validate(); err != nil {
		return false, err
	}

	switch actor.Role().ManagementScope() {
	case staff.ScopeSystem:
		return true, nil
	case staff.ScopeHub:
		return actor.OfficeID().IsEqual(fromOfficeID), nil
	default:
		return false, nil
	}
}

// AuthorizeOffice is the error-returning form of CanManageOffice, used by
// command handlers to surface ForbiddenScope failures.
func (a ScopeAuthorizer) AuthorizeOffice(actor staff.Actor, targetOfficeID kernel.UUID) error {
	allowed, err := a.CanManageOffice(actor, targetOfficeID)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: actor %s (%s) on office %s", ErrForbiddenScope, actor.ID(), actor.Role(), targetOfficeID)
	}
	return nil
}

// AuthorizeRoute is the error-returning form of CanManageRoute.
func (a ScopeAuthorizer) AuthorizeRoute(actor staff.Actor, route *routing.TransferRoute) error {
	allowed, err := a.CanManageRoute(actor, route)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: actor %s (%s) on route %s", ErrForbiddenScope, actor.ID(), actor.Role(), route.ID())
	}
	return nil
}

// AuthorizeRouteCreation is the error-returning form of CanCreateRoute.
func (a ScopeAuthorizer) AuthorizeRouteCreation(actor staff.Actor, fromOfficeID kernel.UUID) error {
	allowed, err := a.CanCreateRoute(actor, fromOfficeID)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("%w: actor %s (%s) creating route from %s", ErrForbiddenScope, actor.ID(), actor.Role(), fromOfficeID)
	}
	return nil
}

// hubCoversProvince walks the directory looking for an office of the province
// that has the hub as an ancestor.
func (a ScopeAuthorizer) hubCoversProvince(hubOfficeID kernel.UUID, provinceCode string) (bool, error) {
	for id, o := range a.directory.offices {
		if o.ProvinceCode() != provinceCode {
			continue
		}
		covered, err := a.directory.IsAncestorOf(hubOfficeID, id)
		if err != nil {
			return false, err
		}
		if covered {
			return true, nil
		}
	}
	return false, nil
}

// provinceOfWard finds the province a ward belongs to via any office scoped to
// that ward.
func (a ScopeAuthorizer) provinceOfWard(wardCode string) (string, bool) {
	for _, o := range a.directory.offices {
		if o.WardCode() == wardCode {
			return o.ProvinceCode(), true
		}
	}
	return "", false
}
