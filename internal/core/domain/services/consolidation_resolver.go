package services

import (
	"errors"
	"fmt"

	"postal/internal/core/domain/model/routing"
	"postal/internal/pkg/errs"
)

// ErrNoRouteAssigned is returned when a ward has no active consolidation
// route. Orders from such wards fall through to manual routing.
var ErrNoRouteAssigned = errors.New("no consolidation route assigned to ward")

// ConsolidationResolver maps ward offices to their fixed consolidation route.
// Assignment is static: each ward belongs to at most one active route at a
// time, which the resolver enforces at write time via CheckWardExclusivity
// and relies on at read time.
type ConsolidationResolver struct {
	routes []*routing.ConsolidationRoute
}

// NewConsolidationResolver creates a resolver over the given route snapshot.
func NewConsolidationResolver(routes []*routing.ConsolidationRoute) (*ConsolidationResolver, error) {
	for _, r := range routes {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	return &ConsolidationResolver{routes: routes}, nil
}

// ResolveRoute returns the active consolidation route whose stop list contains
// the ward, or an error wrapping ErrNoRouteAssigned.
func (r *ConsolidationResolver) ResolveRoute(wardCode string) (*routing.ConsolidationRoute, error) {
	for _, route := range r.routes {
		if route.IsActive() && route.ContainsWard(wardCode) {
			return route, nil
		}
	}
	return nil, fmt.Errorf("%w: ward %s", ErrNoRouteAssigned, wardCode)
}

// CheckWardExclusivity verifies at write time that none of the proposed stops
// is already owned by another active consolidation route. The route being
// edited itself is skipped by identifier.
func (r *ConsolidationResolver) CheckWardExclusivity(stops []routing.Stop, editedRoute *routing.ConsolidationRoute) error {
	for _, stop := range stops {
		for _, route := range r.routes {
			if !route.IsActive() {
				continue
			}
			if editedRoute != nil && route.ID().IsEqual(editedRoute.ID()) {
				continue
			}
			if route.ContainsWard(stop.WardCode) {
				return errs.NewValueIsInvalidErrorWithCause(
					"stops are invalid",
					fmt.Errorf("ward %s is already assigned to active route %s", stop.WardCode, route.Name()),
				)
			}
		}
	}
	return nil
}
