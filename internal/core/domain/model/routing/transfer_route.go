package routing

import (
	"errors"
	"fmt"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrTransferRouteIsNotConstructed is returned when a TransferRoute instance
// was not created through one of its factory methods.
var ErrTransferRouteIsNotConstructed = errors.New("TransferRoute must be created via NewProvinceToHubRoute, NewHubToHubRoute or RestoreTransferRoute")

// RouteKind tags the two variants of a transfer route edge.
type RouteKind int

const (
	// RouteKindUnknown represents an invalid or undefined route kind.
	RouteKindUnknown RouteKind = iota

	// ProvinceToHub connects a province warehouse to its regional hub.
	// Routes of this kind carry a province-warehouse association.
	ProvinceToHub

	// HubToHub connects two regional hubs.
	HubToHub
)

func getRouteKindStrings() map[RouteKind]string {
	return map[RouteKind]string{
		RouteKindUnknown: "Unknown",
		ProvinceToHub:    "ProvinceToHub",
		HubToHub:         "HubToHub",
	}
}

// Validate checks if the RouteKind value is one of the defined kinds.
func (k RouteKind) Validate() error {
	if _, ok := getRouteKindStrings()[k]; !ok || k == RouteKindUnknown {
		return errs.NewValueIsInvalidErrorWithCause("routeKind is invalid", fmt.Errorf("%d is not a valid route kind", k))
	}
	return nil
}

// String returns the human-readable name of the route kind.
// This method implements the fmt.Stringer interface.
func (k RouteKind) String() string {
	if str, ok := getRouteKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// TransferRoute is a directed edge of the warehouse/hub network. Multiple
// parallel edges between the same node pair are allowed and disambiguated by
// priority (lower number wins, distance breaks ties).
//
// The two kinds share one representation with a kind tag: only ProvinceToHub
// routes carry a province-warehouse association.
type TransferRoute struct {
	id   kernel.UUID
	kind RouteKind

	fromOfficeID kernel.UUID
	toOfficeID   kernel.UUID

	// provinceWarehouseID is set only for ProvinceToHub routes
	provinceWarehouseID *kernel.UUID

	distanceKm   decimal.Decimal
	transitHours decimal.Decimal
	priority     int
	active       bool

	version int

	guard kernel.ConstructorGuard
}

// NewProvinceToHubRoute creates a transfer edge from a province warehouse to a
// regional hub. The province-warehouse association is mandatory for this kind.
func NewProvinceToHubRoute(
	id kernel.UUID,
	fromOfficeID kernel.UUID,
	toOfficeID kernel.UUID,
	provinceWarehouseID kernel.UUID,
	distanceKm decimal.Decimal,
	transitHours decimal.Decimal,
	priority int,
) (*TransferRoute, error) {
	if err := provinceWarehouseID.Validate(); err != nil {
		return nil, err
	}

	route, err := newTransferRoute(id, ProvinceToHub, fromOfficeID, toOfficeID, distanceKm, transitHours, priority)
	if err != nil {
		return nil, err
	}

	route.provinceWarehouseID = &provinceWarehouseID
	return route, nil
}

// NewHubToHubRoute creates a transfer edge between two regional hubs.
func NewHubToHubRoute(
	id kernel.UUID,
	fromOfficeID kernel.UUID,
	toOfficeID kernel.UUID,
	distanceKm decimal.Decimal,
	transitHours decimal.Decimal,
	priority int,
) (*TransferRoute, error) {
	return newTransferRoute(id, HubToHub, fromOfficeID, toOfficeID, distanceKm, transitHours, priority)
}

// RestoreTransferRoute reconstructs a TransferRoute from persistence.
// The kind/association invariant is re-validated.
func RestoreTransferRoute(
	id kernel.UUID,
	kind RouteKind,
	fromOfficeID kernel.UUID,
	toOfficeID kernel.UUID,
	provinceWarehouseID *kernel.UUID,
	distanceKm decimal.Decimal,
	transitHours decimal.Decimal,
	priority int,
	active bool,
	version int,
) (*TransferRoute, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}

	if kind == ProvinceToHub && provinceWarehouseID == nil {
		return nil, errs.NewValueIsRequiredError("provinceWarehouseID")
	}
	if kind == HubToHub && provinceWarehouseID != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"provinceWarehouseID is invalid",
			errors.New("hub-to-hub routes carry no province warehouse association"),
		)
	}

	route, err := newTransferRoute(id, kind, fromOfficeID, toOfficeID, distanceKm, transitHours, priority)
	if err != nil {
		return nil, err
	}

	if provinceWarehouseID != nil {
		if err = provinceWarehouseID.Validate(); err != nil {
			return nil, err
		}
		route.provinceWarehouseID = provinceWarehouseID
	}

	route.active = active
	route.version = version
	return route, nil
}

func newTransferRoute(
	id kernel.UUID,
	kind RouteKind,
	fromOfficeID kernel.UUID,
	toOfficeID kernel.UUID,
	distanceKm decimal.Decimal,
	transitHours decimal.Decimal,
	priority int,
) (*TransferRoute, error) {
	route := &TransferRoute{
		kind:   kind,
		active: true,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		route.setID(id),
		route.setEndpoints(fromOfficeID, toOfficeID),
		route.setDistance(distanceKm),
		route.setTransitHours(transitHours),
		route.setPriority(priority),
	); err != nil {
		return nil, err
	}

	return route, nil
}

// Validate ensures the TransferRoute instance was properly constructed through a factory method.
func (r *TransferRoute) Validate() error {
	if r == nil {
		return ErrTransferRouteIsNotConstructed
	}
	return r.guard.Validate(ErrTransferRouteIsNotConstructed)
}

// IsEqual compares two transfer routes by their unique identifiers.
func (r *TransferRoute) IsEqual(other *TransferRoute) bool {
	return other != nil && r.id.IsEqual(other.id)
}

// ID returns the route's unique identifier.
func (r *TransferRoute) ID() kernel.UUID {
	return r.id
}

// Kind returns the route's variant tag.
func (r *TransferRoute) Kind() RouteKind {
	return r.kind
}

// FromOfficeID returns the source node of the edge.
func (r *TransferRoute) FromOfficeID() kernel.UUID {
	return r.fromOfficeID
}

// ToOfficeID returns the destination node of the edge.
func (r *TransferRoute) ToOfficeID() kernel.UUID {
	return r.toOfficeID
}

// ProvinceWarehouseID returns the province-warehouse association.
// Returns nil for HubToHub routes.
func (r *TransferRoute) ProvinceWarehouseID() *kernel.UUID {
	return r.provinceWarehouseID
}

// DistanceKm returns the physical length of the edge.
func (r *TransferRoute) DistanceKm() decimal.Decimal {
	return r.distanceKm
}

// TransitHours returns the estimated transit time over the edge.
func (r *TransferRoute) TransitHours() decimal.Decimal {
	return r.transitHours
}

// Priority returns the edge's preference rank. Lower is preferred.
func (r *TransferRoute) Priority() int {
	return r.priority
}

// IsActive reports whether the edge participates in path resolution.
func (r *TransferRoute) IsActive() bool {
	return r.active
}

// Version returns the optimistic concurrency version of the route.
func (r *TransferRoute) Version() int {
	return r.version
}

// ConnectsOffice reports whether the office is one of the edge's two endpoints.
// Used by route-management authorization.
func (r *TransferRoute) ConnectsOffice(officeID kernel.UUID) bool {
	return r.fromOfficeID.IsEqual(officeID) || r.toOfficeID.IsEqual(officeID)
}

// Deactivate removes the edge from the routable set.
func (r *TransferRoute) Deactivate() {
	r.active = false
}

// Activate restores the edge to the routable set.
func (r *TransferRoute) Activate() {
	r.active = true
}

// Reversed returns a new inactive-history-free edge running in the opposite
// direction with the same metrics, used when creating bidirectional route
// pairs.
func (r *TransferRoute) Reversed(id kernel.UUID) (*TransferRoute, error) {
	if r.kind == ProvinceToHub {
		return RestoreTransferRoute(
			id, ProvinceToHub, r.toOfficeID, r.fromOfficeID, r.provinceWarehouseID,
			r.distanceKm, r.transitHours, r.priority, r.active, 0,
		)
	}
	return RestoreTransferRoute(
		id, HubToHub, r.toOfficeID, r.fromOfficeID, nil,
		r.distanceKm, r.transitHours, r.priority, r.active, 0,
	)
}

// setID validates and sets the route's unique identifier.
func (r *TransferRoute) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

// setEndpoints validates and sets the directed edge endpoints.
func (r *TransferRoute) setEndpoints(from, to kernel.UUID) error {
	if err := from.Validate(); err != nil {
		return err
	}
	if err := to.Validate(); err != nil {
		return err
	}
	if from.IsEqual(to) {
		return errs.NewValueIsInvalidErrorWithCause(
			"toOfficeID is invalid",
			errors.New("a transfer route cannot loop back to its source"),
		)
	}

	r.fromOfficeID = from
	r.toOfficeID = to
	return nil
}

// setDistance validates and sets the edge length. Distance must be positive.
func (r *TransferRoute) setDistance(distanceKm decimal.Decimal) error {
	if !distanceKm.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"distanceKm is invalid",
			fmt.Errorf("%s is not greater than 0", distanceKm),
		)
	}
	r.distanceKm = distanceKm
	return nil
}

// setTransitHours validates and sets the transit estimate. Must not be negative.
func (r *TransferRoute) setTransitHours(transitHours decimal.Decimal) error {
	if transitHours.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			"transitHours is invalid",
			fmt.Errorf("%s is negative", transitHours),
		)
	}
	r.transitHours = transitHours
	return nil
}

// setPriority validates and sets the preference rank. Must be positive.
func (r *TransferRoute) setPriority(priority int) error {
	if priority <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"priority is invalid",
			fmt.Errorf("%d is not greater than 0", priority),
		)
	}
	r.priority = priority
	return nil
}
