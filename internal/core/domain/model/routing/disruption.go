package routing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"
)

// ErrDisruptionIsNotConstructed is returned when a RouteDisruption instance
// was not created through a factory method.
var ErrDisruptionIsNotConstructed = errors.New("RouteDisruption must be created via NewRouteDisruption or RestoreRouteDisruption")

// DisruptionKind classifies why a transfer route was taken out of service.
type DisruptionKind int

const (
	// DisruptionKindUnknown represents an invalid or undefined kind.
	DisruptionKindUnknown DisruptionKind = iota

	// Weather covers storms, floods and other weather events.
	Weather

	// VehicleBreakdown covers transport equipment failures.
	VehicleBreakdown

	// RoadBlocked covers closed or impassable roads.
	RoadBlocked

	// Maintenance covers planned route maintenance windows.
	Maintenance

	// OtherDisruption covers everything else; the reason text carries the detail.
	OtherDisruption
)

func getDisruptionKindStrings() map[DisruptionKind]string {
	return map[DisruptionKind]string{
		DisruptionKindUnknown: "Unknown",
		Weather:               "Weather",
		VehicleBreakdown:      "VehicleBreakdown",
		RoadBlocked:           "RoadBlocked",
		Maintenance:           "Maintenance",
		OtherDisruption:       "Other",
	}
}

// Validate checks if the DisruptionKind value is one of the defined kinds.
func (k DisruptionKind) Validate() error {
	if _, ok := getDisruptionKindStrings()[k]; !ok || k == DisruptionKindUnknown {
		return errs.NewValueIsInvalidErrorWithCause("disruptionKind is invalid", fmt.Errorf("%d is not a valid disruption kind", k))
	}
	return nil
}

// String returns the human-readable name of the disruption kind.
// This method implements the fmt.Stringer interface.
func (k DisruptionKind) String() string {
	if str, ok := getDisruptionKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

// RouteDisruption is a temporary, reason-coded removal of a transfer route
// from path resolution. At most one active disruption exists per route at a
// time; while active, the owning edge is excluded from the routable set.
type RouteDisruption struct {
	id      kernel.UUID
	routeID kernel.UUID
	kind    DisruptionKind
	reason  string

	startAt       time.Time
	expectedEndAt *time.Time
	actualEndAt   *time.Time
	active        bool

	affectedBatchCount int
	affectedOrderCount int

	guard kernel.ConstructorGuard
}

// NewRouteDisruption creates an active disruption starting now.
//
// Parameters:
//   - id: Unique identifier for the disruption
//   - routeID: The transfer route being taken out of service
//   - kind: Why the route is disrupted
//   - reason: Free-text operator description
//   - expectedEndAt: Optional forecast of when the route reopens
func NewRouteDisruption(
	id kernel.UUID,
	routeID kernel.UUID,
	kind DisruptionKind,
	reason string,
	expectedEndAt *time.Time,
) (*RouteDisruption, error) {
	d := &RouteDisruption{
		startAt:       time.Now().UTC(),
		expectedEndAt: expectedEndAt,
		active:        true,
		guard:         kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setRouteID(routeID),
		d.setKind(kind),
		d.setReason(reason),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreRouteDisruption reconstructs a RouteDisruption from persistence.
func RestoreRouteDisruption(
	id kernel.UUID,
	routeID kernel.UUID,
	kind DisruptionKind,
	reason string,
	startAt time.Time,
	expectedEndAt *time.Time,
	actualEndAt *time.Time,
	active bool,
	affectedBatchCount int,
	affectedOrderCount int,
) (*RouteDisruption, error) {
	d := &RouteDisruption{
		startAt:            startAt,
		expectedEndAt:      expectedEndAt,
		actualEndAt:        actualEndAt,
		active:             active,
		affectedBatchCount: affectedBatchCount,
		affectedOrderCount: affectedOrderCount,
		guard:              kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setRouteID(routeID),
		d.setKind(kind),
		d.setReason(reason),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// Validate ensures the RouteDisruption instance was properly constructed through a factory method.
func (d *RouteDisruption) Validate() error {
	if d == nil {
		return ErrDisruptionIsNotConstructed
	}
	return d.guard.Validate(ErrDisruptionIsNotConstructed)
}

// ID returns the disruption's unique identifier.
func (d *RouteDisruption) ID() kernel.UUID {
	return d.id
}

// RouteID returns the disrupted transfer route.
func (d *RouteDisruption) RouteID() kernel.UUID {
	return d.routeID
}

// Kind returns the disruption classification.
func (d *RouteDisruption) Kind() DisruptionKind {
	return d.kind
}

// Reason returns the free-text operator description.
func (d *RouteDisruption) Reason() string {
	return d.reason
}

// StartAt returns when the disruption began.
func (d *RouteDisruption) StartAt() time.Time {
	return d.startAt
}

// ExpectedEndAt returns the forecast reopening time, or nil if none was given.
func (d *RouteDisruption) ExpectedEndAt() *time.Time {
	return d.expectedEndAt
}

// ActualEndAt returns when the disruption was resolved, or nil while active.
func (d *RouteDisruption) ActualEndAt() *time.Time {
	return d.actualEndAt
}

// IsActive reports whether the disruption still excludes its route from path resolution.
func (d *RouteDisruption) IsActive() bool {
	return d.active
}

// AffectedBatchCount returns the number of batches impacted when the
// disruption was declared.
func (d *RouteDisruption) AffectedBatchCount() int {
	return d.affectedBatchCount
}

// AffectedOrderCount returns the number of orders impacted when the
// disruption was declared.
func (d *RouteDisruption) AffectedOrderCount() int {
	return d.affectedOrderCount
}

// RecordImpact stores the batch/order counts computed when the disruption was declared.
func (d *RouteDisruption) RecordImpact(batchCount, orderCount int) error {
	if batchCount < 0 || orderCount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"impact counters are invalid",
			fmt.Errorf("batchCount=%d orderCount=%d must not be negative", batchCount, orderCount),
		)
	}

	d.affectedBatchCount = batchCount
	d.affectedOrderCount = orderCount
	return nil
}

// Resolve ends the disruption, stamping the actual end time. The owning edge
// returns to the routable set once the resolution is persisted. Resolving an
// already-resolved disruption fails.
func (d *RouteDisruption) Resolve() error {
	if !d.active {
		return errs.NewValueIsInvalidErrorWithCause(
			"disruption is invalid",
			fmt.Errorf("disruption %s is already resolved", d.id),
		)
	}

	now := time.Now().UTC()
	d.active = false
	d.actualEndAt = &now
	return nil
}

// setID validates and sets the disruption's unique identifier.
func (d *RouteDisruption) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

// setRouteID validates and sets the owning route reference.
func (d *RouteDisruption) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}
	d.routeID = routeID
	return nil
}

// setKind validates and sets the disruption classification.
func (d *RouteDisruption) setKind(kind DisruptionKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	d.kind = kind
	return nil
}

// setReason validates and sets the operator description.
func (d *RouteDisruption) setReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("reason")
	}
	d.reason = reason
	return nil
}
