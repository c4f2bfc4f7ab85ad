package routing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrConsolidationRouteIsNotConstructed is returned when a ConsolidationRoute
// instance was not created through a factory method.
var ErrConsolidationRouteIsNotConstructed = errors.New("ConsolidationRoute must be created via NewConsolidationRoute or RestoreConsolidationRoute")

// Stop is one ward-office stop on a consolidation route. Order values are
// unique, positive and contiguous within a route, starting at 1.
type Stop struct {
	WardCode       string
	WardOfficeName string
	Order          int
	DistanceKm     *decimal.Decimal
}

// ValidateStops checks a stop sequence at write time: at least one stop, no
// blank ward codes, no duplicate wards, and order values forming a contiguous
// 1..n sequence. Persisted sequences that later fail to decode degrade to an
// empty list at read time instead (see the persistence adapter); this
// validation exists so that such sequences are never written in the first
// place.
func ValidateStops(stops []Stop) error {
	if len(stops) == 0 {
		return errs.NewValueIsRequiredError("stops")
	}

	seenWards := make(map[string]bool, len(stops))
	seenOrders := make(map[int]bool, len(stops))

	for _, stop := range stops {
		if strings.TrimSpace(stop.WardCode) == "" {
			return errs.NewValueIsRequiredError("stop.wardCode")
		}
		if seenWards[stop.WardCode] {
			return errs.NewValueIsInvalidErrorWithCause(
				"stops are invalid",
				fmt.Errorf("ward %s appears more than once", stop.WardCode),
			)
		}
		seenWards[stop.WardCode] = true

		if stop.Order <= 0 || seenOrders[stop.Order] {
			return errs.NewValueIsInvalidErrorWithCause(
				"stops are invalid",
				fmt.Errorf("stop order %d is not a unique positive value", stop.Order),
			)
		}
		seenOrders[stop.Order] = true

		if stop.DistanceKm != nil && stop.DistanceKm.IsNegative() {
			return errs.NewValueIsInvalidErrorWithCause(
				"stops are invalid",
				fmt.Errorf("stop %s has negative distance", stop.WardCode),
			)
		}
	}

	for i := 1; i <= len(stops); i++ {
		if !seenOrders[i] {
			return errs.NewValueIsInvalidErrorWithCause(
				"stops are invalid",
				fmt.Errorf("stop order values are not contiguous: %d is missing", i),
			)
		}
	}

	return nil
}

// sortedStops returns a copy of the stops ordered by their sequence value.
func sortedStops(stops []Stop) []Stop {
	ordered := make([]Stop, len(stops))
	copy(ordered, stops)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Order < ordered[j-1].Order; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	return ordered
}

// ConsolidationRoute is a fixed, non-dynamic sequence of ward-office stops
// feeding into one province warehouse. Each ward belongs to at most one active
// consolidation route at a time; that exclusivity is enforced at write time by
// the route administration use cases, while this entity only answers
// membership queries.
type ConsolidationRoute struct {
	id           kernel.UUID
	name         string
	provinceCode string

	stops              []Stop
	warehouseOfficeID  kernel.UUID
	maxWeightKg        decimal.Decimal
	maxOrderCount      *int
	active             bool
	ordersConsolidated int64
	lastRunAt          *time.Time

	version int

	guard kernel.ConstructorGuard
}

// NewConsolidationRoute creates an active consolidation route with a validated
// stop sequence.
//
// Parameters:
//   - id: Unique identifier for the route
//   - name: Display name
//   - provinceCode: Owning province
//   - stops: Ordered ward stops (validated, stored sorted by sequence)
//   - warehouseOfficeID: The terminal province warehouse
//   - maxWeightKg: Per-run weight capacity (must be positive)
//   - maxOrderCount: Optional per-run order-count capacity
func NewConsolidationRoute(
	id kernel.UUID,
	name string,
	provinceCode string,
	stops []Stop,
	warehouseOfficeID kernel.UUID,
	maxWeightKg decimal.Decimal,
	maxOrderCount *int,
) (*ConsolidationRoute, error) {
	r := &ConsolidationRoute{
		active: true,
		guard:  kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setProvinceCode(provinceCode),
		r.setStops(stops),
		r.setWarehouseOfficeID(warehouseOfficeID),
		r.setCapacity(maxWeightKg, maxOrderCount),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// RestoreConsolidationRoute reconstructs a ConsolidationRoute from persistence.
// The stops argument may be empty when the persisted sequence failed to
// decode; resolution then simply finds no wards for this route.
func RestoreConsolidationRoute(
	id kernel.UUID,
	name string,
	provinceCode string,
	stops []Stop,
	warehouseOfficeID kernel.UUID,
	maxWeightKg decimal.Decimal,
	maxOrderCount *int,
	active bool,
	ordersConsolidated int64,
	lastRunAt *time.Time,
	version int,
) (*ConsolidationRoute, error) {
	r := &ConsolidationRoute{
		stops:              sortedStops(stops),
		active:             active,
		ordersConsolidated: ordersConsolidated,
		lastRunAt:          lastRunAt,
		version:            version,
		guard:              kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		r.setID(id),
		r.setName(name),
		r.setProvinceCode(provinceCode),
		r.setWarehouseOfficeID(warehouseOfficeID),
		r.setCapacity(maxWeightKg, maxOrderCount),
	); err != nil {
		return nil, err
	}

	return r, nil
}

// Validate ensures the ConsolidationRoute instance was properly constructed through a factory method.
func (r *ConsolidationRoute) Validate() error {
	if r == nil {
		return ErrConsolidationRouteIsNotConstructed
	}
	return r.guard.Validate(ErrConsolidationRouteIsNotConstructed)
}

// ID returns the route's unique identifier.
func (r *ConsolidationRoute) ID() kernel.UUID {
	return r.id
}

// Name returns the display name of the route.
func (r *ConsolidationRoute) Name() string {
	return r.name
}

// ProvinceCode returns the owning province.
func (r *ConsolidationRoute) ProvinceCode() string {
	return r.provinceCode
}

// Stops returns a copy of the ward stops sorted by sequence order.
func (r *ConsolidationRoute) Stops() []Stop {
	stops := make([]Stop, len(r.stops))
	copy(stops, r.stops)
	return stops
}

// WardCodes returns the ward codes of the stops in sequence order.
func (r *ConsolidationRoute) WardCodes() []string {
	codes := make([]string, 0, len(r.stops))
	for _, stop := range r.stops {
		codes = append(codes, stop.WardCode)
	}
	return codes
}

// ContainsWard reports whether the ward is a stop on this route.
func (r *ConsolidationRoute) ContainsWard(wardCode string) bool {
	for _, stop := range r.stops {
		if stop.WardCode == wardCode {
			return true
		}
	}
	return false
}

// WarehouseOfficeID returns the terminal province warehouse.
func (r *ConsolidationRoute) WarehouseOfficeID() kernel.UUID {
	return r.warehouseOfficeID
}

// MaxWeightKg returns the per-run weight capacity.
func (r *ConsolidationRoute) MaxWeightKg() decimal.Decimal {
	return r.maxWeightKg
}

// MaxOrderCount returns the optional per-run order-count capacity.
func (r *ConsolidationRoute) MaxOrderCount() *int {
	return r.maxOrderCount
}

// IsActive reports whether the route participates in ward resolution.
func (r *ConsolidationRoute) IsActive() bool {
	return r.active
}

// OrdersConsolidated returns the cumulative number of orders moved over this route.
func (r *ConsolidationRoute) OrdersConsolidated() int64 {
	return r.ordersConsolidated
}

// LastRunAt returns the time of the last consolidation run, or nil if never run.
func (r *ConsolidationRoute) LastRunAt() *time.Time {
	return r.lastRunAt
}

// Version returns the optimistic concurrency version of the route.
func (r *ConsolidationRoute) Version() int {
	return r.version
}

// RecordRun bumps the cumulative metrics after a consolidation run.
func (r *ConsolidationRoute) RecordRun(orderCount int) error {
	if orderCount < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderCount is invalid",
			fmt.Errorf("%d is negative", orderCount),
		)
	}

	now := time.Now().UTC()
	r.ordersConsolidated += int64(orderCount)
	r.lastRunAt = &now
	return nil
}

// Deactivate removes the route from ward resolution.
func (r *ConsolidationRoute) Deactivate() {
	r.active = false
}

// Activate restores the route to ward resolution.
func (r *ConsolidationRoute) Activate() {
	r.active = true
}

// setID validates and sets the route's unique identifier.
func (r *ConsolidationRoute) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	r.id = id
	return nil
}

// setName validates and sets the display name.
func (r *ConsolidationRoute) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	r.name = name
	return nil
}

// setProvinceCode validates and sets the owning province.
func (r *ConsolidationRoute) setProvinceCode(provinceCode string) error {
	if strings.TrimSpace(provinceCode) == "" {
		return errs.NewValueIsRequiredError("provinceCode")
	}
	r.provinceCode = provinceCode
	return nil
}

// setStops validates and sets the stop sequence, sorted by sequence order.
func (r *ConsolidationRoute) setStops(stops []Stop) error {
	if err := ValidateStops(stops); err != nil {
		return err
	}
	r.stops = sortedStops(stops)
	return nil
}

// setWarehouseOfficeID validates and sets the terminal warehouse reference.
func (r *ConsolidationRoute) setWarehouseOfficeID(warehouseOfficeID kernel.UUID) error {
	if err := warehouseOfficeID.Validate(); err != nil {
		return err
	}
	r.warehouseOfficeID = warehouseOfficeID
	return nil
}

// setCapacity validates and sets the per-run capacity limits.
func (r *ConsolidationRoute) setCapacity(maxWeightKg decimal.Decimal, maxOrderCount *int) error {
	if !maxWeightKg.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxWeightKg is invalid",
			fmt.Errorf("%s is not greater than 0", maxWeightKg),
		)
	}
	if maxOrderCount != nil && *maxOrderCount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxOrderCount is invalid",
			fmt.Errorf("%d is not greater than 0", *maxOrderCount),
		)
	}

	r.maxWeightKg = maxWeightKg
	r.maxOrderCount = maxOrderCount
	return nil
}
