package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"

	"github.com/shopspring/decimal"
)

var ErrCreateConsolidationRouteCommandIsNotConstructed = errors.New(
	"CreateConsolidationRouteCommand must be created via NewCreateConsolidationRouteCommand constructor",
)

// CreateConsolidationRouteCommand represents a request to register a ward
// pickup round feeding a province warehouse.
type CreateConsolidationRouteCommand struct { //nolint:recvcheck //using for validation
	routeID           kernel.UUID
	name              string
	provinceCode      string
	stops             []routing.Stop
	warehouseOfficeID kernel.UUID
	maxWeightKg       decimal.Decimal
	maxOrderCount     *int

	guard kernel.ConstructorGuard
}

// NewCreateConsolidationRouteCommand creates a command to register a
// consolidation route. Stop ordering and ward uniqueness inside the route
// are validated here; cross-route exclusivity is the handler's concern.
func NewCreateConsolidationRouteCommand(
	routeID kernel.UUID,
	name string,
	provinceCode string,
	stops []routing.Stop,
	warehouseOfficeID kernel.UUID,
	maxWeightKg decimal.Decimal,
	maxOrderCount *int,
) (CreateConsolidationRouteCommand, error) {
	cmd := CreateConsolidationRouteCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setName(name),
		cmd.setProvinceCode(provinceCode),
		cmd.setStops(stops),
		cmd.setWarehouseOfficeID(warehouseOfficeID),
		cmd.setCapacity(maxWeightKg, maxOrderCount),
	); err != nil {
		return CreateConsolidationRouteCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateConsolidationRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateConsolidationRouteCommandIsNotConstructed)
}

// RouteID returns the identifier for the new route.
func (c CreateConsolidationRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Name returns the route's display name.
func (c CreateConsolidationRouteCommand) Name() string {
	return c.name
}

// ProvinceCode returns the province the route belongs to.
func (c CreateConsolidationRouteCommand) ProvinceCode() string {
	return c.provinceCode
}

// Stops returns the ordered ward stops.
func (c CreateConsolidationRouteCommand) Stops() []routing.Stop {
	stops := make([]routing.Stop, len(c.stops))
	copy(stops, c.stops)
	return stops
}

// WarehouseOfficeID returns the province warehouse the route feeds.
func (c CreateConsolidationRouteCommand) WarehouseOfficeID() kernel.UUID {
	return c.warehouseOfficeID
}

// MaxWeightKg returns the per-run weight cap.
func (c CreateConsolidationRouteCommand) MaxWeightKg() decimal.Decimal {
	return c.maxWeightKg
}

// MaxOrderCount returns the per-run order cap, if any.
func (c CreateConsolidationRouteCommand) MaxOrderCount() *int {
	return c.maxOrderCount
}

func (c *CreateConsolidationRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *CreateConsolidationRouteCommand) setName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}

	c.name = name
	return nil
}

func (c *CreateConsolidationRouteCommand) setProvinceCode(provinceCode string) error {
	if provinceCode == "" {
		return errors.New("province code is required")
	}

	c.provinceCode = provinceCode
	return nil
}

func (c *CreateConsolidationRouteCommand) setStops(stops []routing.Stop) error {
	if err := routing.ValidateStops(stops); err != nil {
		return err
	}

	c.stops = make([]routing.Stop, len(stops))
	copy(c.stops, stops)
	return nil
}

func (c *CreateConsolidationRouteCommand) setWarehouseOfficeID(warehouseOfficeID kernel.UUID) error {
	if err := warehouseOfficeID.Validate(); err != nil {
		return err
	}

	c.warehouseOfficeID = warehouseOfficeID
	return nil
}

func (c *CreateConsolidationRouteCommand) setCapacity(maxWeightKg decimal.Decimal, maxOrderCount *int) error {
	if !maxWeightKg.IsPositive() {
		return ErrWeightIsInvalid
	}
	if maxOrderCount != nil {
		if *maxOrderCount <= 0 {
			return errors.New("max order count must be greater than 0")
		}
		count := *maxOrderCount
		c.maxOrderCount = &count
	}

	c.maxWeightKg = maxWeightKg
	return nil
}
