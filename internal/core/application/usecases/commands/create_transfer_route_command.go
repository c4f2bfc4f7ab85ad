package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/model/staff"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateTransferRouteCommandIsNotConstructed = errors.New(
		"CreateTransferRouteCommand must be created via NewCreateTransferRouteCommand constructor",
	)
	ErrDistanceIsInvalid = errors.New("distance must be greater than 0")
	ErrPriorityIsInvalid = errors.New("priority must be greater than 0")
)

// CreateTransferRouteCommand represents a request to register a transfer
// edge in the network, optionally together with its reverse direction.
type CreateTransferRouteCommand struct { //nolint:recvcheck //using for validation
	routeID             kernel.UUID
	kind                routing.RouteKind
	fromOfficeID        kernel.UUID
	toOfficeID          kernel.UUID
	provinceWarehouseID *kernel.UUID
	distanceKm          decimal.Decimal
	transitHours        decimal.Decimal
	priority            int
	bidirectional       bool
	actor               staff.Actor

	guard kernel.ConstructorGuard
}

// NewCreateTransferRouteCommand creates a command to register a route on
// behalf of the given actor. A province-to-hub route carries the province
// warehouse it serves; a hub-to-hub route must not.
func NewCreateTransferRouteCommand(
	routeID kernel.UUID,
	kind routing.RouteKind,
	fromOfficeID kernel.UUID,
	toOfficeID kernel.UUID,
	provinceWarehouseID *kernel.UUID,
	distanceKm decimal.Decimal,
	transitHours decimal.Decimal,
	priority int,
	bidirectional bool,
	actor staff.Actor,
) (CreateTransferRouteCommand, error) {
	cmd := CreateTransferRouteCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setKind(kind, provinceWarehouseID),
		cmd.setEndpoints(fromOfficeID, toOfficeID),
		cmd.setMetrics(distanceKm, transitHours, priority),
		cmd.setActor(actor),
	); err != nil {
		return CreateTransferRouteCommand{}, err
	}

	cmd.bidirectional = bidirectional

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateTransferRouteCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransferRouteCommandIsNotConstructed)
}

// RouteID returns the identifier for the forward edge.
func (c CreateTransferRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Kind returns the route kind.
func (c CreateTransferRouteCommand) Kind() routing.RouteKind {
	return c.kind
}

// FromOfficeID returns the edge's starting node.
func (c CreateTransferRouteCommand) FromOfficeID() kernel.UUID {
	return c.fromOfficeID
}

// ToOfficeID returns the edge's ending node.
func (c CreateTransferRouteCommand) ToOfficeID() kernel.UUID {
	return c.toOfficeID
}

// ProvinceWarehouseID returns the served warehouse for province legs.
func (c CreateTransferRouteCommand) ProvinceWarehouseID() *kernel.UUID {
	return c.provinceWarehouseID
}

// DistanceKm returns the edge length in kilometers.
func (c CreateTransferRouteCommand) DistanceKm() decimal.Decimal {
	return c.distanceKm
}

// TransitHours returns the expected travel time.
func (c CreateTransferRouteCommand) TransitHours() decimal.Decimal {
	return c.transitHours
}

// Priority returns the dispatcher preference, lower first.
func (c CreateTransferRouteCommand) Priority() int {
	return c.priority
}

// Bidirectional reports whether the reverse edge is registered too.
func (c CreateTransferRouteCommand) Bidirectional() bool {
	return c.bidirectional
}

// Actor returns the staff member registering the route.
func (c CreateTransferRouteCommand) Actor() staff.Actor {
	return c.actor
}

func (c *CreateTransferRouteCommand) setActor(actor staff.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *CreateTransferRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *CreateTransferRouteCommand) setKind(kind routing.RouteKind, provinceWarehouseID *kernel.UUID) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	if kind == routing.ProvinceToHub && provinceWarehouseID == nil {
		return errors.New("province-to-hub routes require a province warehouse")
	}
	if kind == routing.HubToHub && provinceWarehouseID != nil {
		return errors.New("hub-to-hub routes carry no province warehouse")
	}
	if provinceWarehouseID != nil {
		if err := provinceWarehouseID.Validate(); err != nil {
			return err
		}
		id := *provinceWarehouseID
		c.provinceWarehouseID = &id
	}

	c.kind = kind
	return nil
}

func (c *CreateTransferRouteCommand) setEndpoints(fromOfficeID, toOfficeID kernel.UUID) error {
	if err := fromOfficeID.Validate(); err != nil {
		return err
	}
	if err := toOfficeID.Validate(); err != nil {
		return err
	}
	if fromOfficeID.IsEqual(toOfficeID) {
		return errors.New("route endpoints must differ")
	}

	c.fromOfficeID = fromOfficeID
	c.toOfficeID = toOfficeID
	return nil
}

func (c *CreateTransferRouteCommand) setMetrics(distanceKm, transitHours decimal.Decimal, priority int) error {
	if !distanceKm.IsPositive() {
		return ErrDistanceIsInvalid
	}
	if transitHours.IsNegative() {
		return errors.New("transit hours must not be negative")
	}
	if priority <= 0 {
		return ErrPriorityIsInvalid
	}

	c.distanceKm = distanceKm
	c.transitHours = transitHours
	c.priority = priority
	return nil
}
