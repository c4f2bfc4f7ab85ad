package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"
	"postal/internal/core/domain/model/staff"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand represents a request to move a shipment to the next
// stage of its lifecycle, recording a tracking history entry.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	target      order.Status
	description string
	location    string
	actor       staff.Actor

	guard kernel.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to advance a shipment's status
// on behalf of the given actor. The target must be a defined status; legality
// of the move itself is decided by the aggregate. Status scans are counter
// operations, so any staff actor qualifies; the actor is still required so
// every transition is attributable.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	description string,
	location string,
	actor staff.Actor,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(actor),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	cmd.description = description
	cmd.location = location

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the shipment to advance.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the requested status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

// Description returns the free-text note for the tracking history.
func (c TransitionOrderCommand) Description() string {
	return c.description
}

// Location returns where the scan happened.
func (c TransitionOrderCommand) Location() string {
	return c.location
}

// Actor returns the staff member recording the scan.
func (c TransitionOrderCommand) Actor() staff.Actor {
	return c.actor
}

func (c *TransitionOrderCommand) setActor(actor staff.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}
