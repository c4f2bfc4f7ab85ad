package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/staff"
)

var ErrResolveDisruptionCommandIsNotConstructed = errors.New(
	"ResolveDisruptionCommand must be created via NewResolveDisruptionCommand constructor",
)

// ResolveDisruptionCommand represents a request to close a disruption and
// return its route to service.
type ResolveDisruptionCommand struct { //nolint:recvcheck //using for validation
	disruptionID kernel.UUID
	actor        staff.Actor

	guard kernel.ConstructorGuard
}

// NewResolveDisruptionCommand creates a command to resolve one disruption on
// behalf of the given actor.
func NewResolveDisruptionCommand(disruptionID kernel.UUID, actor staff.Actor) (ResolveDisruptionCommand, error) {
	cmd := ResolveDisruptionCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDisruptionID(disruptionID),
		cmd.setActor(actor),
	); err != nil {
		return ResolveDisruptionCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveDisruptionCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisruptionCommandIsNotConstructed)
}

// DisruptionID returns the disruption to resolve.
func (c ResolveDisruptionCommand) DisruptionID() kernel.UUID {
	return c.disruptionID
}

// Actor returns the staff member closing the disruption.
func (c ResolveDisruptionCommand) Actor() staff.Actor {
	return c.actor
}

func (c *ResolveDisruptionCommand) setDisruptionID(disruptionID kernel.UUID) error {
	if err := disruptionID.Validate(); err != nil {
		return err
	}

	c.disruptionID = disruptionID
	return nil
}

func (c *ResolveDisruptionCommand) setActor(actor staff.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}
