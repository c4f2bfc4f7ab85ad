package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/services"
)

var ErrAutoBatchCommandIsNotConstructed = errors.New(
	"AutoBatchCommand must be created via NewAutoBatchCommand constructor",
)

// AutoBatchCommand represents a request to run the batch planner for one
// origin/destination office pair.
type AutoBatchCommand struct { //nolint:recvcheck //using for validation
	originOfficeID      kernel.UUID
	destinationOfficeID kernel.UUID
	policy              services.CapacityPolicy

	guard kernel.ConstructorGuard
}

// NewAutoBatchCommand creates a command for one planner run.
// The capacity policy is validated up front.
func NewAutoBatchCommand(
	originOfficeID kernel.UUID,
	destinationOfficeID kernel.UUID,
	policy services.CapacityPolicy,
) (AutoBatchCommand, error) {
	cmd := AutoBatchCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOffices(originOfficeID, destinationOfficeID),
		cmd.setPolicy(policy),
	); err != nil {
		return AutoBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoBatchCommand) Validate() error {
	return c.guard.Validate(ErrAutoBatchCommandIsNotConstructed)
}

// OriginOfficeID returns the office whose backlog is planned.
func (c AutoBatchCommand) OriginOfficeID() kernel.UUID {
	return c.originOfficeID
}

// DestinationOfficeID returns the destination the run is scoped to.
func (c AutoBatchCommand) DestinationOfficeID() kernel.UUID {
	return c.destinationOfficeID
}

// Policy returns the capacity policy for this run.
func (c AutoBatchCommand) Policy() services.CapacityPolicy {
	return c.policy
}

func (c *AutoBatchCommand) setOffices(originOfficeID, destinationOfficeID kernel.UUID) error {
	if err := originOfficeID.Validate(); err != nil {
		return err
	}
	if err := destinationOfficeID.Validate(); err != nil {
		return err
	}
	if originOfficeID.IsEqual(destinationOfficeID) {
		return ErrOfficesMustDiffer
	}

	c.originOfficeID = originOfficeID
	c.destinationOfficeID = destinationOfficeID
	return nil
}

func (c *AutoBatchCommand) setPolicy(policy services.CapacityPolicy) error {
	if err := policy.Validate(); err != nil {
		return err
	}

	c.policy = policy
	return nil
}
