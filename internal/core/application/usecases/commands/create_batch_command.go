package commands

import (
	"errors"

	"postal/internal/core/domain/model/batch"
	"postal/internal/core/domain/model/kernel"
)

var ErrCreateBatchCommandIsNotConstructed = errors.New(
	"CreateBatchCommand must be created via NewCreateBatchCommand constructor",
)

// CreateBatchCommand represents a request to open a dispatch batch between
// two offices with explicit capacity limits.
type CreateBatchCommand struct { //nolint:recvcheck //using for validation
	batchID             kernel.UUID
	originOfficeID      kernel.UUID
	destinationOfficeID kernel.UUID
	limits              batch.CapacityLimits

	guard kernel.ConstructorGuard
}

// NewCreateBatchCommand creates a command to open a batch manually.
// Capacity limits are validated up front so a handler never sees a batch
// that cannot hold a single parcel.
func NewCreateBatchCommand(
	batchID kernel.UUID,
	originOfficeID kernel.UUID,
	destinationOfficeID kernel.UUID,
	limits batch.CapacityLimits,
) (CreateBatchCommand, error) {
	cmd := CreateBatchCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchID(batchID),
		cmd.setOffices(originOfficeID, destinationOfficeID),
		cmd.setLimits(limits),
	); err != nil {
		return CreateBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateBatchCommandIsNotConstructed)
}

// BatchID returns the identifier for the new batch.
func (c CreateBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// OriginOfficeID returns the office assembling the batch.
func (c CreateBatchCommand) OriginOfficeID() kernel.UUID {
	return c.originOfficeID
}

// DestinationOfficeID returns the office the batch ships to.
func (c CreateBatchCommand) DestinationOfficeID() kernel.UUID {
	return c.destinationOfficeID
}

// Limits returns the batch capacity limits.
func (c CreateBatchCommand) Limits() batch.CapacityLimits {
	return c.limits
}

func (c *CreateBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *CreateBatchCommand) setOffices(originOfficeID, destinationOfficeID kernel.UUID) error {
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

func (c *CreateBatchCommand) setLimits(limits batch.CapacityLimits) error {
	if err := limits.Validate(); err != nil {
		return err
	}

	c.limits = limits
	return nil
}
