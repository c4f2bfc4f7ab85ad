package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
)

var ErrDepartBatchCommandIsNotConstructed = errors.New(
	"DepartBatchCommand must be created via NewDepartBatchCommand constructor",
)

// DepartBatchCommand represents a request to put a sealed batch on the road.
type DepartBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewDepartBatchCommand creates a command to dispatch one sealed batch.
func NewDepartBatchCommand(batchID kernel.UUID) (DepartBatchCommand, error) {
	cmd := DepartBatchCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := cmd.setBatchID(batchID); err != nil {
		return DepartBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DepartBatchCommand) Validate() error {
	return c.guard.Validate(ErrDepartBatchCommandIsNotConstructed)
}

// BatchID returns the batch to dispatch.
func (c DepartBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *DepartBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}
