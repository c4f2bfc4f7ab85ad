package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
)

var ErrDistributeBatchCommandIsNotConstructed = errors.New(
	"DistributeBatchCommand must be created via NewDistributeBatchCommand constructor",
)

// DistributeBatchCommand represents a request to break an arrived batch
// apart, releasing its orders for onward processing.
type DistributeBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewDistributeBatchCommand creates a command to distribute one batch.
func NewDistributeBatchCommand(batchID kernel.UUID) (DistributeBatchCommand, error) {
	cmd := DistributeBatchCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := cmd.setBatchID(batchID); err != nil {
		return DistributeBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DistributeBatchCommand) Validate() error {
	return c.guard.Validate(ErrDistributeBatchCommandIsNotConstructed)
}

// BatchID returns the batch to distribute.
func (c DistributeBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *DistributeBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}
