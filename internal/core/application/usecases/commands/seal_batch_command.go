package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
)

var ErrSealBatchCommandIsNotConstructed = errors.New(
	"SealBatchCommand must be created via NewSealBatchCommand constructor",
)

// SealBatchCommand represents a request to close a batch to further orders
// and stage it for dispatch.
type SealBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewSealBatchCommand creates a command to seal one batch.
func NewSealBatchCommand(batchID kernel.UUID) (SealBatchCommand, error) {
	cmd := SealBatchCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := cmd.setBatchID(batchID); err != nil {
		return SealBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SealBatchCommand) Validate() error {
	return c.guard.Validate(ErrSealBatchCommandIsNotConstructed)
}

// BatchID returns the batch to seal.
func (c SealBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *SealBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}
