package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
)

var ErrCancelBatchCommandIsNotConstructed = errors.New(
	"CancelBatchCommand must be created via NewCancelBatchCommand constructor",
)

// CancelBatchCommand represents a request to abort a batch before dispatch,
// returning its orders to the unbatched pool.
type CancelBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewCancelBatchCommand creates a command to cancel one batch.
func NewCancelBatchCommand(batchID kernel.UUID) (CancelBatchCommand, error) {
	cmd := CancelBatchCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := cmd.setBatchID(batchID); err != nil {
		return CancelBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelBatchCommand) Validate() error {
	return c.guard.Validate(ErrCancelBatchCommandIsNotConstructed)
}

// BatchID returns the batch to cancel.
func (c CancelBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *CancelBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}
