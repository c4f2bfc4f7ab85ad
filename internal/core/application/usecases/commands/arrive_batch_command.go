package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
)

var ErrArriveBatchCommandIsNotConstructed = errors.New(
	"ArriveBatchCommand must be created via NewArriveBatchCommand constructor",
)

// ArriveBatchCommand represents a request to register a batch's arrival at
// its destination office.
type ArriveBatchCommand struct { //nolint:recvcheck //using for validation
	batchID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewArriveBatchCommand creates a command to register one arrival.
func NewArriveBatchCommand(batchID kernel.UUID) (ArriveBatchCommand, error) {
	cmd := ArriveBatchCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := cmd.setBatchID(batchID); err != nil {
		return ArriveBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ArriveBatchCommand) Validate() error {
	return c.guard.Validate(ErrArriveBatchCommandIsNotConstructed)
}

// BatchID returns the arriving batch.
func (c ArriveBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

func (c *ArriveBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}
