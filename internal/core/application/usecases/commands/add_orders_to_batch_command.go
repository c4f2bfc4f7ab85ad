package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
)

var (
	ErrAddOrdersToBatchCommandIsNotConstructed = errors.New(
		"AddOrdersToBatchCommand must be created via NewAddOrdersToBatchCommand constructor",
	)
	ErrOrderIDsAreRequired = errors.New("at least one order ID is required")
)

// AddOrdersToBatchCommand represents a request to place specific orders into
// an open batch, bypassing the automatic planner.
type AddOrdersToBatchCommand struct { //nolint:recvcheck //using for validation
	batchID  kernel.UUID
	orderIDs []kernel.UUID

	guard kernel.ConstructorGuard
}

// NewAddOrdersToBatchCommand creates a command to add orders to a batch.
// The order list must be non-empty and free of duplicates.
func NewAddOrdersToBatchCommand(
	batchID kernel.UUID,
	orderIDs []kernel.UUID,
) (AddOrdersToBatchCommand, error) {
	cmd := AddOrdersToBatchCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setBatchID(batchID),
		cmd.setOrderIDs(orderIDs),
	); err != nil {
		return AddOrdersToBatchCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrdersToBatchCommand) Validate() error {
	return c.guard.Validate(ErrAddOrdersToBatchCommandIsNotConstructed)
}

// BatchID returns the target batch.
func (c AddOrdersToBatchCommand) BatchID() kernel.UUID {
	return c.batchID
}

// OrderIDs returns the orders to place.
func (c AddOrdersToBatchCommand) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(c.orderIDs))
	copy(ids, c.orderIDs)
	return ids
}

func (c *AddOrdersToBatchCommand) setBatchID(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	c.batchID = batchID
	return nil
}

func (c *AddOrdersToBatchCommand) setOrderIDs(orderIDs []kernel.UUID) error {
	if len(orderIDs) == 0 {
		return ErrOrderIDsAreRequired
	}

	seen := make(map[kernel.UUID]bool, len(orderIDs))
	for _, id := range orderIDs {
		if err := id.Validate(); err != nil {
			return err
		}
		if seen[id] {
			return errors.New("order IDs must be unique")
		}
		seen[id] = true
	}

	c.orderIDs = make([]kernel.UUID, len(orderIDs))
	copy(c.orderIDs, orderIDs)
	return nil
}
