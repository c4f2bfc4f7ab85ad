package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"
)

var ErrRunConsolidationCommandIsNotConstructed = errors.New(
	"RunConsolidationCommand must be created via NewRunConsolidationCommand constructor",
)

// RunConsolidationCommand represents a request to execute one pickup round
// along a consolidation route.
type RunConsolidationCommand struct { //nolint:recvcheck //using for validation
	routeID kernel.UUID

	guard kernel.ConstructorGuard
}

// NewRunConsolidationCommand creates a command for one consolidation run.
func NewRunConsolidationCommand(routeID kernel.UUID) (RunConsolidationCommand, error) {
	cmd := RunConsolidationCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := cmd.setRouteID(routeID); err != nil {
		return RunConsolidationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RunConsolidationCommand) Validate() error {
	return c.guard.Validate(ErrRunConsolidationCommandIsNotConstructed)
}

// RouteID returns the route to run.
func (c RunConsolidationCommand) RouteID() kernel.UUID {
	return c.routeID
}

func (c *RunConsolidationCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}
