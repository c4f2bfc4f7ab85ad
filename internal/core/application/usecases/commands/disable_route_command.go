package commands

import (
	"errors"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/model/staff"
)

var (
	ErrDisableRouteCommandIsNotConstructed = errors.New(
		"DisableRouteCommand must be created via NewDisableRouteCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required")
)

// DisableRouteCommand represents a request to take a transfer route out of
// service and open a disruption record for it.
type DisableRouteCommand struct { //nolint:recvcheck //using for validation
	routeID       kernel.UUID
	kind          routing.DisruptionKind
	reason        string
	expectedEndAt *time.Time
	actor         staff.Actor

	guard kernel.ConstructorGuard
}

// NewDisableRouteCommand creates a command to disable one route on behalf of
// the given actor. The actor's management scope is checked against the route
// by the handler.
func NewDisableRouteCommand(
	routeID kernel.UUID,
	kind routing.DisruptionKind,
	reason string,
	expectedEndAt *time.Time,
	actor staff.Actor,
) (DisableRouteCommand, error) {
	cmd := DisableRouteCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setRouteID(routeID),
		cmd.setKind(kind),
		cmd.setReason(reason),
		cmd.setActor(actor),
	); err != nil {
		return DisableRouteCommand{}, err
	}

	if expectedEndAt != nil {
		at := *expectedEndAt
		cmd.expectedEndAt = &at
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DisableRouteCommand) Validate() error {
	return c.guard.Validate(ErrDisableRouteCommandIsNotConstructed)
}

// RouteID returns the route to disable.
func (c DisableRouteCommand) RouteID() kernel.UUID {
	return c.routeID
}

// Kind returns the disruption category.
func (c DisableRouteCommand) Kind() routing.DisruptionKind {
	return c.kind
}

// Reason returns the operator's explanation.
func (c DisableRouteCommand) Reason() string {
	return c.reason
}

// ExpectedEndAt returns the forecast end of the disruption, if any.
func (c DisableRouteCommand) ExpectedEndAt() *time.Time {
	return c.expectedEndAt
}

// Actor returns the staff member requesting the disruption.
func (c DisableRouteCommand) Actor() staff.Actor {
	return c.actor
}

func (c *DisableRouteCommand) setActor(actor staff.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}

	c.actor = actor
	return nil
}

func (c *DisableRouteCommand) setRouteID(routeID kernel.UUID) error {
	if err := routeID.Validate(); err != nil {
		return err
	}

	c.routeID = routeID
	return nil
}

func (c *DisableRouteCommand) setKind(kind routing.DisruptionKind) error {
	if err := kind.Validate(); err != nil {
		return err
	}

	c.kind = kind
	return nil
}

func (c *DisableRouteCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}
