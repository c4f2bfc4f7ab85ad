package commands

import (
	"errors"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/services"
)

var ErrAutoSealCommandIsNotConstructed = errors.New(
	"AutoSealCommand must be created via NewAutoSealCommand constructor",
)

// AutoSealCommand represents a request to sweep every open batch and seal
// the ones the seal policy marks as due.
type AutoSealCommand struct { //nolint:recvcheck //using for validation
	policy services.SealPolicy
	now    time.Time

	guard kernel.ConstructorGuard
}

// NewAutoSealCommand creates a command for one seal sweep.
// The reference time is captured here so a sweep is reproducible.
func NewAutoSealCommand(policy services.SealPolicy, now time.Time) (AutoSealCommand, error) {
	cmd := AutoSealCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := cmd.setPolicy(policy); err != nil {
		return AutoSealCommand{}, err
	}

	if now.IsZero() {
		now = time.Now().UTC()
	}
	cmd.now = now

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AutoSealCommand) Validate() error {
	return c.guard.Validate(ErrAutoSealCommandIsNotConstructed)
}

// Policy returns the seal policy for this sweep.
func (c AutoSealCommand) Policy() services.SealPolicy {
	return c.policy
}

// Now returns the sweep's reference time.
func (c AutoSealCommand) Now() time.Time {
	return c.now
}

func (c *AutoSealCommand) setPolicy(policy services.SealPolicy) error {
	if policy.SealAge <= 0 {
		return errors.New("seal age must be positive")
	}
	if policy.MinOrderCount < 0 {
		return errors.New("minimum order count must not be negative")
	}

	c.policy = policy
	return nil
}
