package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created through
// the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

// StatusChange is a single append-only entry in an order's status history.
// Entries are recorded in transition order and timestamps are monotonically
// non-decreasing.
type StatusChange struct {
	Status      Status
	Description string
	Location    string
	Timestamp   time.Time
}

// Order represents a shipment moving through the postal network. It is the
// aggregate root that manages the shipment lifecycle from registration through
// consolidation, transfer and final delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty tracking number
//   - Origin and destination offices must be valid and distinct references
//   - Weight must be positive; declared dimensions must be non-negative
//   - Status transitions follow the lifecycle graph (see Status)
//   - Status history is append-only and ordered by time
//   - Batch membership may only change while the shipment is at its origin office
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	id             kernel.UUID
	trackingNumber string

	originOfficeID      kernel.UUID
	destinationOfficeID kernel.UUID

	weightKg decimal.Decimal
	lengthCm int
	widthCm  int
	heightCm int

	status  Status
	history []StatusChange

	// batchID is the transport unit the order belongs to (nil if unbatched)
	batchID *kernel.UUID

	createdAt time.Time
	version   int

	guard kernel.ConstructorGuard
}

// NewOrder creates a new Order in the Created status with an initial history
// entry. This is one of the two ways to create a valid Order, ensuring all
// business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order
//   - trackingNumber: Public tracking code printed on the label
//   - originOfficeID: Ward office where the shipment enters the network
//   - destinationOfficeID: Ward office where the shipment leaves the network
//   - weightKg: Actual package weight in kilograms (must be positive)
//   - lengthCm, widthCm, heightCm: Declared dimensions in centimeters
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(
	id kernel.UUID,
	trackingNumber string,
	originOfficeID kernel.UUID,
	destinationOfficeID kernel.UUID,
	weightKg decimal.Decimal,
	lengthCm, widthCm, heightCm int,
) (*Order, error) {
	now := time.Now().UTC()

	order := &Order{
		status:    Created,
		createdAt: now,
		history: []StatusChange{{
			Status:      Created,
			Description: "shipment registered",
			Timestamp:   now,
		}},
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTrackingNumber(trackingNumber),
		order.setOffices(originOfficeID, destinationOfficeID),
		order.setWeight(weightKg),
		order.setDimensions(lengthCm, widthCm, heightCm),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order from persistence without re-running the
// creation workflow. The restored order behaves identically to one created
// through NewOrder.
//
// The caller is responsible for passing a history consistent with the status;
// structural invariants (valid identifiers, positive weight) are re-validated.
func RestoreOrder(
	id kernel.UUID,
	trackingNumber string,
	originOfficeID kernel.UUID,
	destinationOfficeID kernel.UUID,
	weightKg decimal.Decimal,
	lengthCm, widthCm, heightCm int,
	status Status,
	history []StatusChange,
	batchID *kernel.UUID,
	createdAt time.Time,
	version int,
) (*Order, error) {
	order := &Order{
		history:   history,
		createdAt: createdAt,
		version:   version,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		order.setID(id),
		order.setTrackingNumber(trackingNumber),
		order.setOffices(originOfficeID, destinationOfficeID),
		order.setWeight(weightKg),
		order.setDimensions(lengthCm, widthCm, heightCm),
		order.setStatus(status),
		order.setBatchID(batchID),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// TrackingNumber returns the public tracking code.
func (o *Order) TrackingNumber() string {
	return o.trackingNumber
}

// OriginOfficeID returns the office where the shipment entered the network.
func (o *Order) OriginOfficeID() kernel.UUID {
	return o.originOfficeID
}

// DestinationOfficeID returns the office where the shipment leaves the network.
func (o *Order) DestinationOfficeID() kernel.UUID {
	return o.destinationOfficeID
}

// WeightKg returns the actual package weight in kilograms.
func (o *Order) WeightKg() decimal.Decimal {
	return o.weightKg
}

// Dimensions returns the declared package dimensions in centimeters.
func (o *Order) Dimensions() (lengthCm, widthCm, heightCm int) {
	return o.lengthCm, o.widthCm, o.heightCm
}

// Status returns the current lifecycle status of the order.
func (o *Order) Status() Status {
	return o.status
}

// History returns a copy of the append-only status history.
func (o *Order) History() []StatusChange {
	history := make([]StatusChange, len(o.history))
	copy(history, o.history)
	return history
}

// BatchID returns the transport unit the order belongs to.
// Returns nil if the order is unbatched.
func (o *Order) BatchID() *kernel.UUID {
	return o.batchID
}

// CreatedAt returns the registration time of the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the optimistic concurrency version of the order.
func (o *Order) Version() int {
	return o.version
}

// TransitionTo advances the order to the target status and appends a history
// entry with the given description and physical location.
//
// This method enforces the following business rules:
//   - The (current, target) pair must be an edge of the lifecycle graph
//   - Requesting the current status again fails (no silent idempotency)
//   - The history entry timestamp never precedes the previous entry
//
// Returns:
//   - nil on success
//   - an error wrapping ErrIllegalTransition if the edge is not allowed
func (o *Order) TransitionTo(target Status, description, location string) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if n := len(o.history); n > 0 && now.Before(o.history[n-1].Timestamp) {
		now = o.history[n-1].Timestamp
	}

	o.status = newStatus
	o.history = append(o.history, StatusChange{
		Status:      newStatus,
		Description: description,
		Location:    location,
		Timestamp:   now,
	})

	return nil
}

// AssignToBatch records the order's membership in a transport unit.
//
// This method enforces the following business rules:
//   - The batch ID must be valid
//   - The order must be unbatched
//   - The order must still be at its origin office (AtOriginOffice or SortedAtOrigin)
//
// The batch aggregate is responsible for the matching capacity bookkeeping.
func (o *Order) AssignToBatch(batchID kernel.UUID) error {
	if err := batchID.Validate(); err != nil {
		return err
	}

	if o.batchID != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"batchID is invalid",
			fmt.Errorf("order %s is already assigned to batch %s", o.id, o.batchID),
		)
	}

	if o.status != AtOriginOffice && o.status != SortedAtOrigin {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to join a batch", o.status),
		)
	}

	o.batchID = &batchID
	return nil
}

// ReleaseFromBatch clears the order's batch membership, e.g. when a batch is
// cancelled before departure or the order is manually pulled out.
func (o *Order) ReleaseFromBatch() error {
	if o.batchID == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"batchID is invalid",
			fmt.Errorf("order %s is not assigned to a batch", o.id),
		)
	}

	o.batchID = nil
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setTrackingNumber validates and sets the public tracking code.
func (o *Order) setTrackingNumber(trackingNumber string) error {
	if strings.TrimSpace(trackingNumber) == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	o.trackingNumber = trackingNumber
	return nil
}

// setOffices validates and sets the origin and destination office references.
// Origin and destination must be distinct.
func (o *Order) setOffices(origin, destination kernel.UUID) error {
	if err := origin.Validate(); err != nil {
		return err
	}
	if err := destination.Validate(); err != nil {
		return err
	}
	if origin.IsEqual(destination) {
		return errs.NewValueIsInvalidErrorWithCause(
			"destinationOfficeID is invalid",
			errors.New("origin and destination offices must differ"),
		)
	}

	o.originOfficeID = origin
	o.destinationOfficeID = destination
	return nil
}

// setWeight validates and sets the package weight. Weight must be positive.
func (o *Order) setWeight(weightKg decimal.Decimal) error {
	if !weightKg.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightKg is invalid",
			fmt.Errorf("%s is not greater than 0", weightKg),
		)
	}
	o.weightKg = weightKg
	return nil
}

// setDimensions validates and sets the declared dimensions.
// Dimensions are optional but never negative.
func (o *Order) setDimensions(lengthCm, widthCm, heightCm int) error {
	if lengthCm < 0 || widthCm < 0 || heightCm < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"dimensions are invalid",
			fmt.Errorf("%dx%dx%d contains a negative dimension", lengthCm, widthCm, heightCm),
		)
	}

	o.lengthCm = lengthCm
	o.widthCm = widthCm
	o.heightCm = heightCm
	return nil
}

// setStatus validates and sets the status during restoration.
func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setBatchID validates and sets the batch reference during restoration.
func (o *Order) setBatchID(batchID *kernel.UUID) error {
	if batchID == nil {
		return nil
	}
	if err := batchID.Validate(); err != nil {
		return err
	}
	o.batchID = batchID
	return nil
}
