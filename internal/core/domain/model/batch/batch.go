package batch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrBatchIsNotConstructed is returned when a Batch instance was not created
	// through the NewBatch or RestoreBatch factory methods.
	ErrBatchIsNotConstructed = errors.New("Batch must be created via NewBatch or RestoreBatch")

	// ErrCapacityExceeded is returned when adding an order would overcommit one of
	// the batch's declared capacity limits. Callers classify capacity failures
	// with errors.Is against this value.
	ErrCapacityExceeded = errors.New("batch capacity exceeded")
)

// codePrefixLength is the number of office-code characters used in a batch code.
const codePrefixLength = 4

// CapacityLimits declares the physical bounds of a batch. MaxWeightKg is
// mandatory; volume and order-count limits are optional (nil means unlimited).
type CapacityLimits struct {
	MaxWeightKg   decimal.Decimal
	MaxVolumeCm3  *decimal.Decimal
	MaxOrderCount *int
}

// Validate checks the declared limits: weight must be positive, and any
// optional limit that is set must be positive as well.
func (l CapacityLimits) Validate() error {
	if !l.MaxWeightKg.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxWeightKg is invalid",
			fmt.Errorf("%s is not greater than 0", l.MaxWeightKg),
		)
	}
	if l.MaxVolumeCm3 != nil && !l.MaxVolumeCm3.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxVolumeCm3 is invalid",
			fmt.Errorf("%s is not greater than 0", l.MaxVolumeCm3),
		)
	}
	if l.MaxOrderCount != nil && *l.MaxOrderCount <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"maxOrderCount is invalid",
			fmt.Errorf("%d is not greater than 0", *l.MaxOrderCount),
		)
	}
	return nil
}

// Batch represents a capacity-bounded transport unit grouping orders from one
// origin office to exactly one destination office. It is the aggregate root
// that owns the capacity counters and the member order set.
//
// Batch follows these invariants:
//   - Exactly one destination, distinct from the origin
//   - Current weight never exceeds MaxWeightKg; the optional volume and
//     order-count limits are never exceeded either
//   - Membership may only change while the status is Open or Processing
//   - Once Sealed, membership and counters are frozen until arrival
//
// All mutations to a single batch must be serialized by the caller (the
// persistence layer uses an optimistic version column for this).
type Batch struct {
	id     kernel.UUID
	code   string
	status Status

	originOfficeID      kernel.UUID
	destinationOfficeID kernel.UUID

	limits CapacityLimits

	currentWeightKg  decimal.Decimal
	currentVolumeCm3 decimal.Decimal

	orderIDs []kernel.UUID

	createdAt  time.Time
	sealedAt   *time.Time
	departedAt *time.Time
	arrivedAt  *time.Time

	version int

	guard kernel.ConstructorGuard
}

// NewBatch creates an empty Open batch with a generated human-readable code of
// the form BATCH-<origin>-<destination>-<yyyymmddhhmmss>, where the office
// parts are the first four characters of each office code.
//
// Parameters:
//   - id: Unique identifier for the batch
//   - originOfficeID, originCode: Office the batch departs from
//   - destinationOfficeID, destinationCode: The single destination office
//   - limits: Declared capacity bounds (weight mandatory)
//
// Returns:
//   - *Batch: The created batch if all validations pass
//   - error: Validation error if any parameter is invalid
func NewBatch(
	id kernel.UUID,
	originOfficeID kernel.UUID,
	originCode string,
	destinationOfficeID kernel.UUID,
	destinationCode string,
	limits CapacityLimits,
) (*Batch, error) {
	now := time.Now().UTC()

	b := &Batch{
		status:    Open,
		createdAt: now,
		guard:     kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setOffices(originOfficeID, destinationOfficeID),
		b.setLimits(limits),
		b.setCode(generateCode(originCode, destinationCode, now)),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBatch reconstructs a Batch from persistence without re-running the
// creation workflow. Structural invariants are re-validated; the caller is
// responsible for passing counters consistent with the member set.
func RestoreBatch(
	id kernel.UUID,
	code string,
	status Status,
	originOfficeID kernel.UUID,
	destinationOfficeID kernel.UUID,
	limits CapacityLimits,
	currentWeightKg decimal.Decimal,
	currentVolumeCm3 decimal.Decimal,
	orderIDs []kernel.UUID,
	createdAt time.Time,
	sealedAt, departedAt, arrivedAt *time.Time,
	version int,
) (*Batch, error) {
	b := &Batch{
		currentWeightKg:  currentWeightKg,
		currentVolumeCm3: currentVolumeCm3,
		orderIDs:         orderIDs,
		createdAt:        createdAt,
		sealedAt:         sealedAt,
		departedAt:       departedAt,
		arrivedAt:        arrivedAt,
		version:          version,
		guard:            kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setCode(code),
		b.setStatus(status),
		b.setOffices(originOfficeID, destinationOfficeID),
		b.setLimits(limits),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the Batch instance was properly constructed through a factory method.
func (b *Batch) Validate() error {
	if b == nil {
		return ErrBatchIsNotConstructed
	}
	return b.guard.Validate(ErrBatchIsNotConstructed)
}

// IsEqual compares two batches by their unique identifiers.
func (b *Batch) IsEqual(other *Batch) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the batch's unique identifier.
func (b *Batch) ID() kernel.UUID {
	return b.id
}

// Code returns the human-readable batch code.
func (b *Batch) Code() string {
	return b.code
}

// Status returns the current lifecycle status of the batch.
func (b *Batch) Status() Status {
	return b.status
}

// OriginOfficeID returns the office the batch departs from.
func (b *Batch) OriginOfficeID() kernel.UUID {
	return b.originOfficeID
}

// DestinationOfficeID returns the single destination office of the batch.
func (b *Batch) DestinationOfficeID() kernel.UUID {
	return b.destinationOfficeID
}

// Limits returns the declared capacity bounds.
func (b *Batch) Limits() CapacityLimits {
	return b.limits
}

// CurrentWeightKg returns the summed chargeable weight of the member orders.
func (b *Batch) CurrentWeightKg() decimal.Decimal {
	return b.currentWeightKg
}

// CurrentVolumeCm3 returns the summed chargeable volume of the member orders.
func (b *Batch) CurrentVolumeCm3() decimal.Decimal {
	return b.currentVolumeCm3
}

// OrderCount returns the number of member orders.
func (b *Batch) OrderCount() int {
	return len(b.orderIDs)
}

// OrderIDs returns a copy of the ordered member set.
func (b *Batch) OrderIDs() []kernel.UUID {
	ids := make([]kernel.UUID, len(b.orderIDs))
	copy(ids, b.orderIDs)
	return ids
}

// CreatedAt returns the creation time of the batch.
func (b *Batch) CreatedAt() time.Time {
	return b.createdAt
}

// SealedAt returns the seal time, or nil if the batch has not been sealed.
func (b *Batch) SealedAt() *time.Time {
	return b.sealedAt
}

// DepartedAt returns the departure time, or nil if the batch has not departed.
func (b *Batch) DepartedAt() *time.Time {
	return b.departedAt
}

// ArrivedAt returns the arrival time, or nil if the batch has not arrived.
func (b *Batch) ArrivedAt() *time.Time {
	return b.arrivedAt
}

// Version returns the optimistic concurrency version of the batch.
func (b *Batch) Version() int {
	return b.version
}

// Contains reports whether the order is a member of this batch.
func (b *Batch) Contains(orderID kernel.UUID) bool {
	for _, id := range b.orderIDs {
		if id.IsEqual(orderID) {
			return true
		}
	}
	return false
}

// RemainingWeightKg returns the weight headroom left in the batch.
func (b *Batch) RemainingWeightKg() decimal.Decimal {
	return b.limits.MaxWeightKg.Sub(b.currentWeightKg)
}

// CanFit reports whether an order with the given chargeable weight and volume
// still fits within every declared limit. A false result guarantees that a
// subsequent AddOrder call with the same inputs fails.
func (b *Batch) CanFit(weightKg, volumeCm3 decimal.Decimal) bool {
	if b.currentWeightKg.Add(weightKg).GreaterThan(b.limits.MaxWeightKg) {
		return false
	}
	if b.limits.MaxVolumeCm3 != nil && b.currentVolumeCm3.Add(volumeCm3).GreaterThan(*b.limits.MaxVolumeCm3) {
		return false
	}
	if b.limits.MaxOrderCount != nil && len(b.orderIDs) >= *b.limits.MaxOrderCount {
		return false
	}
	return true
}

// AddOrder appends an order to the member set and increments the capacity counters.
//
// This method enforces the following business rules:
//   - The batch must be Open or Processing
//   - The order must not already be a member
//   - Every declared capacity limit must still hold after the addition
//
// Returns:
//   - nil on success
//   - an error wrapping ErrCapacityExceeded when a limit would be exceeded
func (b *Batch) AddOrder(orderID kernel.UUID, weightKg, volumeCm3 decimal.Decimal) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	if !b.status.CanAcceptOrders() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to add orders", b.status),
		)
	}

	if b.Contains(orderID) {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderID is invalid",
			fmt.Errorf("order %s is already a member of batch %s", orderID, b.code),
		)
	}

	if !b.CanFit(weightKg, volumeCm3) {
		return fmt.Errorf("%w: batch %s cannot fit %s kg", ErrCapacityExceeded, b.code, weightKg)
	}

	b.orderIDs = append(b.orderIDs, orderID)
	b.currentWeightKg = b.currentWeightKg.Add(weightKg)
	b.currentVolumeCm3 = b.currentVolumeCm3.Add(volumeCm3)
	return nil
}

// RemoveOrder removes an order from the member set and decrements the capacity
// counters by the same chargeable weight and volume it was added with.
// Removal is only possible while the batch still accepts orders.
func (b *Batch) RemoveOrder(orderID kernel.UUID, weightKg, volumeCm3 decimal.Decimal) error {
	if !b.status.CanAcceptOrders() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to remove orders", b.status),
		)
	}

	for i, id := range b.orderIDs {
		if id.IsEqual(orderID) {
			b.orderIDs = append(b.orderIDs[:i], b.orderIDs[i+1:]...)
			b.currentWeightKg = b.currentWeightKg.Sub(weightKg)
			b.currentVolumeCm3 = b.currentVolumeCm3.Sub(volumeCm3)
			return nil
		}
	}

	return errs.NewObjectNotFoundError("orderID", orderID.String())
}

// Seal freezes the batch membership. An empty batch cannot be sealed.
func (b *Batch) Seal() error {
	if len(b.orderIDs) == 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"orderIDs is invalid",
			errors.New("an empty batch cannot be sealed"),
		)
	}

	newStatus, err := b.status.Seal()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	b.status = newStatus
	b.sealedAt = &now
	return nil
}

// MarkProcessing flags the batch as being actively loaded. It still accepts orders.
func (b *Batch) MarkProcessing() error {
	if b.status != Open {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start processing", b.status),
		)
	}
	b.status = Processing
	return nil
}

// MarkInTransit records the batch's departure toward its destination.
func (b *Batch) MarkInTransit() error {
	newStatus, err := b.status.MarkInTransit()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	b.status = newStatus
	b.departedAt = &now
	return nil
}

// MarkArrived records the batch's arrival at its destination office.
func (b *Batch) MarkArrived() error {
	newStatus, err := b.status.MarkArrived()
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	b.status = newStatus
	b.arrivedAt = &now
	return nil
}

// Distribute releases the member orders for final delivery. Terminal.
func (b *Batch) Distribute() error {
	newStatus, err := b.status.Distribute()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Cancel aborts a batch before departure. The member set and counters are
// zeroed; the caller is responsible for releasing the member orders back to
// their origin office.
func (b *Batch) Cancel() error {
	newStatus, err := b.status.Cancel()
	if err != nil {
		return err
	}

	b.status = newStatus
	b.orderIDs = nil
	b.currentWeightKg = decimal.Zero
	b.currentVolumeCm3 = decimal.Zero
	return nil
}

// OpenAge returns how long the batch has existed relative to now.
// Used by the auto-seal policy.
func (b *Batch) OpenAge(now time.Time) time.Duration {
	return now.Sub(b.createdAt)
}

// generateCode builds the human-readable batch code from the office codes and
// the creation time.
func generateCode(originCode, destinationCode string, now time.Time) string {
	return fmt.Sprintf("BATCH-%s-%s-%s",
		codePrefix(originCode),
		codePrefix(destinationCode),
		now.Format("20060102150405"),
	)
}

// codePrefix takes the leading characters of an office code, uppercased.
func codePrefix(officeCode string) string {
	code := strings.ToUpper(strings.TrimSpace(officeCode))
	if len(code) > codePrefixLength {
		return code[:codePrefixLength]
	}
	return code
}

// setID validates and sets the batch's unique identifier.
func (b *Batch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

// setCode validates and sets the human-readable batch code.
func (b *Batch) setCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return errs.NewValueIsRequiredError("code")
	}
	b.code = code
	return nil
}

// setStatus validates and sets the status during restoration.
func (b *Batch) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}

// setOffices validates and sets the origin and destination office references.
func (b *Batch) setOffices(origin, destination kernel.UUID) error {
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

	b.originOfficeID = origin
	b.destinationOfficeID = destination
	return nil
}

// setLimits validates and sets the declared capacity bounds.
func (b *Batch) setLimits(limits CapacityLimits) error {
	if err := limits.Validate(); err != nil {
		return err
	}
	b.limits = limits
	return nil
}
