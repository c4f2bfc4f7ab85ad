package order

import (
	"errors"
	"fmt"

	"postal/internal/pkg/errs"
)

// ErrIllegalTransition is returned when a requested status change is not an edge
// of the order lifecycle graph. Callers classify transition failures with
// errors.Is against this value.
var ErrIllegalTransition = errors.New("illegal order status transition")

// Status represents the lifecycle state of a shipment as it moves through the
// postal network, from registration at a ward office to final delivery or
// exception handling.
//
// The happy path is a linear walk:
//
//	Created ──> PendingPickup ──> PickedUp ──> AtOriginOffice ──> SortedAtOrigin
//	  ──> InTransitToHub ──> AtHub ──> InTransitToDestination ──> AtDestinationHub
//	  ──> InTransitToOffice ──> AtDestinationOffice ──> OutForDelivery ──> Delivered
//
// Walk-in shipments skip pickup (Created ──> AtOriginOffice). A failed delivery
// can be retried (DeliveryFailed ──> OutForDelivery) or returned to the sender
// (DeliveryFailed ──> Returning ──> Returned). The exception states OnHold,
// Lost and Damaged are reachable from any in-transit state; OnHold can resume
// transit, Damaged can only proceed to Returning. Cancellation is possible only
// before pickup. Delivered, Returned, Cancelled and Lost are terminal.
//
// Status is a value object that validates state transitions and provides
// string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Created is the initial status when a shipment is registered.
	Created

	// PendingPickup indicates a courier pickup has been requested.
	PendingPickup

	// PickedUp indicates the shipment has been collected from the sender.
	PickedUp

	// AtOriginOffice indicates the shipment has arrived at its origin ward office.
	AtOriginOffice

	// SortedAtOrigin indicates the shipment has been sorted for outbound transport.
	SortedAtOrigin

	// InTransitToHub indicates the shipment is moving toward its regional hub.
	InTransitToHub

	// AtHub indicates the shipment has arrived at the origin regional hub.
	AtHub

	// InTransitToDestination indicates the shipment is moving between hubs.
	InTransitToDestination

	// AtDestinationHub indicates the shipment has arrived at the destination hub.
	AtDestinationHub

	// InTransitToOffice indicates the shipment is moving toward the destination office.
	InTransitToOffice

	// AtDestinationOffice indicates the shipment has arrived at the destination ward office.
	AtDestinationOffice

	// OutForDelivery indicates a final-mile delivery attempt is in progress.
	OutForDelivery

	// Delivered indicates the shipment reached the recipient. Terminal.
	Delivered

	// DeliveryFailed indicates the last delivery attempt failed.
	DeliveryFailed

	// Returning indicates the shipment is traveling back to the sender.
	Returning

	// Returned indicates the shipment was handed back to the sender. Terminal.
	Returned

	// OnHold indicates transit is suspended pending an operational decision.
	OnHold

	// Lost indicates the shipment could not be located. Terminal.
	Lost

	// Damaged indicates the shipment was damaged in transit.
	Damaged

	// Cancelled indicates the shipment was cancelled before pickup. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
// All statuses are included for string conversion.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:                "Unknown",
		Created:                "Created",
		PendingPickup:          "PendingPickup",
		PickedUp:               "PickedUp",
		AtOriginOffice:         "AtOriginOffice",
		SortedAtOrigin:         "SortedAtOrigin",
		InTransitToHub:         "InTransitToHub",
		AtHub:                  "AtHub",
		InTransitToDestination: "InTransitToDestination",
		AtDestinationHub:       "AtDestinationHub",
		InTransitToOffice:      "InTransitToOffice",
		AtDestinationOffice:    "AtDestinationOffice",
		OutForDelivery:         "OutForDelivery",
		Delivered:              "Delivered",
		DeliveryFailed:         "DeliveryFailed",
		Returning:              "Returning",
		Returned:               "Returned",
		OnHold:                 "OnHold",
		Lost:                   "Lost",
		Damaged:                "Damaged",
		Cancelled:              "Cancelled",
	}
}

// inTransitStatuses are the states from which the exception branches
// (OnHold, Lost, Damaged) are reachable, and to which OnHold may resume.
func inTransitStatuses() []Status {
	return []Status{
		SortedAtOrigin,
		InTransitToHub,
		AtHub,
		InTransitToDestination,
		AtDestinationHub,
		InTransitToOffice,
	}
}

// allowedTransitions returns the full edge set of the lifecycle graph.
// A missing key means the status is terminal.
func allowedTransitions() map[Status][]Status {
	transitions := map[Status][]Status{
		Created:                {PendingPickup, PickedUp, AtOriginOffice, Cancelled},
		PendingPickup:          {PickedUp, Cancelled},
		PickedUp:               {AtOriginOffice},
		AtOriginOffice:         {SortedAtOrigin},
		SortedAtOrigin:         {InTransitToHub},
		InTransitToHub:         {AtHub},
		AtHub:                  {InTransitToDestination},
		InTransitToDestination: {AtDestinationHub},
		AtDestinationHub:       {InTransitToOffice},
		InTransitToOffice:      {AtDestinationOffice},
		AtDestinationOffice:    {OutForDelivery},
		OutForDelivery:         {Delivered, DeliveryFailed},
		DeliveryFailed:         {OutForDelivery, Returning},
		Returning:              {Returned},
		OnHold:                 append([]Status{Returning}, inTransitStatuses()...),
		Damaged:                {Returning},
	}

	for _, s := range inTransitStatuses() {
		transitions[s] = append(transitions[s], OnHold, Lost, Damaged)
	}

	return transitions
}

// Validate checks if the Status value is valid.
//
// Returns:
//   - nil if the status is one of the defined lifecycle states
//   - error with details if the status is invalid
//
// This method is used to ensure Status values from external sources
// (e.g., database, API) are valid before use.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Unknown or out-of-range values render as "Unknown".
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Returned, Cancelled, Lost:
		return true
	default:
		return false
	}
}

// IsInTransit reports whether the status is one of the physical-movement states
// from which the exception branches are reachable.
func (s Status) IsInTransit() bool {
	for _, t := range inTransitStatuses() {
		if s == t {
			return true
		}
	}
	return false
}

// CanTransitionTo reports whether (s, target) is an edge of the lifecycle graph.
// Self-transitions are never allowed: requesting the current status again fails
// rather than being silently ignored.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs a status transition.
//
// Returns:
//   - (target, nil) when (s, target) is an allowed edge
//   - (0, error) wrapping ErrIllegalTransition otherwise
//
// This method is used by Order.TransitionTo to enforce the lifecycle graph.
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, s, target)
	}

	return target, nil
}
