package batch

import (
	"fmt"

	"postal/internal/pkg/errs"
)

// Status represents the lifecycle state of a batch (a capacity-bounded
// transport unit grouping orders to a single destination).
//
// State transitions:
//
//	Open ──┬──> Processing ──┬──> Sealed ──> InTransit ──> Arrived ──> Distributed
//	       │        │        │
//	       └────────┴────────┴──> Cancelled   (pre-transit only)
//
// Membership may only change while the batch is Open or Processing; once
// Sealed it is frozen. Distributed and Cancelled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	StatusUnknown Status = iota

	// Open is the initial status; the batch accepts orders.
	Open

	// Processing indicates staff are actively loading the batch; it still accepts orders.
	Processing

	// Sealed indicates membership is frozen and the batch awaits departure.
	Sealed

	// InTransit indicates the batch has departed toward its destination.
	InTransit

	// Arrived indicates the batch reached its destination office.
	Arrived

	// Distributed indicates all member orders were released for final delivery. Terminal.
	Distributed

	// StatusCancelled indicates the batch was cancelled before departure. Terminal.
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "Unknown",
		Open:            "Open",
		Processing:      "Processing",
		Sealed:          "Sealed",
		InTransit:       "InTransit",
		Arrived:         "Arrived",
		Distributed:     "Distributed",
		StatusCancelled: "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid batch status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// This method implements the fmt.Stringer interface.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// CanAcceptOrders reports whether batch membership may still change.
func (s Status) CanAcceptOrders() bool {
	return s == Open || s == Processing
}

// IsTerminal reports whether no further transitions are possible from this status.
func (s Status) IsTerminal() bool {
	return s == Distributed || s == StatusCancelled
}

// Seal transitions the status to Sealed. Only Open and Processing batches can be sealed.
func (s Status) Seal() (Status, error) {
	if !s.CanAcceptOrders() {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to seal", s),
		)
	}
	return Sealed, nil
}

// MarkInTransit transitions the status to InTransit. Only Sealed batches can depart.
func (s Status) MarkInTransit() (Status, error) {
	if s != Sealed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to depart", s),
		)
	}
	return InTransit, nil
}

// MarkArrived transitions the status to Arrived. Only InTransit batches can arrive.
func (s Status) MarkArrived() (Status, error) {
	if s != InTransit {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to arrive", s),
		)
	}
	return Arrived, nil
}

// Distribute transitions the status to Distributed. Only Arrived batches can be distributed.
func (s Status) Distribute() (Status, error) {
	if s != Arrived {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to distribute", s),
		)
	}
	return Distributed, nil
}

// Cancel transitions the status to Cancelled. Batches can only be cancelled
// before departure (Open, Processing or Sealed).
func (s Status) Cancel() (Status, error) {
	if s != Open && s != Processing && s != Sealed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s),
		)
	}
	return StatusCancelled, nil
}
