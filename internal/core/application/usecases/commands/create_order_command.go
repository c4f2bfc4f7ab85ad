package commands

import (
	"errors"

	"postal/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrTrackingNumberIsRequired = errors.New("tracking number is required")
	ErrWeightIsInvalid          = errors.New("weight must be greater than 0")
	ErrDimensionsAreInvalid     = errors.New("dimensions must not be negative")
	ErrOfficesMustDiffer        = errors.New("origin and destination offices must differ")
)

// CreateOrderCommand represents a request to register a new shipment.
// Encapsulates the parcel's routing endpoints, weight and dimensions.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	trackingNumber      string
	originOfficeID      kernel.UUID
	destinationOfficeID kernel.UUID
	weightKg            decimal.Decimal
	lengthCm            int
	widthCm             int
	heightCm            int

	guard kernel.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new shipment.
// Validates identifiers, the tracking number, a positive weight and
// non-negative dimensions. Returns an error if any validation fails.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	trackingNumber string,
	originOfficeID kernel.UUID,
	destinationOfficeID kernel.UUID,
	weightKg decimal.Decimal,
	lengthCm, widthCm, heightCm int,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: kernel.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setTrackingNumber(trackingNumber),
		orderCommand.setOffices(originOfficeID, destinationOfficeID),
		orderCommand.setWeightKg(weightKg),
		orderCommand.setDimensions(lengthCm, widthCm, heightCm),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// TrackingNumber returns the public tracking number.
func (c CreateOrderCommand) TrackingNumber() string {
	return c.trackingNumber
}

// OriginOfficeID returns the office where the parcel enters the network.
func (c CreateOrderCommand) OriginOfficeID() kernel.UUID {
	return c.originOfficeID
}

// DestinationOfficeID returns the office where the parcel leaves the network.
func (c CreateOrderCommand) DestinationOfficeID() kernel.UUID {
	return c.destinationOfficeID
}

// WeightKg returns the parcel's actual weight in kilograms.
func (c CreateOrderCommand) WeightKg() decimal.Decimal {
	return c.weightKg
}

// Dimensions returns the parcel's length, width and height in centimeters.
func (c CreateOrderCommand) Dimensions() (lengthCm, widthCm, heightCm int) {
	return c.lengthCm, c.widthCm, c.heightCm
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setTrackingNumber(trackingNumber string) error {
	if trackingNumber == "" {
		return ErrTrackingNumberIsRequired
	}

	c.trackingNumber = trackingNumber
	return nil
}

func (c *CreateOrderCommand) setOffices(originOfficeID, destinationOfficeID kernel.UUID) error {
	if err := originOfficeID.Validate(); err != nil {
		return err
	}
	if err := destinationOfficeID.Validate(); err != nil {
		return err
	}
	if originOfficeID.IsEqual(destinationOfficeID) {
		return ErrOfficesMustDiffer
	}

	c.originOfficeID = originOfficeID
	c.destinationOfficeID = destinationOfficeID
	return nil
}

func (c *CreateOrderCommand) setWeightKg(weightKg decimal.Decimal) error {
	if !weightKg.IsPositive() {
		return ErrWeightIsInvalid
	}

	c.weightKg = weightKg
	return nil
}

func (c *CreateOrderCommand) setDimensions(lengthCm, widthCm, heightCm int) error {
	if lengthCm < 0 || widthCm < 0 || heightCm < 0 {
		return ErrDimensionsAreInvalid
	}

	c.lengthCm = lengthCm
	c.widthCm = widthCm
	c.heightCm = heightCm
	return nil
}
