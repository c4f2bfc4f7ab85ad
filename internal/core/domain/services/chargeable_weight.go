package services

import (
	"postal/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// DefaultVolumetricDivisor is the road-freight divisor for converting a
// parcel's volume in cubic centimeters to its volumetric weight in kilograms.
const DefaultVolumetricDivisor = 5000

// ChargeableWeightCalculator derives the metrics the planner charges a batch
// for: the greater of actual and volumetric weight, plus the raw volume.
// Parcels with no recorded dimensions are charged their actual weight.
type ChargeableWeightCalculator struct {
	volumetricDivisor decimal.Decimal
}

// NewChargeableWeightCalculator creates a calculator using the default
// volumetric divisor.
func NewChargeableWeightCalculator() ChargeableWeightCalculator {
	return ChargeableWeightCalculator{
		volumetricDivisor: decimal.NewFromInt(DefaultVolumetricDivisor),
	}
}

// MetricsFor computes the chargeable metrics of a single order.
func (c ChargeableWeightCalculator) MetricsFor(o *order.Order) (ChargeableMetrics, error) {
	if err := o.Validate(); err != nil {
		return ChargeableMetrics{}, err
	}

	lengthCm, widthCm, heightCm := o.Dimensions()
	volumeCm3 := decimal.NewFromInt(int64(lengthCm)).
		Mul(decimal.NewFromInt(int64(widthCm))).
		Mul(decimal.NewFromInt(int64(heightCm)))

	weightKg := o.WeightKg()
	if volumeCm3.IsPositive() {
		volumetricKg := volumeCm3.Div(c.volumetricDivisor)
		if volumetricKg.GreaterThan(weightKg) {
			weightKg = volumetricKg
		}
	}

	return ChargeableMetrics{WeightKg: weightKg, VolumeCm3: volumeCm3}, nil
}
