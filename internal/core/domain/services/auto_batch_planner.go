package services

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"postal/internal/core/domain/model/batch"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// SkipReason explains why the planner left an order unbatched.
type SkipReason string

const (
	// SkipReasonCapacityExceeded means no open batch had room and batch
	// creation was disabled for this run.
	SkipReasonCapacityExceeded SkipReason = "CAPACITY_EXCEEDED"

	// SkipReasonOverweight means the order is heavier than the policy's
	// per-batch weight limit and can never fit any batch of this policy.
	SkipReasonOverweight SkipReason = "OVERWEIGHT"
)

// CapacityPolicy parameterizes one auto-batch run for an origin/destination pair.
type CapacityPolicy struct {
	// MaxWeightKg bounds every batch seeded by this policy.
	MaxWeightKg decimal.Decimal

	// MaxVolumeCm3 optionally bounds batch volume (nil means unlimited).
	MaxVolumeCm3 *decimal.Decimal

	// MaxOrderCount optionally bounds batch membership (nil means unlimited).
	MaxOrderCount *int

	// MinOrderCount is the membership a new batch should reach before sealing.
	MinOrderCount int

	// CreateNewBatches allows the planner to open new batches when no
	// existing one fits.
	CreateNewBatches bool
}

// Validate checks the policy bounds.
func (p CapacityPolicy) Validate() error {
	limits := batch.CapacityLimits{
		MaxWeightKg:   p.MaxWeightKg,
		MaxVolumeCm3:  p.MaxVolumeCm3,
		MaxOrderCount: p.MaxOrderCount,
	}
	return limits.Validate()
}

// ChargeableMetrics is the billable weight/volume of one order, supplied by
// the external pricing collaborator.
type ChargeableMetrics struct {
	WeightKg  decimal.Decimal
	VolumeCm3 decimal.Decimal
}

// MetricsFunc resolves an order to its chargeable metrics.
type MetricsFunc func(*order.Order) (ChargeableMetrics, error)

// SkippedOrder records one order the planner could not place.
type SkippedOrder struct {
	OrderID kernel.UUID
	Reason  SkipReason
}

// PlanRequest carries everything one planner run needs for a single
// origin/destination pair.
type PlanRequest struct {
	OriginOfficeID      kernel.UUID
	OriginCode          string
	DestinationOfficeID kernel.UUID
	DestinationCode     string

	// Orders are the unbatched candidates for the pair. The planner sorts
	// them oldest-first itself, so callers need not pre-sort.
	Orders []*order.Order

	// OpenBatches are the existing Open/Processing batches for the pair.
	OpenBatches []*batch.Batch

	Policy  CapacityPolicy
	Metrics MetricsFunc
}

// PlanResult summarizes one planner run.
type PlanResult struct {
	OrdersProcessed int
	OrdersAdded     int
	OrdersSkipped   int
	Skips           []SkippedOrder

	// ReusedBatches are pre-existing batches that received at least one order.
	ReusedBatches []*batch.Batch

	// NewBatches are batches this run opened.
	NewBatches []*batch.Batch
}

// TouchedBatches returns every batch the run mutated, reused first.
func (r *PlanResult) TouchedBatches() []*batch.Batch {
	touched := make([]*batch.Batch, 0, len(r.ReusedBatches)+len(r.NewBatches))
	touched = append(touched, r.ReusedBatches...)
	touched = append(touched, r.NewBatches...)
	return touched
}

// AutoBatchPlanner assigns unbatched orders to capacity-bounded batches for
// one origin/destination pair using a greedy best-fit policy.
//
// Algorithm:
//   - orders are taken oldest first (FIFO fairness)
//   - candidate batches are tried in descending weight-headroom order, so the
//     batch with the most room fills first and fragmentation stays low
//   - an order that fits nowhere opens a new batch seeded with the policy's
//     limits, when the policy allows it; otherwise it is skipped with a reason
//
// A run only ever adds unbatched orders, so re-running over the same pool is
// idempotent: the second run finds nothing to place.
type AutoBatchPlanner struct{}

// NewAutoBatchPlanner creates a new AutoBatchPlanner instance.
func NewAutoBatchPlanner() AutoBatchPlanner {
	return AutoBatchPlanner{}
}

// Plan executes one planner run. Orders already assigned to a batch are
// excluded from candidacy. Mutations happen on the passed-in aggregates; the
// caller persists the touched orders and batches afterwards.
func (p AutoBatchPlanner) Plan(req PlanRequest) (*PlanResult, error) {
	if err := req.Policy.Validate(); err != nil {
		return nil, err
	}
	if req.Metrics == nil {
		return nil, errors.New("metrics function is required")
	}

	candidates := make([]*order.Order, 0, len(req.Orders))
	for _, o := range req.Orders {
		if err := o.Validate(); err != nil {
			return nil, err
		}
		if o.BatchID() != nil {
			continue
		}
		candidates = append(candidates, o)
	}

	// FIFO fairness: oldest registrations first, identifiers break ties so
	// repeated runs see the same sequence.
	sort.SliceStable(candidates, func(i, j int) bool {
		if !candidates[i].CreatedAt().Equal(candidates[j].CreatedAt()) {
			return candidates[i].CreatedAt().Before(candidates[j].CreatedAt())
		}
		return candidates[i].ID().String() < candidates[j].ID().String()
	})

	open := make([]*batch.Batch, 0, len(req.OpenBatches))
	for _, b := range req.OpenBatches {
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if !b.Status().CanAcceptOrders() {
			continue
		}
		open = append(open, b)
	}

	result := &PlanResult{}
	reusedTouched := make(map[kernel.UUID]bool)

	for _, o := range candidates {
		result.OrdersProcessed++

		metrics, err := req.Metrics(o)
		if err != nil {
			return nil, fmt.Errorf("chargeable metrics for order %s: %w", o.ID(), err)
		}

		if metrics.WeightKg.GreaterThan(req.Policy.MaxWeightKg) {
			result.OrdersSkipped++
			result.Skips = append(result.Skips, SkippedOrder{OrderID: o.ID(), Reason: SkipReasonOverweight})
			continue
		}

		target := p.findBestBatch(open, metrics)

		if target == nil && req.Policy.CreateNewBatches {
			target, err = batch.NewBatch(
				kernel.NewUUID(),
				req.OriginOfficeID,
				req.OriginCode,
				req.DestinationOfficeID,
				req.DestinationCode,
				batch.CapacityLimits{
					MaxWeightKg:   req.Policy.MaxWeightKg,
					MaxVolumeCm3:  req.Policy.MaxVolumeCm3,
					MaxOrderCount: req.Policy.MaxOrderCount,
				},
			)
			if err != nil {
				return nil, err
			}

			open = append(open, target)
			result.NewBatches = append(result.NewBatches, target)
		}

		if target == nil {
			result.OrdersSkipped++
			result.Skips = append(result.Skips, SkippedOrder{OrderID: o.ID(), Reason: SkipReasonCapacityExceeded})
			continue
		}

		if err = target.AddOrder(o.ID(), metrics.WeightKg, metrics.VolumeCm3); err != nil {
			return nil, err
		}
		if err = o.AssignToBatch(target.ID()); err != nil {
			return nil, err
		}

		result.OrdersAdded++
		if !p.isNewBatch(result.NewBatches, target) && !reusedTouched[target.ID()] {
			reusedTouched[target.ID()] = true
			result.ReusedBatches = append(result.ReusedBatches, target)
		}
	}

	return result, nil
}

// findBestBatch returns the fitting batch with the most weight headroom.
// Ties break on batch code for determinism.
func (p AutoBatchPlanner) findBestBatch(open []*batch.Batch, metrics ChargeableMetrics) *batch.Batch {
	var best *batch.Batch

	for _, b := range open {
		if !b.CanFit(metrics.WeightKg, metrics.VolumeCm3) {
			continue
		}
		if best == nil {
			best = b
			continue
		}

		headroom := b.RemainingWeightKg()
		bestHeadroom := best.RemainingWeightKg()
		if headroom.GreaterThan(bestHeadroom) ||
			(headroom.Equal(bestHeadroom) && b.Code() < best.Code()) {
			best = b
		}
	}

	return best
}

func (p AutoBatchPlanner) isNewBatch(newBatches []*batch.Batch, b *batch.Batch) bool {
	for _, nb := range newBatches {
		if nb.IsEqual(b) {
			return true
		}
	}
	return false
}

// SealPolicy drives the periodic auto-seal sweep.
type SealPolicy struct {
	// SealAge is the open age past which a batch becomes seal-eligible.
	SealAge time.Duration

	// MinOrderCount keeps young or thin batches open to await more orders.
	MinOrderCount int

	// MaxOpenAge optionally seals a non-empty batch regardless of member
	// count once it has been open this long, so low-volume destinations are
	// not starved forever (nil disables the override).
	MaxOpenAge *time.Duration
}

// ShouldSeal reports whether the batch is due for sealing at the given time.
// Empty batches are never sealed.
func (p SealPolicy) ShouldSeal(b *batch.Batch, now time.Time) bool {
	if !b.Status().CanAcceptOrders() || b.OrderCount() == 0 {
		return false
	}

	age := b.OpenAge(now)
	if age >= p.SealAge && b.OrderCount() >= p.MinOrderCount {
		return true
	}
	if p.MaxOpenAge != nil && age >= *p.MaxOpenAge {
		return true
	}
	return false
}
