// Package services provides domain services that orchestrate business operations
// across multiple domain entities in the postal batching core. It implements
// complex business workflows that don't naturally belong to a single aggregate
// root.
//
// The package includes:
//   - AutoBatchPlanner: greedy best-fit placement of waiting orders into batches
//   - ChargeableWeightCalculator: billable weight from actual and volumetric weight
//   - RouteNetwork: transfer-graph path resolution with disruption awareness
//   - ConsolidationResolver: ward to province-warehouse route lookup
//   - OfficeDirectory: office hierarchy traversal over identifier-addressed nodes
//   - ScopeAuthorizer: jurisdiction checks for staff actors
//
// Domain services coordinate between aggregates, implementing business logic that
// spans multiple bounded contexts following Domain-Driven Design principles.
package services
