// Package order provides domain entities and business logic for shipment management
// in the postal system. It implements the Order aggregate root with lifecycle
// management and state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages shipment identity, physical attributes,
//     batch membership and lifecycle
//   - Status: A state machine that enforces valid shipment status transitions
//   - StatusChange: An append-only history entry recorded on every transition
//
// Key business rules:
//   - Orders must have a valid identifier, tracking number, distinct origin and
//     destination offices, and positive weight
//   - Status follows the lifecycle graph from Created through consolidation and
//     transfer to Delivered, with exception branches for holds, loss, damage and
//     returns
//   - Cancellation is only possible before pickup
//   - Batch membership may only change while the shipment is at its origin office
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
