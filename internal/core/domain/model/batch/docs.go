// Package batch provides the transport-unit aggregate for the postal system.
// A batch groups orders heading from one origin office to a single destination
// office under declared capacity limits.
//
// The package includes:
//   - Batch: The aggregate root owning the capacity counters and member set
//   - Status: A state machine covering the batch lifecycle from Open to
//     Distributed or Cancelled
//   - CapacityLimits: The declared weight/volume/order-count bounds
//
// Key business rules:
//   - A batch has exactly one destination
//   - Weight usage never exceeds the declared maximum; optional volume and
//     order-count limits are likewise never exceeded
//   - Membership may only change while the batch is Open or Processing;
//     sealing freezes it
//   - Cancellation is only possible before departure
package batch
