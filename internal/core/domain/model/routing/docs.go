// Package routing provides the configuration entities of the postal transport
// network: transfer route edges between warehouses and hubs, temporary route
// disruptions, and fixed ward-to-warehouse consolidation routes.
//
// The package includes:
//   - TransferRoute: A directed, prioritized edge of the warehouse/hub graph,
//     tagged as ProvinceToHub or HubToHub
//   - RouteDisruption: A reason-coded temporary removal of an edge from path
//     resolution, with at most one active disruption per route
//   - ConsolidationRoute: A fixed ordered sequence of ward stops terminating
//     at a province warehouse
//
// These entities form a read-mostly configuration graph consumed by the
// domain services in internal/core/domain/services; mutations are
// low-frequency administrative operations.
package routing
