// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"postal/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// BatchRepoFactory provides access to the batch repository within a transaction.
	BatchRepoFactory interface {
		BatchRepository() ports.BatchRepository
	}

	// OfficeRepoFactory provides access to the office repository within a transaction.
	OfficeRepoFactory interface {
		OfficeRepository() ports.OfficeRepository
	}

	// RouteRepoFactory provides access to the transfer route repository within a transaction.
	RouteRepoFactory interface {
		TransferRouteRepository() ports.TransferRouteRepository
	}

	// DisruptionRepoFactory provides access to the disruption repository within a transaction.
	DisruptionRepoFactory interface {
		DisruptionRepository() ports.DisruptionRepository
	}

	// ConsolidationRepoFactory provides access to the consolidation route repository within a transaction.
	ConsolidationRepoFactory interface {
		ConsolidationRouteRepository() ports.ConsolidationRouteRepository
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	// OrderUoWFactory creates new order unit of work instances.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// BatchUoW manages transactions for batch lifecycle operations.
	// Batch commands read office codes for batch code generation and move
	// member orders, so the office and order repositories ride in the same
	// transaction.
	BatchUoW interface {
		TxManager
		BatchRepoFactory
		OrderRepoFactory
		OfficeRepoFactory
	}

	// BatchUoWFactory creates new batch unit of work instances.
	BatchUoWFactory interface {
		Create() BatchUoW
	}

	// RouteUoW manages transactions for transfer network operations.
	// Disabling a route records its impact on in-flight batches, and every
	// network mutation checks the actor's scope against the office
	// hierarchy, so the batch and office repositories ride in the same
	// transaction.
	RouteUoW interface {
		TxManager
		RouteRepoFactory
		DisruptionRepoFactory
		BatchRepoFactory
		OfficeRepoFactory
	}

	// RouteUoWFactory creates new route unit of work instances.
	RouteUoWFactory interface {
		Create() RouteUoW
	}

	// ConsolidationUoW manages transactions for consolidation route
	// administration and ward sweep runs.
	ConsolidationUoW interface {
		TxManager
		ConsolidationRepoFactory
		OfficeRepoFactory
		OrderRepoFactory
	}

	// ConsolidationUoWFactory creates new consolidation unit of work instances.
	ConsolidationUoWFactory interface {
		Create() ConsolidationUoW
	}
)
