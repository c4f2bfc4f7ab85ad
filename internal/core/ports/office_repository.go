package ports

import (
	"context"

	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/office"
)

// OfficeRepository defines the persistence contract for the office hierarchy.
type OfficeRepository interface {
	// Add persists a new office to storage.
	Add(ctx context.Context, aggregate *office.Office) error

	// Update persists changes to an existing office.
	Update(ctx context.Context, aggregate *office.Office) error

	// Get retrieves an office by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*office.Office, error)

	// GetByCode retrieves an office by its organizational code.
	GetByCode(ctx context.Context, code string) (*office.Office, error)

	// GetAll retrieves the full office hierarchy. The result seeds the
	// in-memory directory used for scope checks.
	GetAll(ctx context.Context) ([]*office.Office, error)
}
