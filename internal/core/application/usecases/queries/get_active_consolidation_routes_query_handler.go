package queries

import (
	"context"
	"database/sql"

	"postal/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveConsolidationRoutesQueryHandler finds the consolidation routes
// eligible for a ward sweep.
type GetActiveConsolidationRoutesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveConsolidationRoutesQueryHandler creates a handler for active
// consolidation route queries.
func NewGetActiveConsolidationRoutesQueryHandler(db *gorm.DB) GetActiveConsolidationRoutesQueryHandler {
	return GetActiveConsolidationRoutesQueryHandler{db: db}
}

// Handle returns every active consolidation route, least recently run first so
// a partial sweep favors the routes that have waited longest.
func (h GetActiveConsolidationRoutesQueryHandler) Handle(
	ctx context.Context,
	_ GetActiveConsolidationRoutesQuery,
) ([]GetActiveConsolidationRoutesQueryResponse, error) {
	routes := make([]GetActiveConsolidationRoutesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT id, name, province_code, last_run_at
		FROM consolidation_routes
		WHERE active = ?
		ORDER BY last_run_at IS NOT NULL, last_run_at, name
	`, true).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id           uuid.UUID
			name         string
			provinceCode string
			lastRunAt    sql.NullTime
		)

		if err = rows.Scan(&id, &name, &provinceCode, &lastRunAt); err != nil {
			return nil, err
		}

		routeID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}

		routes = append(routes, GetActiveConsolidationRoutesQueryResponse{
			ID:           routeID,
			Name:         name,
			ProvinceCode: provinceCode,
			LastRunAt:    nullableTime(lastRunAt),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}
