package postgres

import (
	"postal/internal/adapters/out/postgres/batchrepo"
	"postal/internal/adapters/out/postgres/consolidationrepo"
	"postal/internal/adapters/out/postgres/officerepo"
	"postal/internal/adapters/out/postgres/orderrepo"
	"postal/internal/adapters/out/postgres/routerepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema for every table the adapters own.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&batchrepo.BatchDTO{},
		&officerepo.OfficeDTO{},
		&routerepo.TransferRouteDTO{},
		&routerepo.RouteDisruptionDTO{},
		&consolidationrepo.ConsolidationRouteDTO{},
	)
}
