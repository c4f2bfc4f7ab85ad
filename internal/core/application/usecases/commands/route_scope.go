package commands

import (
	"context"

	"postal/internal/core/domain/services"
)

// routeScopeAuthorizer builds a scope authorizer over the office hierarchy as
// persisted at the start of the transaction. Every transfer network mutation
// runs its actor through this before touching the route.
func routeScopeAuthorizer(ctx context.Context, uow RouteUoW) (services.ScopeAuthorizer, error) {
	offices, err := uow.OfficeRepository().GetAll(ctx)
	if err != nil {
		return services.ScopeAuthorizer{}, err
	}

	directory, err := services.NewOfficeDirectory(offices)
	if err != nil {
		return services.ScopeAuthorizer{}, err
	}

	return services.NewScopeAuthorizer(directory), nil
}
