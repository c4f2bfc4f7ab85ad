package cmd

import (
	"log/slog"

	"postal/internal/adapters/in/http"
	"postal/internal/adapters/out/eventlog"
	"postal/internal/adapters/out/postgres"
	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"
	"postal/internal/core/domain/services"
	"postal/internal/core/ports"
	"postal/internal/jobs"

	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	publisher  ports.EventPublisher
	planner    services.AutoBatchPlanner
	calculator services.ChargeableWeightCalculator
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  eventlog.NewSlogEventPublisher(logger),
		planner:    services.NewAutoBatchPlanner(),
		calculator: services.NewChargeableWeightCalculator(),
	}
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) batchUoWFactory() commands.BatchUoWFactory {
	return FuncBatchUoWFactory(func() commands.BatchUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) routeUoWFactory() commands.RouteUoWFactory {
	return FuncRouteUoWFactory(func() commands.RouteUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) consolidationUoWFactory() commands.ConsolidationUoWFactory {
	return FuncConsolidationUoWFactory(func() commands.ConsolidationUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCreateBatchCommandHandler() commands.CreateBatchCommandHandler {
	return commands.NewCreateBatchCommandHandler(c.batchUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateAddOrdersToBatchCommandHandler() commands.AddOrdersToBatchCommandHandler {
	return commands.NewAddOrdersToBatchCommandHandler(c.batchUoWFactory(), c.calculator, c.publisher)
}

func (c *CompositionRoot) CreateAutoBatchCommandHandler() commands.AutoBatchCommandHandler {
	return commands.NewAutoBatchCommandHandler(c.batchUoWFactory(), c.planner, c.calculator, c.publisher)
}

func (c *CompositionRoot) CreateAutoSealCommandHandler() commands.AutoSealCommandHandler {
	return commands.NewAutoSealCommandHandler(c.batchUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateSealBatchCommandHandler() commands.SealBatchCommandHandler {
	return commands.NewSealBatchCommandHandler(c.batchUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateDepartBatchCommandHandler() commands.DepartBatchCommandHandler {
	return commands.NewDepartBatchCommandHandler(c.batchUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateArriveBatchCommandHandler() commands.ArriveBatchCommandHandler {
	return commands.NewArriveBatchCommandHandler(c.batchUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateDistributeBatchCommandHandler() commands.DistributeBatchCommandHandler {
	return commands.NewDistributeBatchCommandHandler(c.batchUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCancelBatchCommandHandler() commands.CancelBatchCommandHandler {
	return commands.NewCancelBatchCommandHandler(c.batchUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCreateTransferRouteCommandHandler() commands.CreateTransferRouteCommandHandler {
	return commands.NewCreateTransferRouteCommandHandler(c.routeUoWFactory())
}

func (c *CompositionRoot) CreateDisableRouteCommandHandler() commands.DisableRouteCommandHandler {
	return commands.NewDisableRouteCommandHandler(c.routeUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateResolveDisruptionCommandHandler() commands.ResolveDisruptionCommandHandler {
	return commands.NewResolveDisruptionCommandHandler(c.routeUoWFactory(), c.publisher)
}

func (c *CompositionRoot) CreateCreateConsolidationRouteCommandHandler() commands.CreateConsolidationRouteCommandHandler {
	return commands.NewCreateConsolidationRouteCommandHandler(c.consolidationUoWFactory())
}

func (c *CompositionRoot) CreateRunConsolidationCommandHandler() commands.RunConsolidationCommandHandler {
	return commands.NewRunConsolidationCommandHandler(c.consolidationUoWFactory(), c.calculator)
}

func (c *CompositionRoot) CreateGetUnbatchedOrdersQueryHandler() queries.GetUnbatchedOrdersQueryHandler {
	return queries.NewGetUnbatchedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetBatchableDestinationsQueryHandler() queries.GetBatchableDestinationsQueryHandler {
	return queries.NewGetBatchableDestinationsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveDisruptionsQueryHandler() queries.GetActiveDisruptionsQueryHandler {
	return queries.NewGetActiveDisruptionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetReroutingImpactQueryHandler() queries.GetReroutingImpactQueryHandler {
	return queries.NewGetReroutingImpactQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetRouteDisruptionHistoryQueryHandler() queries.GetRouteDisruptionHistoryQueryHandler {
	return queries.NewGetRouteDisruptionHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPendingOfficePairsQueryHandler() queries.GetPendingOfficePairsQueryHandler {
	return queries.NewGetPendingOfficePairsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveConsolidationRoutesQueryHandler() queries.GetActiveConsolidationRoutesQueryHandler {
	return queries.NewGetActiveConsolidationRoutesQueryHandler(c.gormDB)
}

// CreateServer wires the HTTP surface over the use case handlers.
func (c *CompositionRoot) CreateServer() *http.Server {
	return http.NewServer(http.ServerHandlers{
		CreateOrder:               c.CreateCreateOrderCommandHandler(),
		TransitionOrder:           c.CreateTransitionOrderCommandHandler(),
		CreateBatch:               c.CreateCreateBatchCommandHandler(),
		AddOrdersToBatch:          c.CreateAddOrdersToBatchCommandHandler(),
		AutoBatch:                 c.CreateAutoBatchCommandHandler(),
		SealBatch:                 c.CreateSealBatchCommandHandler(),
		DepartBatch:               c.CreateDepartBatchCommandHandler(),
		ArriveBatch:               c.CreateArriveBatchCommandHandler(),
		DistributeBatch:           c.CreateDistributeBatchCommandHandler(),
		CancelBatch:               c.CreateCancelBatchCommandHandler(),
		CreateTransferRoute:       c.CreateCreateTransferRouteCommandHandler(),
		DisableRoute:              c.CreateDisableRouteCommandHandler(),
		ResolveDisruption:         c.CreateResolveDisruptionCommandHandler(),
		CreateConsolidationRoute:  c.CreateCreateConsolidationRouteCommandHandler(),
		RunConsolidation:          c.CreateRunConsolidationCommandHandler(),
		GetUnbatchedOrders:        c.CreateGetUnbatchedOrdersQueryHandler(),
		GetBatchableDestinations:  c.CreateGetBatchableDestinationsQueryHandler(),
		GetActiveDisruptions:      c.CreateGetActiveDisruptionsQueryHandler(),
		GetReroutingImpact:        c.CreateGetReroutingImpactQueryHandler(),
		GetRouteDisruptionHistory: c.CreateGetRouteDisruptionHistoryQueryHandler(),
	})
}

// CreateJobManager wires the three background sweeps from the configured
// policies and schedules.
func (c *CompositionRoot) CreateJobManager(logger *slog.Logger) *jobs.JobManager {
	maxOrderCount := c.config.BatchMaxOrderCount
	maxOpenAge := c.config.MaxOpenAge

	capacityPolicy := services.CapacityPolicy{
		MaxWeightKg:      c.config.BatchMaxWeightKg,
		MaxOrderCount:    &maxOrderCount,
		MinOrderCount:    c.config.BatchMinOrderCount,
		CreateNewBatches: true,
	}

	sealPolicy := services.SealPolicy{
		SealAge:       c.config.SealAge,
		MinOrderCount: c.config.BatchMinOrderCount,
		MaxOpenAge:    &maxOpenAge,
	}

	autoBatchJob := jobs.NewAutoBatchJob(
		c.CreateGetPendingOfficePairsQueryHandler(),
		c.CreateAutoBatchCommandHandler(),
		capacityPolicy,
		c.config.AutoBatchSchedule,
		logger,
	)
	autoSealJob := jobs.NewAutoSealJob(
		c.CreateAutoSealCommandHandler(),
		sealPolicy,
		c.config.AutoSealSchedule,
		logger,
	)
	consolidationJob := jobs.NewConsolidationJob(
		c.CreateGetActiveConsolidationRoutesQueryHandler(),
		c.CreateRunConsolidationCommandHandler(),
		c.config.ConsolidationSchedule,
		logger,
	)

	return jobs.NewJobManager(autoBatchJob, autoSealJob, consolidationJob)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncBatchUoWFactory func() commands.BatchUoW

func (f FuncBatchUoWFactory) Create() commands.BatchUoW {
	return f()
}

type FuncRouteUoWFactory func() commands.RouteUoW

func (f FuncRouteUoWFactory) Create() commands.RouteUoW {
	return f()
}

type FuncConsolidationUoWFactory func() commands.ConsolidationUoW

func (f FuncConsolidationUoWFactory) Create() commands.ConsolidationUoW {
	return f()
}
