package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"postal/internal/core/application/usecases/commands"
	"postal/internal/core/application/usecases/queries"
	"postal/internal/core/domain/model/batch"
	"postal/internal/core/domain/model/kernel"
	"postal/internal/core/domain/model/order"
	"postal/internal/core/domain/model/routing"
	"postal/internal/core/domain/model/staff"
	"postal/internal/core/domain/services"
	"postal/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler              commands.CreateOrderCommandHandler
	transitionOrderHandler          commands.TransitionOrderCommandHandler
	createBatchHandler              commands.CreateBatchCommandHandler
	addOrdersToBatchHandler         commands.AddOrdersToBatchCommandHandler
	autoBatchHandler                commands.AutoBatchCommandHandler
	sealBatchHandler                commands.SealBatchCommandHandler
	departBatchHandler              commands.DepartBatchCommandHandler
	arriveBatchHandler              commands.ArriveBatchCommandHandler
	distributeBatchHandler          commands.DistributeBatchCommandHandler
	cancelBatchHandler              commands.CancelBatchCommandHandler
	createTransferRouteHandler      commands.CreateTransferRouteCommandHandler
	disableRouteHandler             commands.DisableRouteCommandHandler
	resolveDisruptionHandler        commands.ResolveDisruptionCommandHandler
	createConsolidationRouteHandler commands.CreateConsolidationRouteCommandHandler
	runConsolidationHandler         commands.RunConsolidationCommandHandler

	// Query handlers
	getUnbatchedOrdersHandler        queries.GetUnbatchedOrdersQueryHandler
	getBatchableDestinationsHandler  queries.GetBatchableDestinationsQueryHandler
	getActiveDisruptionsHandler      queries.GetActiveDisruptionsQueryHandler
	getReroutingImpactHandler        queries.GetReroutingImpactQueryHandler
	getRouteDisruptionHistoryHandler queries.GetRouteDisruptionHistoryQueryHandler
}

// ServerHandlers bundles the use case handlers the server dispatches to.
// Grouping them keeps NewServer readable as the handler set grows.
type ServerHandlers struct {
	CreateOrder              commands.CreateOrderCommandHandler
	TransitionOrder          commands.TransitionOrderCommandHandler
	CreateBatch              commands.CreateBatchCommandHandler
	AddOrdersToBatch         commands.AddOrdersToBatchCommandHandler
	AutoBatch                commands.AutoBatchCommandHandler
	SealBatch                commands.SealBatchCommandHandler
	DepartBatch              commands.DepartBatchCommandHandler
	ArriveBatch              commands.ArriveBatchCommandHandler
	DistributeBatch          commands.DistributeBatchCommandHandler
	CancelBatch              commands.CancelBatchCommandHandler
	CreateTransferRoute      commands.CreateTransferRouteCommandHandler
	DisableRoute             commands.DisableRouteCommandHandler
	ResolveDisruption        commands.ResolveDisruptionCommandHandler
	CreateConsolidationRoute commands.CreateConsolidationRouteCommandHandler
	RunConsolidation         commands.RunConsolidationCommandHandler

	GetUnbatchedOrders        queries.GetUnbatchedOrdersQueryHandler
	GetBatchableDestinations  queries.GetBatchableDestinationsQueryHandler
	GetActiveDisruptions      queries.GetActiveDisruptionsQueryHandler
	GetReroutingImpact        queries.GetReroutingImpactQueryHandler
	GetRouteDisruptionHistory queries.GetRouteDisruptionHistoryQueryHandler
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(handlers ServerHandlers) *Server {
	return &Server{
		createOrderHandler:               handlers.CreateOrder,
		transitionOrderHandler:           handlers.TransitionOrder,
		createBatchHandler:               handlers.CreateBatch,
		addOrdersToBatchHandler:          handlers.AddOrdersToBatch,
		autoBatchHandler:                 handlers.AutoBatch,
		sealBatchHandler:                 handlers.SealBatch,
		departBatchHandler:               handlers.DepartBatch,
		arriveBatchHandler:               handlers.ArriveBatch,
		distributeBatchHandler:           handlers.DistributeBatch,
		cancelBatchHandler:               handlers.CancelBatch,
		createTransferRouteHandler:       handlers.CreateTransferRoute,
		disableRouteHandler:              handlers.DisableRoute,
		resolveDisruptionHandler:         handlers.ResolveDisruption,
		createConsolidationRouteHandler:  handlers.CreateConsolidationRoute,
		runConsolidationHandler:          handlers.RunConsolidation,
		getUnbatchedOrdersHandler:        handlers.GetUnbatchedOrders,
		getBatchableDestinationsHandler:  handlers.GetBatchableDestinations,
		getActiveDisruptionsHandler:      handlers.GetActiveDisruptions,
		getReroutingImpactHandler:        handlers.GetReroutingImpact,
		getRouteDisruptionHistoryHandler: handlers.GetRouteDisruptionHistory,
	}
}

// RegisterRoutes attaches all API routes to the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.POST("/orders/:id/transitions", s.TransitionOrder)

	api.GET("/offices/:id/unbatched-orders", s.GetUnbatchedOrders)
	api.GET("/offices/:id/batchable-destinations", s.GetBatchableDestinations)

	api.POST("/batches", s.CreateBatch)
	api.POST("/batches/auto", s.AutoBatch)
	api.POST("/batches/:id/orders", s.AddOrdersToBatch)
	api.POST("/batches/:id/seal", s.SealBatch)
	api.POST("/batches/:id/depart", s.DepartBatch)
	api.POST("/batches/:id/arrive", s.ArriveBatch)
	api.POST("/batches/:id/distribute", s.DistributeBatch)
	api.POST("/batches/:id/cancel", s.CancelBatch)

	api.POST("/routes", s.CreateTransferRoute)
	api.POST("/routes/:id/disable", s.DisableRoute)
	api.GET("/routes/:id/rerouting-impact", s.GetReroutingImpact)
	api.GET("/routes/:id/disruptions", s.GetRouteDisruptionHistory)

	api.GET("/disruptions/active", s.GetActiveDisruptions)
	api.POST("/disruptions/:id/resolve", s.ResolveDisruption)

	api.POST("/consolidation-routes", s.CreateConsolidationRoute)
	api.POST("/consolidation-routes/:id/run", s.RunConsolidation)
}

// Error is the JSON body returned for every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderRequest is the body for POST /orders.
type NewOrderRequest struct {
	TrackingNumber      string          `json:"tracking_number"`
	OriginOfficeID      string          `json:"origin_office_id"`
	DestinationOfficeID string          `json:"destination_office_id"`
	WeightKg            decimal.Decimal `json:"weight_kg"`
	LengthCm            int             `json:"length_cm"`
	WidthCm             int             `json:"width_cm"`
	HeightCm            int             `json:"height_cm"`
}

// CreatedResponse carries the server-assigned ID of a newly created resource.
type CreatedResponse struct {
	ID string `json:"id"`
}

// TransitionOrderRequest is the body for POST /orders/:id/transitions.
type TransitionOrderRequest struct {
	Status      int    `json:"status"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// NewBatchRequest is the body for POST /batches.
type NewBatchRequest struct {
	OriginOfficeID      string           `json:"origin_office_id"`
	DestinationOfficeID string           `json:"destination_office_id"`
	MaxWeightKg         decimal.Decimal  `json:"max_weight_kg"`
	MaxVolumeCm3        *decimal.Decimal `json:"max_volume_cm3,omitempty"`
	MaxOrderCount       *int             `json:"max_order_count,omitempty"`
}

// AddOrdersRequest is the body for POST /batches/:id/orders.
type AddOrdersRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// AutoBatchRequest is the body for POST /batches/auto.
type AutoBatchRequest struct {
	OriginOfficeID      string           `json:"origin_office_id"`
	DestinationOfficeID string           `json:"destination_office_id"`
	MaxWeightKg         decimal.Decimal  `json:"max_weight_kg"`
	MaxVolumeCm3        *decimal.Decimal `json:"max_volume_cm3,omitempty"`
	MaxOrderCount       *int             `json:"max_order_count,omitempty"`
	MinOrderCount       int              `json:"min_order_count"`
	CreateNewBatches    bool             `json:"create_new_batches"`
}

// SkippedOrder reports one order the planner left unbatched and why.
type SkippedOrder struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// PlanSummary is the response for POST /batches/auto.
type PlanSummary struct {
	OrdersProcessed int            `json:"orders_processed"`
	OrdersAdded     int            `json:"orders_added"`
	OrdersSkipped   int            `json:"orders_skipped"`
	Skips           []SkippedOrder `json:"skips"`
	ReusedBatchIDs  []string       `json:"reused_batch_ids"`
	NewBatchIDs     []string       `json:"new_batch_ids"`
}

// NewTransferRouteRequest is the body for POST /routes.
type NewTransferRouteRequest struct {
	Kind                string          `json:"kind"`
	FromOfficeID        string          `json:"from_office_id"`
	ToOfficeID          string          `json:"to_office_id"`
	ProvinceWarehouseID *string         `json:"province_warehouse_id,omitempty"`
	DistanceKm          decimal.Decimal `json:"distance_km"`
	TransitHours        decimal.Decimal `json:"transit_hours"`
	Priority            int             `json:"priority"`
	Bidirectional       bool            `json:"bidirectional"`
}

// DisableRouteRequest is the body for POST /routes/:id/disable.
type DisableRouteRequest struct {
	Kind          string     `json:"kind"`
	Reason        string     `json:"reason"`
	ExpectedEndAt *time.Time `json:"expected_end_at,omitempty"`
}

// StopRequest is one ward stop in a consolidation route body.
type StopRequest struct {
	WardCode       string           `json:"ward_code"`
	WardOfficeName string           `json:"ward_office_name"`
	Order          int              `json:"order"`
	DistanceKm     *decimal.Decimal `json:"distance_km,omitempty"`
}

// NewConsolidationRouteRequest is the body for POST /consolidation-routes.
type NewConsolidationRouteRequest struct {
	Name              string          `json:"name"`
	ProvinceCode      string          `json:"province_code"`
	WarehouseOfficeID string          `json:"warehouse_office_id"`
	Stops             []StopRequest   `json:"stops"`
	MaxWeightKg       decimal.Decimal `json:"max_weight_kg"`
	MaxOrderCount     *int            `json:"max_order_count,omitempty"`
}

// ConsolidationRunResponse is the response for POST /consolidation-routes/:id/run.
type ConsolidationRunResponse struct {
	OrdersConsolidated int `json:"orders_consolidated"`
}

// UnbatchedOrder is one backlog entry in GET /offices/:id/unbatched-orders.
type UnbatchedOrder struct {
	ID                  string          `json:"id"`
	TrackingNumber      string          `json:"tracking_number"`
	DestinationOfficeID string          `json:"destination_office_id"`
	WeightKg            decimal.Decimal `json:"weight_kg"`
	CreatedAt           time.Time       `json:"created_at"`
}

// BatchableDestination is one group in GET /offices/:id/batchable-destinations.
type BatchableDestination struct {
	DestinationOfficeID string          `json:"destination_office_id"`
	OrderCount          int             `json:"order_count"`
	TotalWeightKg       decimal.Decimal `json:"total_weight_kg"`
}

// ActiveDisruption is one entry in GET /disruptions/active.
type ActiveDisruption struct {
	ID                 string     `json:"id"`
	RouteID            string     `json:"route_id"`
	FromOfficeID       string     `json:"from_office_id"`
	ToOfficeID         string     `json:"to_office_id"`
	Kind               string     `json:"kind"`
	Reason             string     `json:"reason"`
	StartAt            time.Time  `json:"start_at"`
	ExpectedEndAt      *time.Time `json:"expected_end_at,omitempty"`
	AffectedBatchCount int        `json:"affected_batch_count"`
	AffectedOrderCount int        `json:"affected_order_count"`
}

// RouteDisruption is one entry in GET /routes/:id/disruptions.
type RouteDisruption struct {
	ID                 string     `json:"id"`
	Kind               string     `json:"kind"`
	Reason             string     `json:"reason"`
	StartAt            time.Time  `json:"start_at"`
	ExpectedEndAt      *time.Time `json:"expected_end_at,omitempty"`
	ActualEndAt        *time.Time `json:"actual_end_at,omitempty"`
	Active             bool       `json:"active"`
	AffectedBatchCount int        `json:"affected_batch_count"`
	AffectedOrderCount int        `json:"affected_order_count"`
}

// ImpactedBatch is one in-transit batch in GET /routes/:id/rerouting-impact.
type ImpactedBatch struct {
	BatchID            string          `json:"batch_id"`
	BatchCode          string          `json:"batch_code"`
	OrderCount         int             `json:"order_count"`
	DetourAvailable    bool            `json:"detour_available"`
	DetourDistanceKm   decimal.Decimal `json:"detour_distance_km"`
	DetourTransitHours decimal.Decimal `json:"detour_transit_hours"`
	DetourLegCount     int             `json:"detour_leg_count"`
}

// ReroutingImpact is the response for GET /routes/:id/rerouting-impact.
type ReroutingImpact struct {
	RouteID            string          `json:"route_id"`
	AffectedBatchCount int             `json:"affected_batch_count"`
	AffectedOrderCount int             `json:"affected_order_count"`
	StrandedBatchCount int             `json:"stranded_batch_count"`
	Batches            []ImpactedBatch `json:"batches"`
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req NewOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	origin, err := kernel.UUIDFromString(req.OriginOfficeID)
	if err != nil {
		return badRequest(ctx, "Invalid origin_office_id: "+err.Error())
	}
	destination, err := kernel.UUIDFromString(req.DestinationOfficeID)
	if err != nil {
		return badRequest(ctx, "Invalid destination_office_id: "+err.Error())
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(
		orderID, req.TrackingNumber, origin, destination,
		req.WeightKg, req.LengthCm, req.WidthCm, req.HeightCm,
	)
	if err != nil {
		return badRequest(ctx, "Invalid order data: "+err.Error())
	}

	if err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: orderID.String()})
}

// TransitionOrder handles POST /api/v1/orders/:id/transitions.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid order ID: "+err.Error())
	}

	var req TransitionOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewTransitionOrderCommand(
		orderID, order.Status(req.Status), req.Description, req.Location, actor,
	)
	if err != nil {
		return badRequest(ctx, "Invalid transition data: "+err.Error())
	}

	if err := s.transitionOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetUnbatchedOrders handles GET /api/v1/offices/:id/unbatched-orders.
func (s *Server) GetUnbatchedOrders(ctx echo.Context) error {
	officeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid office ID: "+err.Error())
	}

	query, err := queries.NewGetUnbatchedOrdersQuery(officeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getUnbatchedOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]UnbatchedOrder, len(rows))
	for i, row := range rows {
		response[i] = UnbatchedOrder{
			ID:                  row.ID.String(),
			TrackingNumber:      row.TrackingNumber,
			DestinationOfficeID: row.DestinationOfficeID.String(),
			WeightKg:            row.WeightKg,
			CreatedAt:           row.CreatedAt,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetBatchableDestinations handles GET /api/v1/offices/:id/batchable-destinations.
// The optional "min" query parameter filters out destinations with fewer
// waiting orders; it defaults to 1.
func (s *Server) GetBatchableDestinations(ctx echo.Context) error {
	officeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid office ID: "+err.Error())
	}

	minOrderCount := 1
	if raw := ctx.QueryParam("min"); raw != "" {
		minOrderCount, err = strconv.Atoi(raw)
		if err != nil {
			return badRequest(ctx, "Invalid min parameter: "+err.Error())
		}
	}

	query, err := queries.NewGetBatchableDestinationsQuery(officeID, minOrderCount)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getBatchableDestinationsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]BatchableDestination, len(rows))
	for i, row := range rows {
		response[i] = BatchableDestination{
			DestinationOfficeID: row.DestinationOfficeID.String(),
			OrderCount:          row.OrderCount,
			TotalWeightKg:       row.TotalWeightKg,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateBatch handles POST /api/v1/batches.
func (s *Server) CreateBatch(ctx echo.Context) error {
	var req NewBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	origin, err := kernel.UUIDFromString(req.OriginOfficeID)
	if err != nil {
		return badRequest(ctx, "Invalid origin_office_id: "+err.Error())
	}
	destination, err := kernel.UUIDFromString(req.DestinationOfficeID)
	if err != nil {
		return badRequest(ctx, "Invalid destination_office_id: "+err.Error())
	}

	batchID := kernel.NewUUID()
	cmd, err := commands.NewCreateBatchCommand(batchID, origin, destination, batch.CapacityLimits{
		MaxWeightKg:   req.MaxWeightKg,
		MaxVolumeCm3:  req.MaxVolumeCm3,
		MaxOrderCount: req.MaxOrderCount,
	})
	if err != nil {
		return badRequest(ctx, "Invalid batch data: "+err.Error())
	}

	if err := s.createBatchHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: batchID.String()})
}

// AddOrdersToBatch handles POST /api/v1/batches/:id/orders.
func (s *Server) AddOrdersToBatch(ctx echo.Context) error {
	batchID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid batch ID: "+err.Error())
	}

	var req AddOrdersRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderIDs := make([]kernel.UUID, len(req.OrderIDs))
	for i, raw := range req.OrderIDs {
		orderIDs[i], err = kernel.UUIDFromString(raw)
		if err != nil {
			return badRequest(ctx, "Invalid order ID "+raw+": "+err.Error())
		}
	}

	cmd, err := commands.NewAddOrdersToBatchCommand(batchID, orderIDs)
	if err != nil {
		return badRequest(ctx, "Invalid request: "+err.Error())
	}

	if err := s.addOrdersToBatchHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AutoBatch handles POST /api/v1/batches/auto. It runs one planner pass for
// the given office pair and returns a summary of what the pass did.
func (s *Server) AutoBatch(ctx echo.Context) error {
	var req AutoBatchRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	origin, err := kernel.UUIDFromString(req.OriginOfficeID)
	if err != nil {
		return badRequest(ctx, "Invalid origin_office_id: "+err.Error())
	}
	destination, err := kernel.UUIDFromString(req.DestinationOfficeID)
	if err != nil {
		return badRequest(ctx, "Invalid destination_office_id: "+err.Error())
	}

	cmd, err := commands.NewAutoBatchCommand(origin, destination, services.CapacityPolicy{
		MaxWeightKg:      req.MaxWeightKg,
		MaxVolumeCm3:     req.MaxVolumeCm3,
		MaxOrderCount:    req.MaxOrderCount,
		MinOrderCount:    req.MinOrderCount,
		CreateNewBatches: req.CreateNewBatches,
	})
	if err != nil {
		return badRequest(ctx, "Invalid plan request: "+err.Error())
	}

	result, err := s.autoBatchHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	summary := PlanSummary{
		OrdersProcessed: result.OrdersProcessed,
		OrdersAdded:     result.OrdersAdded,
		OrdersSkipped:   result.OrdersSkipped,
		Skips:           make([]SkippedOrder, len(result.Skips)),
		ReusedBatchIDs:  make([]string, len(result.ReusedBatches)),
		NewBatchIDs:     make([]string, len(result.NewBatches)),
	}
	for i, skip := range result.Skips {
		summary.Skips[i] = SkippedOrder{OrderID: skip.OrderID.String(), Reason: string(skip.Reason)}
	}
	for i, b := range result.ReusedBatches {
		summary.ReusedBatchIDs[i] = b.ID().String()
	}
	for i, b := range result.NewBatches {
		summary.NewBatchIDs[i] = b.ID().String()
	}
	return ctx.JSON(http.StatusOK, summary)
}

// SealBatch handles POST /api/v1/batches/:id/seal.
func (s *Server) SealBatch(ctx echo.Context) error {
	return s.batchLifecycle(ctx, func(batchID kernel.UUID) error {
		cmd, err := commands.NewSealBatchCommand(batchID)
		if err != nil {
			return err
		}
		return s.sealBatchHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// DepartBatch handles POST /api/v1/batches/:id/depart.
func (s *Server) DepartBatch(ctx echo.Context) error {
	return s.batchLifecycle(ctx, func(batchID kernel.UUID) error {
		cmd, err := commands.NewDepartBatchCommand(batchID)
		if err != nil {
			return err
		}
		return s.departBatchHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// ArriveBatch handles POST /api/v1/batches/:id/arrive.
func (s *Server) ArriveBatch(ctx echo.Context) error {
	return s.batchLifecycle(ctx, func(batchID kernel.UUID) error {
		cmd, err := commands.NewArriveBatchCommand(batchID)
		if err != nil {
			return err
		}
		return s.arriveBatchHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// DistributeBatch handles POST /api/v1/batches/:id/distribute.
func (s *Server) DistributeBatch(ctx echo.Context) error {
	return s.batchLifecycle(ctx, func(batchID kernel.UUID) error {
		cmd, err := commands.NewDistributeBatchCommand(batchID)
		if err != nil {
			return err
		}
		return s.distributeBatchHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// CancelBatch handles POST /api/v1/batches/:id/cancel.
func (s *Server) CancelBatch(ctx echo.Context) error {
	return s.batchLifecycle(ctx, func(batchID kernel.UUID) error {
		cmd, err := commands.NewCancelBatchCommand(batchID)
		if err != nil {
			return err
		}
		return s.cancelBatchHandler.Handle(ctx.Request().Context(), cmd)
	})
}

// batchLifecycle shares the parse-dispatch-respond shape of the five
// batch lifecycle endpoints.
func (s *Server) batchLifecycle(ctx echo.Context, dispatch func(kernel.UUID) error) error {
	batchID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid batch ID: "+err.Error())
	}
	if err := dispatch(batchID); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateTransferRoute handles POST /api/v1/routes.
func (s *Server) CreateTransferRoute(ctx echo.Context) error {
	var req NewTransferRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := parseRouteKind(req.Kind)
	if err != nil {
		return badRequest(ctx, err.Error())
	}
	from, err := kernel.UUIDFromString(req.FromOfficeID)
	if err != nil {
		return badRequest(ctx, "Invalid from_office_id: "+err.Error())
	}
	to, err := kernel.UUIDFromString(req.ToOfficeID)
	if err != nil {
		return badRequest(ctx, "Invalid to_office_id: "+err.Error())
	}
	var warehouseID *kernel.UUID
	if req.ProvinceWarehouseID != nil {
		parsed, err := kernel.UUIDFromString(*req.ProvinceWarehouseID)
		if err != nil {
			return badRequest(ctx, "Invalid province_warehouse_id: "+err.Error())
		}
		warehouseID = &parsed
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	routeID := kernel.NewUUID()
	cmd, err := commands.NewCreateTransferRouteCommand(
		routeID, kind, from, to, warehouseID,
		req.DistanceKm, req.TransitHours, req.Priority, req.Bidirectional, actor,
	)
	if err != nil {
		return badRequest(ctx, "Invalid route data: "+err.Error())
	}

	if err := s.createTransferRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: routeID.String()})
}

// DisableRoute handles POST /api/v1/routes/:id/disable.
func (s *Server) DisableRoute(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid route ID: "+err.Error())
	}

	var req DisableRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	kind, err := parseDisruptionKind(req.Kind)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewDisableRouteCommand(routeID, kind, req.Reason, req.ExpectedEndAt, actor)
	if err != nil {
		return badRequest(ctx, "Invalid disruption data: "+err.Error())
	}

	if err := s.disableRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetReroutingImpact handles GET /api/v1/routes/:id/rerouting-impact.
func (s *Server) GetReroutingImpact(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid route ID: "+err.Error())
	}

	query, err := queries.NewGetReroutingImpactQuery(routeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	impact, err := s.getReroutingImpactHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := ReroutingImpact{
		RouteID:            impact.RouteID.String(),
		AffectedBatchCount: impact.AffectedBatchCount,
		AffectedOrderCount: impact.AffectedOrderCount,
		StrandedBatchCount: impact.StrandedBatchCount,
		Batches:            make([]ImpactedBatch, len(impact.Batches)),
	}
	for i, b := range impact.Batches {
		response.Batches[i] = ImpactedBatch{
			BatchID:            b.BatchID.String(),
			BatchCode:          b.BatchCode,
			OrderCount:         b.OrderCount,
			DetourAvailable:    b.DetourAvailable,
			DetourDistanceKm:   b.DetourDistanceKm,
			DetourTransitHours: b.DetourTransitHours,
			DetourLegCount:     b.DetourLegCount,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetRouteDisruptionHistory handles GET /api/v1/routes/:id/disruptions.
func (s *Server) GetRouteDisruptionHistory(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid route ID: "+err.Error())
	}

	query, err := queries.NewGetRouteDisruptionHistoryQuery(routeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	rows, err := s.getRouteDisruptionHistoryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]RouteDisruption, len(rows))
	for i, row := range rows {
		response[i] = RouteDisruption{
			ID:                 row.ID.String(),
			Kind:               row.Kind,
			Reason:             row.Reason,
			StartAt:            row.StartAt,
			ExpectedEndAt:      row.ExpectedEndAt,
			ActualEndAt:        row.ActualEndAt,
			Active:             row.Active,
			AffectedBatchCount: row.AffectedBatchCount,
			AffectedOrderCount: row.AffectedOrderCount,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetActiveDisruptions handles GET /api/v1/disruptions/active.
func (s *Server) GetActiveDisruptions(ctx echo.Context) error {
	query := queries.NewGetActiveDisruptionsQuery()

	rows, err := s.getActiveDisruptionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]ActiveDisruption, len(rows))
	for i, row := range rows {
		response[i] = ActiveDisruption{
			ID:                 row.ID.String(),
			RouteID:            row.RouteID.String(),
			FromOfficeID:       row.FromOfficeID.String(),
			ToOfficeID:         row.ToOfficeID.String(),
			Kind:               row.Kind,
			Reason:             row.Reason,
			StartAt:            row.StartAt,
			ExpectedEndAt:      row.ExpectedEndAt,
			AffectedBatchCount: row.AffectedBatchCount,
			AffectedOrderCount: row.AffectedOrderCount,
		}
	}
	return ctx.JSON(http.StatusOK, response)
}

// ResolveDisruption handles POST /api/v1/disruptions/:id/resolve.
func (s *Server) ResolveDisruption(ctx echo.Context) error {
	disruptionID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid disruption ID: "+err.Error())
	}

	actor, err := actorFromRequest(ctx)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	cmd, err := commands.NewResolveDisruptionCommand(disruptionID, actor)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	if err := s.resolveDisruptionHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateConsolidationRoute handles POST /api/v1/consolidation-routes.
func (s *Server) CreateConsolidationRoute(ctx echo.Context) error {
	var req NewConsolidationRouteRequest
	if err := ctx.Bind(&req); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	warehouseID, err := kernel.UUIDFromString(req.WarehouseOfficeID)
	if err != nil {
		return badRequest(ctx, "Invalid warehouse_office_id: "+err.Error())
	}

	stops := make([]routing.Stop, len(req.Stops))
	for i, stop := range req.Stops {
		stops[i] = routing.Stop{
			WardCode:       stop.WardCode,
			WardOfficeName: stop.WardOfficeName,
			Order:          stop.Order,
			DistanceKm:     stop.DistanceKm,
		}
	}

	routeID := kernel.NewUUID()
	cmd, err := commands.NewCreateConsolidationRouteCommand(
		routeID, req.Name, req.ProvinceCode, stops, warehouseID,
		req.MaxWeightKg, req.MaxOrderCount,
	)
	if err != nil {
		return badRequest(ctx, "Invalid route data: "+err.Error())
	}

	if err := s.createConsolidationRouteHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, CreatedResponse{ID: routeID.String()})
}

// RunConsolidation handles POST /api/v1/consolidation-routes/:id/run.
func (s *Server) RunConsolidation(ctx echo.Context) error {
	routeID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return badRequest(ctx, "Invalid route ID: "+err.Error())
	}

	cmd, err := commands.NewRunConsolidationCommand(routeID)
	if err != nil {
		return badRequest(ctx, err.Error())
	}

	consolidated, err := s.runConsolidationHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, ConsolidationRunResponse{OrdersConsolidated: consolidated})
}

// Actor identity headers. The authentication gateway in front of this
// service resolves credentials and forwards the staff member's identity,
// role and assigned office; this surface only parses them.
const (
	headerActorID     = "X-Actor-ID"
	headerActorRole   = "X-Actor-Role"
	headerActorOffice = "X-Actor-Office-ID"
)

func actorFromRequest(ctx echo.Context) (staff.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorID))
	if err != nil {
		return staff.Actor{}, fmt.Errorf("invalid %s: %w", headerActorID, err)
	}
	role, err := parseActorRole(ctx.Request().Header.Get(headerActorRole))
	if err != nil {
		return staff.Actor{}, err
	}
	officeID, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerActorOffice))
	if err != nil {
		return staff.Actor{}, fmt.Errorf("invalid %s: %w", headerActorOffice, err)
	}

	return staff.NewActor(id, role, officeID)
}

func parseActorRole(raw string) (staff.Role, error) {
	switch raw {
	case "SystemAdmin":
		return staff.SystemAdmin, nil
	case "HubManager":
		return staff.HubManager, nil
	case "BranchManager":
		return staff.BranchManager, nil
	case "ProvincePostManager":
		return staff.ProvincePostManager, nil
	case "WarehouseManager":
		return staff.WarehouseManager, nil
	case "PostOfficeManager":
		return staff.PostOfficeManager, nil
	case "Clerk":
		return staff.Clerk, nil
	case "Shipper":
		return staff.Shipper, nil
	default:
		return staff.RoleUnknown, errs.NewValueIsInvalidError(headerActorRole + " is not a known role")
	}
}

func parseRouteKind(raw string) (routing.RouteKind, error) {
	switch raw {
	case "ProvinceToHub":
		return routing.ProvinceToHub, nil
	case "HubToHub":
		return routing.HubToHub, nil
	default:
		return routing.RouteKindUnknown, errs.NewValueIsInvalidError("kind must be ProvinceToHub or HubToHub")
	}
}

func parseDisruptionKind(raw string) (routing.DisruptionKind, error) {
	switch raw {
	case "Weather":
		return routing.Weather, nil
	case "VehicleBreakdown":
		return routing.VehicleBreakdown, nil
	case "RoadBlocked":
		return routing.RoadBlocked, nil
	case "Maintenance":
		return routing.Maintenance, nil
	case "Other":
		return routing.OtherDisruption, nil
	default:
		return routing.DisruptionKindUnknown, errs.NewValueIsInvalidError("kind is not a known disruption kind")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// writeError maps use case failures onto HTTP status codes: missing
// aggregates become 404, optimistic concurrency conflicts become 409,
// scope violations become 403, domain rejections become 422 and everything
// else is a 500.
func writeError(ctx echo.Context, err error) error {
	var notFound *errs.ObjectNotFoundError
	if errors.As(err, &notFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	}

	if errors.Is(err, services.ErrForbiddenScope) {
		return ctx.JSON(http.StatusForbidden, Error{
			Code:    http.StatusForbidden,
			Message: err.Error(),
		})
	}

	var staleVersion *errs.VersionIsInvalidError
	if errors.As(err, &staleVersion) {
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	}

	var invalidValue *errs.ValueIsInvalidError
	if errors.As(err, &invalidValue) ||
		errors.Is(err, order.ErrIllegalTransition) ||
		errors.Is(err, batch.ErrCapacityExceeded) ||
		errors.Is(err, services.ErrNoPathAvailable) {
		return ctx.JSON(http.StatusUnprocessableEntity, Error{
			Code:    http.StatusUnprocessableEntity,
			Message: err.Error(),
		})
	}

	return ctx.JSON(http.StatusInternalServerError, Error{
		Code:    http.StatusInternalServerError,
		Message: err.Error(),
	})
}
