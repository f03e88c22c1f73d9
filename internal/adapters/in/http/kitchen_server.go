package http

import (
	"fmt"
	"net/http"

	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

const msgRestaurantNotFound = "Restaurant not found"

// KitchenServer serves the restaurant dashboard API.
type KitchenServer struct {
	advanceHandler  commands.AdvanceKitchenOrderCommandHandler
	overrideHandler commands.OverrideKitchenOrderStatusCommandHandler

	getOrderHandler       queries.GetOrderQueryHandler
	listOrdersHandler     queries.ListOrdersQueryHandler
	statsHandler          queries.GetOrderStatsQueryHandler
	listRestaurantHandler queries.ListRestaurantsQueryHandler
	getRestaurantHandler  queries.GetRestaurantQueryHandler
}

// NewKitchenServer returns the REST surface of the restaurant service.
func NewKitchenServer(
	advanceHandler commands.AdvanceKitchenOrderCommandHandler,
	overrideHandler commands.OverrideKitchenOrderStatusCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	statsHandler queries.GetOrderStatsQueryHandler,
	listRestaurantHandler queries.ListRestaurantsQueryHandler,
	getRestaurantHandler queries.GetRestaurantQueryHandler,
) *KitchenServer {
	return &KitchenServer{
		advanceHandler:        advanceHandler,
		overrideHandler:       overrideHandler,
		getOrderHandler:       getOrderHandler,
		listOrdersHandler:     listOrdersHandler,
		statsHandler:          statsHandler,
		listRestaurantHandler: listRestaurantHandler,
		getRestaurantHandler:  getRestaurantHandler,
	}
}

// RegisterRoutes mounts the restaurant service routes under api.
func (s *KitchenServer) RegisterRoutes(api *echo.Group) {
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.PATCH("/orders/:id/status", s.UpdateOrderStatus)
	api.POST("/orders/:id/accept", s.AcceptOrder)
	api.POST("/orders/:id/prepare", s.StartPreparation)
	api.POST("/orders/:id/ready", s.MarkReady)
	api.GET("/restaurants", s.GetRestaurants)
	api.GET("/restaurants/:id", s.GetRestaurant)
	api.GET("/stats", s.GetStats)
}

// GetOrders handles GET /api/orders. With ?restaurantId= it lists every order
// of that restaurant, otherwise only orders not yet delivered.
func (s *KitchenServer) GetOrders(ctx echo.Context) error {
	query := queries.NewListKitchenOrdersQuery(ctx.QueryParam("restaurantId"))

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failWith(ctx, err, msgOrderNotFound, "Failed to fetch orders")
	}
	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// GetOrder handles GET /api/orders/:id.
func (s *KitchenServer) GetOrder(ctx echo.Context) error {
	return getOrder(ctx, s.getOrderHandler)
}

// UpdateOrderStatus handles PATCH /api/orders/:id/status. The status is set
// as given, without transition checks.
func (s *KitchenServer) UpdateOrderStatus(ctx echo.Context) error {
	var body StatusUpdate
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid request body")
	}

	status, err := order.ParseStatus(body.Status)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid status")
	}

	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgOrderNotFound)
	}

	cmd, err := commands.NewOverrideKitchenOrderStatusCommand(id, status)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	outcome, err := s.overrideHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failWith(ctx, err, msgOrderNotFound, "Failed to update order status")
	}
	if outcome == commands.IgnoredUnknownOrder {
		return fail(ctx, http.StatusNotFound, msgOrderNotFound)
	}

	return ctx.JSON(http.StatusOK, Result{
		Success: true,
		Message: fmt.Sprintf("Order %s status updated to %s", id, status),
	})
}

// AcceptOrder handles POST /api/orders/:id/accept.
func (s *KitchenServer) AcceptOrder(ctx echo.Context) error {
	return s.advance(ctx, commands.StepAccept, "accepted", "Failed to accept order")
}

// StartPreparation handles POST /api/orders/:id/prepare.
func (s *KitchenServer) StartPreparation(ctx echo.Context) error {
	return s.advance(ctx, commands.StepStartPreparation, "preparation started", "Failed to start preparation")
}

// MarkReady handles POST /api/orders/:id/ready.
func (s *KitchenServer) MarkReady(ctx echo.Context) error {
	return s.advance(ctx, commands.StepMarkReady, "is ready for pickup", "Failed to complete preparation")
}

func (s *KitchenServer) advance(ctx echo.Context, step commands.KitchenStep, done, failed string) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgOrderNotFound)
	}

	cmd, err := commands.NewAdvanceKitchenOrderCommand(id, step)
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	outcome, err := s.advanceHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return failWith(ctx, err, msgOrderNotFound, failed)
	}

	switch outcome {
	case commands.IgnoredUnknownOrder:
		return fail(ctx, http.StatusNotFound, msgOrderNotFound)
	case commands.IgnoredPrecondition:
		// A step from the wrong status is a no-op, not a client error.
		return ctx.JSON(http.StatusOK, Result{
			Success: true,
			Message: fmt.Sprintf("Order %s unchanged: %s does not apply to its current status", id, step),
		})
	default:
		return ctx.JSON(http.StatusOK, Result{
			Success: true,
			Message: fmt.Sprintf("Order %s %s", id, done),
		})
	}
}

// GetRestaurants handles GET /api/restaurants.
func (s *KitchenServer) GetRestaurants(ctx echo.Context) error {
	restaurants, err := s.listRestaurantHandler.Handle(ctx.Request().Context(), queries.NewListRestaurantsQuery())
	if err != nil {
		return failWith(ctx, err, msgRestaurantNotFound, "Failed to fetch restaurants")
	}

	response := make([]Restaurant, len(restaurants))
	for i, r := range restaurants {
		response[i] = toRestaurant(r)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetRestaurant handles GET /api/restaurants/:id.
func (s *KitchenServer) GetRestaurant(ctx echo.Context) error {
	query, err := queries.NewGetRestaurantQuery(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgRestaurantNotFound)
	}

	r, err := s.getRestaurantHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failWith(ctx, err, msgRestaurantNotFound, "Failed to fetch restaurant")
	}
	return ctx.JSON(http.StatusOK, toRestaurant(r))
}

// GetStats handles GET /api/stats, counted by status and by restaurant name.
func (s *KitchenServer) GetStats(ctx echo.Context) error {
	return getOrderStats(ctx, s.statsHandler, queries.NewGetKitchenStatsQuery())
}
