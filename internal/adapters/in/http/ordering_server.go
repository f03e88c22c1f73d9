package http

import (
	"errors"
	"net/http"

	"fooddelivery/internal/adapters/out/messaging"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	msgOrderNotFound = "Order not found"
	msgMissingFields = "Missing required fields: customerId, restaurantId, items"
)

// OrderingServer serves the customer-facing order API.
type OrderingServer struct {
	createOrderHandler commands.CreateOrderCommandHandler
	getOrderHandler    queries.GetOrderQueryHandler
	listOrdersHandler  queries.ListOrdersQueryHandler
	orderStatsHandler  queries.GetOrderStatsQueryHandler
}

// NewOrderingServer returns the REST surface of the order service.
func NewOrderingServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	listOrdersHandler queries.ListOrdersQueryHandler,
	orderStatsHandler queries.GetOrderStatsQueryHandler,
) *OrderingServer {
	return &OrderingServer{
		createOrderHandler: createOrderHandler,
		getOrderHandler:    getOrderHandler,
		listOrdersHandler:  listOrdersHandler,
		orderStatsHandler:  orderStatsHandler,
	}
}

// RegisterRoutes mounts the order service routes under api.
func (s *OrderingServer) RegisterRoutes(api *echo.Group) {
	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:id", s.GetOrder)
	api.GET("/stats", s.GetStats)
}

// CreateOrder handles POST /api/orders. The order is answered with 201 once it
// is stored and announced on the orders topic.
func (s *OrderingServer) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return fail(ctx, http.StatusBadRequest, "Invalid request body")
	}
	if body.CustomerID == "" || body.RestaurantID == "" || len(body.Items) == 0 {
		return fail(ctx, http.StatusBadRequest, msgMissingFields)
	}

	cmd, err := commands.NewCreateOrderCommand(body.CustomerID, body.RestaurantID, body.inputs())
	if err != nil {
		return fail(ctx, http.StatusBadRequest, err.Error())
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		if created != nil && errors.Is(err, messaging.ErrPublishFailure) {
			return fail(ctx, http.StatusBadGateway, "Order "+created.ID().String()+" stored but not announced: "+err.Error())
		}
		return failWith(ctx, err, msgOrderNotFound, "Failed to create order")
	}

	return ctx.JSON(http.StatusCreated, toOrder(queries.NewOrderResponse(created)))
}

// GetOrders handles GET /api/orders, optionally filtered by ?customerId=.
func (s *OrderingServer) GetOrders(ctx echo.Context) error {
	query := queries.NewListOrdersQuery(ctx.QueryParam("customerId"))

	orders, err := s.listOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failWith(ctx, err, msgOrderNotFound, "Failed to fetch orders")
	}
	return ctx.JSON(http.StatusOK, toOrders(orders))
}

// GetOrder handles GET /api/orders/:id.
func (s *OrderingServer) GetOrder(ctx echo.Context) error {
	return getOrder(ctx, s.getOrderHandler)
}

// GetStats handles GET /api/stats.
func (s *OrderingServer) GetStats(ctx echo.Context) error {
	return getOrderStats(ctx, s.orderStatsHandler, queries.NewGetOrderStatsQuery())
}

func getOrder(ctx echo.Context, handler queries.GetOrderQueryHandler) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgOrderNotFound)
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgOrderNotFound)
	}

	o, err := handler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failWith(ctx, err, msgOrderNotFound, "Failed to fetch order")
	}
	return ctx.JSON(http.StatusOK, toOrder(o))
}

func getOrderStats(ctx echo.Context, handler queries.GetOrderStatsQueryHandler, query queries.GetOrderStatsQuery) error {
	stats, err := handler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return failWith(ctx, err, msgOrderNotFound, "Failed to fetch statistics")
	}
	return ctx.JSON(http.StatusOK, OrderStats{
		Total:        stats.Total,
		ByStatus:     stats.ByStatus,
		ByRestaurant: stats.ByRestaurant,
	})
}
