package http

import (
	"net/http"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

const (
	msgDeliveryNotFound        = "Delivery not found"
	msgDeliveryForOrderMissing = "Delivery not found for this order"
	msgDriverNotFound          = "Driver not found"
)

// DispatchServer serves the delivery tracking API. It is read-only: deliveries
// are created from READY events, not over HTTP.
type DispatchServer struct {
	handler queries.DispatchQueryHandler
}

// NewDispatchServer returns the REST surface of the delivery service.
func NewDispatchServer(handler queries.DispatchQueryHandler) *DispatchServer {
	return &DispatchServer{handler: handler}
}

// RegisterRoutes mounts the delivery service routes under api.
func (s *DispatchServer) RegisterRoutes(api *echo.Group) {
	api.GET("/deliveries", s.GetDeliveries)
	api.GET("/deliveries/order/:orderId", s.GetDeliveryByOrder)
	api.GET("/deliveries/:id", s.GetDelivery)
	api.GET("/drivers", s.GetDrivers)
	api.GET("/drivers/:id", s.GetDriver)
	api.GET("/stats", s.GetStats)
}

// GetDeliveries handles GET /api/deliveries.
func (s *DispatchServer) GetDeliveries(ctx echo.Context) error {
	deliveries, err := s.handler.ListDeliveries(ctx.Request().Context(), queries.NewListDeliveriesQuery())
	if err != nil {
		return failWith(ctx, err, msgDeliveryNotFound, "Failed to fetch deliveries")
	}

	response := make([]Delivery, len(deliveries))
	for i, d := range deliveries {
		response[i] = toDelivery(d)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDelivery handles GET /api/deliveries/:id.
func (s *DispatchServer) GetDelivery(ctx echo.Context) error {
	id, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgDeliveryNotFound)
	}

	query, err := queries.NewGetDeliveryQuery(id)
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgDeliveryNotFound)
	}
	return s.getDelivery(ctx, query, msgDeliveryNotFound)
}

// GetDeliveryByOrder handles GET /api/deliveries/order/:orderId.
func (s *DispatchServer) GetDeliveryByOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderId"))
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgDeliveryForOrderMissing)
	}

	query, err := queries.NewGetDeliveryByOrderQuery(orderID)
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgDeliveryForOrderMissing)
	}
	return s.getDelivery(ctx, query, msgDeliveryForOrderMissing)
}

func (s *DispatchServer) getDelivery(ctx echo.Context, query queries.GetDeliveryQuery, notFound string) error {
	d, err := s.handler.GetDelivery(ctx.Request().Context(), query)
	if err != nil {
		return failWith(ctx, err, notFound, "Failed to fetch delivery")
	}
	return ctx.JSON(http.StatusOK, toDelivery(d))
}

// GetDrivers handles GET /api/drivers.
func (s *DispatchServer) GetDrivers(ctx echo.Context) error {
	drivers, err := s.handler.ListDrivers(ctx.Request().Context(), queries.NewListDriversQuery())
	if err != nil {
		return failWith(ctx, err, msgDriverNotFound, "Failed to fetch drivers")
	}

	response := make([]Driver, len(drivers))
	for i, d := range drivers {
		response[i] = toDriver(d)
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetDriver handles GET /api/drivers/:id.
func (s *DispatchServer) GetDriver(ctx echo.Context) error {
	query, err := queries.NewGetDriverQuery(ctx.Param("id"))
	if err != nil {
		return fail(ctx, http.StatusNotFound, msgDriverNotFound)
	}

	d, err := s.handler.GetDriver(ctx.Request().Context(), query)
	if err != nil {
		return failWith(ctx, err, msgDriverNotFound, "Failed to fetch driver")
	}
	return ctx.JSON(http.StatusOK, toDriver(d))
}

// GetStats handles GET /api/stats.
func (s *DispatchServer) GetStats(ctx echo.Context) error {
	stats, err := s.handler.GetStats(ctx.Request().Context(), queries.NewGetDeliveryStatsQuery())
	if err != nil {
		return failWith(ctx, err, msgDeliveryNotFound, "Failed to fetch statistics")
	}
	return ctx.JSON(http.StatusOK, DeliveryStats{
		Total:            stats.Total,
		ByStatus:         stats.ByStatus,
		AvailableDrivers: stats.AvailableDrivers,
	})
}
