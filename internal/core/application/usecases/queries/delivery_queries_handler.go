package queries

import (
	"context"

	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/ports"
)

// DispatchQueryHandler answers every read of the dispatch service. Delivery
// progress is recomputed from the stored positions on each read.
//
// Example:
//
//	h := NewDispatchQueryHandler(deliveries, drivers)
//	q, _ := NewGetDeliveryByOrderQuery(orderID)
//	d, err := h.GetDelivery(ctx, q)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // no driver was assigned yet
//	}
type DispatchQueryHandler struct {
	deliveries ports.DeliveryRepository
	drivers    ports.DriverRepository
}

// NewDispatchQueryHandler returns the read side of the dispatch service.
func NewDispatchQueryHandler(deliveries ports.DeliveryRepository, drivers ports.DriverRepository) DispatchQueryHandler {
	return DispatchQueryHandler{deliveries: deliveries, drivers: drivers}
}

// ListDeliveries returns every delivery with its progress computed now.
func (h DispatchQueryHandler) ListDeliveries(ctx context.Context, query ListDeliveriesQuery) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries, err := h.deliveries.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DeliveryResponse, 0, len(deliveries))
	for _, d := range deliveries {
		resp = append(resp, deliveryResponse(d))
	}
	return resp, nil
}

// GetDelivery finds a delivery by id or by order.
func (h DispatchQueryHandler) GetDelivery(ctx context.Context, query GetDeliveryQuery) (DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryResponse{}, err
	}

	var (
		d   *delivery.Delivery
		err error
	)
	if query.byOrder {
		d, err = h.deliveries.GetByOrder(ctx, query.id)
	} else {
		d, err = h.deliveries.Get(ctx, query.id)
	}
	if err != nil {
		return DeliveryResponse{}, err
	}
	return deliveryResponse(d), nil
}

// ListDrivers returns the fleet.
func (h DispatchQueryHandler) ListDrivers(ctx context.Context, query ListDriversQuery) ([]DriverResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	drivers, err := h.drivers.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]DriverResponse, 0, len(drivers))
	for _, d := range drivers {
		resp = append(resp, driverResponse(d))
	}
	return resp, nil
}

// GetDriver returns one driver or an errs.ObjectNotFoundError.
func (h DispatchQueryHandler) GetDriver(ctx context.Context, query GetDriverQuery) (DriverResponse, error) {
	if err := query.Validate(); err != nil {
		return DriverResponse{}, err
	}

	d, err := h.drivers.Get(ctx, query.driverID)
	if err != nil {
		return DriverResponse{}, err
	}
	return driverResponse(d), nil
}

// GetStats counts deliveries by status and available drivers.
func (h DispatchQueryHandler) GetStats(ctx context.Context, query GetDeliveryStatsQuery) (DeliveryStatsResponse, error) {
	if err := query.Validate(); err != nil {
		return DeliveryStatsResponse{}, err
	}

	deliveries, err := h.deliveries.List(ctx)
	if err != nil {
		return DeliveryStatsResponse{}, err
	}
	drivers, err := h.drivers.List(ctx)
	if err != nil {
		return DeliveryStatsResponse{}, err
	}

	stats := DeliveryStatsResponse{Total: len(deliveries), ByStatus: make(map[string]int)}
	for _, d := range deliveries {
		stats.ByStatus[d.Status().String()]++
	}
	for _, d := range drivers {
		if d.IsAvailable() {
			stats.AvailableDrivers++
		}
	}
	return stats, nil
}

// ListOverdue returns unfinished deliveries past their ETA. It satisfies
// jobs.OverdueDeliveryLister.
func (h DispatchQueryHandler) ListOverdue(ctx context.Context, query ListOverdueDeliveriesQuery) ([]DeliveryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries, err := h.deliveries.List(ctx)
	if err != nil {
		return nil, err
	}

	var resp []DeliveryResponse
	for _, d := range deliveries {
		if d.IsOverdue(query.now) {
			resp = append(resp, deliveryResponse(d))
		}
	}
	return resp, nil
}
