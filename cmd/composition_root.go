package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/in/subscribers"
	"fooddelivery/internal/adapters/out/geocoding"
	"fooddelivery/internal/adapters/out/memory/deliveryrepo"
	"fooddelivery/internal/adapters/out/memory/driverrepo"
	"fooddelivery/internal/adapters/out/memory/orderrepo"
	"fooddelivery/internal/adapters/out/memory/restaurantrepo"
	"fooddelivery/internal/adapters/out/messaging/inproc"
	"fooddelivery/internal/adapters/out/messaging/kafka"
	"fooddelivery/internal/adapters/out/messaging/redisstream"
	"fooddelivery/internal/core/application/usecases/commands"
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/driver"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/restaurant"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/jobs"
	"fooddelivery/internal/simulation"

	"github.com/labstack/echo/v4"
)

// CompositionRoot wires services. Every role owns its repositories; roles
// only talk to each other through their event channels.
type CompositionRoot struct {
	cfg    Config
	logger *slog.Logger
	city   kernel.Location
	broker *inproc.Broker

	newDeliveryRepository func() ports.DeliveryRepository
}

// NewCompositionRoot validates the city and, for the inproc broker, creates
// the broker every role shares.
func NewCompositionRoot(cfg Config, logger *slog.Logger) (*CompositionRoot, error) {
	city, err := cfg.City()
	if err != nil {
		return nil, err
	}

	root := &CompositionRoot{
		cfg:    cfg,
		logger: logger,
		city:   city,
		newDeliveryRepository: func() ports.DeliveryRepository {
			return deliveryrepo.NewRepository()
		},
	}
	if cfg.Broker == BrokerInproc {
		root.broker = inproc.NewBroker()
	}
	return root, nil
}

// Service is one wired role, ready to run.
type Service struct {
	Role    Role
	HTTP    *echo.Echo
	Channel ports.EventChannel
	onStop  []func()
}

// Stop halts background work of the service and closes its channel.
func (s *Service) Stop() error {
	for i := len(s.onStop) - 1; i >= 0; i-- {
		s.onStop[i]()
	}
	return s.Channel.Close()
}

// Build creates the channel of role and wires the role on it. Subscriptions
// are registered here, so the channel can be started right away.
func (c *CompositionRoot) Build(ctx context.Context, role Role) (*Service, error) {
	ch, err := c.CreateEventChannel(ctx, role)
	if err != nil {
		return nil, err
	}

	var svc *Service
	switch role {
	case RoleOrder:
		svc, err = c.BuildOrdering(ch)
	case RoleRestaurant:
		svc, err = c.BuildKitchen(ch)
	case RoleDelivery:
		svc, err = c.BuildDispatch(ch)
	default:
		err = fmt.Errorf("cannot build role %q", role)
	}
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("failed to wire %s service: %w", role, err)
	}
	return svc, nil
}

// CreateEventChannel connects role to the configured broker. Each role has
// its own consumer group so every service sees every message.
func (c *CompositionRoot) CreateEventChannel(ctx context.Context, role Role) (ports.EventChannel, error) {
	logger := c.logger.With("service", role.ServiceID())
	group := c.cfg.KafkaConsumerGroup + "-" + string(role)

	switch c.cfg.Broker {
	case BrokerInproc:
		return c.broker.NewChannel(logger.With("component", "inproc-channel")), nil
	case BrokerRedis:
		ch, err := redisstream.NewChannel(ctx, redisstream.Config{
			Addr:  c.cfg.RedisAddr,
			Group: group,
		}, logger.With("component", "redis-channel"))
		if err != nil {
			return nil, err
		}
		return ch, nil
	default:
		ch, err := kafka.NewChannel(kafka.Config{
			Brokers:  c.cfg.KafkaBrokers,
			GroupID:  group,
			ClientID: role.ServiceID(),
		}, logger.With("component", "kafka-channel"))
		if err != nil {
			return nil, err
		}
		return ch, nil
	}
}

// BuildOrdering wires the order service: order placement over HTTP and the
// status mirror fed by order-status.
func (c *CompositionRoot) BuildOrdering(ch ports.EventChannel) (*Service, error) {
	logger := c.logger.With("service", RoleOrder.ServiceID())
	orders := orderrepo.NewRepository()

	applier := commands.NewApplyOrderStatusCommandHandler(orders, logger)
	if err := subscribers.RegisterOrdering(ch, applier, logger); err != nil {
		return nil, err
	}

	server := httpadapter.NewOrderingServer(
		commands.NewCreateOrderCommandHandler(orders, ch, logger),
		queries.NewGetOrderQueryHandler(orders),
		queries.NewListOrdersQueryHandler(orders),
		queries.NewGetOrderStatsQueryHandler(orders, nil),
	)

	return &Service{
		Role:    RoleOrder,
		HTTP:    httpadapter.NewEcho(RoleOrder.ServiceID(), logger, server),
		Channel: ch,
	}, nil
}

// BuildKitchen wires the restaurant service: the kitchen projection, manual
// kitchen steps and the pickup/delivery sync.
func (c *CompositionRoot) BuildKitchen(ch ports.EventChannel) (*Service, error) {
	logger := c.logger.With("service", RoleRestaurant.ServiceID())
	orders := orderrepo.NewRepository()
	restaurants := restaurantrepo.NewRepository(restaurant.Catalog())

	if err := subscribers.RegisterKitchen(
		ch,
		commands.NewRegisterKitchenOrderCommandHandler(orders, restaurants, logger),
		commands.NewApplyOrderStatusCommandHandler(orders, logger),
		logger,
	); err != nil {
		return nil, err
	}

	server := httpadapter.NewKitchenServer(
		commands.NewAdvanceKitchenOrderCommandHandler(orders, restaurants, ch, logger),
		commands.NewOverrideKitchenOrderStatusCommandHandler(orders, restaurants, ch, logger),
		queries.NewGetKitchenOrderQueryHandler(orders, restaurants),
		queries.NewListKitchenOrdersQueryHandler(orders, restaurants),
		queries.NewGetOrderStatsQueryHandler(orders, restaurants),
		queries.NewListRestaurantsQueryHandler(restaurants),
		queries.NewGetRestaurantQueryHandler(restaurants),
	)

	return &Service{
		Role:    RoleRestaurant,
		HTTP:    httpadapter.NewEcho(RoleRestaurant.ServiceID(), logger, server),
		Channel: ch,
	}, nil
}

// BuildDispatch wires the delivery service: the seeded fleet, driver
// assignment on READY, the movement simulator and the overdue watchdog.
func (c *CompositionRoot) BuildDispatch(ch ports.EventChannel) (*Service, error) {
	logger := c.logger.With("service", RoleDelivery.ServiceID())
	deliveries := c.newDeliveryRepository()

	drivers, err := c.CreateDriverRepository()
	if err != nil {
		return nil, err
	}
	restaurantGeocoder, customerGeocoder, err := c.CreateGeocoders()
	if err != nil {
		return nil, err
	}

	simulator := simulation.NewSimulator(deliveries, drivers, ch, simulation.Config{
		TickInterval: c.cfg.TickInterval,
		SpeedKmh:     c.cfg.SimulationSpeedKmh,
		ArrivalPause: c.cfg.ArrivalPause,
	}, logger)

	assigner := commands.NewAssignDriverCommandHandler(
		deliveries, drivers, restaurantGeocoder, customerGeocoder, simulator, logger,
	)
	if err = subscribers.RegisterDispatch(ch, assigner, logger); err != nil {
		simulator.Stop()
		return nil, err
	}

	queryHandler := queries.NewDispatchQueryHandler(deliveries, drivers)
	jobManager := jobs.NewJobManager(queryHandler, c.cfg.OverdueCheckSchedule, logger)
	if err = jobManager.StartAll(); err != nil {
		simulator.Stop()
		return nil, err
	}

	return &Service{
		Role:    RoleDelivery,
		HTTP:    httpadapter.NewEcho(RoleDelivery.ServiceID(), logger, httpadapter.NewDispatchServer(queryHandler)),
		Channel: ch,
		onStop:  []func(){simulator.Stop, jobManager.StopAll},
	}, nil
}

// CreateDriverRepository seeds the default fleet around the city center.
func (c *CompositionRoot) CreateDriverRepository() (*driverrepo.Repository, error) {
	fleet, err := driver.DefaultRoster(c.city, c.cfg.CityRadiusDeg, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	drivers := driverrepo.NewRepository()
	for _, d := range fleet {
		if err = drivers.Add(context.Background(), d); err != nil {
			return nil, err
		}
	}
	return drivers, nil
}

// CreateGeocoders returns the restaurant and customer geocoders.
func (c *CompositionRoot) CreateGeocoders() (ports.Geocoder, ports.Geocoder, error) {
	policy, err := geocoding.ParseFallbackPolicy(c.cfg.GeocoderFallback)
	if err != nil {
		return nil, nil, err
	}

	restaurants, err := geocoding.NewRestaurantGeocoder(restaurant.Catalog(), c.city, c.cfg.CityRadiusDeg, policy)
	if err != nil {
		return nil, nil, err
	}
	customers, err := geocoding.NewCustomerGeocoder(c.city, c.cfg.CityRadiusDeg)
	if err != nil {
		return nil, nil, err
	}
	return restaurants, customers, nil
}

// Close releases what the root itself owns.
func (c *CompositionRoot) Close() {
	if c.broker != nil {
		c.broker.Close()
	}
}
