package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"fooddelivery/internal/adapters/out/geocoding"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/jobs"
	"fooddelivery/internal/pkg/errs"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Supported BROKER values.
const (
	BrokerKafka  = "kafka"
	BrokerRedis  = "redis"
	BrokerInproc = "inproc"
)

// Config is the process configuration, read from the environment and an
// optional dotenv file.
type Config struct {
	HTTPPort           string `mapstructure:"http_port"`
	OrderHTTPPort      string `mapstructure:"order_http_port"`
	RestaurantHTTPPort string `mapstructure:"restaurant_http_port"`
	DeliveryHTTPPort   string `mapstructure:"delivery_http_port"`
	ServiceRole        string `mapstructure:"service_role"`
	LogLevel           string `mapstructure:"log_level"`

	Broker             string   `mapstructure:"broker"`
	KafkaBrokers       []string `mapstructure:"kafka_brokers"`
	KafkaConsumerGroup string   `mapstructure:"kafka_consumer_group"`
	RedisAddr          string   `mapstructure:"redis_addr"`

	TickInterval       time.Duration `mapstructure:"tick_interval"`
	SimulationSpeedKmh float64       `mapstructure:"simulation_speed_kmh"`
	ArrivalPause       time.Duration `mapstructure:"arrival_pause"`

	CityLatitude     float64 `mapstructure:"city_latitude"`
	CityLongitude    float64 `mapstructure:"city_longitude"`
	CityRadiusDeg    float64 `mapstructure:"city_radius_deg"`
	GeocoderFallback string  `mapstructure:"geocoder_fallback"`

	OverdueCheckSchedule string        `mapstructure:"overdue_check_schedule"`
	ShutdownTimeout      time.Duration `mapstructure:"shutdown_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", "")
	v.SetDefault("order_http_port", "3001")
	v.SetDefault("restaurant_http_port", "3002")
	v.SetDefault("delivery_http_port", "3003")
	v.SetDefault("service_role", string(RoleAll))
	v.SetDefault("log_level", "info")

	v.SetDefault("broker", BrokerKafka)
	v.SetDefault("kafka_brokers", "localhost:9092")
	v.SetDefault("kafka_consumer_group", "fooddelivery")
	v.SetDefault("redis_addr", "localhost:6379")

	v.SetDefault("tick_interval", "1s")
	v.SetDefault("simulation_speed_kmh", 1000)
	v.SetDefault("arrival_pause", "500ms")

	// Tokyo
	v.SetDefault("city_latitude", 35.6762)
	v.SetDefault("city_longitude", 139.6503)
	v.SetDefault("city_radius_deg", 0.05)
	v.SetDefault("geocoder_fallback", string(geocoding.FallbackRandom))

	v.SetDefault("overdue_check_schedule", jobs.DefaultOverdueCheckSchedule)
	v.SetDefault("shutdown_timeout", "10s")
}

// LoadConfig reads envFile if it exists, then the environment. Keys are the
// upper-case field tags: HTTP_PORT, BROKER, KAFKA_BROKERS (comma separated),
// TICK_INTERVAL (Go duration) and so on.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	decoderConfigOption := viper.DecoderConfigOption(func(dc *mapstructure.DecoderConfig) {
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	})
	if err := v.Unmarshal(&cfg, decoderConfigOption); err != nil {
		return Config{}, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the broker settings, role, geocoder fallback and city. All
// problems are reported together.
func (c Config) Validate() error {
	var brokerErr error
	switch c.Broker {
	case BrokerKafka:
		if len(c.KafkaBrokers) == 0 {
			brokerErr = errs.NewValueIsRequiredError("KAFKA_BROKERS")
		}
	case BrokerRedis:
		if strings.TrimSpace(c.RedisAddr) == "" {
			brokerErr = errs.NewValueIsRequiredError("REDIS_ADDR")
		}
	case BrokerInproc:
	default:
		brokerErr = errs.NewValueIsInvalidErrorWithCause("BROKER", fmt.Errorf("%q is not one of kafka, redis, inproc", c.Broker))
	}

	_, roleErr := ParseRole(c.ServiceRole)
	_, fallbackErr := geocoding.ParseFallbackPolicy(c.GeocoderFallback)
	_, cityErr := c.City()

	var radiusErr error
	if c.CityRadiusDeg < 0 || c.CityRadiusDeg > 1 {
		radiusErr = errs.NewValueIsOutOfRangeError("CITY_RADIUS_DEG", c.CityRadiusDeg, 0, 1)
	}

	return errors.Join(brokerErr, roleErr, fallbackErr, cityErr, radiusErr)
}

// City is the center drivers and customers are scattered around.
func (c Config) City() (kernel.Location, error) {
	return kernel.NewLocation(c.CityLatitude, c.CityLongitude, time.Time{})
}

// Port returns the listen port of role. HTTP_PORT, when set, wins for a
// single-role process.
func (c Config) Port(role Role, single bool) string {
	if single && c.HTTPPort != "" {
		return c.HTTPPort
	}
	switch role {
	case RoleOrder:
		return c.OrderHTTPPort
	case RoleRestaurant:
		return c.RestaurantHTTPPort
	default:
		return c.DeliveryHTTPPort
	}
}
