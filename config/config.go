package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Alert    AlertConfig    `mapstructure:"alert"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// StripeConfig holds the provider credentials. The secret key authenticates
// outbound API calls; the webhook secret verifies inbound event signatures.
type StripeConfig struct {
	SecretKey     string        `mapstructure:"secret_key"`
	WebhookSecret string        `mapstructure:"webhook_secret"`
	APITimeout    time.Duration `mapstructure:"api_timeout"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
}

// MonitorConfig holds the webhook health classification tuning. The
// thresholds are operational parameters, not contracts; defaults follow the
// values the pipeline was designed around.
type MonitorConfig struct {
	WindowSize         int           `mapstructure:"window_size"`
	FailureListSize    int           `mapstructure:"failure_list_size"`
	Retention          time.Duration `mapstructure:"retention"`
	UnhealthyBelow     float64       `mapstructure:"unhealthy_below"`      // success rate
	DegradedBelow      float64       `mapstructure:"degraded_below"`       // success rate
	LatencyWarning     time.Duration `mapstructure:"latency_warning"`      // avg processing latency
	StaleSuccessCutoff time.Duration `mapstructure:"stale_success_cutoff"` // no success in this long + failures => unhealthy
}

// AlertConfig holds the notification collaborator settings.
type AlertConfig struct {
	WebhookURL    string        `mapstructure:"webhook_url"` // empty = alerting disabled
	SigningSecret string        `mapstructure:"signing_secret"`
	Cooldown      time.Duration `mapstructure:"cooldown"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: BBG_ (Booking Billing Gateway).
// Nested keys use underscore: BBG_DATABASE_HOST, BBG_STRIPE_SECRET_KEY, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "booking_billing")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("stripe.secret_key", "")
	v.SetDefault("stripe.webhook_secret", "")
	v.SetDefault("stripe.api_timeout", "5s")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.issuer", "booking-billing-gateway")
	v.SetDefault("monitor.window_size", 100)
	v.SetDefault("monitor.failure_list_size", 20)
	v.SetDefault("monitor.retention", "168h")
	v.SetDefault("monitor.unhealthy_below", 0.80)
	v.SetDefault("monitor.degraded_below", 0.95)
	v.SetDefault("monitor.latency_warning", "5s")
	v.SetDefault("monitor.stale_success_cutoff", "1h")
	v.SetDefault("alert.webhook_url", "")
	v.SetDefault("alert.signing_secret", "")
	v.SetDefault("alert.cooldown", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: BBG_DATABASE_HOST -> database.host
	v.SetEnvPrefix("BBG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required — env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
