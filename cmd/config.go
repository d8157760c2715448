package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string `mapstructure:"http_port"`
	LogLevel string `mapstructure:"log_level"`

	Store  StoreConfig  `mapstructure:"store"`
	DB     DBConfig     `mapstructure:"db"`
	Redis  RedisConfig  `mapstructure:"redis"`
	Kafka  KafkaConfig  `mapstructure:"kafka"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Fanout FanoutConfig `mapstructure:"fanout"`
	Jobs   JobsConfig   `mapstructure:"jobs"`

	// PickupRequiresAllStores delays "Order Packed" until every store has
	// handed its share over.
	PickupRequiresAllStores bool `mapstructure:"pickup_requires_all_stores"`
}

// StoreConfig selects the document store. Backend is "rest" or "memory";
// the memory store is filled from SeedFile when set.
type StoreConfig struct {
	Backend   string        `mapstructure:"backend"`
	URL       string        `mapstructure:"url"`
	AuthToken string        `mapstructure:"auth_token"`
	Timeout   time.Duration `mapstructure:"timeout"`
	SeedFile  string        `mapstructure:"seed_file"`
}

// DBConfig locates postgres. Without a host, sessions and the journal are
// kept in memory.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SslMode  string `mapstructure:"sslmode"`
}

func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	SeenTTL  time.Duration `mapstructure:"seen_ttl"`
}

// KafkaConfig enables event publishing when Brokers is not empty.
type KafkaConfig struct {
	Brokers  []string `mapstructure:"brokers"`
	ClientID string   `mapstructure:"client_id"`
	Topic    string   `mapstructure:"topic"`
}

type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	Issuer     string        `mapstructure:"issuer"`
	SessionTTL time.Duration `mapstructure:"session_ttl"`
}

type FanoutConfig struct {
	StepTimeout     time.Duration `mapstructure:"step_timeout"`
	MaxRetries      uint64        `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
}

type JobsConfig struct {
	NewOrders     string `mapstructure:"new_orders"`
	RecentOrders  string `mapstructure:"recent_orders"`
	SessionExpiry string `mapstructure:"session_expiry"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", "8080")
	v.SetDefault("log_level", "info")

	v.SetDefault("store.backend", "rest")
	v.SetDefault("store.url", "")
	v.SetDefault("store.auth_token", "")
	v.SetDefault("store.timeout", "15s")
	v.SetDefault("store.seed_file", "")

	v.SetDefault("db.host", "")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "partners")
	v.SetDefault("db.sslmode", "disable")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "partnersd:")
	v.SetDefault("redis.seen_ttl", "24h")

	v.SetDefault("kafka.brokers", []string{})
	v.SetDefault("kafka.client_id", "partnersd")
	v.SetDefault("kafka.topic", "order-transitions")

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.issuer", "partnersd")
	v.SetDefault("auth.session_ttl", "720h")

	v.SetDefault("fanout.step_timeout", "10s")
	v.SetDefault("fanout.max_retries", 0)
	v.SetDefault("fanout.initial_interval", "500ms")
	v.SetDefault("fanout.max_interval", "5s")

	v.SetDefault("jobs.new_orders", "@every 10s")
	v.SetDefault("jobs.recent_orders", "@every 30s")
	v.SetDefault("jobs.session_expiry", "@every 5m")

	v.SetDefault("pickup_requires_all_stores", false)
}

// LoadConfig reads .env into the environment, then layers the config file
// (if any) and environment variables over the defaults. Nested keys map to
// upper-case variables joined by "_", e.g. db.host is DB_HOST.
func LoadConfig(v *viper.Viper, cfgFile string) (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errList []error
	switch c.Store.Backend {
	case "rest":
		if c.Store.URL == "" {
			errList = append(errList, errors.New("store.url is required for the rest backend"))
		}
	case "memory":
	default:
		errList = append(errList, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}
	if c.Auth.JWTSecret == "" {
		errList = append(errList, errors.New("auth.jwt_secret is required"))
	}
	if c.Auth.SessionTTL <= 0 {
		errList = append(errList, errors.New("auth.session_ttl must be positive"))
	}
	return errors.Join(errList...)
}
