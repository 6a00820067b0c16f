// Package config loads the service configuration from a YAML file named by
// CONFIG_PATH, with environment overrides and defaults applied by cleanenv.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root of the configuration tree.
type Config struct {
	Env             string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	Storage         `yaml:"storage"`
	Durable         `yaml:"durable"`
	RedisConnection `yaml:"redis_connection"`
	RabbitMQ        `yaml:"rabbitmq"`
	JWTToken        `yaml:"jwttoken"`
	Auth            `yaml:"auth"`
	Session         `yaml:"session"`
	Activity        `yaml:"activity"`
	RateLimit       `yaml:"rate_limit"`
}

// HTTPServer configures the API listener.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// Storage selects the backend of the identity store and the data store.
type Storage struct {
	StorageDriver           string        `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	StorageConnectionString string        `yaml:"connection_string" env:"STORAGE_CONNECTION_STRING"`
	SeedDemoData            bool          `yaml:"seed_demo_data" env:"SEED_DEMO_DATA"`
	StoreLatency            time.Duration `yaml:"latency"`
}

// Durable selects where sessions (and, with the memory storage driver,
// registered accounts) are persisted.
type Durable struct {
	DurableDriver string `yaml:"driver" env:"DURABLE_DRIVER" env-default:"memory"`
	DurablePath   string `yaml:"path" env-default:"./data"`
	KeyPrefix     string `yaml:"key_prefix" env:"DURABLE_KEY_PREFIX" env-default:"campushire:"`
}

// RedisConnection configures the redis client used by the redis durable driver.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// RabbitMQ configures the notifications publisher. An empty URL disables it.
type RabbitMQ struct {
	RabbitURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange         string        `yaml:"exchange" env-default:"notifications"`
	RabbitRetries    int           `yaml:"retries" env-default:"5"`
	RabbitRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// JWTToken configures the tokens that carry a client context id.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"24h"`
}

// Auth configures the auth service.
type Auth struct {
	AuthLatency time.Duration `yaml:"latency"`
}

// Session configures the client context registry.
type Session struct {
	InactivityTimeout time.Duration `yaml:"inactivity_timeout" env-default:"30m"`
	SweepInterval     time.Duration `yaml:"sweep_interval" env-default:"1m"`
}

// Activity configures the in-memory activity feed.
type Activity struct {
	ActivityCapacity int `yaml:"capacity" env-default:"500"`
}

// RateLimit configures the login limiter.
type RateLimit struct {
	LoginRPS   float64 `yaml:"login_rps" env-default:"1"`
	LoginBurst int     `yaml:"login_burst" env-default:"5"`
}

// Load reads the configuration file at path.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad loads the file named by CONFIG_PATH and exits on failure.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case "memory":
	case "postgres":
		if c.StorageConnectionString == "" {
			return fmt.Errorf("storage.connection_string is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	switch c.DurableDriver {
	case "memory", "file":
	case "redis":
		if c.AddressRedis == "" {
			return fmt.Errorf("redis_connection.addressredis is required for the redis durable driver")
		}
	default:
		return fmt.Errorf("unknown durable driver %q", c.DurableDriver)
	}

	if c.JWTSecretKey == "" {
		return fmt.Errorf("jwttoken.jwt_secret_key is required")
	}
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"Storage:\n"+
			"  Driver: %s\n"+
			"  SeedDemoData: %t\n"+
			"  Latency: %s\n"+
			"Durable:\n"+
			"  Driver: %s\n"+
			"  Path: %s\n"+
			"  KeyPrefix: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n"+
			"JWTToken:\n"+
			"  TokenTTL: %s\n"+
			"Session:\n"+
			"  InactivityTimeout: %s\n",
		c.Env,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.StorageDriver,
		c.SeedDemoData,
		c.StoreLatency,
		c.DurableDriver,
		c.DurablePath,
		c.KeyPrefix,
		c.AddressRedis,
		c.DB,
		c.RabbitURL != "",
		c.Exchange,
		c.TokenTTL,
		c.InactivityTimeout,
	)
}
