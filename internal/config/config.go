package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds application level configuration loaded from an optional YAML
// file and environment variables.
type Config struct {
	ServerPort      string        `yaml:"server_port" env:"SERVER_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
	BodyLimit       string        `yaml:"body_limit" env:"BODY_LIMIT" env-default:"1M"`
	MySQLDSN        string        `yaml:"mysql_dsn" env:"MYSQL_DSN" env-default:"root:password@tcp(localhost:3306)/heatshield?charset=utf8mb4&parseTime=True&loc=UTC"`
	ResetDB         bool          `yaml:"reset_db" env:"RESET_DB" env-default:"false"`
	Redis           Redis         `yaml:"redis"`
	JWT             JWT           `yaml:"jwt"`
	CORSOrigins     []string      `yaml:"cors_allow_origins" env:"CORS_ALLOW_ORIGINS" env-separator:"," env-default:"*"`
	HeatmapMaxLimit int           `yaml:"heatmap_max_limit" env:"HEATMAP_MAX_LIMIT" env-default:"1000"`
	Log             Log           `yaml:"log"`
	SwaggerHost     string        `yaml:"swagger_host" env:"SWAGGER_HOST"`
}

// Redis configures the token revocation store.
type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// DefaultJWTSecret is the env-default of JWT.Secret, meant for local runs only.
const DefaultJWTSecret = "change-me"

// JWT configures bearer token signing.
type JWT struct {
	Secret string        `yaml:"secret" env:"JWT_SECRET" env-default:"change-me"`
	TTL    time.Duration `yaml:"ttl" env:"JWT_TTL" env-default:"1h"`
}

// Log configures the process logger.
type Log struct {
	Level  string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// Load builds Config. When CONFIG_PATH is set the file is read first and
// environment variables override it.
func Load() (*Config, error) {
	var cfg Config
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return &cfg, nil
	}
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that exits the process on failure.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}
