package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/brewthree/brewpos-backend/pkg/env"
	"github.com/brewthree/brewpos-backend/pkg/errors"
)

// Config carries every runtime knob for the services. Values come from
// environment variables with the BREWPOS_ prefix, optionally seeded from a
// local .env file.
type Config struct {
	App       AppConfig       `envconfig:"APP"`
	DB        DBConfig        `envconfig:"DB"`
	Redis     RedisConfig     `envconfig:"REDIS"`
	Scheduler SchedulerConfig `envconfig:"SCHEDULER"`
	Password  PasswordConfig  `envconfig:"PASSWORD"`
	Features  FeatureFlags    `envconfig:"FEATURES"`
}

type AppConfig struct {
	Name            string        `envconfig:"NAME" default:"brewpos-backend"`
	Env             string        `envconfig:"ENV" default:"development"`
	Port            int           `envconfig:"PORT" default:"8080"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"15s"`
}

type DBConfig struct {
	DSN             string        `envconfig:"DSN"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"30m"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	Addr     string `envconfig:"ADDR" default:"localhost:6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB" default:"0"`
}

type SchedulerConfig struct {
	TickInterval time.Duration `envconfig:"TICK_INTERVAL" default:"5s"`
	LockTTL      time.Duration `envconfig:"LOCK_TTL" default:"30s"`
	JobTimeout   time.Duration `envconfig:"JOB_TIMEOUT" default:"20s"`
}

type PasswordConfig struct {
	Memory      uint32 `envconfig:"MEMORY_KB" default:"65536"`
	Iterations  uint32 `envconfig:"ITERATIONS" default:"3"`
	Parallelism uint8  `envconfig:"PARALLELISM" default:"2"`
	SaltLength  uint32 `envconfig:"SALT_LENGTH" default:"16"`
	KeyLength   uint32 `envconfig:"KEY_LENGTH" default:"32"`
}

type FeatureFlags struct {
	ReportCaching bool `envconfig:"REPORT_CACHING" default:"true"`
}

// Load reads the environment into a Config. A missing .env file is not an
// error, envconfig then works straight off the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("BREWPOS", &cfg); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "processing environment config")
	}

	if cfg.DB.DSN == "" {
		cfg.DB.DSN = legacyDSN()
	}
	if cfg.DB.DSN == "" {
		return nil, errors.New(errors.CodeValidation, "BREWPOS_DB_DSN is required")
	}

	return &cfg, nil
}

// legacyDSN assembles a postgres DSN from the discrete PG* variables that
// older deploy scripts still export.
func legacyDSN() string {
	host := env.Get("PGHOST", "")
	if host == "" {
		return ""
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host,
		env.Get("PGPORT", "5432"),
		env.Get("PGUSER", "postgres"),
		env.Get("PGPASSWORD", ""),
		env.Get("PGDATABASE", "brewpos"),
		env.Get("PGSSLMODE", "disable"),
	)
}
