package config

import (
	"errors"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/schooltech/scheduler-core/internal/domain"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	Schedule domain.ScheduleConfig
	Log      LogConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Reports  ReportsConfig
	Metrics  MetricsConfig
}

type LogConfig struct {
	Level  string
	Format string
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	TTL      time.Duration
}

// ReportsConfig configures asynchronous report generation.
type ReportsConfig struct {
	StorageDir        string
	SignedURLSecret   string
	SignedURLTTL      time.Duration
	WorkerConcurrency int
	WorkerRetries     int
}

// MetricsConfig holds the [metrics] settings. The CLI binds the
// observability server from its --metrics-addr flag and does not read
// these fields.
type MetricsConfig struct {
	Enabled bool
	Port    int
}

// Load reads config.toml from dir (falling back to built-in defaults if
// absent) and applies SCHEDULER_-prefixed environment overrides. No key
// replacer is set, so a top-level key such as env maps to SCHEDULER_ENV,
// while a nested key such as database.host maps to a variable name that
// keeps the dot (SCHEDULER_DATABASE.HOST).
func Load(dir string) (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(dir)
	v.SetEnvPrefix("SCHEDULER")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Env: v.GetString("env"),
		Schedule: domain.ScheduleConfig{
			PeriodsPerDay: uint8(v.GetUint("schedule.periods_per_day")),
			DaysPerWeek:   uint8(v.GetUint("schedule.days_per_week")),
			LunchPeriods:  toUint8Slice(v.GetIntSlice("schedule.lunch_periods")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Database: DatabaseConfig{
			Host:         v.GetString("database.host"),
			Port:         v.GetInt("database.port"),
			User:         v.GetString("database.user"),
			Password:     v.GetString("database.password"),
			Name:         v.GetString("database.name"),
			SSLMode:      v.GetString("database.ssl_mode"),
			MaxOpenConns: v.GetInt("database.max_open_conns"),
			MaxIdleConns: v.GetInt("database.max_idle_conns"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("redis.host"),
			Port:     v.GetInt("redis.port"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
			TTL:      v.GetDuration("redis.ttl"),
		},
		Reports: ReportsConfig{
			StorageDir:        v.GetString("reports.storage_dir"),
			SignedURLSecret:   v.GetString("reports.signed_url_secret"),
			SignedURLTTL:      v.GetDuration("reports.signed_url_ttl"),
			WorkerConcurrency: v.GetInt("reports.worker_concurrency"),
			WorkerRetries:     v.GetInt("reports.worker_retries"),
		},
		Metrics: MetricsConfig{
			Enabled: v.GetBool("metrics.enabled"),
			Port:    v.GetInt("metrics.port"),
		},
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)

	v.SetDefault("schedule.periods_per_day", 8)
	v.SetDefault("schedule.days_per_week", 5)
	v.SetDefault("schedule.lunch_periods", []int{3, 4})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.name", "scheduler")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", "24h")

	v.SetDefault("reports.storage_dir", "./exports")
	v.SetDefault("reports.signed_url_secret", "dev_reports_secret")
	v.SetDefault("reports.signed_url_ttl", "24h")
	v.SetDefault("reports.worker_concurrency", 2)
	v.SetDefault("reports.worker_retries", 3)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
}

func toUint8Slice(in []int) []uint8 {
	if len(in) == 0 {
		return nil
	}
	out := make([]uint8, len(in))
	for i, v := range in {
		out[i] = uint8(v)
	}
	return out
}
