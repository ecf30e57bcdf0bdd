package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"logLevel"`
	Server      struct {
		Port            int           `mapstructure:"port"`
		ShutdownTimeout time.Duration `mapstructure:"shutdownTimeout"`
		AllowedOrigins  []string      `mapstructure:"allowedOrigins"`
	} `mapstructure:"server"`
	Database struct {
		PostgresDSN     string        `mapstructure:"postgresDSN"`
		Schema          string        `mapstructure:"schema"`
		MaxOpenConns    int           `mapstructure:"maxOpenConns"`
		MaxIdleConns    int           `mapstructure:"maxIdleConns"`
		ConnMaxLifetime time.Duration `mapstructure:"connMaxLifetime"`
		ConnectTimeout  time.Duration `mapstructure:"connectTimeout"` // Give up retrying the initial connection after this
	} `mapstructure:"database"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`
	NATS struct {
		URL             string `mapstructure:"url"`             // Empty disables dispatch audit events
		DispatchSubject string `mapstructure:"dispatchSubject"` // Subject for dispatch audit events
	} `mapstructure:"nats"`
	Agenda   AgendaConfig   `mapstructure:"agenda"`
	Dispatch DispatchConfig `mapstructure:"dispatch"`
	Chat     struct {
		BaseURL string `mapstructure:"baseURL"`
	} `mapstructure:"chat"`
}

// AgendaConfig holds calendar and join settings for the agenda page
type AgendaConfig struct {
	Timezone           string           `mapstructure:"timezone"`
	WeekStartsOn       int              `mapstructure:"weekStartsOn"` // 0 = Sunday ... 6 = Saturday
	BatchContactLookup bool             `mapstructure:"batchContactLookup"`
	LookupPool         LookupPoolConfig `mapstructure:"lookupPool"`
}

// LookupPoolConfig holds configuration for the contact lookup worker pool
type LookupPoolConfig struct {
	PoolSize   int           `mapstructure:"poolSize"`   // Number of workers
	ExpiryTime time.Duration `mapstructure:"expiryTime"` // Idle worker expiry time
}

// DispatchConfig holds settings for the bulk-messaging composer
type DispatchConfig struct {
	StaleAfterDays int `mapstructure:"staleAfterDays"`
}

// Location resolves the agenda time zone, falling back to UTC.
func (a AgendaConfig) Location() *time.Location {
	if a.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(a.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WeekStart returns the configured first day of the week.
func (a AgendaConfig) WeekStart() time.Weekday {
	if a.WeekStartsOn < 0 || a.WeekStartsOn > 6 {
		return time.Sunday
	}
	return time.Weekday(a.WeekStartsOn)
}

// LoadConfig reads configuration from file or environment variables
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("environment", "development")
	v.SetDefault("logLevel", "info")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdownTimeout", 15*time.Second)
	v.SetDefault("server.allowedOrigins", []string{"*"})
	v.SetDefault("metrics.enabled", true)

	v.SetDefault("database.schema", "public")
	v.SetDefault("database.maxOpenConns", 10)
	v.SetDefault("database.maxIdleConns", 5)
	v.SetDefault("database.connMaxLifetime", 30*time.Minute)
	v.SetDefault("database.connectTimeout", time.Minute)

	v.SetDefault("nats.dispatchSubject", "dashboard.dispatch.requested")

	v.SetDefault("agenda.timezone", "America/Sao_Paulo")
	v.SetDefault("agenda.weekStartsOn", 0)
	v.SetDefault("agenda.batchContactLookup", false)
	v.SetDefault("agenda.lookupPool.poolSize", 16)
	v.SetDefault("agenda.lookupPool.expiryTime", time.Minute)

	v.SetDefault("dispatch.staleAfterDays", 30)
	v.SetDefault("chat.baseURL", "https://whaticket.com")

	v.SetConfigName("default")
	v.SetConfigType("yaml")

	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath("$HOME/.luxe-dash-suite")
	v.AddConfigPath("/etc/luxe-dash-suite")

	if err := v.ReadInConfig(); err != nil {
		// Missing file is fine, env vars cover everything
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvs(v, Config{})

	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		v.Set("database.postgresDSN", dsn)
	}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" && v.GetString("database.postgresDSN") == "" {
		v.Set("database.postgresDSN", dsn)
	}
	if lgLevel := os.Getenv("LOG_LEVEL"); lgLevel != "" {
		v.Set("logLevel", lgLevel)
	}
	if url := os.Getenv("NATS_URL"); url != "" {
		v.Set("nats.url", url)
	}
	if base := os.Getenv("WHATICKET_URL"); base != "" {
		v.Set("chat.baseURL", base)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}

// bindEnvs recursively binds environment variables to config struct fields
func bindEnvs(v *viper.Viper, cfg interface{}, parts ...string) {
	ifv := reflect.ValueOf(cfg)
	ift := reflect.TypeOf(cfg)
	for i := 0; i < ift.NumField(); i++ {
		fieldVal := ifv.Field(i)
		fieldType := ift.Field(i)

		tag := fieldType.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}

		path := append(append([]string{}, parts...), tag)
		key := strings.Join(path, ".")

		if fieldType.Type.Kind() == reflect.Struct {
			bindEnvs(v, fieldVal.Interface(), path...)
			continue
		}

		_ = v.BindEnv(key)
	}
}
