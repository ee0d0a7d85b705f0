package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"lang-portal/internal/validator"
)

type Config struct {
	Env      string          `mapstructure:"env" validate:"oneof=development production staging"`
	HTTP     HTTPConfig      `mapstructure:"http"`
	DB       DBConfig        `mapstructure:"db"`
	SeedPath string          `mapstructure:"seed_path"`
	OTel     TelemetryConfig `mapstructure:"otel"`
}

type HTTPConfig struct {
	Addr              string        `mapstructure:"addr" validate:"required"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" validate:"min=1"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" validate:"min=1"`
}

type DBConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type TelemetryConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	ServiceName  string  `mapstructure:"service_name" validate:"required"`
	Endpoint     string  `mapstructure:"endpoint"`
	Insecure     bool    `mapstructure:"insecure"`
	SamplerRatio float64 `mapstructure:"sampler_ratio" validate:"gte=0,lte=1"`
}

// Init reads configs/<CONFIG_NAME>.yaml when present and applies environment
// overrides on top. A missing file is not an error; defaults cover every field.
func Init() (*Config, error) {
	return load(os.Getenv("CONFIG_NAME"), "configs")
}

func load(configName string, paths ...string) (*Config, error) {
	v := viper.New()

	if configName == "" {
		configName = "default"
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}
	v.SetConfigName(configName)
	v.SetConfigType("yaml")

	v.SetDefault("env", "development")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("http.read_header_timeout", 5*time.Second)
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("db.path", "lang_portal.db")
	v.SetDefault("seed_path", "")
	v.SetDefault("otel.enabled", false)
	v.SetDefault("otel.service_name", "lang-portal")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.insecure", false)
	v.SetDefault("otel.sampler_ratio", 0.1)

	for key, env := range map[string]string{
		"env":                "ENV",
		"http.addr":          "ADDR",
		"db.path":            "DB_PATH",
		"seed_path":          "SEED_PATH",
		"otel.enabled":       "OTEL_ENABLED",
		"otel.service_name":  "OTEL_SERVICE_NAME",
		"otel.endpoint":      "OTEL_EXPORTER_OTLP_ENDPOINT",
		"otel.insecure":      "OTEL_EXPORTER_OTLP_INSECURE",
		"otel.sampler_ratio": "OTEL_SAMPLER_RATIO",
	} {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := Config{}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
