package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	WFS       WFSConfig       `mapstructure:"wfs"`
	NATS      NATSConfig      `mapstructure:"nats"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`
	WriteTimeout int `mapstructure:"write_timeout"`
}

// WFSConfig describes the upstream NWB feature service.
type WFSConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TypeName       string `mapstructure:"type_name"`
	PageSize       int    `mapstructure:"page_size"`
	RequestTimeout int    `mapstructure:"request_timeout"` // seconds
	RewriteFrom    string `mapstructure:"rewrite_from"`
	RewriteTo      string `mapstructure:"rewrite_to"`
}

func (w WFSConfig) Timeout() time.Duration {
	return time.Duration(w.RequestTimeout) * time.Second
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Enabled bool   `mapstructure:"enabled"`
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	OTLPAddr    string `mapstructure:"otlp_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 30)
	v.SetDefault("wfs.base_url", "https://geodata.nationaalgeoregister.nl/nwbwegen/wfs")
	v.SetDefault("wfs.type_name", "nwbwegen:wegvakken")
	v.SetDefault("wfs.page_size", 200)
	v.SetDefault("wfs.request_timeout", 30)
	v.SetDefault("wfs.rewrite_from", ":/cgi-bin/mapserv.fcgi")
	v.SetDefault("wfs.rewrite_to", "/nwbwegen/wfs")
	v.SetDefault("nats.url", "nats://localhost:4222")
	v.SetDefault("nats.enabled", false)
	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.otlp_addr", "localhost:4317")
	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: STRAATRADAR_WFS_BASE_URL -> wfs.base_url
	v.SetEnvPrefix("STRAATRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.WFS.BaseURL == "" {
		errs = append(errs, "wfs.base_url is required")
	}
	if c.WFS.TypeName == "" {
		errs = append(errs, "wfs.type_name is required")
	}
	if c.WFS.PageSize <= 0 {
		errs = append(errs, "wfs.page_size must be positive")
	}
	if c.WFS.RequestTimeout <= 0 {
		errs = append(errs, "wfs.request_timeout must be positive")
	}
	if c.NATS.Enabled && c.NATS.URL == "" {
		errs = append(errs, "nats.url is required when nats is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
