package config

import (
	"sync/atomic"
)

var configValue atomic.Value

// GetConfig returns the process-wide configuration. It is stored once at
// startup and read-only afterwards.
func GetConfig() *Config {
	return configValue.Load().(*Config)
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment" validate:"oneof=development staging production"`
	Server      ServerConfig    `mapstructure:"server"`
	Auth        AuthConfig      `mapstructure:"auth"`
	Upstream    UpstreamConfig  `mapstructure:"upstream"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port" validate:"min=1,max=65535"`
	Host         string `mapstructure:"host" validate:"required"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// AuthConfig holds the shared secret clients must present in the x-api-token
// header. An empty token is not a load-time error; requests answer it with a
// 500 so the deployment defect is visible without taking the process down.
type AuthConfig struct {
	APIToken string `mapstructure:"api_token"`
}

type UpstreamConfig struct {
	Garmin         GarminConfig         `mapstructure:"garmin"`
	NWS            NWSConfig            `mapstructure:"nws"`
	OpenWeatherMap OpenWeatherMapConfig `mapstructure:"openweathermap"`
}

type GarminConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

type NWSConfig struct {
	BaseURL   string `mapstructure:"base_url" validate:"required,url"`
	UserAgent string `mapstructure:"user_agent" validate:"required"`
}

type OpenWeatherMapConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	APIKey  string `mapstructure:"api_key"`
}

type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Auth: AuthConfig{
			APIToken: "",
		},
		Upstream: UpstreamConfig{
			Garmin: GarminConfig{
				BaseURL: "https://pilotweb.garmin.com/api/v1",
			},
			NWS: NWSConfig{
				BaseURL:   "https://api.weather.gov",
				UserAgent: "wx-gateway",
			},
			OpenWeatherMap: OpenWeatherMapConfig{
				BaseURL: "https://api.openweathermap.org/data/3.0",
				APIKey:  "",
			},
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:  false,
			Endpoint: "tempo:4317",
		},
	}
}
