package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"cosmossdk.io/log"
	"github.com/rs/zerolog"
	"github.com/spf13/cast"
	"github.com/spf13/viper"

	"github.com/swapverse/swapverse/api"
	"github.com/swapverse/swapverse/app"
)

const envPrefix = "SWAPVERSE"

// Version is set at build time
var Version = "dev"

// Config is the node configuration read from config/app.toml and SWAPVERSE_* variables
type Config struct {
	LogLevel      string              `mapstructure:"log-level"`
	LogFormat     string              `mapstructure:"log-format"`
	DBBackend     string              `mapstructure:"db-backend"`
	SweepInterval time.Duration       `mapstructure:"sweep-interval"`
	API           api.Config          `mapstructure:"api"`
	Metrics       MetricsConfig       `mapstructure:"metrics"`
	Telemetry     app.TelemetryConfig `mapstructure:"telemetry"`
}

// MetricsConfig configures the metrics and health server
type MetricsConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	Address     string        `mapstructure:"address"`
	MaxSweepAge time.Duration `mapstructure:"max-sweep-age"`
}

// DefaultConfig returns the configuration written by init
func DefaultConfig() Config {
	return Config{
		LogLevel:      "info",
		LogFormat:     "json",
		DBBackend:     "goleveldb",
		SweepInterval: 5 * time.Second,
		API:           *api.DefaultConfig(),
		Metrics: MetricsConfig{
			Enabled:     true,
			Address:     "0.0.0.0:26660",
			MaxSweepAge: time.Minute,
		},
		Telemetry: app.DefaultTelemetryConfig(),
	}
}

func configPath(home string) string {
	return filepath.Join(home, "config", "app.toml")
}

func genesisPath(home string) string {
	return filepath.Join(home, "config", "genesis.json")
}

func setDefaults(v *viper.Viper) {
	d := DefaultConfig()
	v.SetDefault("log-level", d.LogLevel)
	v.SetDefault("log-format", d.LogFormat)
	v.SetDefault("db-backend", d.DBBackend)
	v.SetDefault("sweep-interval", d.SweepInterval)

	v.SetDefault("api.address", d.API.Address)
	v.SetDefault("api.jwt-secret", d.API.JWTSecret)
	v.SetDefault("api.cors-origins", d.API.CORSOrigins)
	v.SetDefault("api.rate-limit-rps", d.API.RateLimitRPS)
	v.SetDefault("api.read-timeout", d.API.ReadTimeout)
	v.SetDefault("api.write-timeout", d.API.WriteTimeout)
	v.SetDefault("api.request-timeout", d.API.RequestTimeout)
	v.SetDefault("api.shutdown-timeout", d.API.ShutdownTimeout)

	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.address", d.Metrics.Address)
	v.SetDefault("metrics.max-sweep-age", d.Metrics.MaxSweepAge)

	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
	v.SetDefault("telemetry.otlp-endpoint", d.Telemetry.OTLPEndpoint)
	v.SetDefault("telemetry.prometheus-enabled", d.Telemetry.PrometheusEnabled)
	v.SetDefault("telemetry.sample-rate", d.Telemetry.SampleRate)
	v.SetDefault("telemetry.environment", d.Telemetry.Environment)
}

// loadConfig reads app.toml under home, if present, with environment overrides
func loadConfig(v *viper.Viper, home string) error {
	v.SetConfigFile(configPath(home))
	v.SetConfigType("toml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", configPath(home), err)
	}
	return nil
}

// readConfig decodes the loaded configuration
func readConfig(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	// env vars arrive as a single string
	origins, err := cast.ToStringSliceE(v.Get("api.cors-origins"))
	if err != nil {
		return Config{}, fmt.Errorf("api.cors-origins: %w", err)
	}
	cfg.API.CORSOrigins = origins
	cfg.API.Version = Version
	return cfg, nil
}

// newLogger builds the root logger
func newLogger(cfg Config, w io.Writer) (log.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}

	opts := []log.Option{log.LevelOption(level)}
	switch cfg.LogFormat {
	case "json":
		opts = append(opts, log.OutputJSONOption())
	case "plain":
		opts = append(opts, log.ColorOption(false))
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
	return log.NewLogger(w, opts...), nil
}
