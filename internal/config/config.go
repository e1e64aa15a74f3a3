package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Engine   EngineConfig
	Pool     PoolConfig
	Defaults DefaultsConfig
	Storage  StorageConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	MaxSpecKB    int64         `mapstructure:"max_spec_kb"`
}

// EngineConfig holds conversion engine provider settings.
type EngineConfig struct {
	// Provider selects the engine backend: "vlconvert" (local CLI binary)
	// or "httprender" (remote render service).
	Provider    string `mapstructure:"provider"`
	BinPath     string `mapstructure:"bin_path"`
	Endpoint    string `mapstructure:"endpoint"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// Timeout returns the per-conversion engine timeout; zero means none.
func (e *EngineConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSecs) * time.Second
}

// PoolConfig holds worker pool settings.
type PoolConfig struct {
	Workers int `mapstructure:"workers"`
}

// DefaultsConfig holds the option values applied when a request omits them.
type DefaultsConfig struct {
	Scale   float64 `mapstructure:"scale"`
	PPI     float64 `mapstructure:"ppi"`
	Quality int     `mapstructure:"quality"`
}

// StorageConfig holds artifact store (S3) settings.
type StorageConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	Region        string `mapstructure:"region"`
	Bucket        string `mapstructure:"bucket"`
	Endpoint      string `mapstructure:"endpoint"`
	AccessKey     string `mapstructure:"access_key"`
	SecretKey     string `mapstructure:"secret_key"`
	PresignExpiry int64  `mapstructure:"presign_expiry"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the VEXPORT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VEXPORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "120s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_spec_kb", 2048)

	// Engine defaults
	v.SetDefault("engine.provider", "vlconvert")
	v.SetDefault("engine.bin_path", "vl-convert")
	v.SetDefault("engine.endpoint", "")
	v.SetDefault("engine.timeout_secs", 0)

	// Pool defaults (0 = number of CPUs)
	v.SetDefault("pool.workers", 0)

	// Conversion option defaults
	v.SetDefault("defaults.scale", 1.0)
	v.SetDefault("defaults.ppi", 72.0)
	v.SetDefault("defaults.quality", 90)

	// Storage defaults
	v.SetDefault("storage.enabled", false)
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.bucket", "vexport-artifacts")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.presign_expiry", 3600)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":            "VEXPORT_SERVER_PORT",
		"server.read_timeout":    "VEXPORT_SERVER_READ_TIMEOUT",
		"server.write_timeout":   "VEXPORT_SERVER_WRITE_TIMEOUT",
		"server.environment":     "VEXPORT_SERVER_ENVIRONMENT",
		"server.max_spec_kb":     "VEXPORT_SERVER_MAX_SPEC_KB",
		"engine.provider":        "VEXPORT_ENGINE_PROVIDER",
		"engine.bin_path":        "VEXPORT_ENGINE_BIN_PATH",
		"engine.endpoint":        "VEXPORT_ENGINE_ENDPOINT",
		"engine.timeout_secs":    "VEXPORT_ENGINE_TIMEOUT_SECS",
		"pool.workers":           "VEXPORT_POOL_WORKERS",
		"defaults.scale":         "VEXPORT_DEFAULTS_SCALE",
		"defaults.ppi":           "VEXPORT_DEFAULTS_PPI",
		"defaults.quality":       "VEXPORT_DEFAULTS_QUALITY",
		"storage.enabled":        "VEXPORT_STORAGE_ENABLED",
		"storage.region":         "VEXPORT_STORAGE_REGION",
		"storage.bucket":         "VEXPORT_STORAGE_BUCKET",
		"storage.endpoint":       "VEXPORT_STORAGE_ENDPOINT",
		"storage.access_key":     "VEXPORT_STORAGE_ACCESS_KEY",
		"storage.secret_key":     "VEXPORT_STORAGE_SECRET_KEY",
		"storage.presign_expiry": "VEXPORT_STORAGE_PRESIGN_EXPIRY",
		"log.level":              "VEXPORT_LOG_LEVEL",
		"log.format":             "VEXPORT_LOG_FORMAT",
		"cors.allowed_origins":   "VEXPORT_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// Viper's decode hooks may hand the origins through as one
	// comma-separated string or as a pre-split slice with surrounding
	// whitespace intact; normalize both forms.
	cfg.CORS.AllowedOrigins = splitAndTrim(strings.Join(cfg.CORS.AllowedOrigins, ","))

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Engine.Provider {
	case "vlconvert", "httprender":
	default:
		return fmt.Errorf("unknown engine provider %q", c.Engine.Provider)
	}
	if c.Engine.Provider == "httprender" && c.Engine.Endpoint == "" {
		return fmt.Errorf("engine.endpoint is required for the httprender provider")
	}
	if c.Storage.Enabled && c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required when storage is enabled")
	}
	return nil
}

// IsProduction reports whether the server runs in a production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
