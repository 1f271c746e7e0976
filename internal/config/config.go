package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"hotelcomp/internal/comparables"
)

// EnvPrefix namespaces every environment variable, e.g. HOTELCOMP_SERVER_PORT
const EnvPrefix = "HOTELCOMP"

// ConfigFileEnv names the variable that points at an explicit config file
const ConfigFileEnv = "HOTELCOMP_CONFIG"

// Config represents the complete application configuration
type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"SERVER"`
	Security   SecurityConfig   `yaml:"security" envconfig:"SECURITY"`
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Comparison ComparisonConfig `yaml:"comparison" envconfig:"COMPARISON"`
	Telemetry  TelemetryConfig  `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	// MaxUploadBytes caps workbook uploads and JSON bodies
	MaxUploadBytes int64 `yaml:"max_upload_bytes" envconfig:"MAX_UPLOAD_BYTES"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL"`
	Format      string `yaml:"format" envconfig:"FORMAT"`
	Output      string `yaml:"output" envconfig:"OUTPUT"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
}

// PathsConfig contains file system paths configuration.
// Relative paths are resolved against the executable directory.
type PathsConfig struct {
	DataDir    string `yaml:"data_dir" envconfig:"DATA_DIR"`
	ReportsDir string `yaml:"reports_dir" envconfig:"REPORTS_DIR"`
	LogsDir    string `yaml:"logs_dir" envconfig:"LOGS_DIR"`
	// KeepReports bounds how many saved reports are kept; 0 keeps all
	KeepReports int `yaml:"keep_reports" envconfig:"KEEP_REPORTS"`
}

// ComparisonConfig holds the default run parameters
type ComparisonConfig struct {
	Tolerance  float64 `yaml:"tolerance" envconfig:"TOLERANCE"`
	MaxResults int     `yaml:"max_results" envconfig:"MAX_RESULTS"`
	Workers    int     `yaml:"workers" envconfig:"WORKERS"`
}

// Options converts the configured defaults into engine options
func (c ComparisonConfig) Options() comparables.Options {
	return comparables.Options{
		Tolerance:  c.Tolerance,
		MaxResults: c.MaxResults,
		Scope:      comparables.AllSubjects(),
		Workers:    c.Workers,
	}
}

// TelemetryConfig controls tracing and metrics
type TelemetryConfig struct {
	Enabled        bool   `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	Environment    string `yaml:"environment" envconfig:"ENVIRONMENT"`
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED"`
}

// Load builds the configuration from defaults, the optional config file and
// the environment, in increasing order of precedence
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom is Load with an explicit config file; an empty path skips the file
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Variables that are unset leave the file and default values alone
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays a YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// Validate checks the configuration and normalizes a few enumerations
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("server max upload bytes must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified when CORS is enabled")
	}

	if c.Security.RateLimit.Enabled && (c.Security.RateLimit.RPS <= 0 || c.Security.RateLimit.Burst <= 0) {
		return fmt.Errorf("rate limit rps and burst must be positive")
	}

	c.Logging.Level = strings.ToLower(c.Logging.Level)
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}

	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		c.Logging.Output = "console"
	}

	if err := comparables.ValidateTolerance(c.Comparison.Tolerance); err != nil {
		return fmt.Errorf("comparison: %w", err)
	}
	if err := comparables.ValidateMaxResults(c.Comparison.MaxResults); err != nil {
		return fmt.Errorf("comparison: %w", err)
	}
	if c.Comparison.Workers < 1 {
		return fmt.Errorf("comparison workers must be at least 1, got %d", c.Comparison.Workers)
	}

	switch c.Telemetry.TraceExporter {
	case "", "none", "stdout":
	default:
		return fmt.Errorf("unsupported trace exporter: %q", c.Telemetry.TraceExporter)
	}

	return nil
}

// getConfigFilePath returns the path to the config file, or "" when none exists
func getConfigFilePath() string {
	if explicit := os.Getenv(ConfigFileEnv); explicit != "" {
		return explicit
	}

	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			MaxUploadBytes:  32 << 20, // 32MB
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     20,
				Burst:   40,
			},
		},
		Logging: LoggingConfig{
			Level:       "info",
			Format:      "json",
			Output:      "console",
			FilePath:    "logs/app.log",
			Development: false,
		},
		Paths: PathsConfig{
			DataDir:    "data",
			ReportsDir: "data/reports",
			LogsDir:    "logs",
		},
		Comparison: ComparisonConfig{
			Tolerance:  comparables.DefaultTolerance,
			MaxResults: comparables.DefaultMaxResults,
			Workers:    comparables.DefaultWorkers,
		},
		Telemetry: TelemetryConfig{
			Enabled:        true,
			ServiceName:    "hotelcomp",
			Environment:    "development",
			TraceExporter:  "none",
			MetricsEnabled: true,
		},
	}
}
