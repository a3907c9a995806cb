package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// EnvPrefix is the prefix of every environment variable read by Load
const EnvPrefix = "JOBINSIGHT"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Dataset   DatasetConfig   `yaml:"dataset" envconfig:"DATASET"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"HOST" default:""`
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT" default:"20s"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"50"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"100"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format      string `yaml:"format" envconfig:"FORMAT" default:"json"`
	Output      string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath    string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/jobinsight.log"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// DatasetConfig describes the job postings file and how it is summarised
type DatasetConfig struct {
	Path              string `yaml:"path" envconfig:"PATH" default:"data/Team_1.csv"`
	Sheet             string `yaml:"sheet" envconfig:"SHEET" default:""`
	PlaceholderPrefix string `yaml:"placeholder_prefix" envconfig:"PLACEHOLDER_PREFIX" default:"Unnamed"`
	TopWords          int    `yaml:"top_words" envconfig:"TOP_WORDS" default:"20"`
	TopSkills         int    `yaml:"top_skills" envconfig:"TOP_SKILLS" default:"10"`
	WordCloudWords    int    `yaml:"word_cloud_words" envconfig:"WORD_CLOUD_WORDS" default:"200"`
	PreviewRows       int    `yaml:"preview_rows" envconfig:"PREVIEW_ROWS" default:"5"`
	CacheSize         int    `yaml:"cache_size" envconfig:"CACHE_SIZE" default:"4"`
}

// TelemetryConfig controls tracing and metrics export
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME" default:"jobinsight"`
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER" default:"none"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED" default:"true"`
}

// Load loads configuration from environment variables and the first
// config.yaml found. Environment variables take precedence over the file.
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile is Load with an explicit config file. An empty path skips the file.
func LoadFile(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
		cfg = mergeConfigs(*fileConfig, cfg, envIsSet)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func envIsSet(key string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + key)
	return ok
}

// mergeConfigs overlays non-zero file values onto the env config unless the
// matching environment variable was set explicitly.
func mergeConfigs(file, env Config, isSet func(key string) bool) Config {
	str := func(key string, dst *string, v string) {
		if v != "" && !isSet(key) {
			*dst = v
		}
	}
	num := func(key string, dst *int, v int) {
		if v != 0 && !isSet(key) {
			*dst = v
		}
	}
	dur := func(key string, dst *time.Duration, v time.Duration) {
		if v != 0 && !isSet(key) {
			*dst = v
		}
	}

	// Server config
	str("SERVER_HOST", &env.Server.Host, file.Server.Host)
	num("SERVER_PORT", &env.Server.Port, file.Server.Port)
	dur("SERVER_READ_TIMEOUT", &env.Server.ReadTimeout, file.Server.ReadTimeout)
	dur("SERVER_WRITE_TIMEOUT", &env.Server.WriteTimeout, file.Server.WriteTimeout)
	dur("SERVER_IDLE_TIMEOUT", &env.Server.IdleTimeout, file.Server.IdleTimeout)
	num("SERVER_MAX_HEADER_BYTES", &env.Server.MaxHeaderBytes, file.Server.MaxHeaderBytes)
	dur("SERVER_SHUTDOWN_TIMEOUT", &env.Server.ShutdownTimeout, file.Server.ShutdownTimeout)
	dur("SERVER_REQUEST_TIMEOUT", &env.Server.RequestTimeout, file.Server.RequestTimeout)

	// Security config. YAML cannot tell false from unset, so booleans come
	// from the environment only.
	if len(file.Security.AllowedOrigins) > 0 && !isSet("SECURITY_ALLOWED_ORIGINS") {
		env.Security.AllowedOrigins = file.Security.AllowedOrigins
	}
	if file.Security.RateLimit.RPS != 0 && !isSet("SECURITY_RATE_LIMIT_RPS") {
		env.Security.RateLimit.RPS = file.Security.RateLimit.RPS
	}
	num("SECURITY_RATE_LIMIT_BURST", &env.Security.RateLimit.Burst, file.Security.RateLimit.Burst)

	// Logging config
	str("LOGGING_LEVEL", &env.Logging.Level, file.Logging.Level)
	str("LOGGING_FORMAT", &env.Logging.Format, file.Logging.Format)
	str("LOGGING_OUTPUT", &env.Logging.Output, file.Logging.Output)
	str("LOGGING_FILE_PATH", &env.Logging.FilePath, file.Logging.FilePath)

	// Dataset config
	str("DATASET_PATH", &env.Dataset.Path, file.Dataset.Path)
	str("DATASET_SHEET", &env.Dataset.Sheet, file.Dataset.Sheet)
	str("DATASET_PLACEHOLDER_PREFIX", &env.Dataset.PlaceholderPrefix, file.Dataset.PlaceholderPrefix)
	num("DATASET_TOP_WORDS", &env.Dataset.TopWords, file.Dataset.TopWords)
	num("DATASET_TOP_SKILLS", &env.Dataset.TopSkills, file.Dataset.TopSkills)
	num("DATASET_WORD_CLOUD_WORDS", &env.Dataset.WordCloudWords, file.Dataset.WordCloudWords)
	num("DATASET_PREVIEW_ROWS", &env.Dataset.PreviewRows, file.Dataset.PreviewRows)
	num("DATASET_CACHE_SIZE", &env.Dataset.CacheSize, file.Dataset.CacheSize)

	// Telemetry config
	str("TELEMETRY_SERVICE_NAME", &env.Telemetry.ServiceName, file.Telemetry.ServiceName)
	str("TELEMETRY_TRACE_EXPORTER", &env.Telemetry.TraceExporter, file.Telemetry.TraceExporter)

	return env
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.RateLimit.Enabled {
		if c.Security.RateLimit.RPS <= 0 {
			c.Security.RateLimit.RPS = DefaultRateLimit
		}
		if c.Security.RateLimit.Burst <= 0 {
			c.Security.RateLimit.Burst = DefaultBurstSize
		}
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if strings.TrimSpace(c.Dataset.Path) == "" {
		return fmt.Errorf("dataset path must be set")
	}

	if c.Dataset.TopWords < 0 || c.Dataset.TopSkills < 0 {
		return fmt.Errorf("top-N sizes must not be negative")
	}

	if c.Dataset.PreviewRows < 1 || c.Dataset.PreviewRows > MaxPreviewRows {
		return fmt.Errorf("preview rows must be between 1 and %d", MaxPreviewRows)
	}

	if c.Dataset.CacheSize < 1 {
		return fmt.Errorf("dataset cache size must be at least 1")
	}

	switch c.Telemetry.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("unknown trace exporter %q", c.Telemetry.TraceExporter)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}

	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		c.Logging.Output = "console"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if explicit := os.Getenv(EnvPrefix + "_CONFIG_FILE"); explicit != "" {
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
			WriteTimeout:    DefaultHTTPTimeout,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  DefaultRequestTimeout,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Dataset: DatasetConfig{
			Path:              DefaultDatasetPath,
			PlaceholderPrefix: DefaultPlaceholderPrefix,
			TopWords:          DefaultTopWords,
			TopSkills:         DefaultTopSkills,
			WordCloudWords:    DefaultWordCloudWords,
			PreviewRows:       DefaultPreviewRows,
			CacheSize:         DefaultCacheSize,
		},
		Telemetry: TelemetryConfig{
			ServiceName:    AppName,
			TraceExporter:  "none",
			MetricsEnabled: true,
		},
	}
}

// Address returns the listen address of the HTTP server
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
