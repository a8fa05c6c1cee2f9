package server

import (
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/courier"
	"github.com/xy-planning-network/courier/logger"
	"gopkg.in/yaml.v3"
)

const (
	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logLevelEnvVar = "LOG_LEVEL"
	defaultLogLvl  = "INFO"

	// File defaults
	staticDirEnvVar     = "STATIC_DIR"
	DefaultStaticDir    = "public"
	filesPrefixEnvVar   = "FILES_PREFIX"
	DefaultFilesPrefix  = "/files"
	cacheMaxAgeEnvVar   = "CACHE_MAX_AGE"
	strictRangesEnvVar  = "STRICT_RANGES"
	maintenanceEnvVar   = "MAINTENANCE_MODE"
	corsOriginEnvVar    = "CORS_ORIGIN"
	rateLimitEnvVar     = "RATE_LIMIT"
	DefaultRateLimit    = 50
	rateBurstEnvVar     = "RATE_BURST"
	DefaultRateBurst    = 200
	maintRetryAfterSecs = "600"

	// Web server defaults
	DefaultHost            = "localhost"
	hostEnvVar             = "HOST"
	DefaultPort            = "3000"
	portEnvVar             = "PORT"
	readTimeoutEnvVar      = "READ_TIMEOUT"
	DefaultReadTimeout     = 5 * time.Second
	writeTimeoutEnvVar     = "WRITE_TIMEOUT"
	idleTimeoutEnvVar      = "IDLE_TIMEOUT"
	DefaultIdleTimeout     = 120 * time.Second
	shutdownTimeoutEnvVar  = "SHUTDOWN_TIMEOUT"
	DefaultShutdownTimeout = 5 * time.Second
)

// A Config holds every setting a *Server is built from.
type Config struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`

	Env      courier.Environment `yaml:"environment"`
	LogLevel string              `yaml:"log_level"`

	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout bounds writing a whole response.
	// Zero, the default, lets long partial content streams finish.
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	CORSOrigin string `yaml:"cors_origin"`

	StaticDir    string        `yaml:"static_dir"`
	FilesPrefix  string        `yaml:"files_prefix"`
	CacheMaxAge  time.Duration `yaml:"cache_max_age"`
	StrictRanges bool          `yaml:"strict_ranges"`

	Maintenance bool `yaml:"maintenance"`

	RateLimit int `yaml:"rate_limit"`
	RateBurst int `yaml:"rate_burst"`
}

// NewConfig reads a Config from environment variables, falling back to defaults.
func NewConfig() Config {
	return Config{
		Host:            courier.EnvVarOrString(hostEnvVar, DefaultHost),
		Port:            strings.TrimPrefix(courier.EnvVarOrString(portEnvVar, DefaultPort), ":"),
		Env:             courier.EnvVarOrEnv(environmentEnvVar, courier.Development),
		LogLevel:        courier.EnvVarOrString(logLevelEnvVar, defaultLogLvl),
		ReadTimeout:     courier.EnvVarOrDuration(readTimeoutEnvVar, DefaultReadTimeout),
		WriteTimeout:    courier.EnvVarOrDuration(writeTimeoutEnvVar, 0),
		IdleTimeout:     courier.EnvVarOrDuration(idleTimeoutEnvVar, DefaultIdleTimeout),
		ShutdownTimeout: courier.EnvVarOrDuration(shutdownTimeoutEnvVar, DefaultShutdownTimeout),
		CORSOrigin:      os.Getenv(corsOriginEnvVar),
		StaticDir:       courier.EnvVarOrString(staticDirEnvVar, DefaultStaticDir),
		FilesPrefix:     courier.EnvVarOrString(filesPrefixEnvVar, DefaultFilesPrefix),
		CacheMaxAge:     courier.EnvVarOrDuration(cacheMaxAgeEnvVar, 0),
		StrictRanges:    courier.EnvVarOrBool(strictRangesEnvVar, false),
		Maintenance:     courier.EnvVarOrBool(maintenanceEnvVar, false),
		RateLimit:       courier.EnvVarOrInt(rateLimitEnvVar, DefaultRateLimit),
		RateBurst:       courier.EnvVarOrInt(rateBurstEnvVar, DefaultRateBurst),
	}
}

// LoadConfig reads the YAML file at path on top of the Config NewConfig returns.
// Keys missing from the file keep their environment or default values.
//
// Durations are written as Go durations, e.g., "5s".
func LoadConfig(path string) (Config, error) {
	cfg := NewConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%w: can't read %s: %s", courier.ErrBadConfig, path, err)
	}

	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: can't parse %s: %s", courier.ErrBadConfig, path, err)
	}

	cfg.Env = courier.Environment(strings.ToUpper(cfg.Env.String()))
	cfg.Port = strings.TrimPrefix(cfg.Port, ":")

	return cfg, nil
}

// Addr joins Host and Port into an address net.Listen accepts.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Level parses LogLevel, defaulting to logger.LogLevelInfo.
func (c Config) Level() logger.LogLevel {
	if ll := logger.NewLogLevel(strings.ToUpper(c.LogLevel)); ll != logger.LogLevelUnk {
		return ll
	}

	return logger.LogLevelInfo
}

// Valid reports the first setting that cannot run a *Server.
func (c Config) Valid() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: environment %q", courier.ErrBadConfig, c.Env)
	}

	if c.Port == "" {
		return fmt.Errorf("%w: empty port", courier.ErrBadConfig)
	}

	if c.RateLimit <= 0 || c.RateBurst <= 0 {
		return fmt.Errorf("%w: rate limit %d, burst %d", courier.ErrBadConfig, c.RateLimit, c.RateBurst)
	}

	if c.FilesPrefix != "" && !strings.HasPrefix(c.FilesPrefix, "/") {
		return fmt.Errorf("%w: files prefix %q must start with /", courier.ErrBadConfig, c.FilesPrefix)
	}

	return nil
}
