package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// this is a pointer so that if someone attempts to use it before loading it will
// panic and force them to load it first.
// it is also private so that it cannot be modified after loading.
var _loaded *Config

// Config is the main configuration structure
type Config struct {
	Common Common `yaml:"common"`
}

// Storage drivers
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Load loads the configuration following proper precedence: defaults → config file → environment variables.
// The merged result is validated once the environment has been applied.
func Load() error {
	_loaded = defaults()

	configFile := os.Getenv("RENTAL_CONFIG_FILE")
	if configFile == "" {
		configFile = "rental.yaml"
	}

	if err := LoadFromFile(configFile); err != nil {
		log.Printf("Failed to load config file: %v, using defaults", err)
	} else {
		log.Printf("Loaded config from file: %s", configFile)
	}

	ApplyEnvOverrides()

	if err := _loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LoadDefault loads the built-in defaults only
func LoadDefault() {
	_loaded = defaults()
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := defaults()

	// Merge YAML values over defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config file: %w", err)
	}

	_loaded = cfg
	return nil
}

// Validate checks values that have no sensible fallback
func (c *Config) Validate() error {
	switch c.Common.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unsupported storage driver: %s", c.Common.Storage.Driver)
	}
	if c.Common.Http.Port <= 0 || c.Common.Http.Port > 65535 {
		return fmt.Errorf("http port out of range: %d", c.Common.Http.Port)
	}
	if c.Common.Rental.PeriodHours <= 0 {
		return fmt.Errorf("rental period_hours must be positive")
	}
	return nil
}

// set sane defaults for all of the config options. when loading the config from
// the file, any options that are not set will be set to these defaults.
func defaults() *Config {
	return &Config{
		Common: Common{
			Log: logConfig{
				Level:  "info",
				Format: "json",
			},
			Http: httpConfig{
				Host:                   "0.0.0.0",
				Port:                   8080,
				ShutdownTimeoutSeconds: 30,
			},
			Postgres: postgresConfig{
				User:               "postgres",
				Password:           "postgres",
				Host:               "localhost",
				Port:               5432,
				Database:           "rentals",
				MaxOpenConnections: 10,
			},
			Storage: storageConfig{
				Driver: StorageDriverPostgres,
				Seed:   false,
			},
			Rental: rentalConfig{
				PeriodHours: 72,
			},
		},
	}
}

type Common struct {
	Log      logConfig      `yaml:"log"`
	Http     httpConfig     `yaml:"http"`
	Postgres postgresConfig `yaml:"postgres"`
	Storage  storageConfig  `yaml:"storage"`
	Rental   rentalConfig   `yaml:"rental"`
}

type logConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type httpConfig struct {
	Host                   string `yaml:"host"`
	Port                   int    `yaml:"port"`
	ShutdownTimeoutSeconds int    `yaml:"shutdown_timeout_seconds"`
}

func (c httpConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c httpConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

type postgresConfig struct {
	User               string `yaml:"user"`
	Password           string `yaml:"password"`
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	Database           string `yaml:"database"`
	MaxOpenConnections int    `yaml:"max_open_connections"`
}

func (c postgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=disable",
		url.QueryEscape(c.User),
		url.QueryEscape(c.Password),
		c.Host,
		c.Port,
		url.QueryEscape(c.Database),
	)
}

type storageConfig struct {
	Driver string `yaml:"driver"` // "postgres" or "memory"
	Seed   bool   `yaml:"seed"`   // insert demo users and movies on startup
}

type rentalConfig struct {
	PeriodHours int `yaml:"period_hours"`
}

func (c rentalConfig) Period() time.Duration {
	return time.Duration(c.PeriodHours) * time.Hour
}

// there should be a getter for each top level field in the config struct.
// these getters will panic if the config has not been loaded.

func Logger() logConfig {
	return Get().Common.Log
}

func Http() httpConfig {
	return Get().Common.Http
}

func Postgres() postgresConfig {
	return Get().Common.Postgres
}

func Storage() storageConfig {
	return Get().Common.Storage
}

func Rental() rentalConfig {
	return Get().Common.Rental
}

// Get returns the full configuration
func Get() *Config {
	if _loaded == nil {
		panic("config not loaded - call Load() first")
	}
	return _loaded
}

// ApplyEnvOverrides applies RENTAL_* environment variables over the loaded config
func ApplyEnvOverrides() {
	if _loaded == nil {
		return
	}

	if level := os.Getenv("RENTAL_LOG_LEVEL"); level != "" {
		_loaded.Common.Log.Level = level
	}
	if format := os.Getenv("RENTAL_LOG_FORMAT"); format != "" {
		_loaded.Common.Log.Format = format
	}

	if httpHost := os.Getenv("RENTAL_HTTP_HOST"); httpHost != "" {
		_loaded.Common.Http.Host = httpHost
	}
	if httpPort := os.Getenv("RENTAL_HTTP_PORT"); httpPort != "" {
		if port, err := strconv.Atoi(httpPort); err == nil {
			_loaded.Common.Http.Port = port
		}
	}

	if dbHost := os.Getenv("RENTAL_DB_HOST"); dbHost != "" {
		_loaded.Common.Postgres.Host = dbHost
	}
	if dbPort := os.Getenv("RENTAL_DB_PORT"); dbPort != "" {
		if port, err := strconv.Atoi(dbPort); err == nil {
			_loaded.Common.Postgres.Port = port
		}
	}
	if dbUser := os.Getenv("RENTAL_DB_USER"); dbUser != "" {
		_loaded.Common.Postgres.User = dbUser
	}
	if dbPassword := os.Getenv("RENTAL_DB_PASSWORD"); dbPassword != "" {
		_loaded.Common.Postgres.Password = dbPassword
	}
	if dbName := os.Getenv("RENTAL_DB_NAME"); dbName != "" {
		_loaded.Common.Postgres.Database = dbName
	}

	if driver := os.Getenv("RENTAL_STORAGE_DRIVER"); driver != "" {
		_loaded.Common.Storage.Driver = driver
	}
	if seed := os.Getenv("RENTAL_STORAGE_SEED"); seed != "" {
		if enabled, err := strconv.ParseBool(seed); err == nil {
			_loaded.Common.Storage.Seed = enabled
		}
	}

	if hours := os.Getenv("RENTAL_PERIOD_HOURS"); hours != "" {
		if parsed, err := strconv.Atoi(hours); err == nil && parsed > 0 {
			_loaded.Common.Rental.PeriodHours = parsed
		}
	}
}
