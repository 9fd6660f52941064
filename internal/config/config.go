package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/menucatch/pkg/database"
	"github.com/JaimeStill/menucatch/pkg/storage"
)

const (
	BaseConfigFile       = "config.toml"
	OverlayConfigPattern = "config.%s.toml"

	EnvName            = "MENUCATCH_ENV"
	EnvShutdownTimeout = "MENUCATCH_SHUTDOWN_TIMEOUT"
	EnvVersion         = "MENUCATCH_VERSION"
)

var databaseEnv = &database.Env{
	Host:            "MENUCATCH_DB_HOST",
	Port:            "MENUCATCH_DB_PORT",
	Name:            "MENUCATCH_DB_NAME",
	User:            "MENUCATCH_DB_USER",
	Password:        "MENUCATCH_DB_PASSWORD",
	SSLMode:         "MENUCATCH_DB_SSL_MODE",
	ApplicationName: "MENUCATCH_DB_APPLICATION_NAME",
	MaxOpenConns:    "MENUCATCH_DB_MAX_OPEN_CONNS",
	MaxIdleConns:    "MENUCATCH_DB_MAX_IDLE_CONNS",
	ConnMaxLifetime: "MENUCATCH_DB_CONN_MAX_LIFETIME",
	ConnTimeout:     "MENUCATCH_DB_CONN_TIMEOUT",
}

var storageEnv = &storage.Env{
	ContainerName:    "MENUCATCH_STORAGE_CONTAINER_NAME",
	ConnectionString: "MENUCATCH_STORAGE_CONNECTION_STRING",
}

// Config is the root configuration for the menucatch service.
// Agent is only finalized when the resolver ranks categories with the
// agent classifier.
type Config struct {
	Server          ServerConfig         `toml:"server"`
	Logging         LoggingConfig        `toml:"logging"`
	Database        database.Config      `toml:"database"`
	Storage         storage.Config       `toml:"storage"`
	API             APIConfig            `toml:"api"`
	Resolver        ResolverConfig       `toml:"resolver"`
	Agent           gaconfig.AgentConfig `toml:"agent"`
	ShutdownTimeout string               `toml:"shutdown_timeout"`
	Version         string               `toml:"version"`
}

// Env returns the MENUCATCH_ENV value, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvName); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration returns ShutdownTimeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load builds the configuration from config.toml and the overlay named by
// MENUCATCH_ENV (config.<env>.toml), then finalizes every section. Missing
// files are skipped, so defaults and environment variables alone are enough.
func Load() (*Config, error) {
	var cfg *Config

	for _, path := range configFiles() {
		layer, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		if cfg == nil {
			cfg = layer
			continue
		}
		cfg.Merge(layer)
	}

	if cfg == nil {
		cfg = &Config{}
	}

	if err := cfg.finalize(); err != nil {
		return nil, fmt.Errorf("finalize config: %w", err)
	}

	return cfg, nil
}

// Merge overwrites non-zero fields from overlay across all sub-configs.
func (c *Config) Merge(overlay *Config) {
	mergeString(&c.ShutdownTimeout, overlay.ShutdownTimeout)
	mergeString(&c.Version, overlay.Version)
	c.Server.Merge(&overlay.Server)
	c.Logging.Merge(&overlay.Logging)
	c.Database.Merge(&overlay.Database)
	c.Storage.Merge(&overlay.Storage)
	c.API.Merge(&overlay.API)
	c.Resolver.Merge(&overlay.Resolver)
	c.Agent.Merge(&overlay.Agent)
}

func (c *Config) finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Database.Finalize(databaseEnv); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := c.Storage.Finalize(storageEnv); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if err := c.API.Finalize(); err != nil {
		return fmt.Errorf("api: %w", err)
	}
	if err := c.Resolver.Finalize(); err != nil {
		return fmt.Errorf("resolver: %w", err)
	}
	if c.Resolver.UsesAgent() {
		if err := FinalizeAgent(&c.Agent); err != nil {
			return fmt.Errorf("agent: %w", err)
		}
	}
	return nil
}

func (c *Config) loadDefaults() {
	defaultString(&c.ShutdownTimeout, "30s")
	defaultString(&c.Version, "0.1.0")
}

func (c *Config) loadEnv() {
	envString(&c.ShutdownTimeout, EnvShutdownTimeout)
	envString(&c.Version, EnvVersion)
}

func (c *Config) validate() error {
	if _, err := time.ParseDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// configFiles returns the existing config files in merge order.
func configFiles() []string {
	candidates := []string{BaseConfigFile}
	if env := os.Getenv(EnvName); env != "" {
		candidates = append(candidates, fmt.Sprintf(OverlayConfigPattern, env))
	}

	var files []string
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			files = append(files, path)
		}
	}
	return files
}
