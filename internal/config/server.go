package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvServerHost            = "MENUCATCH_SERVER_HOST"
	EnvServerPort            = "MENUCATCH_SERVER_PORT"
	EnvServerReadTimeout     = "MENUCATCH_SERVER_READ_TIMEOUT"
	EnvServerWriteTimeout    = "MENUCATCH_SERVER_WRITE_TIMEOUT"
	EnvServerShutdownTimeout = "MENUCATCH_SERVER_SHUTDOWN_TIMEOUT"
)

// ServerConfig holds HTTP listener parameters. Timeouts are duration
// strings. The write timeout does not apply to session event streams.
type ServerConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	ReadTimeout     string `toml:"read_timeout"`
	WriteTimeout    string `toml:"write_timeout"`
	ShutdownTimeout string `toml:"shutdown_timeout"`

	read, write, shutdown time.Duration
}

// Addr returns the host:port listen address.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

func (c *ServerConfig) ReadTimeoutDuration() time.Duration     { return c.read }
func (c *ServerConfig) WriteTimeoutDuration() time.Duration    { return c.write }
func (c *ServerConfig) ShutdownTimeoutDuration() time.Duration { return c.shutdown }

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ServerConfig) Finalize() error {
	defaultString(&c.Host, "0.0.0.0")
	if c.Port == 0 {
		c.Port = 8080
	}
	defaultString(&c.ReadTimeout, "1m")
	defaultString(&c.WriteTimeout, "2m")
	defaultString(&c.ShutdownTimeout, "30s")

	envString(&c.Host, EnvServerHost)
	envString(&c.ReadTimeout, EnvServerReadTimeout)
	envString(&c.WriteTimeout, EnvServerWriteTimeout)
	envString(&c.ShutdownTimeout, EnvServerShutdownTimeout)
	if v := os.Getenv(EnvServerPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvServerPort, err)
		}
		c.Port = port
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}

	for _, d := range []struct {
		name string
		src  string
		dst  *time.Duration
	}{
		{"read_timeout", c.ReadTimeout, &c.read},
		{"write_timeout", c.WriteTimeout, &c.write},
		{"shutdown_timeout", c.ShutdownTimeout, &c.shutdown},
	} {
		v, err := time.ParseDuration(d.src)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", d.name, err)
		}
		*d.dst = v
	}
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *ServerConfig) Merge(overlay *ServerConfig) {
	mergeString(&c.Host, overlay.Host)
	if overlay.Port != 0 {
		c.Port = overlay.Port
	}
	mergeString(&c.ReadTimeout, overlay.ReadTimeout)
	mergeString(&c.WriteTimeout, overlay.WriteTimeout)
	mergeString(&c.ShutdownTimeout, overlay.ShutdownTimeout)
}
