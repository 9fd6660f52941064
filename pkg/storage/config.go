package storage

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

// Config holds Azure Blob Storage connection parameters.
// MaxListSize is the default page size for listings and is capped at
// MaxListCap.
type Config struct {
	ContainerName    string `toml:"container_name"`
	ConnectionString string `toml:"connection_string"`
	MaxListSize      int32  `toml:"max_list_size"`
}

// Env maps config fields to environment variable names for override injection.
type Env struct {
	ContainerName    string
	ConnectionString string
	MaxListSize      string
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *Config) Finalize(env *Env) error {
	if c.ContainerName == "" {
		c.ContainerName = "scans"
	}
	if c.MaxListSize <= 0 {
		c.MaxListSize = 50
	}

	if env != nil {
		if err := c.loadEnv(env); err != nil {
			return err
		}
	}
	c.MaxListSize = min(c.MaxListSize, MaxListCap)

	var errs []error
	if c.ContainerName == "" {
		errs = append(errs, errors.New("container_name required"))
	}
	if c.ConnectionString == "" {
		errs = append(errs, errors.New("connection_string required"))
	}
	return errors.Join(errs...)
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ContainerName != "" {
		c.ContainerName = overlay.ContainerName
	}
	if overlay.ConnectionString != "" {
		c.ConnectionString = overlay.ConnectionString
	}
	if overlay.MaxListSize > 0 {
		c.MaxListSize = overlay.MaxListSize
	}
}

func (c *Config) loadEnv(env *Env) error {
	if v := lookup(env.ContainerName); v != "" {
		c.ContainerName = v
	}
	if v := lookup(env.ConnectionString); v != "" {
		c.ConnectionString = v
	}
	if v := lookup(env.MaxListSize); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 1 {
			return fmt.Errorf("%s: invalid list size %q", env.MaxListSize, v)
		}
		c.MaxListSize = int32(n)
	}
	return nil
}

func lookup(name string) string {
	if name == "" {
		return ""
	}
	return os.Getenv(name)
}
