package openapi

import "os"

const (
	defaultTitle       = "MenuCatch API"
	defaultDescription = "Resolves scanned menu text to catalog foods and collects them per scan session."
)

// Config holds the document metadata published with the API description.
type Config struct {
	Title       string `toml:"title"`
	Description string `toml:"description"`
}

// ConfigEnv names the environment variables that override Config fields.
type ConfigEnv struct {
	Title       string
	Description string
}

// Finalize fills the document metadata. Env overrides win over file values,
// which win over the built-in defaults.
func (c *Config) Finalize(env *ConfigEnv) error {
	if env == nil {
		env = &ConfigEnv{}
	}
	c.Title = resolve(env.Title, c.Title, defaultTitle)
	c.Description = resolve(env.Description, c.Description, defaultDescription)
	return nil
}

// Merge overwrites non-zero fields from overlay.
func (c *Config) Merge(overlay *Config) {
	c.Title = resolve("", overlay.Title, c.Title)
	c.Description = resolve("", overlay.Description, c.Description)
}

// resolve returns the first non-empty of the named env var, current, and fallback.
func resolve(envName, current, fallback string) string {
	if envName != "" {
		if v := os.Getenv(envName); v != "" {
			return v
		}
	}
	if current != "" {
		return current
	}
	return fallback
}
