package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/JaimeStill/menucatch/internal/classifier"
	"github.com/JaimeStill/menucatch/internal/resolve"
)

const (
	EnvResolverMaxHypotheses = "MENUCATCH_RESOLVER_MAX_HYPOTHESES"
	EnvResolverMinLength     = "MENUCATCH_RESOLVER_MIN_LENGTH"
	EnvResolverMaxLength     = "MENUCATCH_RESOLVER_MAX_LENGTH"
	EnvResolverConcurrency   = "MENUCATCH_RESOLVER_CONCURRENCY"
	EnvResolverClassifier    = "MENUCATCH_RESOLVER_CLASSIFIER"
)

// ResolverConfig controls fragment filtering, category ranking and batch
// parallelism. Concurrency 1 resolves fragments strictly in order.
type ResolverConfig struct {
	MaxHypotheses int    `toml:"max_hypotheses"`
	MinLength     int    `toml:"min_length"`
	MaxLength     int    `toml:"max_length"`
	Concurrency   int    `toml:"concurrency"`
	Classifier    string `toml:"classifier"`
}

// Filter returns the fragment filter described by the config.
func (c *ResolverConfig) Filter() resolve.Filter {
	return resolve.Filter{
		MinLength: c.MinLength,
		MaxLength: c.MaxLength,
	}
}

// UsesAgent reports whether categories are ranked by the LLM backend.
func (c *ResolverConfig) UsesAgent() bool {
	return c.Classifier == classifier.BackendAgent
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *ResolverConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *ResolverConfig) Merge(overlay *ResolverConfig) {
	if overlay.MaxHypotheses != 0 {
		c.MaxHypotheses = overlay.MaxHypotheses
	}
	if overlay.MinLength != 0 {
		c.MinLength = overlay.MinLength
	}
	if overlay.MaxLength != 0 {
		c.MaxLength = overlay.MaxLength
	}
	if overlay.Concurrency != 0 {
		c.Concurrency = overlay.Concurrency
	}
	if overlay.Classifier != "" {
		c.Classifier = overlay.Classifier
	}
}

func (c *ResolverConfig) loadDefaults() {
	if c.MaxHypotheses == 0 {
		c.MaxHypotheses = resolve.DefaultMaxHypotheses
	}
	if c.MinLength == 0 {
		c.MinLength = resolve.DefaultMinLength
	}
	if c.MaxLength == 0 {
		c.MaxLength = resolve.DefaultMaxLength
	}
	if c.Concurrency == 0 {
		c.Concurrency = 1
	}
	if c.Classifier == "" {
		c.Classifier = classifier.BackendLexicon
	}
}

func (c *ResolverConfig) loadEnv() {
	setInt := func(envVar string, target *int) {
		if v := os.Getenv(envVar); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*target = n
			}
		}
	}

	setInt(EnvResolverMaxHypotheses, &c.MaxHypotheses)
	setInt(EnvResolverMinLength, &c.MinLength)
	setInt(EnvResolverMaxLength, &c.MaxLength)
	setInt(EnvResolverConcurrency, &c.Concurrency)

	if v := os.Getenv(EnvResolverClassifier); v != "" {
		c.Classifier = v
	}
}

func (c *ResolverConfig) validate() error {
	if c.MaxHypotheses < 1 {
		return fmt.Errorf("max_hypotheses must be positive: %d", c.MaxHypotheses)
	}
	if c.MinLength < 1 {
		return fmt.Errorf("min_length must be positive: %d", c.MinLength)
	}
	if c.MaxLength < c.MinLength {
		return fmt.Errorf("max_length %d is less than min_length %d", c.MaxLength, c.MinLength)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be positive: %d", c.Concurrency)
	}
	switch c.Classifier {
	case classifier.BackendLexicon, classifier.BackendAgent:
	default:
		return fmt.Errorf("unknown classifier %q", c.Classifier)
	}
	return nil
}
