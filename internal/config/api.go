package config

import (
	"fmt"

	"github.com/JaimeStill/menucatch/pkg/formatting"
	"github.com/JaimeStill/menucatch/pkg/middleware"
	"github.com/JaimeStill/menucatch/pkg/openapi"
	"github.com/JaimeStill/menucatch/pkg/pagination"
)

const (
	EnvAPIBasePath    = "MENUCATCH_API_BASE_PATH"
	EnvAPIMaxBodySize = "MENUCATCH_API_MAX_BODY_SIZE"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "MENUCATCH_CORS_ENABLED",
	Origins:          "MENUCATCH_CORS_ORIGINS",
	AllowedMethods:   "MENUCATCH_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "MENUCATCH_CORS_ALLOWED_HEADERS",
	AllowCredentials: "MENUCATCH_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "MENUCATCH_CORS_MAX_AGE",
}

var openAPIEnv = &openapi.ConfigEnv{
	Title:       "MENUCATCH_OPENAPI_TITLE",
	Description: "MENUCATCH_OPENAPI_DESCRIPTION",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "MENUCATCH_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "MENUCATCH_PAGINATION_MAX_PAGE_SIZE",
}

// APIConfig holds API routing, CORS, request size, and pagination settings.
type APIConfig struct {
	BasePath    string                `toml:"base_path"`
	MaxBodySize string                `toml:"max_body_size"`
	CORS        middleware.CORSConfig `toml:"cors"`
	Pagination  pagination.Config     `toml:"pagination"`
	OpenAPI     openapi.Config        `toml:"openapi"`
}

// MaxBodySizeBytes returns MaxBodySize in bytes. Scanner batches are plain
// text, so the limit is small.
func (c *APIConfig) MaxBodySizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxBodySize)
	if err != nil {
		return 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if _, err := formatting.ParseBytes(c.MaxBodySize); err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openAPIEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	mergeString(&c.BasePath, overlay.BasePath)
	mergeString(&c.MaxBodySize, overlay.MaxBodySize)

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	defaultString(&c.BasePath, "/api")
	defaultString(&c.MaxBodySize, "1MB")
}

func (c *APIConfig) loadEnv() {
	envString(&c.BasePath, EnvAPIBasePath)
	envString(&c.MaxBodySize, EnvAPIMaxBodySize)
}
