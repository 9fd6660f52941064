// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/menucatch/internal/config"
	"github.com/JaimeStill/menucatch/internal/infrastructure"
	"github.com/JaimeStill/menucatch/pkg/middleware"
	"github.com/JaimeStill/menucatch/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// The catalog index is warmed on startup so the first batch does not pay for it.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	runtime.Lifecycle.OnStartup(func() {
		if err := domain.Scans.Warm(runtime.Lifecycle.Context()); err != nil {
			runtime.Logger.Warn("catalog index not loaded", "error", err)
		}
	})

	mux := http.NewServeMux()
	if err := registerRoutes(mux, domain, cfg, runtime); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.MaxBytes(cfg.API.MaxBodySizeBytes()))
	m.Use(middleware.Logger(runtime.Logger))

	return m, nil
}
