package main

import (
	"github.com/JaimeStill/menucatch/internal/api"
	"github.com/JaimeStill/menucatch/internal/config"
	"github.com/JaimeStill/menucatch/internal/infrastructure"
	"github.com/JaimeStill/menucatch/pkg/module"
)

// Modules holds the prefixed modules mounted on the router.
type Modules struct {
	API *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}
	return &Modules{API: apiModule}, nil
}

// Router mounts every module behind the native health endpoints.
func (m *Modules) Router(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	router.HandleNative("GET /healthz", liveness)
	router.HandleNative("GET /readyz", readiness(infra.Lifecycle))
	router.Mount(m.API)
	return router
}
