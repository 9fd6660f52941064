package api

import (
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/menucatch/internal/config"
	"github.com/JaimeStill/menucatch/internal/infrastructure"
	"github.com/JaimeStill/menucatch/pkg/pagination"
)

// Runtime is the shared infrastructure as seen from the API module, plus the
// settings its domain systems are built from.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Resolver   config.ResolverConfig
	Agent      *gaconfig.AgentConfig
}

// NewRuntime scopes a copy of infra to the api module. The lifecycle,
// database and storage systems stay shared with the server.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	scoped := *infra
	scoped.Logger = infra.Logger.With("module", "api")

	return &Runtime{
		Infrastructure: &scoped,
		Pagination:     cfg.API.Pagination,
		Resolver:       cfg.Resolver,
		Agent:          &cfg.Agent,
	}
}
