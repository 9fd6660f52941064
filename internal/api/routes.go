package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/menucatch/internal/config"
	"github.com/JaimeStill/menucatch/pkg/openapi"
	"github.com/JaimeStill/menucatch/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) error {
	storage := newStorageHandler(
		runtime.Storage,
		runtime.Logger,
		cfg.Storage.MaxListSize,
	)

	routes.Register(
		mux,
		domain.Catalog.Handler().Routes(),
		domain.Scans.Handler().Routes(),
		storage.routes(),
	)

	serveSpec, err := openapi.Handler(buildSpec(cfg))
	if err != nil {
		return fmt.Errorf("openapi spec: %w", err)
	}
	mux.HandleFunc("GET /openapi.json", serveSpec)

	return nil
}
