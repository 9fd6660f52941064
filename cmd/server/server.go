package main

import (
	"time"

	"github.com/JaimeStill/menucatch/internal/config"
	"github.com/JaimeStill/menucatch/internal/infrastructure"
	"github.com/JaimeStill/menucatch/pkg/formatting"
)

// Server owns the infrastructure, the mounted modules, and the listener.
type Server struct {
	infra *infrastructure.Infrastructure
	http  *httpServer
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	infra.Logger.Info(
		"menucatch initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
		"classifier", cfg.Resolver.Classifier,
		"max_body", formatting.FormatBytes(cfg.API.MaxBodySizeBytes(), 0),
	)

	return &Server{
		infra: infra,
		http:  newHTTPServer(&cfg.Server, modules.Router(infra), infra.Logger),
	}, nil
}

// Start registers infrastructure hooks and begins serving. Readiness is
// logged once every startup hook has returned.
func (s *Server) Start() error {
	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("startup complete", "checks", s.infra.Lifecycle.Status())
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown", "timeout", timeout)
	if err := s.infra.Lifecycle.Shutdown(timeout); err != nil {
		return err
	}
	s.infra.Logger.Info("menucatch stopped")
	return nil
}
