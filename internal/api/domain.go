package api

import (
	"github.com/JaimeStill/menucatch/internal/catalog"
	"github.com/JaimeStill/menucatch/internal/classifier"
	"github.com/JaimeStill/menucatch/internal/resolve"
	"github.com/JaimeStill/menucatch/internal/scans"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Catalog catalog.System
	Scans   scans.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) *Domain {
	catalogSystem := catalog.New(
		runtime.Database.Connection(),
		runtime.Logger,
		runtime.Pagination,
	)

	backend := runtime.Resolver.Classifier
	scansSystem := scans.New(
		catalogSystem,
		runtime.Storage,
		scans.Config{
			Filter:        runtime.Resolver.Filter(),
			MaxHypotheses: runtime.Resolver.MaxHypotheses,
			Concurrency:   runtime.Resolver.Concurrency,
			NewClassifier: func(index *resolve.Index) (resolve.Classifier, error) {
				return classifier.New(backend, index, runtime.Agent, runtime.Logger)
			},
		},
		runtime.Logger,
	)

	return &Domain{
		Catalog: catalogSystem,
		Scans:   scansSystem,
	}
}
