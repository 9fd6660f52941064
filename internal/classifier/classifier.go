// Package classifier provides the category classifiers that rank a scanned
// fragment's likely food categories: an offline lexicon trained from the
// catalog and a language-model backend.
package classifier

import (
	"errors"
	"fmt"
	"log/slog"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/menucatch/internal/resolve"
)

// Classifier backend names.
const (
	BackendLexicon = "lexicon"
	BackendAgent   = "agent"
)

var (
	ErrUnknownBackend = errors.New("unknown classifier backend")
	ErrPredictFailed  = errors.New("category prediction failed")
)

// New creates the classifier for backend over the categories in index.
// The agent config is only consulted for the agent backend.
func New(
	backend string,
	index *resolve.Index,
	agent *gaconfig.AgentConfig,
	logger *slog.Logger,
) (resolve.Classifier, error) {
	switch backend {
	case BackendLexicon, "":
		return NewLexicon(index), nil
	case BackendAgent:
		if agent == nil {
			return nil, fmt.Errorf("%s backend: agent config required", BackendAgent)
		}
		return NewAgent(*agent, index.Categories(), logger), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownBackend, backend)
	}
}
