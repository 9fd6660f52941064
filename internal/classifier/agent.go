package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/menucatch/internal/resolve"
	"github.com/JaimeStill/menucatch/pkg/formatting"
)

const agentPrompt = `You classify food names scanned from Korean restaurant menus.
The text may contain OCR errors, misplaced spaces, or prices.

Allowed categories:
%s

Text: %q

Respond with JSON only, listing at most %d of the allowed categories the text
most likely belongs to, each with a confidence score between 0 and 1:
{"hypotheses": [{"label": "<category>", "score": <number>}]}`

type agentResponse struct {
	Hypotheses []resolve.Hypothesis `json:"hypotheses"`
}

// Agent ranks categories by asking a language model through go-agents.
// Only labels from the fixed category set are returned.
type Agent struct {
	cfg    gaconfig.AgentConfig
	labels []string
	logger *slog.Logger
}

// NewAgent creates an Agent that chooses among labels.
func NewAgent(cfg gaconfig.AgentConfig, labels []string, logger *slog.Logger) *Agent {
	return &Agent{
		cfg:    cfg,
		labels: labels,
		logger: logger.With("classifier", BackendAgent),
	}
}

func (a *Agent) Predict(ctx context.Context, text string, maxHypotheses int) ([]resolve.Hypothesis, error) {
	if len(a.labels) == 0 || maxHypotheses < 1 {
		return []resolve.Hypothesis{}, nil
	}

	ag, err := agent.New(&a.cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create agent: %w", ErrPredictFailed, err)
	}

	prompt := fmt.Sprintf(agentPrompt, "- "+strings.Join(a.labels, "\n- "), text, maxHypotheses)

	resp, err := ag.Chat(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: chat: %w", ErrPredictFailed, err)
	}

	hypotheses, err := ParseHypotheses(resp.Content(), a.labels)
	if err != nil {
		return nil, err
	}

	a.logger.DebugContext(
		ctx, "agent prediction",
		"text", text,
		"hypotheses", len(hypotheses),
	)

	return hypotheses, nil
}

// ParseHypotheses extracts hypotheses from a model response, plain or
// fenced, keeping emission order. Labels outside labels are dropped. The
// result is not capped: resolve.Order sorts before it truncates.
func ParseHypotheses(content string, labels []string) ([]resolve.Hypothesis, error) {
	parsed, err := formatting.Parse[agentResponse](content)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPredictFailed, err)
	}

	allowed := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		allowed[l] = struct{}{}
	}

	hypotheses := make([]resolve.Hypothesis, 0, len(parsed.Hypotheses))
	for _, h := range parsed.Hypotheses {
		h.Label = strings.TrimSpace(h.Label)
		if _, ok := allowed[h.Label]; !ok {
			continue
		}
		hypotheses = append(hypotheses, h)
	}

	return hypotheses, nil
}
