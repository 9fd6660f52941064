package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	gaoconfig "github.com/JaimeStill/go-agents-orchestration/pkg/config"
	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
)

// Execute runs one fragment through the resolution graph and returns its
// outcome. Classifier and catalog failures become skips; an error is
// returned only when the graph itself cannot run, for example on context
// cancellation.
func Execute(ctx context.Context, rt *Runtime, f Fragment) (*Outcome, error) {
	graph, err := buildGraph(rt)
	if err != nil {
		return nil, fmt.Errorf("build graph: %w", err)
	}

	initialState := state.New(nil)
	initialState = initialState.Set(KeyOutcome, Outcome{
		Index: f.Index,
		Text:  f.Text,
	})

	finalState, err := graph.Execute(ctx, initialState)
	if err != nil {
		return nil, fmt.Errorf("execute graph: %w", err)
	}

	return extractOutcome(finalState)
}

// Run resolves fragments with at most workers in flight and returns the
// outcomes in fragment order. workers < 1 means one per CPU.
func Run(ctx context.Context, rt *Runtime, fragments []Fragment, workers int) ([]Outcome, error) {
	outcomes := make([]Outcome, len(fragments))
	if len(fragments) == 0 {
		return outcomes, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount(workers, len(fragments)))

	for i, f := range fragments {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}

			o, err := Execute(gctx, rt, f)
			if err != nil {
				return fmt.Errorf("fragment %d: %w", f.Index, err)
			}

			outcomes[i] = *o
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return outcomes, nil
}

func buildGraph(rt *Runtime) (state.StateGraph, error) {
	cfg := gaoconfig.DefaultGraphConfig("menucatch-resolve")
	cfg.Observer = "noop"

	graph, err := state.NewGraph(cfg)
	if err != nil {
		return nil, err
	}

	nodes := []struct {
		name string
		node state.StateNode
	}{
		{"filter", FilterNode(rt)},
		{"rank", RankNode(rt)},
		{"score", ScoreNode(rt)},
		{"lookup", LookupNode(rt)},
		{"finalize", FinalizeNode(rt)},
	}

	for _, n := range nodes {
		if err := graph.AddNode(n.name, n.node); err != nil {
			return nil, err
		}
	}

	// filter → rank (eligible) | finalize (ineligible)
	if err := graph.AddEdge("filter", "rank", active); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("filter", "finalize", state.Not(active)); err != nil {
		return nil, err
	}

	// rank → score (ranked) | finalize (classifier failed)
	if err := graph.AddEdge("rank", "score", active); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("rank", "finalize", state.Not(active)); err != nil {
		return nil, err
	}

	// score → lookup (winner) | finalize (no candidates)
	if err := graph.AddEdge("score", "lookup", active); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("score", "finalize", state.Not(active)); err != nil {
		return nil, err
	}

	if err := graph.AddEdge("lookup", "finalize", nil); err != nil {
		return nil, err
	}

	if err := graph.SetEntryPoint("filter"); err != nil {
		return nil, err
	}

	if err := graph.SetExitPoint("finalize"); err != nil {
		return nil, err
	}

	return graph, nil
}

func workerCount(workers, fragments int) int {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return max(min(workers, fragments), 1)
}
