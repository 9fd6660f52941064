package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"

	"github.com/JaimeStill/menucatch/internal/catalog"
	"github.com/JaimeStill/menucatch/internal/resolve"
)

// FilterNode skips fragments that cannot be a food name.
func FilterNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		o, err := extractOutcome(s)
		if err != nil {
			return s, fmt.Errorf("filter: %w", err)
		}

		if !rt.Filter.Eligible(o.Text) {
			o.skip(SkipIneligible, nil)
		}

		return s.Set(KeyOutcome, *o), nil
	})
}

// RankNode asks the classifier for the most likely categories.
func RankNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		o, err := extractOutcome(s)
		if err != nil {
			return s, fmt.Errorf("rank: %w", err)
		}

		ranked, err := resolve.Rank(ctx, rt.Classifier, o.Text, rt.MaxHypotheses)
		if err != nil {
			rt.Logger.WarnContext(
				ctx, "classifier failed",
				"fragment", o.Index,
				"error", err,
			)
			o.skip(SkipClassifierFailed, err)
			return s.Set(KeyOutcome, *o), nil
		}

		o.Ranked = ranked
		return s.Set(KeyOutcome, *o), nil
	})
}

// ScoreNode narrows the ranked categories to skeleton matches and picks the
// most similar name.
func ScoreNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		o, err := extractOutcome(s)
		if err != nil {
			return s, fmt.Errorf("score: %w", err)
		}

		result := resolve.Resolve(o.Text, o.Ranked, rt.Index)
		o.Result = &result

		if !result.Matched() {
			o.skip(SkipNoCandidates, nil)
		}

		return s.Set(KeyOutcome, *o), nil
	})
}

// LookupNode fetches the winning food from the catalog.
func LookupNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		o, err := extractOutcome(s)
		if err != nil {
			return s, fmt.Errorf("lookup: %w", err)
		}

		w := o.Result.Winner
		food, err := rt.Catalog.Lookup(ctx, w.Category, w.Name)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			rt.Logger.WarnContext(
				ctx, "winner missing from catalog",
				"category", w.Category,
				"name", w.Name,
			)
			o.skip(SkipNotFound, err)
		case err != nil:
			rt.Logger.WarnContext(
				ctx, "catalog lookup failed",
				"category", w.Category,
				"name", w.Name,
				"error", err,
			)
			o.skip(SkipLookupFailed, err)
		default:
			o.Food = food
		}

		return s.Set(KeyOutcome, *o), nil
	})
}

// FinalizeNode stamps the terminal status.
func FinalizeNode(rt *Runtime) state.StateNode {
	return state.NewFunctionNode(func(ctx context.Context, s state.State) (state.State, error) {
		o, err := extractOutcome(s)
		if err != nil {
			return s, fmt.Errorf("finalize: %w", err)
		}

		if o.active() && o.Food != nil {
			o.Status = StatusResolved
			rt.Logger.DebugContext(
				ctx, "fragment resolved",
				"fragment", o.Index,
				"category", o.Food.Category,
				"name", o.Food.Name,
				"score", o.Score(),
			)
		} else {
			if o.active() {
				o.skip(SkipNoCandidates, nil)
			}
			o.Status = StatusSkipped
			rt.Logger.DebugContext(
				ctx, "fragment skipped",
				"fragment", o.Index,
				"reason", o.Reason,
			)
		}

		return s.Set(KeyOutcome, *o), nil
	})
}

func extractOutcome(s state.State) (*Outcome, error) {
	val, ok := s.Get(KeyOutcome)
	if !ok {
		return nil, fmt.Errorf("%w: missing %s in state", ErrInvalidState, KeyOutcome)
	}

	o, ok := val.(Outcome)
	if !ok {
		return nil, fmt.Errorf("%w: %s is not Outcome", ErrInvalidState, KeyOutcome)
	}

	return &o, nil
}

func active(s state.State) bool {
	o, err := extractOutcome(s)
	if err != nil {
		return false
	}
	return o.active()
}
