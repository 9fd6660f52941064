// Package pipeline resolves a single scanned fragment to a catalog food.
// Each fragment runs through a state graph
// (filter → rank → score → lookup → finalize) that ends either resolved or
// skipped with a reason. Failures of the classifier or the catalog are
// recorded as skips so one bad fragment never fails its batch.
package pipeline

import "errors"

// ErrInvalidState is returned when the graph state does not carry a
// well-formed outcome.
var ErrInvalidState = errors.New("invalid pipeline state")
