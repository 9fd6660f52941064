package resolve

import (
	"maps"
	"slices"
)

// Index is an immutable snapshot of the catalog's reference names, keyed
// by category. Names keep the order they were supplied in.
type Index struct {
	names      map[string][]string
	categories []string
	total      int
}

// NewIndex copies names into a new Index. Later changes to the source map
// or its slices are not observed.
func NewIndex(names map[string][]string) *Index {
	idx := &Index{
		names: make(map[string][]string, len(names)),
	}

	for category, list := range names {
		idx.names[category] = slices.Clone(list)
		idx.total += len(list)
	}

	idx.categories = slices.Sorted(maps.Keys(idx.names))
	return idx
}

// Names returns a copy of the reference names for category and whether the
// category exists.
func (i *Index) Names(category string) ([]string, bool) {
	if i == nil {
		return nil, false
	}
	list, ok := i.names[category]
	if !ok {
		return nil, false
	}
	return slices.Clone(list), true
}

// Categories returns the category labels in lexical order.
func (i *Index) Categories() []string {
	if i == nil {
		return []string{}
	}
	return slices.Clone(i.categories)
}

// Len returns the total number of reference names across all categories.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return i.total
}

func (i *Index) lookup(category string) []string {
	if i == nil {
		return nil
	}
	return i.names[category]
}
