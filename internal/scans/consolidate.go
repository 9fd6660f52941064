package scans

import (
	"strings"

	"github.com/JaimeStill/menucatch/internal/pipeline"
)

// Consolidate merges scanner items into numbered fragments. Items sharing an
// ID keep the position of their first report and the text of their last.
// Each text is split into one fragment per line; blank lines are kept so
// the filter can reject them.
func Consolidate(items []Item) []pipeline.Fragment {
	order := make([]string, 0, len(items))
	texts := make(map[string]string, len(items))

	for _, item := range items {
		if _, ok := texts[item.ID]; !ok {
			order = append(order, item.ID)
		}
		texts[item.ID] = item.Text
	}

	var fragments []pipeline.Fragment
	for _, id := range order {
		for line := range strings.SplitSeq(texts[id], "\n") {
			fragments = append(fragments, pipeline.Fragment{
				Index: len(fragments),
				Text:  strings.TrimSuffix(line, "\r"),
			})
		}
	}

	return fragments
}
