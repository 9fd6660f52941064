package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrParseFailed reports content that holds no decodable JSON.
var ErrParseFailed = errors.New("failed to parse response")

var fence = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// Parse decodes JSON from a model response into T. It accepts bare JSON,
// JSON inside a markdown code fence, and a single object surrounded by
// prose, in that order.
func Parse[T any](content string) (T, error) {
	var result T
	content = strings.TrimSpace(content)

	for _, candidate := range candidates(content) {
		if json.Unmarshal([]byte(candidate), &result) == nil {
			return result, nil
		}
		var zero T
		result = zero
	}

	return result, fmt.Errorf("%w: %s", ErrParseFailed, content)
}

func candidates(content string) []string {
	out := []string{content}

	if m := fence.FindStringSubmatch(content); m != nil {
		out = append(out, m[1])
	}

	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start >= 0 && end > start {
		out = append(out, content[start:end+1])
	}

	return out
}
