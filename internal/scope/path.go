package scope

import (
	"fmt"
	"strings"
)

// Split breaks an identifier into its path segments.
func Split(id string) ([]string, error) {
	if id == "" {
		return nil, fmt.Errorf("identifier cannot be empty")
	}

	var (
		segments []string
		depth    int
		start    int
	)
	for i, r := range id {
		switch r {
		case '[', '(':
			depth++
		case ']', ')':
			depth--
		case '.':
			if depth > 0 {
				continue
			}
			segments = append(segments, id[start:i])
			start = i + 1
		}
	}
	segments = append(segments, id[start:])

	for _, segment := range segments {
		if segment == "" {
			return nil, fmt.Errorf("identifier %q contains an empty segment", id)
		}
		if strings.TrimSpace(segment) != segment {
			return nil, fmt.Errorf("invalid path segment format: %q", segment)
		}
	}
	return segments, nil
}

// Join is the inverse of Split.
func Join(segments ...string) string {
	return strings.Join(segments, ".")
}
