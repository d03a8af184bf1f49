package util

import (
	"strings"
)

// CleanSplit splits s on sep, trims whitespace from every part and drops
// empties. A blank s yields a nil slice.
func CleanSplit(s string, sep string) []string {
	var parts []string
	for _, p := range strings.Split(s, sep) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}
