package classifier

import (
	"regexp"
	"strings"
)

var (
	wrapperRe = regexp.MustCompile(`^["'\[{]+|["'\]}]+$`)
	prefixRe  = regexp.MustCompile(`(?i)^category\s*:\s*`)
)

// Normalize strips wrapping quotes or brackets and a leading "Category:" from a
// generated label. Normalizing an already clean label returns it unchanged.
func Normalize(label string) string {
	label = strings.TrimSpace(label)
	for {
		next := wrapperRe.ReplaceAllString(label, "")
		next = prefixRe.ReplaceAllString(next, "")
		next = strings.TrimSpace(next)
		if next == label {
			return label
		}
		label = next
	}
}
