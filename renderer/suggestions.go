package renderer

import (
	"fmt"
	"strings"
)

// SuggestionsMarkdown renders optimization suggestions as a markdown list.
func SuggestionsMarkdown(suggestions []string) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Optimization Suggestions\n\n")
	for _, s := range suggestions {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	return b.String()
}
