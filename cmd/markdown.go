package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown to the terminal, falling back to the raw
// source when rendering is not possible.
func printMarkdown(source string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Println(source)
		return
	}
	out, err := r.Render(source)
	if err != nil {
		fmt.Println(source)
		return
	}
	fmt.Print(out)
}
