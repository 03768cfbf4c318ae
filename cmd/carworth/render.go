package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md with terminal styling, falling back to the raw
// text when rendering fails.
func printMarkdown(w io.Writer, md string) {
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Fprintln(w, md)
		return
	}
	fmt.Fprint(w, out)
}
