// Package ui prints user-facing progress to the terminal. The pipeline
// reports each stage through a Console; structured logs carry the same
// events for machines. A nil Console silences all output, which is what
// tests and library callers want.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow, color.Bold)
	red    = color.New(color.FgRed)
)

// Console writes formatted progress messages to a terminal.
type Console struct {
	w io.Writer
}

// NewConsole returns a console writing to w. A nil writer uses stdout.
func NewConsole(w io.Writer) *Console {
	if w == nil {
		w = os.Stdout
	}
	return &Console{w: w}
}

// Header prints a banner line around text.
func (c *Console) Header(text string) {
	if c == nil {
		return
	}
	line := strings.Repeat("=", 60)
	green.Fprintf(c.w, "\n%s\n", line)
	green.Fprintf(c.w, "%s\n", center(text, 60))
	green.Fprintf(c.w, "%s\n\n", line)
}

// Step prints a numbered step indicator.
func (c *Console) Step(stepNum, totalSteps int, format string, args ...any) {
	if c == nil {
		return
	}
	yellow.Fprintf(c.w, "[%d/%d] %s\n", stepNum, totalSteps, fmt.Sprintf(format, args...))
}

// Success prints a success message.
func (c *Console) Success(format string, args ...any) {
	if c == nil {
		return
	}
	green.Fprintf(c.w, "  → %s\n", fmt.Sprintf(format, args...))
}

// Info prints a neutral message.
func (c *Console) Info(format string, args ...any) {
	if c == nil {
		return
	}
	fmt.Fprintf(c.w, "  → %s\n", fmt.Sprintf(format, args...))
}

// Warning prints a warning message.
func (c *Console) Warning(format string, args ...any) {
	if c == nil {
		return
	}
	yellow.Fprintf(c.w, "  ! %s\n", fmt.Sprintf(format, args...))
}

// Error prints an error message.
func (c *Console) Error(format string, args ...any) {
	if c == nil {
		return
	}
	red.Fprintf(c.w, "Error: %s\n", fmt.Sprintf(format, args...))
}

func center(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
