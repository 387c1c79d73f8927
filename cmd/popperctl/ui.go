package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorRed   = lipgloss.Color("167")
	colorAmber = lipgloss.Color("220")
	colorDim   = lipgloss.Color("240")

	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim).Width(11)
	styleValue   = lipgloss.NewStyle().Foreground(colorAmber)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleError   = lipgloss.NewStyle().Foreground(colorRed)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

func printField(w io.Writer, label, value string) {
	fmt.Fprintln(w, "  "+styleLabel.Render(label)+styleValue.Render(value))
}

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printFailure(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

// formatProps renders a property map as "k=v" pairs in key order.
func formatProps(props map[string]string) string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + props[k]
	}
	return strings.Join(parts, " ")
}
