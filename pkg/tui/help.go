package tui

import (
	_ "embed"
	"regexp"
	"strings"

	"github.com/charmbracelet/glamour"
)

//go:embed help.md
var helpMarkdown string

func renderHelp(width int) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(width, 20)),
	)
	if err != nil {
		return "help unavailable: " + err.Error()
	}
	content, err := renderer.Render(strings.TrimSpace(helpMarkdown))
	if err != nil {
		return "help unavailable: " + err.Error()
	}
	return stripANSI(content)
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;:]*[A-Za-z~]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}
