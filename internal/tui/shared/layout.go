package shared

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// WithBottomHints places content vertically at pos in height rows and pins
// hints to the last rows.
func WithBottomHints(content, hints string, height int, pos lipgloss.Position) string {
	content = strings.TrimRight(content, "\n")
	hints = strings.TrimRight(hints, "\n")

	body := height - lipgloss.Height(hints)
	if body <= lipgloss.Height(content) {
		return content + "\n" + hints
	}
	return lipgloss.PlaceVertical(body, pos, content) + "\n" + hints
}

// Overlay centers a modal box in a width×height area.
func Overlay(box string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
