package theme

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ApplyColorProfile picks the color profile for lipgloss and markdown
// output. NO_COLOR or noColor forces plain text; otherwise the terminal is
// probed and TERM/COLORTERM may raise the result.
func ApplyColorProfile(noColor bool) termenv.Profile {
	profile := detectProfile(noColor)
	lipgloss.SetColorProfile(profile)
	return profile
}

func detectProfile(noColor bool) termenv.Profile {
	if noColor || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return termenv.Ascii
	}

	profile := termenv.ColorProfile()
	if profile == termenv.Ascii {
		// Not a terminal.
		return profile
	}
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		profile = termenv.TrueColor
	case strings.Contains(term, "256color") && profile == termenv.ANSI:
		profile = termenv.ANSI256
	}
	return profile
}
