package tasks

import (
	"errors"
	"net/url"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"myplan/internal/tui/theme"
)

var (
	inputPromptStyle = lipgloss.NewStyle().Foreground(theme.Secondary)
	inputErrorStyle  = lipgloss.NewStyle().Foreground(theme.Danger)
	inputBoxStyle    = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(theme.Primary).Padding(0, 1)
)

// TextInputModel wraps bubbles/textinput with validation.
type TextInputModel struct {
	Input     textinput.Model
	Field     string
	Prompt    string
	Validator func(string) error
	Error     string
	Width     int
}

// TextInputResultMsg is sent when input is confirmed or cancelled.
type TextInputResultMsg struct {
	Field     string
	Value     string
	Cancelled bool
}

// NewTextInput builds a focused input for field. validator may be nil.
func NewTextInput(field, prompt, placeholder string, validator func(string) error) *TextInputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Focus()
	return &TextInputModel{
		Input:     ti,
		Field:     field,
		Prompt:    prompt,
		Validator: validator,
		Width:     60,
	}
}

func (m *TextInputModel) Update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "enter":
			value := strings.TrimSpace(m.Input.Value())
			if m.Validator != nil {
				if err := m.Validator(value); err != nil {
					m.Error = err.Error()
					return nil
				}
			}
			field := m.Field
			return func() tea.Msg { return TextInputResultMsg{Field: field, Value: value} }
		case "esc":
			field := m.Field
			return func() tea.Msg { return TextInputResultMsg{Field: field, Cancelled: true} }
		}
	}

	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	m.Error = ""
	return cmd
}

func (m *TextInputModel) View() string {
	content := inputPromptStyle.Render(m.Prompt+": ") + m.Input.View() + "\n"
	if m.Error != "" {
		content += inputErrorStyle.Render("Error: "+m.Error) + "\n"
	}
	content += theme.ModalHelp.Render("[enter] confirm  [esc] cancel")
	return inputBoxStyle.Width(m.Width).Render(content)
}

func (m *TextInputModel) SetValue(v string) {
	m.Input.SetValue(v)
	m.Input.CursorEnd()
}

// SetWidth sizes the box and the inner input, leaving room for the border,
// padding and prompt.
func (m *TextInputModel) SetWidth(w int) {
	m.Width = w - 4
	m.Input.Width = m.Width - lipgloss.Width(m.Prompt+": ") - 2
}

// ValidateNumber accepts an empty string or a non-negative number.
func ValidateNumber(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.New("not a number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// ValidateCount accepts an empty string or a non-negative integer.
func ValidateCount(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return errors.New("not a whole number")
	}
	if v < 0 {
		return errors.New("must not be negative")
	}
	return nil
}

// ValidateLink accepts an empty string or an http(s) URL.
func ValidateLink(s string) error {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("expected an http(s) link")
	}
	return nil
}
