// Package styles holds the blueprint palette and the lipgloss styles the
// canvas TUI renders with.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is the colour palette of the canvas.
type Theme struct {
	Accent  lipgloss.Color // selection and titles
	Ink     lipgloss.Color // regular text
	Paper   lipgloss.Color // status bar background
	Pencil  lipgloss.Color // hints and masked annotations
	Grid    lipgloss.Color // page outline
	Alert   lipgloss.Color // errors
	Caution lipgloss.Color // confirmations and isolation
}

// DefaultTheme returns the blueprint palette.
func DefaultTheme() *Theme {
	return &Theme{
		Accent:  lipgloss.Color("#3B82F6"),
		Ink:     lipgloss.Color("#E2E8F0"),
		Paper:   lipgloss.Color("#0F172A"),
		Pencil:  lipgloss.Color("#64748B"),
		Grid:    lipgloss.Color("#334155"),
		Alert:   lipgloss.Color("#EF4444"),
		Caution: lipgloss.Color("#F59E0B"),
	}
}

// Styles are the rendered styles derived from a Theme.
type Styles struct {
	theme *Theme

	Title     lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	StatusBar lipgloss.Style

	// Page draws the sheet outline behind annotations.
	Page lipgloss.Style

	// Masked draws annotations outside an isolated subtree.
	Masked lipgloss.Style

	// Isolated is the badge shown while isolation is active.
	Isolated lipgloss.Style
}

// NewStyles derives styles from theme, or from DefaultTheme when nil.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}

	return &Styles{
		theme:     theme,
		Title:     fg(theme.Accent).Bold(true),
		Normal:    fg(theme.Ink),
		Muted:     fg(theme.Pencil),
		Selected:  fg(theme.Ink).Background(theme.Accent).Bold(true),
		Error:     fg(theme.Alert),
		Warning:   fg(theme.Caution),
		StatusBar: fg(theme.Pencil).Background(theme.Paper).Padding(0, 1),
		Page:      fg(theme.Grid),
		Masked:    fg(theme.Pencil).Faint(true),
		Isolated:  fg(theme.Paper).Background(theme.Caution).Bold(true).Padding(0, 1),
	}
}

// DefaultStyles returns styles for the blueprint palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Annotation returns the outline style for an annotation colour.
// Selected annotations are drawn bold on the accent colour.
func (s *Styles) Annotation(color string, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if selected {
		style = style.Bold(true).Background(s.theme.Accent)
	}
	return style
}

// Theme returns the palette these styles were built from.
func (s *Styles) Theme() *Theme {
	return s.theme
}
