// Package input provides text input components for the TUI.
package input

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/plancanvas/internal/adapters/driving/tui/styles"
)

// PageInput is the go-to-page prompt.
type PageInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	total     int
}

// NewPageInput creates an unfocused page prompt.
func NewPageInput(s *styles.Styles) *PageInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = "page"
	ti.CharLimit = 6
	ti.Width = 8
	ti.Validate = func(v string) error {
		for _, r := range v {
			if (r < '0' || r > '9') && r != '.' && r != '-' {
				return fmt.Errorf("not a number: %q", v)
			}
		}
		return nil
	}

	return &PageInput{
		textinput: ti,
		styles:    s,
	}
}

// Init initialises the page input.
func (p *PageInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages.
func (p *PageInput) Update(msg tea.Msg) (*PageInput, tea.Cmd) {
	var cmd tea.Cmd
	p.textinput, cmd = p.textinput.Update(msg)
	return p, cmd
}

// View renders the prompt.
func (p *PageInput) View() string {
	label := p.styles.Title.Render("Go to page: ")
	field := p.textinput.View()
	hint := ""
	if p.total > 0 {
		hint = p.styles.Muted.Render(fmt.Sprintf(" of %d", p.total))
	}
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field, hint)
}

// Open focuses the prompt with an empty value.
func (p *PageInput) Open(total int) tea.Cmd {
	p.total = total
	p.textinput.Reset()
	return p.textinput.Focus()
}

// Close blurs the prompt and clears it.
func (p *PageInput) Close() {
	p.textinput.Blur()
	p.textinput.Reset()
}

// Value returns the current input value.
func (p *PageInput) Value() string {
	return p.textinput.Value()
}

// SetValue sets the input value.
func (p *PageInput) SetValue(value string) {
	p.textinput.SetValue(value)
}

// Focused returns whether the prompt is open.
func (p *PageInput) Focused() bool {
	return p.textinput.Focused()
}
