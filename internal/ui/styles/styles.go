// Package styles provides the lipgloss styles used for terminal output.
//
// Styling is applied only when the destination is a terminal; a [Styler]
// for a pipe or file returns its input unchanged so that scripted output
// stays plain.
package styles

import (
	"io"
	"os"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-isatty"
)

// Palette colors
var (
	Primary = lipgloss.Color("62")  // cyan/teal
	Success = lipgloss.Color("82")  // green
	Error   = lipgloss.Color("196") // red
	Warning = lipgloss.Color("214") // orange
	Muted   = lipgloss.Color("240") // dark gray
)

// Common styles
var (
	TitleStyle   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error).Bold(true)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
)

// Styler renders text with styles when enabled.
type Styler struct {
	enabled bool
}

// For returns a Styler enabled only when w is a terminal.
func For(w io.Writer) Styler {
	f, ok := w.(*os.File)
	if !ok {
		return Styler{}
	}
	return Styler{enabled: isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())}
}

// Plain returns a Styler that never styles.
func Plain() Styler {
	return Styler{}
}

// Enabled reports whether the styler emits escape sequences.
func (s Styler) Enabled() bool {
	return s.enabled
}

func (s Styler) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s Styler) Title(text string) string   { return s.render(TitleStyle, text) }
func (s Styler) Success(text string) string { return s.render(SuccessStyle, text) }
func (s Styler) Error(text string) string   { return s.render(ErrorStyle, text) }
func (s Styler) Warning(text string) string { return s.render(WarningStyle, text) }
func (s Styler) Muted(text string) string   { return s.render(MutedStyle, text) }
