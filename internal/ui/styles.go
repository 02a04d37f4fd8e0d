package ui

import (
	"io"

	"algobench/internal/plot"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// This file centralizes the lipgloss styles used across the TUI.

var (
	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63")). // Purple-ish
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(11)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true)

	recentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // Cyan/Teal
			PaddingLeft(2)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")). // Green
			Bold(true)

	helpStyle = lipgloss.NewStyle().PaddingLeft(1)

	// Chart layers
	axisStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	curveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))
	pointStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

// layerStyle colours canvas runs by what drew them.
func layerStyle(l plot.Layer, s string) string {
	switch l {
	case plot.LayerAxis:
		return axisStyle.Render(s)
	case plot.LayerCurve:
		return curveStyle.Render(s)
	case plot.LayerPoint:
		return pointStyle.Render(s)
	}
	return s
}

// ConfigureColor picks the lipgloss colour profile for w. noColor forces
// plain ASCII output, which is also what a non-terminal w gets.
func ConfigureColor(w io.Writer, noColor bool) {
	if noColor {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}
	lipgloss.SetColorProfile(termenv.NewOutput(w).EnvColorProfile())
}
