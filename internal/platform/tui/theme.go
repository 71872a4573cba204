package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the lipgloss styles shared by the menus and the album.
type Theme struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Description lipgloss.Style
	Controls    lipgloss.Style
	Memory      lipgloss.Style
	MemoryDim   lipgloss.Style
}

// DefaultTheme returns the default pink theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true),
		Subtitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Memory:      lipgloss.NewStyle().Foreground(lipgloss.Color("218")),
		MemoryDim:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without colors.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Title = lipgloss.NewStyle().Bold(true)
	theme.Subtitle = lipgloss.NewStyle()
	theme.ItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	theme.Memory = lipgloss.NewStyle()
	return theme
}

var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}
