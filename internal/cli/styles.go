// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/dirstd

package cli

import "github.com/charmbracelet/lipgloss"

// Palette for text output.
const (
	colorPrimary   = lipgloss.Color("#7C3AED")
	colorMuted     = lipgloss.Color("#6B7280")
	colorSuccess   = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorWarning   = lipgloss.Color("#F59E0B")
	colorHighlight = lipgloss.Color("#3B82F6")
)

var (
	// titleStyle renders standard names and section titles.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	// subtitleStyle renders bucket headers and secondary text.
	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	goodStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	badStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	fairStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	// pathStyle renders record paths and module roots.
	pathStyle = lipgloss.NewStyle().
			Foreground(colorHighlight)
)

// Factor thresholds for colored ratings.
const (
	goodFactor = 0.7
	fairFactor = 0.4
)

// factorStyle picks a style by conformance factor.
func factorStyle(factor float64) lipgloss.Style {
	switch {
	case factor >= goodFactor:
		return goodStyle
	case factor >= fairFactor:
		return fairStyle
	default:
		return badStyle
	}
}
