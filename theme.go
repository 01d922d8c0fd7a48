package main

import "github.com/charmbracelet/lipgloss"

// ---------------------------------------------------------------------------
// Catppuccin Mocha palette — true-color hex values
// https://catppuccin.com/palette
// ---------------------------------------------------------------------------

const (
	colorPink     lipgloss.Color = "#f5c2e7"
	colorMauve    lipgloss.Color = "#cba6f7"
	colorRed      lipgloss.Color = "#f38ba8"
	colorPeach    lipgloss.Color = "#fab387"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorSky      lipgloss.Color = "#89dceb"
	colorSapphire lipgloss.Color = "#74c7ec"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorLavender lipgloss.Color = "#b4befe"

	colorText     lipgloss.Color = "#cdd6f4"
	colorSubtext1 lipgloss.Color = "#bac2de"
	colorSubtext0 lipgloss.Color = "#a6adc8"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
	colorSurface0 lipgloss.Color = "#313244"
	colorMantle   lipgloss.Color = "#181825"
)

// ---------------------------------------------------------------------------
// Semantic color aliases
// ---------------------------------------------------------------------------

const (
	colorAccent  = colorPink
	colorBrand   = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
)

// cardAccentColors returns the accent colors cycled across the wall. A card
// keeps its color as it moves: color follows the card, not the slot, which is
// what makes a shuffle readable.
func cardAccentColors() []lipgloss.Color {
	return []lipgloss.Color{
		colorGreen, colorTeal, colorPeach, colorBlue,
		colorMauve, colorPink, colorSapphire, colorLavender,
		colorYellow, colorRed, colorSky,
	}
}
