package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// TerranovaTheme brands the app with the indigo palette of the
// reference dashboard.
type TerranovaTheme struct{}

var _ fyne.Theme = (*TerranovaTheme)(nil)

func (t *TerranovaTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF} // indigo-600
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0x60}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *TerranovaTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *TerranovaTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *TerranovaTheme) Size(name fyne.ThemeSizeName) float32 {
	return theme.DefaultTheme().Size(name)
}
