package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// Palette
var (
	colorAccent        = color.NRGBA{R: 0x0d, G: 0x6e, B: 0xfd, A: 0xff}
	colorSuccess       = color.NRGBA{R: 0x19, G: 0x87, B: 0x54, A: 0xff}
	colorError         = color.NRGBA{R: 0xdc, G: 0x35, B: 0x45, A: 0xff}
	colorWarning       = color.NRGBA{R: 0xff, G: 0xc1, B: 0x07, A: 0xff}
	colorLightBG       = color.NRGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}
	colorLightFG       = color.NRGBA{R: 0x21, G: 0x25, B: 0x29, A: 0xff}
	colorDarkBG        = color.NRGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}
	colorDarkFG        = color.NRGBA{R: 0xd4, G: 0xd4, B: 0xd4, A: 0xff}
	colorSecondaryText = color.NRGBA{R: 0x6c, G: 0x75, B: 0x7d, A: 0xff}
)

// CompactTheme is the default theme with tighter spacing and the app palette
type CompactTheme struct{}

// NewCompactTheme creates a new compact theme
func NewCompactTheme() fyne.Theme {
	return &CompactTheme{}
}

// Color returns theme colors
func (t *CompactTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return colorAccent
	case theme.ColorNameSuccess:
		return colorSuccess
	case theme.ColorNameError:
		return colorError
	case theme.ColorNameWarning:
		return colorWarning
	case theme.ColorNamePlaceHolder:
		return colorSecondaryText
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return colorDarkBG
		}
		return colorLightBG
	case theme.ColorNameForeground:
		if variant == theme.VariantDark {
			return colorDarkFG
		}
		return colorLightFG
	}

	return theme.DefaultTheme().Color(name, variant)
}

// Font returns theme fonts
func (t *CompactTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *CompactTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes with compact adjustments
func (t *CompactTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameLineSpacing:
		return 2
	case theme.SizeNameScrollBar:
		return 12
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 16
	case theme.SizeNameSubHeadingText:
		return 14
	case theme.SizeNameCaptionText:
		return 10
	case theme.SizeNameInputRadius:
		return 3
	case theme.SizeNameSelectionRadius:
		return 2
	}

	return theme.DefaultTheme().Size(name)
}
