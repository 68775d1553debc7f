// Package theme activates the base Tk theme and configures the semantic
// widget styles used by the annotator window.
package theme

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Palette defines core semantic colors used across widgets.
const (
	ColorBg        = "#f7f9fb" // app background
	ColorSurface   = "#ffffff" // panels, cards
	ColorPrimary   = "#2563eb" // buttons, accents
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorDarkBg    = "#0f172a"
	ColorDarkText  = "#f1f5f9"
	ColorDarkPanel = "#1e293b"
)

// style names used with Style("primary.TButton") etc.
const (
	StyleToolButton    = "tool.TButton"
	StylePrimaryButton = "primary.TButton"
	StyleDangerButton  = "danger.TButton"
	StyleStatusLabel   = "status.TLabel"
)

// internal flag for current mode
var darkMode bool

// InitStyles sets the mode and applies styles unconditionally.
func InitStyles(dark bool) {
	darkMode = dark
	applyStyles(darkMode)
}

// SetDark switches dark mode and reapplies styles when the mode changed.
// Returns the new mode value.
func SetDark(dark bool) bool {
	if dark == darkMode {
		return darkMode
	}
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func pick(dark bool, light, darkVal string) string {
	if dark {
		return darkVal
	}
	return light
}

func applyStyles(dark bool) {
	_ = ActivateTheme("azure light") // baseline metrics
	App.Configure(Background(pick(dark, ColorBg, ColorDarkBg)))

	StyleConfigure(StyleToolButton,
		Padding("4p 2p"),
	)
	StyleConfigure(StylePrimaryButton,
		Background(pick(dark, ColorPrimary, "#3b82f6")),
		Foreground("white"),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleDangerButton,
		Background(pick(dark, ColorDanger, "#ef4444")),
		Foreground("white"),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("ridge"),
	)
	StyleConfigure(StyleStatusLabel,
		Foreground(pick(dark, ColorText, ColorDarkText)),
		Background(pick(dark, ColorSurface, ColorDarkPanel)),
		Padding("4p 2p"),
		Borderwidth(1),
		Relief("groove"),
	)
}
