package ui

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconSuccess  = "✓"
	IconFailure  = "✗"
	IconWarning  = "⚠"
	IconSkipped  = "–"
)

// Text fragments
const (
	ListSeparator       = ", "
	LogLinePrefixFormat = "[%d/%d] %s "
)

// Layout sizing
const (
	WindowWidth  float32 = 800
	WindowHeight float32 = 600

	LogoSize       float32 = 32
	SettingsWidth  float32 = 420
	SettingsHeight float32 = 260
)
