package ui

import "time"

// ThemeChangeRequestMsg is sent when a theme change is requested.
type ThemeChangeRequestMsg struct {
	ThemeName string
}

// ThemeChangedMsg is broadcast to all views when the theme changes.
type ThemeChangedMsg struct {
	ThemeName string
	Styles    Styles
}

// TickMsg is broadcast on every periodic refresh.
type TickMsg time.Time

// LogChangedMsg is broadcast after the time log gained entries, either
// from the input line or from another process writing the file.
type LogChangedMsg struct {
	Err error
}
