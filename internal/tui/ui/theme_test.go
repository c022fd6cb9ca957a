package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThemeProvider_Default(t *testing.T) {
	tp := NewThemeProvider("")

	require.NotNil(t, tp)
	assert.Equal(t, DefaultTheme, tp.CurrentName())
}

func TestNewThemeProvider_WithTheme(t *testing.T) {
	tp := NewThemeProvider("nord")

	assert.Equal(t, "nord", tp.CurrentName())
}

func TestNewThemeProvider_InvalidTheme(t *testing.T) {
	tp := NewThemeProvider("nonexistent-theme-xyz")

	assert.Equal(t, DefaultTheme, tp.CurrentName())
}

func TestThemeProvider_SetTheme(t *testing.T) {
	tp := NewThemeProvider("")

	assert.True(t, tp.SetTheme("nord"))
	assert.Equal(t, "nord", tp.CurrentName())

	assert.False(t, tp.SetTheme("nonexistent-theme-xyz"))
	assert.Equal(t, "nord", tp.CurrentName())
}

func TestThemeProvider_NextTheme(t *testing.T) {
	tp := NewThemeProvider(DefaultTheme)

	next := tp.NextTheme()

	assert.Equal(t, next, tp.CurrentName())
	assert.True(t, tp.HasTheme(next))
}

func TestThemeProvider_AvailableThemes(t *testing.T) {
	tp := NewThemeProvider("")

	themes := tp.AvailableThemes()

	require.NotEmpty(t, themes)
	assert.IsNonDecreasing(t, themes)
	assert.Contains(t, themes, DefaultTheme)
}

func TestThemeProvider_HasTheme(t *testing.T) {
	tp := NewThemeProvider("")

	assert.True(t, tp.HasTheme(DefaultTheme))
	assert.False(t, tp.HasTheme("nonexistent-theme-xyz"))
	assert.False(t, tp.HasTheme(""))
}

func TestThemeProvider_Styles(t *testing.T) {
	tp := NewThemeProvider(DefaultTheme)

	styles := tp.Styles()

	assert.Equal(t, 1, styles.App.GetPaddingTop())
}
