// Package color names the terminal colors used by the CLI.
package color

import "github.com/charmbracelet/lipgloss"

// New initializes a lipgloss.Color from a string value.
func New(value string) lipgloss.Color {
	return lipgloss.Color(value)
}

// ANSI palette.
var (
	Red    = New("1")
	Green  = New("2")
	Yellow = New("3")
	Blue   = New("4")
	Purple = New("5")
	Cyan   = New("6")

	HiRed    = New("9")
	HiBlue   = New("12")
	HiPurple = New("13")

	Gray = New("#808080")
)

// ForHeight picks the color a quality label with the given vertical
// resolution is printed in. Unknown heights are gray.
func ForHeight(height int) lipgloss.Color {
	switch {
	case height >= 1080:
		return Green
	case height >= 720:
		return Cyan
	case height >= 480:
		return Yellow
	case height > 0:
		return Red
	default:
		return Gray
	}
}
