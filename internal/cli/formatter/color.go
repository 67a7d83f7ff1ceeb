package formatter

import (
	"fmt"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/toast"
	"github.com/charmbracelet/lipgloss"
)

// Slate and brand palette.
var (
	ColorGreen  = lipgloss.Color("#10b981")
	ColorYellow = lipgloss.Color("#f59e0b")
	ColorRed    = lipgloss.Color("#ef4444")
	ColorBlue   = lipgloss.Color("#3b82f6")
	ColorPurple = lipgloss.Color("#8b5cf6")
	ColorDim    = lipgloss.Color("#94a3b8")
	ColorFg     = lipgloss.Color("#e2e8f0")
	ColorHeader = lipgloss.Color("#6366f1")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// ToneStyle maps a badge tone onto its color.
func ToneStyle(t aggregate.Tone) lipgloss.Style {
	switch t {
	case aggregate.ToneGreen:
		return StyleGreen
	case aggregate.ToneYellow:
		return StyleYellow
	case aggregate.ToneRed:
		return StyleRed
	case aggregate.ToneBlue:
		return StyleBlue
	default:
		return StyleDim
	}
}

// RenderBadge renders a status badge as a colored "● Label".
func RenderBadge(b aggregate.Badge) string {
	return ToneStyle(b.Tone).Render("● " + b.Label)
}

// Toast renders a toast as one line: icon, title and message.
func Toast(t toast.Toast) string {
	var icon string
	var style lipgloss.Style
	switch t.Kind {
	case toast.KindSuccess:
		icon, style = "✔", StyleGreen
	case toast.KindError:
		icon, style = "✖", StyleRed
	case toast.KindWarning:
		icon, style = "▲", StyleYellow
	default:
		icon, style = "ℹ", StyleBlue
	}
	line := style.Render(icon+" "+t.Title)
	if t.Message != "" {
		line += " " + Dim(t.Message)
	}
	return line
}

// Header renders a section header with an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
