package cli

import (
	"errors"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ActivationInput collects the activation form fields.
type ActivationInput struct {
	Name     string
	Password string
	Confirm  string
}

// Prompter asks the user for values the flags did not provide.
type Prompter interface {
	Password(title string) (string, error)
	Activation(in *ActivationInput) error
	Confirm(title string) (bool, error)
}

var errNoPrompt = errors.New("entrada interactiva no disponible: usa los flags del comando")

// datenovaHuhTheme styles huh forms with the formatter palette.
func datenovaHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// HuhPrompter renders prompts as huh forms on the terminal.
type HuhPrompter struct{}

func (HuhPrompter) Password(title string) (string, error) {
	var value string
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				EchoMode(huh.EchoModePassword).
				Value(&value),
		),
	).WithTheme(datenovaHuhTheme()).WithShowHelp(false).Run()
	return value, err
}

func (HuhPrompter) Activation(in *ActivationInput) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Nombre completo").
				Placeholder("Juan Pérez").
				Value(&in.Name),
			huh.NewInput().
				Title("Contraseña").
				Description("Mínimo 8 caracteres").
				EchoMode(huh.EchoModePassword).
				Value(&in.Password),
			huh.NewInput().
				Title("Confirmar contraseña").
				EchoMode(huh.EchoModePassword).
				Value(&in.Confirm),
		).Title("Activa tu cuenta"),
	).WithTheme(datenovaHuhTheme()).WithShowHelp(false).Run()
}

func (HuhPrompter) Confirm(title string) (bool, error) {
	var ok bool
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Sí").
				Negative("No").
				Value(&ok),
		),
	).WithTheme(datenovaHuhTheme()).WithShowHelp(false).Run()
	return ok, err
}

// confirm asks before destructive commands. --yes or a non-interactive
// session skips the question.
func (a *App) confirm(title string, yes bool) (bool, error) {
	if yes || !a.interactive() || a.Prompter == nil {
		return true, nil
	}
	return a.Prompter.Confirm(title)
}
