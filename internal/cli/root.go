package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/auth"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/feed"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/service"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/toast"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// App holds everything the commands need.
type App struct {
	*service.Services
	Auth    *auth.Service
	Toasts  *toast.Dispatcher
	Metrics prometheus.Gatherer
	// MetricsFile receives a text snapshot of Metrics when the process
	// exits. MetricsAddr is where `notification watch` serves /metrics.
	MetricsFile string
	MetricsAddr string
	// Feed polls the notifications table for rows written by other
	// processes. It is optional.
	Feed     *feed.Source
	Prompter Prompter
	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	Now           func() time.Time
}

func (a *App) interactive() bool { return a.IsInteractive != nil && a.IsInteractive() }

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "datenova" command. Toasts published
// while a command runs are printed to its error stream.
func NewRootCmd(app *App) *cobra.Command {
	var unsubscribe func()
	root := &cobra.Command{
		Use:           "datenova",
		Short:         "Gestión de proyectos, horas y entregables",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if app.Toasts == nil {
				return
			}
			w := cmd.ErrOrStderr()
			unsubscribe = app.Toasts.Subscribe(func(t toast.Toast) {
				fmt.Fprintln(w, formatter.Toast(t))
			})
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if unsubscribe != nil {
				unsubscribe()
			}
		},
	}

	root.AddCommand(
		newAuthCmd(app),
		newCompanyCmd(app),
		newProjectCmd(app),
		newTaskCmd(app),
		newTimeCmd(app),
		newDeliverableCmd(app),
		newUserCmd(app),
		newInviteCmd(app),
		newNotificationCmd(app),
		newDashboardCmd(app),
	)
	return root
}

// currentUser resolves the signed-in, activated user.
func (a *App) currentUser(ctx context.Context) (*domain.User, error) {
	user, needsActivation, err := a.Session.Current(ctx)
	switch {
	case errors.Is(err, service.ErrNotSignedIn):
		return nil, errors.New("no has iniciado sesión: ejecuta `datenova auth login`")
	case err != nil:
		return nil, err
	case needsActivation:
		return nil, errors.New("tu cuenta no está activada: ejecuta `datenova auth activate`")
	}
	return user, nil
}

func out(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }

// resolveID matches input against items: exact ID, then case-insensitive
// name, then unique ID prefix.
func resolveID[T any](entity, input string, items []T, id, name func(T) string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s: falta el identificador", entity)
	}
	for _, it := range items {
		if id(it) == input {
			return input, nil
		}
	}
	for _, it := range items {
		if strings.EqualFold(name(it), input) {
			return id(it), nil
		}
	}
	var matches []string
	for _, it := range items {
		if strings.HasPrefix(id(it), input) {
			matches = append(matches, id(it))
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s no encontrado: %q", entity, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("el prefijo %q de %s es ambiguo (%d coincidencias)", input, entity, len(matches))
	}
}

func parseDate(flag, value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("fecha inválida en --%s %q: usa AAAA-MM-DD", flag, value)
	}
	return &t, nil
}
