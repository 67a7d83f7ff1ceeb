package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newNotificationCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "notification",
		Aliases: []string{"notif", "inbox"},
		Short:   "Consulta tus notificaciones",
	}
	cmd.AddCommand(
		newNotificationListCmd(app),
		newNotificationReadCmd(app),
		newNotificationWatchCmd(app),
	)
	return cmd
}

func newNotificationListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Muestra las notificaciones recientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			inbox, err := app.Notifications.LoadInbox(ctx, user.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(out(cmd), formatter.FormatInbox(inbox.Items, inbox.Unread, app.now()))
			fmt.Fprintln(out(cmd))
			return nil
		},
	}
}

func newNotificationReadCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "read [notificación]",
		Short: "Marca notificaciones como leídas",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			user, err := app.currentUser(ctx)
			if err != nil {
				return err
			}
			if all {
				n, err := app.Notifications.MarkAllRead(ctx, user.ID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "%d notificación(es) marcadas como leídas\n", n)
				return nil
			}
			if len(args) == 0 {
				return fmt.Errorf("indica una notificación o usa --all")
			}
			items, err := app.Notifications.ListRecent(ctx, user.ID)
			if err != nil {
				return err
			}
			id, err := resolveID("notificación", args[0], items,
				func(n *domain.Notification) string { return n.ID },
				func(n *domain.Notification) string { return n.Title })
			if err != nil {
				return err
			}
			if err := app.Notifications.MarkRead(ctx, id); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "Notificación marcada como leída")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Marca todas como leídas")
	return cmd
}

func newNotificationWatchCmd(app *App) *cobra.Command {
	var (
		duration    time.Duration
		metricsAddr string
	)
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Muestra las notificaciones nuevas en vivo",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := app.currentUser(cmd.Context())
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}
			if metricsAddr != "" && app.Metrics != nil {
				addr, err := serveMetrics(ctx, metricsAddr, app.Metrics)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("Métricas en http://"+addr+"/metrics"))
			}
			if app.Feed != nil {
				go app.Feed.Run(ctx, func(err error) {
					fmt.Fprintln(cmd.ErrOrStderr(), formatter.Dim("feed: "+err.Error()))
				})
			}
			if app.interactive() {
				return app.watchInteractive(ctx, cmd, user)
			}
			return app.watchLines(ctx, cmd, user)
		},
	}
	cmd.Flags().DurationVar(&duration, "for", 0, "Deja de escuchar tras este tiempo")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", app.MetricsAddr, "Sirve métricas Prometheus en esta dirección mientras escucha")
	return cmd
}

func (a *App) watchInteractive(ctx context.Context, cmd *cobra.Command, user *domain.User) error {
	inbox, err := a.Notifications.LoadInbox(ctx, user.ID)
	if err != nil {
		return err
	}
	p := tea.NewProgram(newWatchModel(inbox, a.now),
		tea.WithContext(ctx),
		tea.WithOutput(cmd.OutOrStdout()),
		tea.WithInput(cmd.InOrStdin()),
	)
	sub := a.Notifications.Watch(ctx, user.ID, func(n *domain.Notification) {
		p.Send(notificationMsg{n: n})
	})
	defer sub.Unsubscribe()
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return err
	}
	return nil
}

// watchLines prints one block per notification until ctx ends.
func (a *App) watchLines(ctx context.Context, cmd *cobra.Command, user *domain.User) error {
	var mu sync.Mutex
	w := cmd.OutOrStdout()
	sub := a.Notifications.Watch(ctx, user.ID, func(n *domain.Notification) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(w, formatter.FormatNotification(n, a.now()))
	})
	defer sub.Unsubscribe()
	<-ctx.Done()
	return nil
}
