package formatter

import (
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// FormatUserList renders the team with roles and rates.
func FormatUserList(users []*domain.User) string {
	headers := []string{"ID", "NOMBRE", "EMAIL", "ROL", "EMPRESA", "COSTO/H", "TARIFA/H"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			TruncID(u.ID),
			Bold(u.Name),
			u.Email,
			StylePurple.Render(u.Role.Label()),
			OrDash(u.CompanyName),
			Money(u.CostRate),
			Money(u.BillableRate),
		})
	}
	return RenderBox("Equipo", RenderTable(headers, rows))
}

// FormatInvitationList renders open invitations with their effective status.
func FormatInvitationList(invs []*domain.Invitation, now time.Time) string {
	headers := []string{"ID", "EMAIL", "ROL", "ESTADO", "INVITADO"}
	rows := make([][]string, 0, len(invs))
	for _, inv := range invs {
		rows = append(rows, []string{
			TruncID(inv.ID),
			inv.Email,
			inv.Role.Label(),
			RenderBadge(aggregate.InvitationBadge(inv.Status)),
			Ago(inv.InvitedAt, now),
		})
	}
	return RenderBox("Invitaciones", RenderTable(headers, rows))
}

// FormatNotification renders one notification line; unread ones are marked.
func FormatNotification(n *domain.Notification, now time.Time) string {
	marker := Dim("  ")
	title := n.Title
	if !n.Read {
		marker = StyleBlue.Render("● ")
		title = Bold(title)
	}
	line := marker + title + " " + Dim(Ago(n.CreatedAt, now))
	if n.Message != "" {
		line += "\n  " + n.Message
	}
	return line
}

// FormatInbox renders the notification dropdown: unread counter and the
// most recent notifications.
func FormatInbox(items []*domain.Notification, unread int, now time.Time) string {
	if len(items) == 0 {
		return RenderBox("Notificaciones", Dim("No tienes notificaciones"))
	}
	out := ""
	for i, n := range items {
		if i > 0 {
			out += "\n"
		}
		out += FormatNotification(n, now)
	}
	title := "Notificaciones"
	if unread > 0 {
		title += " (" + printer.Sprintf("%d", unread) + " sin leer)"
	}
	return RenderBox(title, out)
}
