package cli

import (
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/cli/formatter"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/service"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// notificationMsg carries a notification pushed by the change feed.
type notificationMsg struct{ n *domain.Notification }

// watchModel is the live notification inbox.
type watchModel struct {
	spinner  spinner.Model
	inbox    *service.Inbox
	now      func() time.Time
	width    int
	quitting bool
}

func newWatchModel(inbox *service.Inbox, now func() time.Time) watchModel {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	if inbox == nil {
		inbox = &service.Inbox{}
	}
	return watchModel{spinner: sp, inbox: inbox, now: now}
}

func (m watchModel) Init() tea.Cmd { return m.spinner.Tick }

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case notificationMsg:
		m.inbox.Add(msg.n)
		if len(m.inbox.Items) > service.InboxSize {
			m.inbox.Items = m.inbox.Items[:service.InboxSize]
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m watchModel) View() string {
	if m.quitting {
		return ""
	}
	header := m.spinner.View() + " " + formatter.Dim("Escuchando notificaciones… (q para salir)")
	return header + "\n\n" + formatter.FormatInbox(m.inbox.Items, m.inbox.Unread, m.now()) + "\n"
}
