package aggregate

import (
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// Tone is the color family of a status badge.
type Tone string

const (
	ToneGray   Tone = "gray"
	ToneBlue   Tone = "blue"
	ToneGreen  Tone = "green"
	ToneYellow Tone = "yellow"
	ToneRed    Tone = "red"
)

// Badge is a rendered status label.
type Badge struct {
	Label string
	Tone  Tone
}

func DeliverableBadge(s domain.DeliverableStatus) Badge {
	tone := ToneGray
	switch s {
	case domain.DeliverableInReview:
		tone = ToneBlue
	case domain.DeliverableApproved:
		tone = ToneGreen
	case domain.DeliverableRejected:
		tone = ToneRed
	case domain.DeliverableInCorrection:
		tone = ToneYellow
	}
	return Badge{Label: s.Label(), Tone: tone}
}

func ProjectBadge(s domain.ProjectStatus) Badge {
	tone := ToneGray
	switch s {
	case domain.ProjectCompleted:
		tone = ToneGreen
	case domain.ProjectInProgress:
		tone = ToneBlue
	case domain.ProjectPaused:
		tone = ToneYellow
	}
	return Badge{Label: strings.Replace(string(s), "_", " ", 1), Tone: tone}
}

func TaskStatusBadge(s domain.TaskStatus) Badge {
	switch s {
	case domain.TaskCompleted:
		return Badge{Label: "Completada", Tone: ToneGreen}
	case domain.TaskInProgress:
		return Badge{Label: "En progreso", Tone: ToneBlue}
	default:
		return Badge{Label: "Pendiente", Tone: ToneGray}
	}
}

func PriorityBadge(p domain.TaskPriority) Badge {
	switch p {
	case domain.PriorityHigh:
		return Badge{Label: "Alta", Tone: ToneRed}
	case domain.PriorityMedium:
		return Badge{Label: "Media", Tone: ToneYellow}
	default:
		return Badge{Label: "Baja", Tone: ToneBlue}
	}
}

func InvitationBadge(s domain.InvitationStatus) Badge {
	switch s {
	case domain.InvitationSent:
		return Badge{Label: "Enviada", Tone: ToneBlue}
	case domain.InvitationAccepted:
		return Badge{Label: "Aceptada", Tone: ToneGreen}
	case domain.InvitationCancelled:
		return Badge{Label: "Cancelada", Tone: ToneRed}
	case domain.InvitationExpired:
		return Badge{Label: "Expirada", Tone: ToneYellow}
	default:
		return Badge{Label: "Pendiente", Tone: ToneGray}
	}
}
