package domain

import (
	"strings"
	"time"
)

const DefaultDeliverableVersion = "1.0"

// Deliverable is a versioned artifact submitted against a task and subject to
// client approval.
type Deliverable struct {
	ID             string
	TaskID         string
	Name           string
	Description    *string
	Type           DeliverableType
	Version        string
	FileURL        *string
	FileName       *string
	FileSize       *int64
	Status         DeliverableStatus
	DueDate        *time.Time
	ApprovedAt     *time.Time
	ClientComments *string
	ApprovedBy     *string
	CreatedBy      *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Populated by joined reads only.
	TaskName     string
	ProjectName  string
	CompanyName  string
	CreatorName  string
	ApproverName string
}

// DeliverableVersion is one entry of a deliverable's append-only upload history.
type DeliverableVersion struct {
	ID            string
	DeliverableID string
	Version       string
	FileURL       string
	FileName      string
	FileSize      int64
	Notes         string
	UploadedBy    *string
	CreatedAt     time.Time

	UploaderName string
}

// Record exposes the deliverable as the key-value shape the validation schemas use.
func (d *Deliverable) Record() map[string]any {
	return map[string]any{
		"nombre":          d.Name,
		"tipo_entregable": string(d.Type),
		"descripcion":     StrOrEmpty(d.Description),
	}
}

// HasFile reports whether file metadata has been attached.
func (d *Deliverable) HasFile() bool { return d.FileURL != nil && *d.FileURL != "" }

// IsTerminal reports whether the approval workflow has finished.
func (d *Deliverable) IsTerminal() bool {
	return d.Status == DeliverableApproved || d.Status == DeliverableRejected
}

// MarkForReview moves a pending deliverable into review. Only non-client roles
// may submit work for review.
func (d *Deliverable) MarkForReview(actor Role, now time.Time) error {
	if !actor.CanManageDeliverables() {
		return Forbidden("Solo el equipo puede enviar entregables a revisión")
	}
	if d.Status != DeliverablePending {
		return transitionError(d.Status, DeliverableInReview)
	}
	d.Status = DeliverableInReview
	d.UpdatedAt = now
	return nil
}

// Approve accepts a deliverable under review. Comments are optional.
func (d *Deliverable) Approve(actor *User, comments string, now time.Time) error {
	if actor == nil || !actor.Role.CanApproveDeliverables() {
		return Forbidden("Solo el cliente puede aprobar entregables")
	}
	if d.Status != DeliverableInReview {
		return transitionError(d.Status, DeliverableApproved)
	}
	d.Status = DeliverableApproved
	d.ClientComments = StrPtr(comments)
	d.ApprovedBy = &actor.ID
	approvedAt := now
	d.ApprovedAt = &approvedAt
	d.UpdatedAt = now
	return nil
}

// Reject refuses a deliverable under review. A rejection reason is required;
// without one the deliverable is left untouched.
func (d *Deliverable) Reject(actor *User, comments string, now time.Time) error {
	if actor == nil || !actor.Role.CanApproveDeliverables() {
		return Forbidden("Solo el cliente puede rechazar entregables")
	}
	if strings.TrimSpace(comments) == "" {
		return Invalid("comentarios_cliente", "Debes proporcionar comentarios al rechazar un entregable")
	}
	if d.Status != DeliverableInReview {
		return transitionError(d.Status, DeliverableRejected)
	}
	d.Status = DeliverableRejected
	d.ClientComments = StrPtr(comments)
	d.ApprovedBy = &actor.ID
	d.UpdatedAt = now
	return nil
}

func transitionError(from, to DeliverableStatus) *Error {
	return Invalid("estado", "Transición no permitida: "+from.Label()+" → "+to.Label())
}

// Label returns the Spanish display label for the status.
func (s DeliverableStatus) Label() string {
	switch s {
	case DeliverablePending:
		return "Pendiente"
	case DeliverableInReview:
		return "En Revisión"
	case DeliverableApproved:
		return "Aprobado"
	case DeliverableRejected:
		return "Rechazado"
	case DeliverableInCorrection:
		return "En Corrección"
	default:
		return string(s)
	}
}

// Label returns the Spanish display label for the type.
func (t DeliverableType) Label() string {
	switch t {
	case DeliverableDocument:
		return "Documento"
	case DeliverableCode:
		return "Código"
	case DeliverableDesign:
		return "Diseño"
	case DeliverableManual:
		return "Manual"
	case DeliverableOther:
		return "Otro"
	default:
		return string(t)
	}
}
