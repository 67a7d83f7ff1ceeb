package service

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/aggregate"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/storage"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/validation"
	"github.com/google/uuid"
)

type DeliverableService struct {
	*base
	notifications *NotificationService
}

func canManageDeliverables(actor *domain.User) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.Role.CanManageDeliverables() {
		return domain.Forbidden("Solo el equipo puede gestionar entregables")
	}
	return nil
}

// List returns deliverables newest first, joined with task, project, company
// and people names.
func (s *DeliverableService) List(ctx context.Context, f aggregate.DeliverableFilter) (items []*domain.Deliverable, err error) {
	uc := s.begin("list-deliverables", map[string]any{"status": string(f.Status), "task_id": f.TaskID})
	defer func() { s.end(ctx, uc, err) }()
	return s.repos.Deliverables.List(ctx, repository.DeliverableQuery{Status: f.Status, TaskID: f.TaskID})
}

func (s *DeliverableService) Get(ctx context.Context, id string) (*domain.Deliverable, error) {
	return s.repos.Deliverables.GetByID(ctx, id)
}

// Create registers a pending deliverable, uploads its file to
// <id>/<filename> and stores the file reference on the record.
//
// In transactional mode the insert and the file patch share a transaction
// and an uploaded file is removed again if the patch fails. In sequential
// mode each step stands alone, so a failed upload leaves the record without
// a file. On failure d is restored to its input state.
func (s *DeliverableService) Create(ctx context.Context, actor *domain.User, d *domain.Deliverable, file *Upload) (err error) {
	uc := s.begin("create-deliverable", map[string]any{"task_id": d.TaskID, "type": string(d.Type)}).
		toast("Entregable creado", "El entregable se ha registrado correctamente")
	defer func() { s.end(ctx, uc, err) }()

	draft := *d
	defer func() {
		if err != nil {
			*d = draft
		}
	}()

	if err = canManageDeliverables(actor); err != nil {
		return err
	}
	if err = validation.Validate(d.Record(), validation.Entregable()).Err(); err != nil {
		return err
	}
	if !domain.ValidDeliverableTypes[d.Type] {
		return domain.Invalid("tipo_entregable", "Tipo de entregable inválido")
	}
	if file.empty() {
		return domain.Invalid("archivo", "Debes seleccionar un archivo para subir")
	}

	now := s.clock()
	d.ID = uuid.New().String()
	d.Status = domain.DeliverablePending
	if strings.TrimSpace(d.Version) == "" {
		d.Version = domain.DefaultDeliverableVersion
	}
	creator := actor.ID
	d.CreatedBy = &creator
	d.CreatedAt = now
	d.UpdatedAt = now
	uc.fields["deliverable_id"] = d.ID

	fileName := path.Base(file.Name)
	objectPath := storage.DeliverablePath(d.ID, fileName)

	return s.write(ctx, func(ctx context.Context, repos *repository.Set) error {
		if err := repos.Deliverables.Create(ctx, d); err != nil {
			return err
		}
		if err := s.store.Put(ctx, storage.DeliverablesBucket, objectPath, file.Data); err != nil {
			return fmt.Errorf("uploading file: %w", err)
		}
		url := s.store.PublicURL(storage.DeliverablesBucket, objectPath)
		size := file.size()
		d.FileURL = &url
		d.FileName = &fileName
		d.FileSize = &size
		if err := repos.Deliverables.Update(ctx, d); err != nil {
			if s.transactional() {
				_ = s.store.Remove(ctx, storage.DeliverablesBucket, objectPath)
			}
			return fmt.Errorf("saving file reference: %w", err)
		}
		return nil
	})
}

// MarkForReview moves a pending deliverable into client review.
func (s *DeliverableService) MarkForReview(ctx context.Context, actor *domain.User, id string) (err error) {
	uc := s.begin("review-deliverable", map[string]any{"deliverable_id": id}).
		toast("Enviado a revisión", "El cliente ha sido notificado para revisar el entregable")
	defer func() { s.end(ctx, uc, err) }()

	if err = requireActor(actor); err != nil {
		return err
	}
	d, err := s.repos.Deliverables.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err = d.MarkForReview(actor.Role, s.clock()); err != nil {
		return err
	}
	return s.repos.Deliverables.Update(ctx, d)
}

// Approve accepts a deliverable under review and notifies its creator.
func (s *DeliverableService) Approve(ctx context.Context, actor *domain.User, id, comments string) (err error) {
	uc := s.begin("approve-deliverable", map[string]any{"deliverable_id": id}).
		toast("Entregable aprobado", "El entregable ha sido marcado como aprobado")
	defer func() { s.end(ctx, uc, err) }()

	return s.decide(ctx, actor, id, func(d *domain.Deliverable) (*domain.Notification, error) {
		if err := d.Approve(actor, comments, s.clock()); err != nil {
			return nil, err
		}
		return &domain.Notification{
			Title:   "Entregable aprobado",
			Message: fmt.Sprintf("El cliente aprobó «%s»", d.Name),
			Type:    domain.NotifyStatusChange,
		}, nil
	})
}

// Reject refuses a deliverable under review. Comments are required.
func (s *DeliverableService) Reject(ctx context.Context, actor *domain.User, id, comments string) (err error) {
	uc := s.begin("reject-deliverable", map[string]any{"deliverable_id": id}).
		toast("Entregable rechazado", "El equipo ha sido notificado de las correcciones necesarias")
	defer func() { s.end(ctx, uc, err) }()

	return s.decide(ctx, actor, id, func(d *domain.Deliverable) (*domain.Notification, error) {
		if err := d.Reject(actor, comments, s.clock()); err != nil {
			return nil, err
		}
		return &domain.Notification{
			Title:   "Entregable rechazado",
			Message: fmt.Sprintf("El cliente rechazó «%s»: %s", d.Name, strings.TrimSpace(comments)),
			Type:    domain.NotifyStatusChange,
		}, nil
	})
}

func (s *DeliverableService) decide(ctx context.Context, actor *domain.User, id string, apply func(*domain.Deliverable) (*domain.Notification, error)) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	var created *domain.Notification
	err := s.write(ctx, func(ctx context.Context, repos *repository.Set) error {
		d, err := repos.Deliverables.GetByID(ctx, id)
		if err != nil {
			return err
		}
		n, err := apply(d)
		if err != nil {
			return err
		}
		if err := repos.Deliverables.Update(ctx, d); err != nil {
			return err
		}
		if d.CreatedBy == nil || *d.CreatedBy == actor.ID {
			return nil
		}
		n.UserID = *d.CreatedBy
		n.Link = domain.StrPtr("/deliverables/" + d.ID)
		created, err = s.notifications.insert(ctx, repos, n)
		return err
	})
	if err != nil {
		return err
	}
	if created != nil {
		s.notifications.publish(created)
	}
	return nil
}

// UploadVersion stores a new file under <id>/<label>/<filename>, appends it
// to the version history and makes it the deliverable's current file. The
// workflow status is left unchanged.
func (s *DeliverableService) UploadVersion(ctx context.Context, actor *domain.User, id string, file *Upload, label, notes string) (v *domain.DeliverableVersion, err error) {
	uc := s.begin("upload-deliverable-version", map[string]any{"deliverable_id": id, "version": label}).
		toast("Nueva versión subida", label)
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageDeliverables(actor); err != nil {
		return nil, err
	}
	label = strings.TrimSpace(label)
	if label == "" || strings.ContainsAny(label, `/\`) {
		return nil, domain.Invalid("version", "Indica una versión válida")
	}
	if file.empty() {
		return nil, domain.Invalid("archivo", "Debes seleccionar un archivo para subir")
	}
	if _, err = s.repos.Deliverables.GetByID(ctx, id); err != nil {
		return nil, err
	}

	fileName := path.Base(file.Name)
	objectPath := storage.VersionPath(id, label, fileName)
	if err = s.store.Put(ctx, storage.DeliverablesBucket, objectPath, file.Data); err != nil {
		return nil, fmt.Errorf("uploading file: %w", err)
	}
	url := s.store.PublicURL(storage.DeliverablesBucket, objectPath)
	uploader := actor.ID
	v = &domain.DeliverableVersion{
		ID:            uuid.New().String(),
		DeliverableID: id,
		Version:       label,
		FileURL:       url,
		FileName:      fileName,
		FileSize:      file.size(),
		Notes:         strings.TrimSpace(notes),
		UploadedBy:    &uploader,
		CreatedAt:     s.clock(),
	}

	err = s.write(ctx, func(ctx context.Context, repos *repository.Set) error {
		d, err := repos.Deliverables.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := repos.Versions.Create(ctx, v); err != nil {
			return err
		}
		size := v.FileSize
		d.Version = label
		d.FileURL = &url
		d.FileName = &fileName
		d.FileSize = &size
		d.UpdatedAt = v.CreatedAt
		return repos.Deliverables.Update(ctx, d)
	})
	if err != nil {
		if s.transactional() {
			_ = s.store.Remove(ctx, storage.DeliverablesBucket, objectPath)
		}
		return nil, err
	}
	return v, nil
}

// ListVersions returns the upload history, newest first.
func (s *DeliverableService) ListVersions(ctx context.Context, id string) ([]*domain.DeliverableVersion, error) {
	return s.repos.Versions.ListByDeliverable(ctx, id)
}

// Delete removes the stored file, best effort, then the record and its
// version history.
func (s *DeliverableService) Delete(ctx context.Context, actor *domain.User, id string) (err error) {
	uc := s.begin("delete-deliverable", map[string]any{"deliverable_id": id}).
		toast("Entregable eliminado", "El entregable ha sido eliminado correctamente")
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageDeliverables(actor); err != nil {
		return err
	}
	d, err := s.repos.Deliverables.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if d.HasFile() {
		_ = s.store.Remove(ctx, storage.DeliverablesBucket, s.objectPath(d))
	}
	return s.repos.Deliverables.Delete(ctx, id)
}

// objectPath recovers the stored path of the current file from its public URL.
func (s *DeliverableService) objectPath(d *domain.Deliverable) string {
	prefix := s.store.PublicURL(storage.DeliverablesBucket, "") + "/"
	if rest, ok := strings.CutPrefix(domain.StrOrEmpty(d.FileURL), prefix); ok && rest != "" {
		return rest
	}
	return storage.DeliverablePath(d.ID, domain.StrOrEmpty(d.FileName))
}
