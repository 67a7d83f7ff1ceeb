package service

import (
	"context"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/validation"
	"github.com/google/uuid"
)

type ProjectService struct {
	*base
}

// List returns projects with their company name. An empty status lists all.
func (s *ProjectService) List(ctx context.Context, status domain.ProjectStatus) (projects []*domain.Project, err error) {
	uc := s.begin("list-projects", map[string]any{"status": string(status)})
	defer func() { s.end(ctx, uc, err) }()
	if status != "" && !domain.ValidProjectStatuses[status] {
		return nil, domain.Invalid("estado", "Estado de proyecto inválido")
	}
	return s.repos.Projects.List(ctx, status)
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.repos.Projects.GetByID(ctx, id)
}

func validateProject(p *domain.Project) error {
	if err := validation.Validate(p.Record(), validation.Proyecto()).Err(); err != nil {
		return err
	}
	if p.Status != "" && !domain.ValidProjectStatuses[p.Status] {
		return domain.Invalid("estado", "Estado de proyecto inválido")
	}
	return p.ValidateDates()
}

func (s *ProjectService) Create(ctx context.Context, p *domain.Project) (err error) {
	uc := s.begin("create-project", map[string]any{"name": p.Name}).toast("Proyecto creado", p.Name)
	defer func() { s.end(ctx, uc, err) }()

	if err = validateProject(p); err != nil {
		return err
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = domain.ProjectPending
	}
	now := s.clock()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.repos.Projects.Create(ctx, p)
}

func (s *ProjectService) Update(ctx context.Context, p *domain.Project) (err error) {
	uc := s.begin("update-project", map[string]any{"project_id": p.ID}).toast("Proyecto actualizado", p.Name)
	defer func() { s.end(ctx, uc, err) }()

	if err = validateProject(p); err != nil {
		return err
	}
	p.UpdatedAt = s.clock()
	return s.repos.Projects.Update(ctx, p)
}

// Delete removes the project. Tasks that still reference it make the delete
// fail with a foreign-key error.
func (s *ProjectService) Delete(ctx context.Context, id string) (err error) {
	uc := s.begin("delete-project", map[string]any{"project_id": id}).toast("Proyecto eliminado", "")
	defer func() { s.end(ctx, uc, err) }()
	return s.repos.Projects.Delete(ctx, id)
}
