package service

import (
	"context"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/validation"
	"github.com/google/uuid"
)

type CompanyService struct {
	*base
}

func canManageCompanies(actor *domain.User) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.Role.CanManageCompanies() {
		return domain.Forbidden("No tienes permisos para gestionar empresas")
	}
	return nil
}

// List returns every company, newest first.
func (s *CompanyService) List(ctx context.Context) (companies []*domain.Company, err error) {
	uc := s.begin("list-companies", nil)
	defer func() { s.end(ctx, uc, err) }()
	return s.repos.Companies.List(ctx)
}

func (s *CompanyService) Get(ctx context.Context, id string) (*domain.Company, error) {
	return s.repos.Companies.GetByID(ctx, id)
}

func (s *CompanyService) Create(ctx context.Context, actor *domain.User, c *domain.Company) (err error) {
	uc := s.begin("create-company", map[string]any{"name": c.Name}).toast("Empresa creada", c.Name)
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageCompanies(actor); err != nil {
		return err
	}
	if err = validation.Validate(c.Record(), validation.Empresa()).Err(); err != nil {
		return err
	}
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	now := s.clock()
	c.CreatedAt = now
	c.UpdatedAt = now
	return s.repos.Companies.Create(ctx, c)
}

func (s *CompanyService) Update(ctx context.Context, actor *domain.User, c *domain.Company) (err error) {
	uc := s.begin("update-company", map[string]any{"company_id": c.ID}).toast("Empresa actualizada", c.Name)
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageCompanies(actor); err != nil {
		return err
	}
	if err = validation.Validate(c.Record(), validation.Empresa()).Err(); err != nil {
		return err
	}
	c.UpdatedAt = s.clock()
	return s.repos.Companies.Update(ctx, c)
}

// Delete removes the company; projects and users that referenced it keep
// existing without a company.
func (s *CompanyService) Delete(ctx context.Context, actor *domain.User, id string) (err error) {
	uc := s.begin("delete-company", map[string]any{"company_id": id}).toast("Empresa eliminada", "")
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageCompanies(actor); err != nil {
		return err
	}
	return s.repos.Companies.Delete(ctx, id)
}
