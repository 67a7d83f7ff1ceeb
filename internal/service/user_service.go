package service

import (
	"context"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/validation"
)

type UserService struct {
	*base
}

func canManageUsers(actor *domain.User) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.Role.CanManageUsers() {
		return domain.Forbidden("Solo el superadministrador puede gestionar usuarios")
	}
	return nil
}

// List returns every user profile with its company name, ordered by name.
func (s *UserService) List(ctx context.Context) (users []*domain.User, err error) {
	uc := s.begin("list-users", nil)
	defer func() { s.end(ctx, uc, err) }()
	return s.repos.Users.List(ctx)
}

// ListAssignable returns the users that can be assigned to tasks.
func (s *UserService) ListAssignable(ctx context.Context) ([]*domain.User, error) {
	return s.repos.Users.ListAssignable(ctx)
}

func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.repos.Users.GetByID(ctx, id)
}

// Update saves name, role, company and rates.
func (s *UserService) Update(ctx context.Context, actor *domain.User, u *domain.User) (err error) {
	uc := s.begin("update-user", map[string]any{"user_id": u.ID, "role": string(u.Role)}).
		toast("Usuario actualizado", u.Name)
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageUsers(actor); err != nil {
		return err
	}
	if err = validation.Validate(u.Record(), validation.Usuario()).Err(); err != nil {
		return err
	}
	role, ok := domain.ParseRole(string(u.Role))
	if !ok {
		return domain.Invalid("rol", "Rol inválido")
	}
	u.Role = role
	u.UpdatedAt = s.clock()
	return s.repos.Users.Update(ctx, u)
}

// Delete removes the profile. Time logs and deliverables keep existing with
// their user reference cleared.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) (err error) {
	uc := s.begin("delete-user", map[string]any{"user_id": id}).toast("Usuario eliminado", "")
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageUsers(actor); err != nil {
		return err
	}
	return s.repos.Users.Delete(ctx, id)
}
