package service

import (
	"context"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/auth"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// Authenticator is the slice of the auth port the services need.
type Authenticator interface {
	GetSession(ctx context.Context) (*auth.Session, error)
	GetUser(ctx context.Context) (*domain.Identity, error)
	UpdatePassword(ctx context.Context, password string) error
}

// Upload is a file chosen for a deliverable.
type Upload struct {
	Name string
	Data []byte
}

func (u *Upload) empty() bool { return u == nil || u.Name == "" }

func (u *Upload) size() int64 {
	if u == nil {
		return 0
	}
	return int64(len(u.Data))
}
