package service

import (
	"context"
	"errors"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// ErrNotSignedIn is returned when there is no valid session.
var ErrNotSignedIn = errors.New("not signed in")

// SessionService resolves the signed-in user's profile.
type SessionService struct {
	*base
}

// Current returns the profile of the signed-in identity. A signed-in
// identity without a profile has not been activated yet: Current then
// returns needsActivation and a nil user.
func (s *SessionService) Current(ctx context.Context) (user *domain.User, needsActivation bool, err error) {
	if s.auth == nil {
		return nil, false, ErrNotSignedIn
	}
	session, err := s.auth.GetSession(ctx)
	if err != nil {
		return nil, false, err
	}
	if session == nil {
		return nil, false, ErrNotSignedIn
	}
	user, err = s.repos.Users.GetByID(ctx, session.IdentityID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return user, false, nil
}
