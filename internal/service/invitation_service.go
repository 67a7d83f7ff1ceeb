package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/validation"
	"github.com/google/uuid"
)

// MinActivationPasswordLength is the shortest password accepted on activation.
const MinActivationPasswordLength = 8

const invitationSubject = "Invitación a colaborar en Datenova"

type InvitationService struct {
	*base
}

// Invite records a pending invitation. Only the superadmin may invite.
func (s *InvitationService) Invite(ctx context.Context, actor *domain.User, inv *domain.Invitation) (err error) {
	uc := s.begin("invite-user", map[string]any{"role": string(inv.Role)}).
		toast("Invitación creada", inv.Email)
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageUsers(actor); err != nil {
		return err
	}
	if err = validation.Validate(inv.Record(), validation.Invitacion()).Err(); err != nil {
		return err
	}
	role, ok := domain.ParseRole(string(inv.Role))
	if !ok {
		return domain.Invalid("rol", "Rol inválido")
	}
	now := s.clock()
	inv.ID = uuid.New().String()
	inv.Email = strings.ToLower(strings.TrimSpace(inv.Email))
	inv.Role = role
	inv.CostRate = max(domain.Float(inv.CostRate), 0)
	inv.BillableRate = max(domain.Float(inv.BillableRate), 0)
	inv.Status = domain.InvitationPending
	inv.IdentityID = nil
	inv.InvitedAt = now
	inv.CreatedAt = now
	return s.repos.Invitations.Create(ctx, inv)
}

// MarkSent composes the invitation e-mail as a mailto: link for the
// administrator to send and marks the invitation as sent.
func (s *InvitationService) MarkSent(ctx context.Context, actor *domain.User, id string) (link string, err error) {
	uc := s.begin("send-invitation", map[string]any{"invitation_id": id}).
		toast("Invitación enviada", "Envía el correo desde tu cliente de correo")
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageUsers(actor); err != nil {
		return "", err
	}
	inv, err := s.repos.Invitations.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !inv.IsOpen() {
		return "", domain.Invalid("estado", "La invitación ya no está abierta")
	}
	link = MailtoLink(inv, s.appURL)
	inv.Status = domain.InvitationSent
	if err = s.repos.Invitations.Update(ctx, inv); err != nil {
		return "", err
	}
	return link, nil
}

// MailtoLink builds the mailto: URL with the invitation subject and body.
func MailtoLink(inv *domain.Invitation, appURL string) string {
	body := fmt.Sprintf("Hola,\n\nTe hemos invitado a unirte al equipo de Datenova con el rol de %s.\n\n"+
		"Para activar tu cuenta, por favor regístrate usando este correo electrónico (%s) en el siguiente enlace:\n\n"+
		"%s\n\n¡Bienvenido!", strings.ToUpper(string(inv.Role)), inv.Email, appURL)
	return "mailto:" + inv.Email + "?subject=" + uriComponent(invitationSubject) + "&body=" + uriComponent(body)
}

func uriComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func (s *InvitationService) Cancel(ctx context.Context, actor *domain.User, id string) (err error) {
	uc := s.begin("cancel-invitation", map[string]any{"invitation_id": id}).
		toast("Invitación cancelada", "La invitación ha sido cancelada")
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageUsers(actor); err != nil {
		return err
	}
	inv, err := s.repos.Invitations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	inv.Status = domain.InvitationCancelled
	return s.repos.Invitations.Update(ctx, inv)
}

func (s *InvitationService) Delete(ctx context.Context, actor *domain.User, id string) (err error) {
	uc := s.begin("delete-invitation", map[string]any{"invitation_id": id}).toast("Invitación eliminada", "")
	defer func() { s.end(ctx, uc, err) }()

	if err = canManageUsers(actor); err != nil {
		return err
	}
	return s.repos.Invitations.Delete(ctx, id)
}

// ListOpen returns pending and sent invitations, newest first. Invitations
// older than the configured lifetime are reported as expired.
func (s *InvitationService) ListOpen(ctx context.Context) (invs []*domain.Invitation, err error) {
	uc := s.begin("list-invitations", nil)
	defer func() { s.end(ctx, uc, err) }()

	invs, err = s.repos.Invitations.ListOpen(ctx)
	if err != nil {
		return nil, err
	}
	now := s.clock()
	for _, inv := range invs {
		inv.Status = inv.EffectiveStatus(now, s.inviteTTL)
	}
	return invs, nil
}

// Activate completes an invitation for the signed-in identity: it sets the
// password, creates the user profile from the invitation and marks the
// invitation accepted. An existing profile only gets its name updated.
// Expired invitations are refused.
func (s *InvitationService) Activate(ctx context.Context, name, password, confirm string) (user *domain.User, err error) {
	uc := s.begin("activate-account", nil).
		toast("¡Cuenta Activada!", "Tu cuenta ha sido activada exitosamente")
	defer func() { s.end(ctx, uc, err) }()

	switch {
	case password != confirm:
		return nil, domain.Invalid("confirmar_password", "Las contraseñas no coinciden")
	case len([]rune(password)) < MinActivationPasswordLength:
		return nil, domain.Invalid("password", fmt.Sprintf("La contraseña debe tener al menos %d caracteres", MinActivationPasswordLength))
	case strings.TrimSpace(name) == "":
		return nil, domain.Invalid("nombre", "Por favor ingresa tu nombre completo")
	}
	if s.auth == nil {
		return nil, errors.New("activation requires the auth service")
	}

	if err = s.auth.UpdatePassword(ctx, password); err != nil {
		return nil, err
	}
	identity, err := s.auth.GetUser(ctx)
	if err != nil {
		return nil, err
	}
	uc.fields["identity_id"] = identity.ID

	now := s.clock()
	err = s.write(ctx, func(ctx context.Context, repos *repository.Set) error {
		inv, err := repos.Invitations.FindOpenByEmail(ctx, identity.Email)
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.Error{Kind: domain.ErrNotFound, Code: domain.CodeNoRows,
				Message: "No se encontró una invitación pendiente para " + identity.Email}
		}
		if err != nil {
			return err
		}
		if inv.EffectiveStatus(now, s.inviteTTL) == domain.InvitationExpired {
			return domain.Invalid("invitacion", "La invitación ha expirado. Solicita una nueva al administrador")
		}

		existing, err := repos.Users.GetByID(ctx, identity.ID)
		switch {
		case err == nil:
			existing.Name = strings.TrimSpace(name)
			existing.UpdatedAt = now
			if err := repos.Users.Update(ctx, existing); err != nil {
				return err
			}
			user = existing
		case errors.Is(err, domain.ErrNotFound):
			user = inv.ProfileFor(identity.ID, strings.TrimSpace(name), now)
			if err := repos.Users.Create(ctx, user); err != nil {
				return err
			}
		default:
			return err
		}

		inv.Status = domain.InvitationAccepted
		inv.AcceptedAt = &now
		inv.IdentityID = &identity.ID
		return repos.Invitations.Update(ctx, inv)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
