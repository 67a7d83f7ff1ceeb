package service

import (
	"context"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvite_OnlySuperAdmin(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	advisor := h.user(t, "Asesor", domain.RoleAdvisor)

	err := h.svc.Invitations.Invite(ctx, advisor, &domain.Invitation{Email: "nuevo@datenova.co", Role: domain.RoleDeveloper})
	require.Error(t, err)
	assert.Equal(t, domain.CodeInsufficientPrivilege, domain.CodeOf(err))
}

func TestInvite_StoresPendingInvitation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	admin := h.user(t, "Admin", domain.RoleSuperAdmin)

	inv := &domain.Invitation{Email: "  Nuevo@Datenova.co ", Role: "desarrollador", CostRate: -5, BillableRate: 40}
	require.NoError(t, h.svc.Invitations.Invite(ctx, admin, inv))

	stored, err := h.repos.Invitations.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "nuevo@datenova.co", stored.Email)
	assert.Equal(t, domain.RoleDeveloper, stored.Role)
	assert.Equal(t, domain.InvitationPending, stored.Status)
	assert.Zero(t, stored.CostRate)
	assert.Equal(t, 40.0, stored.BillableRate)
	assert.Equal(t, fixedNow, stored.InvitedAt.UTC())

	err = h.svc.Invitations.Invite(ctx, admin, &domain.Invitation{Email: "no-es-email", Role: domain.RoleDeveloper})
	require.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Equal(t, "Ingresa un email válido", domain.MessageOf(err))
}

func TestInvitationMarkSent_ComposesMailto(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	admin := h.user(t, "Admin", domain.RoleSuperAdmin)

	inv := &domain.Invitation{Email: "nuevo@datenova.co", Role: domain.RoleDeveloper}
	require.NoError(t, h.svc.Invitations.Invite(ctx, admin, inv))

	link, err := h.svc.Invitations.MarkSent(ctx, admin, inv.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "mailto:nuevo@datenova.co?subject="))
	assert.NotContains(t, link, "+", "spaces are percent-encoded")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	q := parsed.Query()
	assert.Equal(t, "Invitación a colaborar en Datenova", q.Get("subject"))
	body := q.Get("body")
	assert.Contains(t, body, "con el rol de DEVELOPER.")
	assert.Contains(t, body, "(nuevo@datenova.co)")
	assert.Contains(t, body, "https://app.datenova.test")
	assert.True(t, strings.HasSuffix(body, "¡Bienvenido!"))

	stored, err := h.repos.Invitations.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationSent, stored.Status)
}

func TestInvitationCancel_ClosesInvitation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	admin := h.user(t, "Admin", domain.RoleSuperAdmin)

	inv := &domain.Invitation{Email: "nuevo@datenova.co", Role: domain.RoleClient}
	require.NoError(t, h.svc.Invitations.Invite(ctx, admin, inv))
	require.NoError(t, h.svc.Invitations.Cancel(ctx, admin, inv.ID))

	open, err := h.svc.Invitations.ListOpen(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)

	_, err = h.svc.Invitations.MarkSent(ctx, admin, inv.ID)
	require.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestInvitationListOpen_ReportsExpired(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	old := testutil.NewTestInvitation("viejo@datenova.co", domain.RoleDeveloper)
	old.InvitedAt = fixedNow.Add(-8 * 24 * time.Hour)
	require.NoError(t, h.repos.Invitations.Create(ctx, old))
	fresh := testutil.NewTestInvitation("nuevo@datenova.co", domain.RoleDeveloper)
	fresh.InvitedAt = fixedNow.Add(-time.Hour)
	require.NoError(t, h.repos.Invitations.Create(ctx, fresh))

	open, err := h.svc.Invitations.ListOpen(ctx)
	require.NoError(t, err)
	require.Len(t, open, 2)
	status := map[string]domain.InvitationStatus{}
	for _, inv := range open {
		status[inv.Email] = inv.Status
	}
	assert.Equal(t, domain.InvitationExpired, status["viejo@datenova.co"])
	assert.Equal(t, domain.InvitationPending, status["nuevo@datenova.co"])
}

func TestActivate_CreatesProfileFromInvitation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	company := testutil.NewTestCompany("Acme")
	require.NoError(t, h.repos.Companies.Create(ctx, company))
	inv := testutil.NewTestInvitation("nuevo@datenova.co", domain.RoleClient)
	inv.CompanyID = &company.ID
	inv.CostRate, inv.BillableRate = 0, 75
	inv.InvitedAt = fixedNow.Add(-time.Hour)
	require.NoError(t, h.repos.Invitations.Create(ctx, inv))

	session, err := h.auth.SignUp(ctx, "nuevo@datenova.co", "temporal1")
	require.NoError(t, err)

	_, needsActivation, err := h.svc.Session.Current(ctx)
	require.NoError(t, err)
	assert.True(t, needsActivation)

	user, err := h.svc.Invitations.Activate(ctx, " Nora Núñez ", "definitiva1", "definitiva1")
	require.NoError(t, err)
	assert.Equal(t, session.IdentityID, user.ID)
	assert.Equal(t, "Nora Núñez", user.Name)
	assert.Equal(t, domain.RoleClient, user.Role)
	assert.Equal(t, 75.0, user.BillableRate)
	assert.Equal(t, "¡Cuenta Activada!", h.toasts.last().Title)

	current, needsActivation, err := h.svc.Session.Current(ctx)
	require.NoError(t, err)
	assert.False(t, needsActivation)
	assert.Equal(t, company.ID, domain.StrOrEmpty(current.CompanyID))

	stored, err := h.repos.Invitations.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, stored.Status)
	require.NotNil(t, stored.IdentityID)
	assert.Equal(t, session.IdentityID, *stored.IdentityID)
	require.NotNil(t, stored.AcceptedAt)

	_, err = h.auth.SignInWithPassword(ctx, "nuevo@datenova.co", "definitiva1")
	assert.NoError(t, err, "the new password is in effect")
}

func TestActivate_ExistingProfileOnlyGetsName(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	inv := testutil.NewTestInvitation("nuevo@datenova.co", domain.RoleDeveloper)
	inv.InvitedAt = fixedNow
	require.NoError(t, h.repos.Invitations.Create(ctx, inv))
	session, err := h.auth.SignUp(ctx, "nuevo@datenova.co", "temporal1")
	require.NoError(t, err)

	existing := testutil.NewTestUser("Sin nombre", testutil.WithRole(domain.RoleSupport))
	existing.ID = session.IdentityID
	require.NoError(t, h.repos.Users.Create(ctx, existing))

	user, err := h.svc.Invitations.Activate(ctx, "Nora Núñez", "definitiva1", "definitiva1")
	require.NoError(t, err)
	assert.Equal(t, "Nora Núñez", user.Name)
	assert.Equal(t, domain.RoleSupport, user.Role)

	stored, err := h.repos.Invitations.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, stored.Status)
}

func TestActivate_Rejections(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	tests := []struct {
		name, fullName, password, confirm, message string
	}{
		{"mismatch", "Nora", "definitiva1", "definitiva2", "Las contraseñas no coinciden"},
		{"short", "Nora", "corta", "corta", "La contraseña debe tener al menos 8 caracteres"},
		{"no name", "   ", "definitiva1", "definitiva1", "Por favor ingresa tu nombre completo"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.svc.Invitations.Activate(ctx, tc.fullName, tc.password, tc.confirm)
			require.ErrorIs(t, err, domain.ErrValidationFailed)
			assert.Equal(t, tc.message, domain.MessageOf(err))
		})
	}
}

func TestActivate_WithoutInvitation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	_, err := h.auth.SignUp(ctx, "intruso@datenova.co", "temporal1")
	require.NoError(t, err)

	_, err = h.svc.Invitations.Activate(ctx, "Intruso", "definitiva1", "definitiva1")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, needsActivation, err := h.svc.Session.Current(ctx)
	require.NoError(t, err)
	assert.True(t, needsActivation, "no profile was created")
}

func TestActivate_ExpiredInvitation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	inv := testutil.NewTestInvitation("nuevo@datenova.co", domain.RoleDeveloper)
	inv.InvitedAt = fixedNow.Add(-30 * 24 * time.Hour)
	require.NoError(t, h.repos.Invitations.Create(ctx, inv))
	_, err := h.auth.SignUp(ctx, "nuevo@datenova.co", "temporal1")
	require.NoError(t, err)

	_, err = h.svc.Invitations.Activate(ctx, "Nora", "definitiva1", "definitiva1")
	require.ErrorIs(t, err, domain.ErrValidationFailed)

	stored, err := h.repos.Invitations.GetByID(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvitationPending, stored.Status)
}

func TestSessionCurrent_SignedOut(t *testing.T) {
	h := newHarness(t)
	_, _, err := h.svc.Session.Current(context.Background())
	assert.ErrorIs(t, err, ErrNotSignedIn)
}
