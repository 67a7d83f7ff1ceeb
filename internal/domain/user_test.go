package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	cases := []struct {
		role      Role
		approve   bool
		manage    bool
		assign    bool
		companies bool
		users     bool
	}{
		{RoleClient, true, false, false, false, false},
		{RoleAdvisor, false, true, true, true, false},
		{RoleSupport, false, true, false, false, false},
		{RoleDeveloper, false, true, true, false, false},
		{RoleSuperAdmin, false, true, true, true, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.approve, tc.role.CanApproveDeliverables(), "approve role=%s", tc.role)
		assert.Equal(t, tc.manage, tc.role.CanManageDeliverables(), "manage role=%s", tc.role)
		assert.Equal(t, tc.assign, tc.role.CanAssignTasks(), "assign role=%s", tc.role)
		assert.Equal(t, tc.companies, tc.role.CanManageCompanies(), "companies role=%s", tc.role)
		assert.Equal(t, tc.users, tc.role.CanManageUsers(), "users role=%s", tc.role)
	}
}

func TestParseRole_AcceptsSpanishValues(t *testing.T) {
	cases := map[string]Role{
		"cliente":       RoleClient,
		"asesor":        RoleAdvisor,
		"apoyo":         RoleSupport,
		"desarrollador": RoleDeveloper,
		"superadmin":    RoleSuperAdmin,
		"Developer":     RoleDeveloper,
	}
	for in, want := range cases {
		got, ok := ParseRole(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}
	_, ok := ParseRole("owner")
	assert.False(t, ok)
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AG", (&User{Name: "ana gómez ruiz"}).Initials())
	assert.Equal(t, "L", (&User{Name: "luis"}).Initials())
	assert.Equal(t, "U", (&User{Name: "  "}).Initials())
}

func TestFloat_ZeroCoalesces(t *testing.T) {
	assert.Equal(t, 0.0, Float(nil))
	assert.Equal(t, 0.0, Float("abc"))
	assert.Equal(t, 12.5, Float("12.5"))
	assert.Equal(t, 3.0, Float(3))
	var nilPtr *float64
	assert.Equal(t, 0.0, Float(nilPtr))
	assert.Equal(t, 0.0, Float(struct{}{}))
}

func TestNewTimeLogEntry(t *testing.T) {
	e := NewTimeLogEntry(TimeLog{ID: "l1"}, 3, "20", nil)
	assert.Equal(t, 3.0, e.Hours)
	assert.Equal(t, 60.0, e.Cost())
	assert.Equal(t, 0.0, e.Revenue())
}

func TestInvitation_EffectiveStatus(t *testing.T) {
	inv := &Invitation{Status: InvitationSent, InvitedAt: testNow.AddDate(0, 0, -10)}
	assert.Equal(t, InvitationExpired, inv.EffectiveStatus(testNow, 7*24*time.Hour))
	assert.Equal(t, InvitationSent, inv.EffectiveStatus(testNow, 0))

	accepted := &Invitation{Status: InvitationAccepted, InvitedAt: testNow.AddDate(0, -1, 0)}
	assert.Equal(t, InvitationAccepted, accepted.EffectiveStatus(testNow, time.Hour))
}

func TestInvitation_ProfileFor(t *testing.T) {
	company := "co-1"
	inv := &Invitation{Email: "maria@example.com", Role: RoleDeveloper, CompanyID: &company, CostRate: 10, BillableRate: 30}
	u := inv.ProfileFor("id-1", "", testNow)
	assert.Equal(t, "id-1", u.ID)
	assert.Equal(t, "maria", u.Name)
	assert.Equal(t, RoleDeveloper, u.Role)
	assert.Equal(t, 30.0, u.BillableRate)
	assert.Equal(t, &company, u.CompanyID)
}

func TestProject_ValidateDates(t *testing.T) {
	start := testNow
	end := testNow.AddDate(0, 0, -1)
	p := &Project{StartDate: &start, EndDate: &end}
	assert.ErrorIs(t, p.ValidateDates(), ErrValidationFailed)

	later := testNow.AddDate(0, 1, 0)
	p.EndDate = &later
	assert.NoError(t, p.ValidateDates())
}

func TestDedupeIDs(t *testing.T) {
	assert.Equal(t, []string{"b", "c", "a"}, DedupeIDs([]string{"b", "", "c", "b", "a"}))
}
