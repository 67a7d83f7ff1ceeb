package domain

import (
	"strings"
	"time"
)

type User struct {
	ID           string
	Name         string
	Email        string
	Role         Role
	CompanyID    *string
	CostRate     float64 // internal cost per hour
	BillableRate float64 // price per hour charged to the client
	AvatarURL    *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// CompanyName is populated by joined reads only.
	CompanyName string
}

// Record exposes the user as the key-value shape the validation schemas use.
func (u *User) Record() map[string]any {
	return map[string]any{
		"nombre":        u.Name,
		"rol":           string(u.Role),
		"tarifa_hora":   u.CostRate,
		"billable_rate": u.BillableRate,
	}
}

// Initials returns up to two upper-case initials of the user's name.
func (u *User) Initials() string {
	if strings.TrimSpace(u.Name) == "" {
		return "U"
	}
	var initials []rune
	for _, part := range strings.Fields(u.Name) {
		initials = append(initials, []rune(part)[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}

func (r Role) IsClient() bool { return r == RoleClient }

// CanApproveDeliverables reports whether the role may approve or reject a
// deliverable under review. Only clients can.
func (r Role) CanApproveDeliverables() bool { return r == RoleClient }

// CanManageDeliverables covers create, mark-for-review, new versions and delete.
func (r Role) CanManageDeliverables() bool { return r != RoleClient }

// CanAssignTasks reports whether the role may change a task's assignee set.
func (r Role) CanAssignTasks() bool {
	return r == RoleSuperAdmin || r == RoleAdvisor || r == RoleDeveloper
}

func (r Role) CanManageCompanies() bool { return r == RoleSuperAdmin || r == RoleAdvisor }

func (r Role) CanManageUsers() bool { return r == RoleSuperAdmin }

// Label returns the Spanish display label used across the product.
func (r Role) Label() string {
	switch r {
	case RoleClient:
		return "Cliente"
	case RoleAdvisor:
		return "Asesor"
	case RoleSupport:
		return "Asesor Técnico"
	case RoleDeveloper:
		return "Desarrollador"
	case RoleSuperAdmin:
		return "Super Admin"
	default:
		return string(r)
	}
}

// ParseRole accepts both the canonical English values and the Spanish ones the
// original product stored.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client", "cliente":
		return RoleClient, true
	case "advisor", "asesor":
		return RoleAdvisor, true
	case "support", "apoyo":
		return RoleSupport, true
	case "developer", "desarrollador":
		return RoleDeveloper, true
	case "superadmin", "super-admin":
		return RoleSuperAdmin, true
	}
	return "", false
}
