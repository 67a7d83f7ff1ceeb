package domain

import "time"

// Invitation is a pending grant of role, company and rates that becomes a
// real User once the invited person activates their account.
type Invitation struct {
	ID           string
	Email        string
	Role         Role
	CompanyID    *string
	CostRate     float64
	BillableRate float64
	Status       InvitationStatus
	IdentityID   *string
	InvitedAt    time.Time
	AcceptedAt   *time.Time
	CreatedAt    time.Time
}

// Record exposes the invitation as the key-value shape the validation schemas use.
func (i *Invitation) Record() map[string]any {
	return map[string]any{
		"email": i.Email,
		"rol":   string(i.Role),
	}
}

// IsOpen reports whether the invitation can still be accepted.
func (i *Invitation) IsOpen() bool {
	return i.Status == InvitationPending || i.Status == InvitationSent
}

// EffectiveStatus reports an open invitation older than ttl as expired.
// A zero ttl disables expiry.
func (i *Invitation) EffectiveStatus(now time.Time, ttl time.Duration) InvitationStatus {
	if ttl > 0 && i.IsOpen() && now.Sub(i.InvitedAt) > ttl {
		return InvitationExpired
	}
	return i.Status
}

// ProfileFor builds the User profile created when identityID accepts the invitation.
// The name defaults to the local part of the e-mail.
func (i *Invitation) ProfileFor(identityID, name string, now time.Time) *User {
	if name == "" {
		name = emailLocalPart(i.Email)
	}
	return &User{
		ID:           identityID,
		Name:         name,
		Email:        i.Email,
		Role:         i.Role,
		CompanyID:    i.CompanyID,
		CostRate:     i.CostRate,
		BillableRate: i.BillableRate,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func emailLocalPart(email string) string {
	for idx, r := range email {
		if r == '@' {
			return email[:idx]
		}
	}
	return email
}
