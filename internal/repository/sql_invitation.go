package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
)

// SQLInvitationRepo implements InvitationRepo.
type SQLInvitationRepo struct {
	db db.DBTX
}

func NewSQLInvitationRepo(db db.DBTX) *SQLInvitationRepo {
	return &SQLInvitationRepo{db: db}
}

const invitationColumns = `id, email, role, company_id, cost_rate, billable_rate, status, identity_id,
	invited_at, accepted_at, created_at`

func (r *SQLInvitationRepo) Create(ctx context.Context, inv *domain.Invitation) error {
	query := `INSERT INTO invitations (` + invitationColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		inv.ID, normalizeEmail(inv.Email), string(inv.Role), nullableString(inv.CompanyID),
		inv.CostRate, inv.BillableRate, string(inv.Status), nullableString(inv.IdentityID),
		formatTimestamp(inv.InvitedAt), nullableTimeToString(inv.AcceptedAt, timestampLayout),
		formatTimestamp(inv.CreatedAt),
	)
	return classify("inserting invitation", err)
}

func (r *SQLInvitationRepo) GetByID(ctx context.Context, id string) (*domain.Invitation, error) {
	inv, err := scanInvitation(r.db.QueryRowContext(ctx, `SELECT `+invitationColumns+` FROM invitations WHERE id = ?`, id))
	if err != nil {
		return nil, classifyRow("invitation", "scanning invitation", err)
	}
	return inv, nil
}

// ListOpen returns pending and sent invitations newest first.
func (r *SQLInvitationRepo) ListOpen(ctx context.Context) ([]*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations WHERE status IN (?, ?) ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, string(domain.InvitationPending), string(domain.InvitationSent))
	if err != nil {
		return nil, classify("listing invitations", err)
	}
	defer rows.Close()

	var out []*domain.Invitation
	for rows.Next() {
		inv, err := scanInvitation(rows)
		if err != nil {
			return nil, classify("scanning invitation row", err)
		}
		out = append(out, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("iterating invitations", err)
	}
	return out, nil
}

// FindOpenByEmail returns the newest pending or sent invitation for email.
func (r *SQLInvitationRepo) FindOpenByEmail(ctx context.Context, email string) (*domain.Invitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM invitations
		WHERE email = ? AND status IN (?, ?) ORDER BY created_at DESC LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, normalizeEmail(email),
		string(domain.InvitationPending), string(domain.InvitationSent))
	inv, err := scanInvitation(row)
	if err != nil {
		return nil, classifyRow("invitation", "scanning invitation", err)
	}
	return inv, nil
}

func (r *SQLInvitationRepo) Update(ctx context.Context, inv *domain.Invitation) error {
	query := `UPDATE invitations SET role = ?, company_id = ?, cost_rate = ?, billable_rate = ?, status = ?,
		identity_id = ?, accepted_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		string(inv.Role), nullableString(inv.CompanyID), inv.CostRate, inv.BillableRate, string(inv.Status),
		nullableString(inv.IdentityID), nullableTimeToString(inv.AcceptedAt, timestampLayout), inv.ID,
	)
	if err != nil {
		return classify("updating invitation", err)
	}
	return requireAffected("invitation", res)
}

func (r *SQLInvitationRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM invitations WHERE id = ?`, id)
	if err != nil {
		return classify("deleting invitation", err)
	}
	return requireAffected("invitation", res)
}

func scanInvitation(s scanner) (*domain.Invitation, error) {
	var inv domain.Invitation
	var role, status, invitedAt, createdAt string
	var companyID, identityID, acceptedAt sql.NullString
	var costRate, billableRate sql.NullFloat64
	if err := s.Scan(&inv.ID, &inv.Email, &role, &companyID, &costRate, &billableRate, &status, &identityID,
		&invitedAt, &acceptedAt, &createdAt); err != nil {
		return nil, err
	}
	inv.Role = domain.Role(role)
	inv.Status = domain.InvitationStatus(status)
	inv.CompanyID = stringPtr(companyID)
	inv.IdentityID = stringPtr(identityID)
	inv.CostRate = domain.Float(nullFloat(costRate))
	inv.BillableRate = domain.Float(nullFloat(billableRate))
	inv.AcceptedAt = parseNullableTime(acceptedAt, timestampLayout)

	var err error
	if inv.InvitedAt, err = parseTimestamp(invitedAt); err != nil {
		return nil, fmt.Errorf("parsing invited_at: %w", err)
	}
	if inv.CreatedAt, err = parseTimestamp(createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	return &inv, nil
}
