package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

var (
	clientUser    = &User{ID: "client-1", Role: RoleClient}
	developerUser = &User{ID: "dev-1", Role: RoleDeveloper}
)

func TestMarkForReview_FromPending(t *testing.T) {
	d := &Deliverable{Status: DeliverablePending}
	require.NoError(t, d.MarkForReview(RoleDeveloper, testNow))
	assert.Equal(t, DeliverableInReview, d.Status)
	assert.Equal(t, testNow, d.UpdatedAt)
}

func TestMarkForReview_ClientForbidden(t *testing.T) {
	d := &Deliverable{Status: DeliverablePending}
	err := d.MarkForReview(RoleClient, testNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteOperationFailed)
	assert.Equal(t, CodeInsufficientPrivilege, CodeOf(err))
	assert.Equal(t, DeliverablePending, d.Status)
}

func TestMarkForReview_NotPending(t *testing.T) {
	for _, status := range []DeliverableStatus{DeliverableInReview, DeliverableApproved, DeliverableRejected} {
		d := &Deliverable{Status: status}
		err := d.MarkForReview(RoleSuperAdmin, testNow)
		require.Error(t, err, "status=%s", status)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Equal(t, status, d.Status)
	}
}

func TestApprove_FromInReview(t *testing.T) {
	d := &Deliverable{Status: DeliverableInReview}
	require.NoError(t, d.Approve(clientUser, "", testNow))
	assert.Equal(t, DeliverableApproved, d.Status)
	require.NotNil(t, d.ApprovedAt)
	assert.Equal(t, testNow, *d.ApprovedAt)
	require.NotNil(t, d.ApprovedBy)
	assert.Equal(t, "client-1", *d.ApprovedBy)
	assert.Nil(t, d.ClientComments, "empty comments are not stored")
}

func TestApprove_KeepsComments(t *testing.T) {
	d := &Deliverable{Status: DeliverableInReview}
	require.NoError(t, d.Approve(clientUser, "Buen trabajo", testNow))
	require.NotNil(t, d.ClientComments)
	assert.Equal(t, "Buen trabajo", *d.ClientComments)
}

func TestApprove_FromPendingRefused(t *testing.T) {
	d := &Deliverable{Status: DeliverablePending}
	err := d.Approve(clientUser, "ok", testNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, DeliverablePending, d.Status)
	assert.Nil(t, d.ApprovedAt)
}

func TestApprove_NonClientForbidden(t *testing.T) {
	d := &Deliverable{Status: DeliverableInReview}
	err := d.Approve(developerUser, "", testNow)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRemoteOperationFailed)
	assert.Equal(t, DeliverableInReview, d.Status)
}

func TestReject_RequiresComments(t *testing.T) {
	for _, comments := range []string{"", "   "} {
		d := &Deliverable{Status: DeliverableInReview}
		err := d.Reject(clientUser, comments, testNow)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidationFailed)
		assert.Equal(t, DeliverableInReview, d.Status, "state must be unchanged")
		assert.Nil(t, d.ApprovedBy)
	}
}

func TestReject_WithComments(t *testing.T) {
	d := &Deliverable{Status: DeliverableInReview}
	require.NoError(t, d.Reject(clientUser, "Falta la portada", testNow))
	assert.Equal(t, DeliverableRejected, d.Status)
	require.NotNil(t, d.ClientComments)
	assert.Equal(t, "Falta la portada", *d.ClientComments)
	assert.Nil(t, d.ApprovedAt, "rejection does not set an approval date")
}

func TestTerminalStatesHaveNoTransitions(t *testing.T) {
	for _, status := range []DeliverableStatus{DeliverableApproved, DeliverableRejected} {
		d := &Deliverable{Status: status}
		assert.True(t, d.IsTerminal())
		assert.Error(t, d.Approve(clientUser, "x", testNow))
		assert.Error(t, d.Reject(clientUser, "x", testNow))
		assert.Error(t, d.MarkForReview(RoleSuperAdmin, testNow))
		assert.Equal(t, status, d.Status)
	}
}

func TestInCorrectionIsNeverProduced(t *testing.T) {
	d := &Deliverable{Status: DeliverablePending}
	require.NoError(t, d.MarkForReview(RoleAdvisor, testNow))
	require.NoError(t, d.Reject(clientUser, "Corregir", testNow))
	assert.NotEqual(t, DeliverableInCorrection, d.Status)
	assert.Equal(t, "En Corrección", DeliverableInCorrection.Label())
}

func TestErrorKinds(t *testing.T) {
	err := Invalid("nombre", "Nombre es obligatorio")
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, "Nombre es obligatorio", MessageOf(err))

	cause := errors.New("disk full")
	remote := Remote("", cause)
	assert.ErrorIs(t, remote, ErrRemoteOperationFailed)
	assert.ErrorIs(t, remote, cause)

	missing := Missing("task")
	assert.ErrorIs(t, missing, ErrNotFound)
	assert.Equal(t, CodeNoRows, CodeOf(missing))
}
