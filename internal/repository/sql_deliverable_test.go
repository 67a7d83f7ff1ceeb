package repository

import (
	"context"
	"testing"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTask(t *testing.T, set *Set) (*domain.Task, *domain.User) {
	t.Helper()
	ctx := context.Background()
	company := testutil.NewTestCompany("Acme")
	require.NoError(t, set.Companies.Create(ctx, company))
	proj := testutil.NewTestProject("Web", testutil.WithProjectCompany(company.ID))
	require.NoError(t, set.Projects.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "Login")
	require.NoError(t, set.Tasks.Create(ctx, task))
	dev := testutil.NewTestUser("Ana")
	require.NoError(t, set.Users.Create(ctx, dev))
	return task, dev
}

func TestDeliverableRepo_CreateUpdateAndJoins(t *testing.T) {
	set := NewSet(testutil.NewTestDB(t))
	ctx := context.Background()
	task, dev := seedTask(t, set)

	d := testutil.NewTestDeliverable(task.ID, "Manual de usuario", testutil.WithCreator(dev.ID))
	require.NoError(t, set.Deliverables.Create(ctx, d))

	fetched, err := set.Deliverables.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "Login", fetched.TaskName)
	assert.Equal(t, "Web", fetched.ProjectName)
	assert.Equal(t, "Acme", fetched.CompanyName)
	assert.Equal(t, "Ana", fetched.CreatorName)
	assert.False(t, fetched.HasFile())

	url, name, size := "http://files/deliverables/x/manual.pdf", "manual.pdf", int64(2048)
	approvedAt := time.Date(2025, 3, 1, 12, 30, 0, 0, time.UTC)
	fetched.FileURL, fetched.FileName, fetched.FileSize = &url, &name, &size
	fetched.Status = domain.DeliverableApproved
	fetched.ApprovedAt = &approvedAt
	fetched.ApprovedBy = &dev.ID
	require.NoError(t, set.Deliverables.Update(ctx, fetched))

	again, err := set.Deliverables.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.True(t, again.HasFile())
	assert.Equal(t, size, *again.FileSize)
	assert.Equal(t, domain.DeliverableApproved, again.Status)
	require.NotNil(t, again.ApprovedAt)
	assert.True(t, approvedAt.Equal(*again.ApprovedAt))
	assert.Equal(t, "Ana", again.ApproverName)
}

func TestDeliverableRepo_ListFilters(t *testing.T) {
	set := NewSet(testutil.NewTestDB(t))
	ctx := context.Background()
	task, _ := seedTask(t, set)

	require.NoError(t, set.Deliverables.Create(ctx, testutil.NewTestDeliverable(task.ID, "Uno")))
	require.NoError(t, set.Deliverables.Create(ctx, testutil.NewTestDeliverable(task.ID, "Dos",
		testutil.WithDeliverableStatus(domain.DeliverableInReview))))

	inReview, err := set.Deliverables.List(ctx, DeliverableQuery{Status: domain.DeliverableInReview})
	require.NoError(t, err)
	require.Len(t, inReview, 1)
	assert.Equal(t, "Dos", inReview[0].Name)

	byTask, err := set.Deliverables.List(ctx, DeliverableQuery{TaskID: task.ID})
	require.NoError(t, err)
	assert.Len(t, byTask, 2)
	assert.Equal(t, "Dos", byTask[0].Name, "newest first")
}

func TestDeliverableVersionRepo_HistoryNewestFirstAndCascade(t *testing.T) {
	set := NewSet(testutil.NewTestDB(t))
	ctx := context.Background()
	task, dev := seedTask(t, set)

	d := testutil.NewTestDeliverable(task.ID, "Diseño")
	require.NoError(t, set.Deliverables.Create(ctx, d))

	for i, label := range []string{"1.0", "1.1"} {
		require.NoError(t, set.Versions.Create(ctx, &domain.DeliverableVersion{
			ID:            label,
			DeliverableID: d.ID,
			Version:       label,
			FileURL:       "u" + label,
			FileName:      "f.png",
			FileSize:      int64(100 * (i + 1)),
			UploadedBy:    &dev.ID,
			CreatedAt:     time.Date(2025, 1, 1+i, 0, 0, 0, 0, time.UTC),
		}))
	}

	history, err := set.Versions.ListByDeliverable(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "1.1", history[0].Version)
	assert.Equal(t, "Ana", history[0].UploaderName)

	require.NoError(t, set.Deliverables.Delete(ctx, d.ID))
	history, err = set.Versions.ListByDeliverable(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}
