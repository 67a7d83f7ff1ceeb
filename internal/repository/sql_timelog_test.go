package repository

import (
	"context"
	"testing"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeLogRepo_ListEntriesJoinsRates(t *testing.T) {
	database := testutil.NewTestDB(t)
	set := NewSet(database)
	ctx := context.Background()

	proj := testutil.NewTestProject("Web")
	require.NoError(t, set.Projects.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "Login")
	require.NoError(t, set.Tasks.Create(ctx, task))
	dev := testutil.NewTestUser("Ana", testutil.WithRates(20, 50))
	require.NoError(t, set.Users.Create(ctx, dev))

	first := testutil.NewTestTimeLog(task.ID, &dev.ID, 3)
	anonymous := testutil.NewTestTimeLog(task.ID, nil, 2)
	require.NoError(t, set.TimeLogs.Create(ctx, first))
	require.NoError(t, set.TimeLogs.Create(ctx, anonymous))

	entries, err := set.TimeLogs.ListEntries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first; a log without a user has zero rates.
	assert.Equal(t, anonymous.ID, entries[0].ID)
	assert.Zero(t, entries[0].Cost())
	assert.Equal(t, "", entries[0].UserName)

	assert.Equal(t, "Ana", entries[1].UserName)
	assert.Equal(t, "Login", entries[1].TaskName)
	assert.Equal(t, proj.ID, entries[1].ProjectID)
	assert.Equal(t, 60.0, entries[1].Cost())
	assert.Equal(t, 150.0, entries[1].Revenue())

	limited, err := set.TimeLogs.ListEntries(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestTimeLogRepo_UserDeleteKeepsLog(t *testing.T) {
	set := NewSet(testutil.NewTestDB(t))
	ctx := context.Background()

	proj := testutil.NewTestProject("Web")
	require.NoError(t, set.Projects.Create(ctx, proj))
	task := testutil.NewTestTask(proj.ID, "Login")
	require.NoError(t, set.Tasks.Create(ctx, task))
	dev := testutil.NewTestUser("Ana", testutil.WithRates(20, 50))
	require.NoError(t, set.Users.Create(ctx, dev))
	require.NoError(t, set.TimeLogs.Create(ctx, testutil.NewTestTimeLog(task.ID, &dev.ID, 4)))

	require.NoError(t, set.Users.Delete(ctx, dev.ID))

	entries, err := set.TimeLogs.ListEntries(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].UserID)
	assert.Equal(t, 4.0, entries[0].Hours)
	assert.Zero(t, entries[0].CostRate)
}
