package service

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/auth"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/config"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/storage"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/testutil"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/toast"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var errInjected = errors.New("injected failure")

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type harness struct {
	db        *sql.DB
	repos     *repository.Set
	store     *storage.LocalStore
	storeRoot string
	auth   *auth.Service
	toasts *toastRecorder
	svc    *Services
}

type toastRecorder struct {
	mu    sync.Mutex
	items []toast.Toast
}

func (r *toastRecorder) record(t toast.Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, t)
}

func (r *toastRecorder) last() toast.Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items) == 0 {
		return toast.Toast{}
	}
	return r.items[len(r.items)-1]
}

// option adjusts the deps before the services are built.
type option func(d *Deps, database *sql.DB)

// newHarness builds services over an in-memory database, a temp-dir store
// and a real auth service.
func newHarness(t *testing.T, opts ...option) *harness {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := repository.NewSet(database)
	storeRoot := t.TempDir()
	store := storage.NewLocalStore(storeRoot, "http://files.test")
	authSvc, err := auth.New(repos.Identities, auth.Options{
		Secret:     []byte("test-secret"),
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return fixedNow },
	})
	require.NoError(t, err)

	rec := &toastRecorder{}
	toasts := toast.New(nil)
	toasts.Subscribe(rec.record)

	d := Deps{
		Repos:     repos,
		UoW:       testutil.NewTestUoW(database),
		Mode:      config.WriteTransactional,
		Store:     store,
		Toasts:    toasts,
		Auth:      authSvc,
		Now:       func() time.Time { return fixedNow },
		InviteTTL: 7 * 24 * time.Hour,
		AppURL:    "https://app.datenova.test",
	}
	for _, opt := range opts {
		opt(&d, database)
	}
	return &harness{db: database, repos: repos, store: store, storeRoot: storeRoot, auth: authSvc, toasts: rec, svc: New(d)}
}

func sequential(d *Deps, _ *sql.DB) { d.Mode = config.WriteSequential }

// failOnExec fails the nth statement executed inside each transaction.
func failOnExec(n int32) option {
	return func(d *Deps, database *sql.DB) {
		d.UoW = &testutil.FailOnNthExecUoW{DB: database, FailOn: n, Err: errInjected}
	}
}

// switchableFailure is failOnExec with the injector returned, so a test can
// clear FailOn and let the next attempt through.
func switchableFailure(n int32) (option, *testutil.FailOnNthExecUoW) {
	uow := &testutil.FailOnNthExecUoW{FailOn: n, Err: errInjected}
	return func(d *Deps, database *sql.DB) {
		uow.DB = database
		d.UoW = uow
	}, uow
}

func (h *harness) user(t *testing.T, name string, role domain.Role) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name, testutil.WithRole(role), testutil.WithRates(20, 50))
	require.NoError(t, h.repos.Users.Create(context.Background(), u))
	return u
}

func (h *harness) task(t *testing.T, name string) *domain.Task {
	t.Helper()
	ctx := context.Background()
	p := testutil.NewTestProject("Portal " + name)
	require.NoError(t, h.repos.Projects.Create(ctx, p))
	task := testutil.NewTestTask(p.ID, name)
	require.NoError(t, h.repos.Tasks.Create(ctx, task))
	return task
}

// storedFiles lists every object under bucket, relative to the bucket.
func (h *harness) storedFiles(t *testing.T, bucket string) []string {
	t.Helper()
	root := filepath.Join(h.storeRoot, bucket)
	var files []string
	err := filepath.WalkDir(root, func(p string, e fs.DirEntry, err error) error {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return err
		}
		if !e.IsDir() {
			rel, _ := filepath.Rel(root, p)
			files = append(files, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	return files
}

// onlyDeliverable returns the single stored deliverable.
func (h *harness) onlyDeliverable(t *testing.T) *domain.Deliverable {
	t.Helper()
	items, err := h.repos.Deliverables.List(context.Background(), repository.DeliverableQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	return items[0]
}

// Repository wrappers that fail one operation, for sequential-mode tests.

type failingAssignments struct {
	repository.AssignmentRepo
}

func (failingAssignments) Create(context.Context, *domain.TaskAssignment) error { return errInjected }

type failingRealHours struct {
	repository.TaskRepo
}

func (failingRealHours) AddRealHours(context.Context, string, float64) error { return errInjected }

type failingDeliverableUpdate struct {
	repository.DeliverableRepo
}

func (failingDeliverableUpdate) Update(context.Context, *domain.Deliverable) error { return errInjected }

type failingStore struct {
	storage.Store
}

func (failingStore) Put(context.Context, string, string, []byte) error { return errInjected }

// withRepos runs the services over a copy of the set with fn applied. The
// harness keeps the unwrapped set for assertions.
func withRepos(fn func(*repository.Set)) option {
	return func(d *Deps, _ *sql.DB) {
		set := *d.Repos
		fn(&set)
		d.Repos = &set
	}
}

func withStore(s storage.Store) option {
	return func(d *Deps, _ *sql.DB) { d.Store = s }
}
