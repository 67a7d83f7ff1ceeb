package cli

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/auth"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/config"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/feed"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/service"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/storage"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/testutil"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/toast"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testPassword = "secreto123"

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type testEnv struct {
	app   *App
	repos *repository.Set
}

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	repos := repository.NewSet(database)
	authSvc, err := auth.New(repos.Identities, auth.Options{
		Secret:     []byte("cli-secret"),
		BcryptCost: bcrypt.MinCost,
		Now:        func() time.Time { return testNow },
	})
	require.NoError(t, err)

	hub := feed.NewHub()
	toasts := toast.New(nil)
	reg := prometheus.NewRegistry()
	svc := service.New(service.Deps{
		Repos:     repos,
		UoW:       testutil.NewTestUoW(database),
		Mode:      config.WriteTransactional,
		Store:     storage.NewLocalStore(t.TempDir(), "http://files.test"),
		Hub:       hub,
		Toasts:    toasts,
		Auth:      authSvc,
		Observers: []service.UseCaseObserver{service.NewMetricsObserver(reg)},
		Now:       func() time.Time { return testNow },
		InviteTTL: 7 * 24 * time.Hour,
		AppURL:    "https://app.datenova.test",
	})

	return &testEnv{
		app: &App{
			Services: svc,
			Auth:     authSvc,
			Toasts:   toasts,
			Metrics:  reg,
			Now:      func() time.Time { return testNow },
		},
		repos: repos,
	}
}

// signIn creates an identity with a profile of the given role and leaves
// its session active.
func (e *testEnv) signIn(t *testing.T, name string, role domain.Role) *domain.User {
	t.Helper()
	ctx := context.Background()
	email := strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@datenova.test"
	session, err := e.app.Auth.SignUp(ctx, email, testPassword)
	require.NoError(t, err)
	u := testutil.NewTestUser(name, testutil.WithRole(role), testutil.WithRates(20, 50))
	u.ID = session.IdentityID
	u.Email = email
	require.NoError(t, e.repos.Users.Create(ctx, u))
	return u
}

// profile creates a user with no login.
func (e *testEnv) profile(t *testing.T, name string, role domain.Role) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name, testutil.WithRole(role), testutil.WithRates(20, 50))
	require.NoError(t, e.repos.Users.Create(context.Background(), u))
	return u
}

func (e *testEnv) task(t *testing.T, name string) *domain.Task {
	t.Helper()
	ctx := context.Background()
	p := testutil.NewTestProject("Portal " + name)
	require.NoError(t, e.repos.Projects.Create(ctx, p))
	task := testutil.NewTestTask(p.ID, name, testutil.WithEstimatedHours(10))
	require.NoError(t, e.repos.Tasks.Create(ctx, task))
	return task
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

func TestCommands_RequireSession(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "project", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no has iniciado sesión")
}

func TestCommands_RequireActivatedProfile(t *testing.T) {
	env := testApp(t)
	_, err := env.app.Auth.SignUp(context.Background(), "nuevo@datenova.test", testPassword)
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "task", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth activate")
}

func TestAuthLoginAndWhoAmI(t *testing.T) {
	env := testApp(t)
	admin := env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)
	_, err := executeCmd(t, env.app, "auth", "logout")
	require.NoError(t, err)

	output, err := executeCmd(t, env.app, "auth", "login", "--email", admin.Email, "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, output, "Bienvenido, Ana Admin")

	output, err = executeCmd(t, env.app, "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, output, admin.Email)
	assert.Contains(t, output, domain.RoleSuperAdmin.Label())
}

func TestAuthLogin_NonInteractiveNeedsPasswordFlag(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "auth", "login", "--email", "x@datenova.test")
	assert.ErrorIs(t, err, errNoPrompt)
}

func TestCompanyAndProjectFlow(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)

	output, err := executeCmd(t, env.app, "company", "add", "--name", "Acme SAS", "--email", "hola@acme.co")
	require.NoError(t, err)
	assert.Contains(t, output, "Empresa Acme SAS creada")
	assert.Contains(t, output, "Empresa creada", "toast is printed")

	output, err = executeCmd(t, env.app, "project", "add",
		"--name", "Portal clientes", "--company", "acme sas", "--start", "2025-01-01", "--end", "2025-06-30", "--budget", "5000")
	require.NoError(t, err)
	assert.Contains(t, output, "Proyecto Portal clientes creado")

	output, err = executeCmd(t, env.app, "project", "show", "Portal clientes")
	require.NoError(t, err)
	assert.Contains(t, output, "Acme SAS")
	assert.Contains(t, output, "$5.000")

	_, err = executeCmd(t, env.app, "project", "edit", "Portal clientes", "--status", "in_progress")
	require.NoError(t, err)

	output, err = executeCmd(t, env.app, "project", "list", "--status", "in_progress")
	require.NoError(t, err)
	assert.Contains(t, output, "Portal clientes")
}

func TestProjectAdd_RejectsEndBeforeStart(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)

	_, err := executeCmd(t, env.app, "project", "add",
		"--name", "Portal", "--start", "2025-06-01", "--end", "2025-01-01")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestCompanyAdd_ForbiddenForDeveloper(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Dana Dev", domain.RoleDeveloper)

	_, err := executeCmd(t, env.app, "company", "add", "--name", "Acme SAS")
	require.Error(t, err)
	assert.Equal(t, domain.CodeInsufficientPrivilege, domain.CodeOf(err))
}

func TestTaskAddAssignsByName(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)
	dev := env.profile(t, "Diego Dev", domain.RoleDeveloper)
	p := testutil.NewTestProject("Portal")
	require.NoError(t, env.repos.Projects.Create(context.Background(), p))

	output, err := executeCmd(t, env.app, "task", "add",
		"--project", p.ID[:8], "--name", "Diseñar login", "--hours", "6", "--assign", "diego dev")
	require.NoError(t, err)
	assert.Contains(t, output, "Tarea Diseñar login creada")

	tasks, err := env.repos.Tasks.List(context.Background(), repository.TaskQuery{ProjectID: p.ID})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	ids, err := env.repos.Assignments.ListUserIDs(context.Background(), tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{dev.ID}, ids)

	output, err = executeCmd(t, env.app, "task", "list", "--assignee", dev.Email)
	require.NoError(t, err)
	assert.Contains(t, output, "Diseñar login")
	assert.Contains(t, output, "Diego Dev")
}

func TestTaskAssign_ClearsAssignees(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)
	dev := env.profile(t, "Diego Dev", domain.RoleDeveloper)
	task := env.task(t, "Integrar pagos")

	_, err := executeCmd(t, env.app, "task", "assign", task.ID, dev.ID)
	require.NoError(t, err)
	_, err = executeCmd(t, env.app, "task", "assign", task.ID)
	require.NoError(t, err)

	got, err := env.repos.Tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ResponsibleID)
	ids, err := env.repos.Assignments.ListUserIDs(context.Background(), task.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestTaskAssign_ClientForbidden(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Carla Cliente", domain.RoleClient)
	task := env.task(t, "Integrar pagos")

	_, err := executeCmd(t, env.app, "task", "assign", task.ID)
	require.Error(t, err)
	assert.Equal(t, domain.CodeInsufficientPrivilege, domain.CodeOf(err))
}

func TestTimeLogAndDashboard(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Diego Dev", domain.RoleDeveloper)
	task := env.task(t, "Integrar pagos")

	output, err := executeCmd(t, env.app, "time", "log",
		"--task", "integrar pagos", "--hours", "3", "--date", "2025-03-09", "-d", "Implementé el webhook de pagos")
	require.NoError(t, err)
	assert.Contains(t, output, "3 h registradas")

	got, err := env.repos.Tasks.GetByID(context.Background(), task.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, got.RealHours, 0.001)

	output, err = executeCmd(t, env.app, "time", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "Implementé el webhook")

	output, err = executeCmd(t, env.app, "dashboard")
	require.NoError(t, err)
	assert.Contains(t, output, "Facturación Total")
	assert.Contains(t, output, "$150")
	assert.Contains(t, output, "$60")
}

func TestTimeLog_RejectsShortDescription(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Diego Dev", domain.RoleDeveloper)
	task := env.task(t, "Integrar pagos")

	_, err := executeCmd(t, env.app, "time", "log", "--task", task.ID, "--hours", "2", "-d", "corto")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestDeliverableApprovalFlow(t *testing.T) {
	env := testApp(t)
	dev := env.signIn(t, "Diego Dev", domain.RoleDeveloper)
	task := env.task(t, "Integrar pagos")
	path := filepath.Join(t.TempDir(), "manual.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0o600))

	output, err := executeCmd(t, env.app, "deliverable", "add",
		"--task", task.ID, "--name", "Manual de usuario", "--type", "manual", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, output, "Entregable Manual de usuario creado")

	_, err = executeCmd(t, env.app, "deliverable", "review", "Manual de usuario")
	require.NoError(t, err)

	client := env.signIn(t, "Carla Cliente", domain.RoleClient)
	_, err = executeCmd(t, env.app, "deliverable", "reject", "Manual de usuario")
	require.Error(t, err, "rejection without comments")

	output, err = executeCmd(t, env.app, "deliverable", "approve", "Manual de usuario", "-m", "Perfecto")
	require.NoError(t, err)
	assert.Contains(t, output, "Entregable aprobado")

	items, err := env.repos.Deliverables.List(context.Background(), repository.DeliverableQuery{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, domain.DeliverableApproved, items[0].Status)
	assert.Equal(t, client.ID, domain.StrOrEmpty(items[0].ApprovedBy))

	inbox, err := env.app.Notifications.LoadInbox(context.Background(), dev.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, inbox.Unread)
}

func TestDeliverableVersionAndHistory(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Diego Dev", domain.RoleDeveloper)
	task := env.task(t, "Integrar pagos")
	dir := t.TempDir()
	first := filepath.Join(dir, "api-v1.zip")
	require.NoError(t, os.WriteFile(first, []byte("v1"), 0o600))
	path := filepath.Join(dir, "api.zip")
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte("x"), 2000), 0o600))

	_, err := executeCmd(t, env.app, "deliverable", "add", "--task", task.ID, "--name", "API REST", "--type", "code", "-f", first)
	require.NoError(t, err)

	output, err := executeCmd(t, env.app, "deliverable", "version", "API REST",
		"--file", path, "--version", "1.1", "--notes", "Corrige paginación")
	require.NoError(t, err)
	assert.Contains(t, output, "Versión 1.1 subida (2.0 kB)")

	output, err = executeCmd(t, env.app, "deliverable", "history", "API REST")
	require.NoError(t, err)
	assert.Contains(t, output, "1.1")
	assert.Contains(t, output, "api.zip")
}

func TestInviteSendPrintsMailto(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)

	_, err := executeCmd(t, env.app, "invite", "add", "--email", "Nuevo@Datenova.test", "--role", "desarrollador")
	require.NoError(t, err)

	output, err := executeCmd(t, env.app, "invite", "send", "nuevo@datenova.test")
	require.NoError(t, err)
	assert.Contains(t, output, "mailto:nuevo@datenova.test?subject=")
	assert.Contains(t, output, "DEVELOPER")

	output, err = executeCmd(t, env.app, "invite", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "nuevo@datenova.test")
}

func TestActivateFromInvitation(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)
	_, err := executeCmd(t, env.app, "invite", "add", "--email", "nuevo@datenova.test", "--role", "advisor")
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "auth", "signup", "--email", "nuevo@datenova.test", "--password", "temporal123")
	require.NoError(t, err)

	output, err := executeCmd(t, env.app, "auth", "activate",
		"--name", "Nora Nueva", "--password", "definitiva1", "--confirm", "definitiva1")
	require.NoError(t, err)
	assert.Contains(t, output, "Cuenta activada: Nora Nueva")

	output, err = executeCmd(t, env.app, "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, output, "Nora Nueva")
	assert.Contains(t, output, domain.RoleAdvisor.Label())
}

type stubPrompter struct {
	activation ActivationInput
	confirm    bool
	asked      []string
}

func (p *stubPrompter) Password(title string) (string, error) {
	p.asked = append(p.asked, title)
	return testPassword, nil
}

func (p *stubPrompter) Activation(in *ActivationInput) error {
	p.asked = append(p.asked, "activation")
	*in = p.activation
	return nil
}

func (p *stubPrompter) Confirm(title string) (bool, error) {
	p.asked = append(p.asked, title)
	return p.confirm, nil
}

func TestActivate_PromptsWhenInteractive(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)
	_, err := executeCmd(t, env.app, "invite", "add", "--email", "nuevo@datenova.test")
	require.NoError(t, err)
	_, err = env.app.Auth.SignUp(context.Background(), "nuevo@datenova.test", "temporal123")
	require.NoError(t, err)

	prompter := &stubPrompter{activation: ActivationInput{Name: "Nora Nueva", Password: "definitiva1", Confirm: "definitiva1"}}
	env.app.Prompter = prompter
	env.app.IsInteractive = func() bool { return true }

	output, err := executeCmd(t, env.app, "auth", "activate")
	require.NoError(t, err)
	assert.Equal(t, []string{"activation"}, prompter.asked)
	assert.Contains(t, output, "Cuenta activada")
}

func TestRemove_DeclinedConfirmationKeepsRecord(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)
	task := env.task(t, "Integrar pagos")
	env.app.Prompter = &stubPrompter{confirm: false}
	env.app.IsInteractive = func() bool { return true }

	_, err := executeCmd(t, env.app, "task", "rm", task.ID)
	require.NoError(t, err)
	_, err = env.repos.Tasks.GetByID(context.Background(), task.ID)
	assert.NoError(t, err)

	_, err = executeCmd(t, env.app, "task", "rm", task.ID, "--yes")
	require.NoError(t, err)
	_, err = env.repos.Tasks.GetByID(context.Background(), task.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserEdit_SuperAdminOnly(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)
	dev := env.profile(t, "Diego Dev", domain.RoleDeveloper)

	output, err := executeCmd(t, env.app, "user", "edit", "Diego Dev", "--role", "apoyo", "--billable-rate", "80")
	require.NoError(t, err)
	assert.Contains(t, output, domain.RoleSupport.Label())

	got, err := env.repos.Users.GetByID(context.Background(), dev.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupport, got.Role)
	assert.InDelta(t, 80.0, got.BillableRate, 0.001)
}

func TestNotificationReadAll(t *testing.T) {
	env := testApp(t)
	me := env.signIn(t, "Diego Dev", domain.RoleDeveloper)
	ctx := context.Background()
	require.NoError(t, env.repos.Notifications.Create(ctx, testutil.NewTestNotification(me.ID, "Nueva tarea")))
	require.NoError(t, env.repos.Notifications.Create(ctx, testutil.NewTestNotification(me.ID, "Entregable aprobado")))

	output, err := executeCmd(t, env.app, "notification", "list")
	require.NoError(t, err)
	assert.Contains(t, output, "2 sin leer")

	output, err = executeCmd(t, env.app, "notification", "read", "--all")
	require.NoError(t, err)
	assert.Contains(t, output, "2 notificación(es)")

	count, err := env.repos.Notifications.UnreadCount(ctx, me.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestNotificationWatch_PrintsLines(t *testing.T) {
	env := testApp(t)
	me := env.signIn(t, "Diego Dev", domain.RoleDeveloper)
	hub := env.app.Notifications.Hub()

	var (
		output string
		runErr error
		wg     sync.WaitGroup
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		output, runErr = executeCmd(t, env.app, "notification", "watch", "--for", "500ms")
	}()

	require.Eventually(t, func() bool { return hub.Len() > 0 }, time.Second, 5*time.Millisecond)
	require.NoError(t, env.app.Notifications.Notify(context.Background(), &domain.Notification{
		UserID: me.ID, Title: "Nueva tarea asignada", Message: "Integrar pagos",
	}))
	wg.Wait()

	require.NoError(t, runErr)
	assert.Contains(t, output, "Nueva tarea asignada")
	assert.Contains(t, output, "Integrar pagos")
}

func TestFlushMetrics_WritesTextfile(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)
	env.app.MetricsFile = filepath.Join(t.TempDir(), "metrics", "datenova.prom")
	_, err := executeCmd(t, env.app, "project", "list")
	require.NoError(t, err)

	require.NoError(t, env.app.FlushMetrics())

	f, err := os.Open(env.app.MetricsFile)
	require.NoError(t, err)
	defer f.Close()
	var parser expfmt.TextParser
	families, err := parser.TextToMetricFamilies(f)
	require.NoError(t, err)
	total, ok := families["datenova_use_case_total"]
	require.True(t, ok)
	var listed float64
	for _, m := range total.GetMetric() {
		labels := map[string]string{}
		for _, l := range m.GetLabel() {
			labels[l.GetName()] = l.GetValue()
		}
		if labels["use_case"] == "list-projects" && labels["success"] == "true" {
			listed = m.GetCounter().GetValue()
		}
	}
	assert.Equal(t, 1.0, listed)
}

func TestFlushMetrics_DisabledWithoutFile(t *testing.T) {
	env := testApp(t)
	assert.NoError(t, env.app.FlushMetrics())
}

func TestServeMetrics(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)
	_, err := executeCmd(t, env.app, "company", "list")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	addr, err := serveMetrics(ctx, "127.0.0.1:0", env.app.Metrics)
	require.NoError(t, err)

	resp, err := http.Get("http://" + addr + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `datenova_use_case_total{success="true",use_case="list-companies"} 1`)
}

func TestNotificationWatch_MetricsAddrInUse(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Diego Dev", domain.RoleDeveloper)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	_, err = executeCmd(t, env.app, "notification", "watch", "--for", "10ms", "--metrics-addr", ln.Addr().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listening for metrics")
}

func TestResolveID(t *testing.T) {
	type item struct{ id, name string }
	items := []item{{"abc123", "Portal"}, {"abd456", "Portal móvil"}, {"xyz789", "API"}}
	id := func(i item) string { return i.id }
	name := func(i item) string { return i.name }

	got, err := resolveID("proyecto", "xyz789", items, id, name)
	require.NoError(t, err)
	assert.Equal(t, "xyz789", got)

	got, err = resolveID("proyecto", "portal", items, id, name)
	require.NoError(t, err)
	assert.Equal(t, "abc123", got, "names match case-insensitively")

	got, err = resolveID("proyecto", "abd", items, id, name)
	require.NoError(t, err)
	assert.Equal(t, "abd456", got)

	_, err = resolveID("proyecto", "ab", items, id, name)
	assert.ErrorContains(t, err, "ambiguo")

	_, err = resolveID("proyecto", "nope", items, id, name)
	assert.ErrorContains(t, err, "no encontrado")
}

func TestEnumFlags_RejectUnknownValues(t *testing.T) {
	env := testApp(t)
	env.signIn(t, "Ana Admin", domain.RoleSuperAdmin)

	_, err := executeCmd(t, env.app, "task", "list", "--status", "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pending | in_progress | completed")

	_, err = executeCmd(t, env.app, "invite", "add", "--email", "x@datenova.test", "--role", "jefe")
	assert.Error(t, err)
}
