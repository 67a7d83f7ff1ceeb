// Package service holds one service per area of the product. Services
// validate input, enforce role gates, drive the repositories and storage,
// and report each use case to the observer and the toast dispatcher.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/config"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/db"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/feed"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/storage"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/toast"
)

// Deps wires the services to their backends.
type Deps struct {
	Repos *repository.Set
	// UoW runs transactional writes. It is required unless Mode is sequential.
	UoW       db.UnitOfWork
	Mode      config.WriteMode
	Store     storage.Store
	Hub       *feed.Hub
	Toasts    *toast.Dispatcher
	Auth      Authenticator
	Observers []UseCaseObserver
	Now       func() time.Time
	InviteTTL time.Duration
	AppURL    string
}

// Services groups every service built from one Deps.
type Services struct {
	Companies     *CompanyService
	Projects      *ProjectService
	Users         *UserService
	Tasks         *TaskService
	TimeLogs      *TimeLogService
	Deliverables  *DeliverableService
	Invitations   *InvitationService
	Notifications *NotificationService
	Dashboard     *DashboardService
	Session       *SessionService
}

func New(d Deps) *Services {
	b := newBase(d)
	notifications := &NotificationService{base: b}
	return &Services{
		Companies:     &CompanyService{base: b},
		Projects:      &ProjectService{base: b},
		Users:         &UserService{base: b},
		Tasks:         &TaskService{base: b, notifications: notifications},
		TimeLogs:      &TimeLogService{base: b},
		Deliverables:  &DeliverableService{base: b, notifications: notifications},
		Invitations:   &InvitationService{base: b},
		Notifications: notifications,
		Dashboard:     &DashboardService{base: b},
		Session:       &SessionService{base: b},
	}
}

type base struct {
	repos     *repository.Set
	uow       db.UnitOfWork
	mode      config.WriteMode
	store     storage.Store
	hub       *feed.Hub
	toasts    *toast.Dispatcher
	auth      Authenticator
	observer  UseCaseObserver
	now       func() time.Time
	inviteTTL time.Duration
	appURL    string
}

func newBase(d Deps) *base {
	b := &base{
		repos:     d.Repos,
		uow:       d.UoW,
		mode:      d.Mode,
		store:     d.Store,
		hub:       d.Hub,
		toasts:    d.Toasts,
		auth:      d.Auth,
		observer:  useCaseObserverOrNoop(d.Observers),
		now:       d.Now,
		inviteTTL: d.InviteTTL,
		appURL:    d.AppURL,
	}
	if b.mode == "" {
		b.mode = config.WriteTransactional
	}
	if b.hub == nil {
		b.hub = feed.NewHub()
	}
	if b.toasts == nil {
		b.toasts = toast.New(nil)
	}
	if b.now == nil {
		b.now = time.Now
	}
	return b
}

func (b *base) clock() time.Time { return b.now().UTC() }

// write runs fn against tx-scoped repositories in transactional mode, or
// against the injected repositories with no transaction in sequential mode.
// Inside fn only the given set may be used.
func (b *base) write(ctx context.Context, fn func(ctx context.Context, repos *repository.Set) error) error {
	if b.mode == config.WriteSequential {
		return fn(ctx, b.repos)
	}
	if b.uow == nil {
		return errors.New("transactional write mode requires a unit of work")
	}
	return b.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, repository.NewSet(tx))
	})
}

func (b *base) transactional() bool { return b.mode != config.WriteSequential }

type useCase struct {
	name    string
	started time.Time
	fields  map[string]any
	// success and detail are published as a success toast when set.
	success string
	detail  string
}

func (b *base) begin(name string, fields map[string]any) *useCase {
	if fields == nil {
		fields = map[string]any{}
	}
	return &useCase{name: name, started: time.Now(), fields: fields}
}

func (uc *useCase) toast(title, detail string) *useCase {
	uc.success, uc.detail = title, detail
	return uc
}

// end reports the use case and publishes its toast. Failures go through the
// dispatcher's error handling.
func (b *base) end(ctx context.Context, uc *useCase, err error) {
	b.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      uc.name,
		StartedAt: uc.started,
		Duration:  time.Since(uc.started),
		Success:   err == nil,
		Err:       err,
		Fields:    uc.fields,
	})
	if err != nil {
		b.toasts.HandleError(ctx, err)
		return
	}
	if uc.success != "" {
		b.toasts.Success(uc.success, uc.detail)
	}
}

func requireActor(actor *domain.User) error {
	if actor == nil {
		return domain.Forbidden("Debes iniciar sesión")
	}
	return nil
}
