// Package auth implements the password auth backend: identities with bcrypt
// hashes, HS256 session tokens, a per-e-mail sign-in throttle and auth-state
// change subscriptions.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/validation"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"
)

type Event string

const (
	EventSignedIn    Event = "SIGNED_IN"
	EventSignedOut   Event = "SIGNED_OUT"
	EventUserUpdated Event = "USER_UPDATED"
)

// Session is an authenticated identity plus its signed token.
type Session struct {
	AccessToken string
	IdentityID  string
	Email       string
	ExpiresAt   time.Time
}

type Options struct {
	Secret     []byte
	SessionTTL time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	// SignInBurst and SignInEvery configure the per-e-mail sign-in bucket.
	SignInBurst int
	SignInEvery time.Duration
	Store       TokenStore
	Now         func() time.Time
}

// Service is the auth port.
type Service struct {
	identities repository.IdentityRepo
	secret     []byte
	ttl        time.Duration
	cost       int
	store      TokenStore
	now        func() time.Time

	burst int
	every time.Duration

	mu        sync.Mutex
	limiters  map[string]*rate.Limiter
	nextSubID int
	listeners []listener
}

type listener struct {
	id int
	fn func(Event, *Session)
}

func New(identities repository.IdentityRepo, opts Options) (*Service, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("auth secret is not configured")
	}
	s := &Service{
		identities: identities,
		secret:     opts.Secret,
		ttl:        opts.SessionTTL,
		cost:       opts.BcryptCost,
		store:      opts.Store,
		now:        opts.Now,
		burst:      opts.SignInBurst,
		every:      opts.SignInEvery,
		limiters:   map[string]*rate.Limiter{},
	}
	if s.ttl <= 0 {
		s.ttl = 24 * time.Hour
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	if s.store == nil {
		s.store = &MemoryTokenStore{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.burst <= 0 {
		s.burst = 5
	}
	if s.every <= 0 {
		s.every = 12 * time.Second
	}
	return s, nil
}

func authError(code, message string) *domain.Error {
	return &domain.Error{Kind: domain.ErrRemoteOperationFailed, Code: code, Message: message}
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }

func checkEmail(email string) error {
	if msg := validation.ValidateField(email, []validation.Rule{validation.Required("Email"), validation.Email()}); msg != "" {
		return authError(domain.CodeAuthInvalidEmail, msg)
	}
	return nil
}

func checkPassword(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return authError(domain.CodeAuthWeakPassword, fmt.Sprintf("Password should be at least %d characters", MinPasswordLength))
	}
	return nil
}

// SignUp creates an identity and signs it in.
func (s *Service) SignUp(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	if err := checkPassword(password); err != nil {
		return nil, err
	}
	if _, err := s.identities.GetByEmail(ctx, email); err == nil {
		return nil, authError(domain.CodeAuthEmailInUse, "User already registered")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return nil, domain.Remote("", fmt.Errorf("hashing password: %w", err))
	}
	now := s.now().UTC()
	identity := &domain.Identity{ID: uuid.NewString(), Email: email, PasswordHash: hash, CreatedAt: now, UpdatedAt: now}
	if err := s.identities.Create(ctx, identity); err != nil {
		if domain.CodeOf(err) == domain.CodeUniqueViolation {
			return nil, authError(domain.CodeAuthEmailInUse, "User already registered")
		}
		return nil, err
	}
	return s.startSession(identity)
}

// SignInWithPassword checks the credentials and starts a session. Each
// e-mail has its own token bucket; an empty bucket refuses the attempt
// before the password is checked.
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	email = normalizeEmail(email)
	if err := checkEmail(email); err != nil {
		return nil, err
	}
	if !s.limiter(email).AllowN(s.now(), 1) {
		return nil, authError(domain.CodeAuthTooManyRequests, "Too many sign-in attempts")
	}
	identity, err := s.identities.GetByEmail(ctx, email)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, authError(domain.CodeAuthUserNotFound, "Invalid login credentials")
	}
	if err != nil {
		return nil, err
	}
	if err := VerifyPassword(identity.PasswordHash, password); err != nil {
		return nil, authError(domain.CodeAuthWrongPassword, "Invalid login credentials")
	}
	return s.startSession(identity)
}

func (s *Service) limiter(email string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()
	lim, ok := s.limiters[email]
	if !ok {
		lim = rate.NewLimiter(rate.Every(s.every), s.burst)
		s.limiters[email] = lim
	}
	return lim
}

func (s *Service) startSession(identity *domain.Identity) (*Session, error) {
	now := s.now().UTC()
	token, err := signToken(s.secret, identity.ID, identity.Email, now, s.ttl)
	if err != nil {
		return nil, domain.Remote("", err)
	}
	if err := s.store.Save(token); err != nil {
		return nil, domain.Remote("", fmt.Errorf("saving session: %w", err))
	}
	session := &Session{AccessToken: token, IdentityID: identity.ID, Email: identity.Email, ExpiresAt: now.Add(s.ttl)}
	s.emit(EventSignedIn, session)
	return session, nil
}

// GetSession returns the current session, or nil when nobody is signed in
// or the stored token is no longer valid.
func (s *Service) GetSession(ctx context.Context) (*Session, error) {
	token, err := s.store.Load()
	if err != nil {
		return nil, domain.Remote("", fmt.Errorf("loading session: %w", err))
	}
	if token == "" {
		return nil, nil
	}
	claims, err := parseToken(s.secret, token, s.now)
	if err != nil {
		return nil, nil
	}
	return &Session{
		AccessToken: token,
		IdentityID:  claims.Subject,
		Email:       claims.Email,
		ExpiresAt:   claims.ExpiresAt.Time,
	}, nil
}

// GetUser returns the identity of the current session.
func (s *Service) GetUser(ctx context.Context) (*domain.Identity, error) {
	session, err := s.GetSession(ctx)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, authError(domain.CodeAuthUserNotFound, "Auth session missing")
	}
	return s.identities.GetByID(ctx, session.IdentityID)
}

// SignOut forgets the current session.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.store.Clear(); err != nil {
		return domain.Remote("", fmt.Errorf("clearing session: %w", err))
	}
	s.emit(EventSignedOut, nil)
	return nil
}

// UpdatePassword replaces the current identity's password.
func (s *Service) UpdatePassword(ctx context.Context, password string) error {
	if err := checkPassword(password); err != nil {
		return err
	}
	session, err := s.GetSession(ctx)
	if err != nil {
		return err
	}
	if session == nil {
		return authError(domain.CodeAuthUserNotFound, "Auth session missing")
	}
	hash, err := HashPassword(password, s.cost)
	if err != nil {
		return domain.Remote("", fmt.Errorf("hashing password: %w", err))
	}
	if err := s.identities.UpdatePassword(ctx, session.IdentityID, hash, s.now().UTC()); err != nil {
		return err
	}
	s.emit(EventUserUpdated, session)
	return nil
}

// Subscription is returned by OnAuthStateChange.
type Subscription struct {
	unsubscribe func()
	once        sync.Once
}

func (sub *Subscription) Unsubscribe() { sub.once.Do(sub.unsubscribe) }

// OnAuthStateChange registers fn for sign-in, sign-out and user updates.
func (s *Service) OnAuthStateChange(fn func(Event, *Session)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return &Subscription{unsubscribe: func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, l := range s.listeners {
			if l.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}}
}

func (s *Service) emit(event Event, session *Session) {
	s.mu.Lock()
	fns := make([]func(Event, *Session), len(s.listeners))
	for i, l := range s.listeners {
		fns[i] = l.fn
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(event, session)
	}
}
