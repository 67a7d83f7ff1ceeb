// Package toast is the in-process publish/subscribe registry for transient
// user notifications and the lookup that turns errors into friendly messages.
package toast

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/oklog/ulid/v2"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
)

const (
	SuccessDuration = 4000 * time.Millisecond
	ErrorDuration   = 6000 * time.Millisecond
	WarningDuration = 5000 * time.Millisecond
	InfoDuration    = 4000 * time.Millisecond
)

// Action is an optional button attached to a toast.
type Action struct {
	Label   string
	OnClick func()
}

type Toast struct {
	ID       string
	Kind     Kind
	Title    string
	Message  string
	Duration time.Duration
	Action   *Action
}

// Listener receives every published toast.
type Listener func(Toast)

type subscriber struct {
	id int
	fn Listener
}

// Dispatcher fans toasts out to its listeners in subscription order.
// The zero value is not usable; create one with New.
type Dispatcher struct {
	mu     sync.Mutex
	nextID int
	subs   []subscriber
	logger *slog.Logger
}

// New creates a dispatcher. Remote errors passed to HandleError are logged
// to w; a nil w discards them.
func New(w io.Writer) *Dispatcher {
	if w == nil {
		w = io.Discard
	}
	return &Dispatcher{logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))}
}

// Subscribe registers fn and returns the function that removes it.
// Calling the returned function more than once is harmless.
func (d *Dispatcher) Subscribe(fn Listener) func() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	id := d.nextID
	d.subs = append(d.subs, subscriber{id: id, fn: fn})
	return func() {
		d.mu.Lock()
		defer d.mu.Unlock()
		for i, s := range d.subs {
			if s.id == id {
				d.subs = append(d.subs[:i:i], d.subs[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers t to a snapshot of the current listeners. Listeners run
// outside the lock, so they may subscribe or unsubscribe.
func (d *Dispatcher) Publish(t Toast) {
	d.mu.Lock()
	snapshot := make([]Listener, len(d.subs))
	for i, s := range d.subs {
		snapshot[i] = s.fn
	}
	d.mu.Unlock()
	for _, fn := range snapshot {
		fn(t)
	}
}

func (d *Dispatcher) emit(kind Kind, title, message string, duration time.Duration) Toast {
	t := Toast{
		ID:       "toast-" + ulid.Make().String(),
		Kind:     kind,
		Title:    title,
		Message:  message,
		Duration: duration,
	}
	d.Publish(t)
	return t
}

func (d *Dispatcher) Success(title, message string) Toast {
	return d.emit(KindSuccess, title, message, SuccessDuration)
}

func (d *Dispatcher) Error(title, message string) Toast {
	return d.emit(KindError, title, message, ErrorDuration)
}

func (d *Dispatcher) Warning(title, message string) Toast {
	return d.emit(KindWarning, title, message, WarningDuration)
}

func (d *Dispatcher) Info(title, message string) Toast {
	return d.emit(KindInfo, title, message, InfoDuration)
}

// HandleError logs err and publishes an error toast with its friendly message.
// Validation failures are shown under the validation title instead.
func (d *Dispatcher) HandleError(ctx context.Context, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, domain.ErrValidationFailed) {
		d.Error(ValidationTitle, domain.MessageOf(err))
		return
	}
	d.logger.ErrorContext(ctx, "remote_error", "code", domain.CodeOf(err), "error", err.Error())
	d.Error("Error", FriendlyMessage(err))
}

// Run executes op, publishing success on completion and routing any error
// through HandleError. An empty success message publishes nothing.
func Run[T any](ctx context.Context, d *Dispatcher, success string, op func(context.Context) (T, error)) (T, bool) {
	v, err := op(ctx)
	if err != nil {
		d.HandleError(ctx, err)
		var zero T
		return zero, false
	}
	if success != "" {
		d.Success(success, "")
	}
	return v, true
}

const ValidationTitle = "Error de validación"

// ShowValidationErrors publishes the first failure, noting how many more
// there were. It does nothing for an empty list.
func (d *Dispatcher) ShowValidationErrors(messages []string) {
	switch len(messages) {
	case 0:
		return
	case 1:
		d.Error(ValidationTitle, messages[0])
	case 2:
		d.Error(ValidationTitle, messages[0]+" (y 1 error más)")
	default:
		d.Error(ValidationTitle, fmt.Sprintf("%s (y %d errores más)", messages[0], len(messages)-1))
	}
}
