package feed

import (
	"context"
	"time"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const NotificationsTable = "notifications"

// NotificationLister is the slice of the notification repository the
// polling source reads from.
type NotificationLister interface {
	ListSince(ctx context.Context, since time.Time) ([]*domain.Notification, error)
}

// NotificationEvent builds the insert event for n.
func NotificationEvent(n *domain.Notification) Event {
	return Event{
		Table: NotificationsTable,
		Type:  EventInsert,
		Row:   n,
		Record: map[string]any{
			"id":      n.ID,
			"user_id": n.UserID,
			"type":    string(n.Type),
			"title":   n.Title,
			"is_read": n.Read,
		},
	}
}

// Source polls the notifications table and publishes rows created after its
// watermark as insert events.
type Source struct {
	repo     NotificationLister
	hub      *Hub
	interval time.Duration

	watermark time.Time
	// seen holds the IDs already published at the watermark instant.
	seen map[string]bool

	polls      prometheus.Counter
	pollErrors prometheus.Counter
	published  prometheus.Counter
}

// NewSource starts watching from since; rows created before it are never
// published. Stored timestamps keep microseconds, so since is truncated to
// match them.
func NewSource(repo NotificationLister, hub *Hub, interval time.Duration, since time.Time) *Source {
	if interval <= 0 {
		interval = time.Second
	}
	return &Source{
		repo:       repo,
		hub:        hub,
		interval:   interval,
		watermark:  since.Truncate(time.Microsecond),
		seen:       map[string]bool{},
		polls:      prometheus.NewCounter(prometheus.CounterOpts{Name: "datenova_feed_polls_total", Help: "Notification feed polls."}),
		pollErrors: prometheus.NewCounter(prometheus.CounterOpts{Name: "datenova_feed_poll_errors_total", Help: "Notification feed polls that failed."}),
		published:  prometheus.NewCounter(prometheus.CounterOpts{Name: "datenova_feed_events_total", Help: "Notifications published to feed subscribers."}),
	}
}

// Register adds the source's poll counters to reg.
func (s *Source) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{s.polls, s.pollErrors, s.published} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Poll publishes every row not yet seen and returns how many were published.
func (s *Source) Poll(ctx context.Context) (int, error) {
	s.polls.Inc()
	rows, err := s.repo.ListSince(ctx, s.watermark)
	if err != nil {
		s.pollErrors.Inc()
		return 0, err
	}
	published := 0
	for _, n := range rows {
		if n.CreatedAt.Before(s.watermark) {
			continue
		}
		if n.CreatedAt.Equal(s.watermark) && s.seen[n.ID] {
			continue
		}
		if n.CreatedAt.After(s.watermark) {
			s.watermark = n.CreatedAt
			s.seen = map[string]bool{}
		}
		s.seen[n.ID] = true
		s.hub.Publish(NotificationEvent(n))
		s.published.Inc()
		published++
	}
	return published, nil
}

// Run polls until ctx is cancelled. Poll errors are passed to onErr, which
// may be nil.
func (s *Source) Run(ctx context.Context, onErr func(error)) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		if _, err := s.Poll(ctx); err != nil && onErr != nil && ctx.Err() == nil {
			onErr(err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
