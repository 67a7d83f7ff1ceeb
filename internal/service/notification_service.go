package service

import (
	"context"

	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/domain"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/feed"
	"github.com/CarlosGonzalez2025/DateNova-Control-Proyectos/internal/repository"
	"github.com/google/uuid"
)

// InboxSize is how many notifications the inbox shows.
const InboxSize = 10

type NotificationService struct {
	*base
}

func (s *NotificationService) ListRecent(ctx context.Context, userID string) ([]*domain.Notification, error) {
	return s.repos.Notifications.ListRecent(ctx, userID, InboxSize)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repos.Notifications.UnreadCount(ctx, userID)
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) (err error) {
	uc := s.begin("mark-notification-read", map[string]any{"notification_id": id})
	defer func() { s.end(ctx, uc, err) }()
	return s.repos.Notifications.MarkRead(ctx, id)
}

// MarkAllRead marks the user's currently unread notifications as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) (count int, err error) {
	uc := s.begin("mark-all-notifications-read", map[string]any{"user_id": userID})
	defer func() { s.end(ctx, uc, err) }()

	ids, err := s.repos.Notifications.ListUnreadIDs(ctx, userID)
	if err != nil {
		return 0, err
	}
	uc.fields["count"] = len(ids)
	if len(ids) == 0 {
		return 0, nil
	}
	return len(ids), s.repos.Notifications.MarkRead(ctx, ids...)
}

// Notify stores a notification and publishes it to live subscribers.
func (s *NotificationService) Notify(ctx context.Context, n *domain.Notification) (err error) {
	uc := s.begin("notify", map[string]any{"user_id": n.UserID, "type": string(n.Type)})
	defer func() { s.end(ctx, uc, err) }()

	if n.UserID == "" {
		return domain.Invalid("user_id", "Destinatario es obligatorio")
	}
	if _, err = s.insert(ctx, s.repos, n); err != nil {
		return err
	}
	s.publish(n)
	return nil
}

func (s *NotificationService) insert(ctx context.Context, repos *repository.Set, n *domain.Notification) (*domain.Notification, error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.Type == "" {
		n.Type = domain.NotifyInfo
	}
	n.Read = false
	n.CreatedAt = s.clock()
	if err := repos.Notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

func (s *NotificationService) publish(ns ...*domain.Notification) {
	for _, n := range ns {
		s.hub.Publish(feed.NotificationEvent(n))
	}
}

// Watch delivers the user's new notifications to fn until ctx is done or the
// subscription is cancelled.
func (s *NotificationService) Watch(ctx context.Context, userID string, fn func(*domain.Notification)) *feed.Subscription {
	sub := s.hub.Subscribe(feed.Filter{
		Table: feed.NotificationsTable,
		Event: feed.EventInsert,
		Match: map[string]string{"user_id": userID},
	}, func(e feed.Event) {
		if n, ok := e.Row.(*domain.Notification); ok {
			fn(n)
		}
	})
	go func() {
		<-ctx.Done()
		sub.Unsubscribe()
	}()
	return sub
}

// Hub exposes the change feed the service publishes to.
func (s *NotificationService) Hub() *feed.Hub { return s.hub }

// Inbox is the live view of a user's notifications.
type Inbox struct {
	Items  []*domain.Notification
	Unread int
}

// LoadInbox reads the recent notifications and the unread counter.
func (s *NotificationService) LoadInbox(ctx context.Context, userID string) (*Inbox, error) {
	items, err := s.ListRecent(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.UnreadCount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Inbox{Items: items, Unread: unread}, nil
}

// Add prepends n and bumps the unread counter. Repeated deliveries of the
// same notification are added again.
func (in *Inbox) Add(n *domain.Notification) {
	in.Items = append([]*domain.Notification{n}, in.Items...)
	if !n.Read {
		in.Unread++
	}
}
