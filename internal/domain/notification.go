package domain

import "time"

type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      NotificationType
	Link      *string
	Read      bool
	CreatedAt time.Time
}
