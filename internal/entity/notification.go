package entity

import (
	"time"

	"github.com/google/uuid"
)

type NotificationType string

const (
	NotificationRenewal NotificationType = "renewal"
	NotificationUpdate  NotificationType = "update"
	NotificationInfo    NotificationType = "info"
)

// Notification is a transient, session-scoped record. It has two states:
// active (present in the list) and dismissed (removed). There is no
// read/unread flag.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Date      time.Time        `json:"date"`
	RelatedID *uuid.UUID       `json:"related_id,omitempty"`
}
