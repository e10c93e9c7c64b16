package domain

import (
	"errors"
	"time"
)

// Broadcast event names emitted on the notification bus.
const (
	EventNewNotification    = "newNotification"
	EventUpdateNotification = "updateNotification"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification is an ephemeral broadcast record. It is persisted for
// listing but delivery is fire-and-forget: listeners connected at emit
// time receive it, everyone else never will.
type Notification struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	UserID    string    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
