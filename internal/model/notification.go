package model

import "time"

// NotificationType tags what raised a notification
type NotificationType string

const (
	NotificationReminder NotificationType = "reminder"
	NotificationSystem   NotificationType = "system"
	NotificationAlert    NotificationType = "alert"
)

// NotificationTypes lists the recognized types
var NotificationTypes = []NotificationType{NotificationReminder, NotificationSystem, NotificationAlert}

// Known reports whether t is one of NotificationTypes
func (t NotificationType) Known() bool {
	for _, known := range NotificationTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Notification is one entry of a user's inbox
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
