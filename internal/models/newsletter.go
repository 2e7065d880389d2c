package models

import (
	"time"
)

// NewsletterSubscription is keyed by email through a unique index; a
// subscription is soft-deactivated on unsubscribe, never removed.
type NewsletterSubscription struct {
	ID             string     `bson:"_id" json:"id"`
	Email          string     `bson:"email" json:"email"`
	IsActive       bool       `bson:"is_active" json:"is_active"`
	SubscribedAt   time.Time  `bson:"subscribed_at" json:"subscribed_at"`
	UnsubscribedAt *time.Time `bson:"unsubscribed_at,omitempty" json:"unsubscribed_at,omitempty"`
}
