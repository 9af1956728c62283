package domain

import "time"

// NewsletterSubscriber is an email address signed up for product updates.
type NewsletterSubscriber struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
