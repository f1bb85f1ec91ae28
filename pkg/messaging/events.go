package messaging

import "time"

type SubscriptionEvent struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Status         string    `json:"status"`
	UnsubscribeURL string    `json:"unsubscribeUrl,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

type PostEvent struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurredAt"`
}
