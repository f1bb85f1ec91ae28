package messaging

const (
	ExchangeName = "blog.events"

	SubscriptionCreatedKey       = "subscription.created"
	SubscriptionReactivatedKey   = "subscription.reactivated"
	SubscriptionStatusChangedKey = "subscription.status_changed"
	SubscriptionUnsubscribedKey  = "subscription.unsubscribed"
	SubscriptionDeletedKey       = "subscription.deleted"

	PostCreatedKey = "post.created"
	PostDeletedKey = "post.deleted"
)
