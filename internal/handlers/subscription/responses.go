package subscription

import "github.com/Nazarious-ucu/blog-newsletter-api/internal/models"

type SubscriptionResponse struct {
	Success bool                `json:"success" example:"true"`
	Msg     string              `json:"msg"`
	Data    models.Subscription `json:"data"`
}

// ListResponse is one page of subscriptions plus the status totals.
type ListResponse struct {
	Success    bool                  `json:"success" example:"true"`
	Data       []models.Subscription `json:"data"`
	Pagination models.Pagination     `json:"pagination"`
	Stats      models.StatusStats    `json:"stats"`
}
