package posts

import "github.com/Nazarious-ucu/blog-newsletter-api/internal/models"

type PostResponse struct {
	Success bool        `json:"success" example:"true"`
	Msg     string      `json:"msg,omitempty"`
	Data    models.Post `json:"data"`
}

type ListResponse struct {
	Success bool          `json:"success" example:"true"`
	Data    []models.Post `json:"data"`
	Count   int           `json:"count"`
}
