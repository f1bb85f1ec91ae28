package subscription

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/handlers"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
)

const timeoutDuration = 10 * time.Second

type subscriber interface {
	Subscribe(ctx context.Context, data models.UserSubData) (models.Subscription, bool, error)
	SetStatus(ctx context.Context, id string, status models.Status) (models.Subscription, error)
	UnsubscribeByToken(ctx context.Context, token, email string) (models.Subscription, error)
	List(ctx context.Context, q models.ListQuery) (models.SubscriptionPage, error)
	Delete(ctx context.Context, id string) (models.Subscription, error)
}

type Handler struct {
	Service  subscriber
	redirect string
	logger   zerolog.Logger
}

// NewHandler builds the subscription routes. redirect is where a successful
// unsubscribe link sends the browser.
func NewHandler(svc subscriber, redirect string, logger zerolog.Logger) *Handler {
	return &Handler{
		Service:  svc,
		redirect: redirect,
		logger:   logger.With().Str("component", "SubscriptionHandler").Logger(),
	}
}

// Subscribe
// @Summary Subscribe to the newsletter
// @Description Creates a subscription, or reactivates one that was unsubscribed.
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param body body models.UserSubData true "Subscriber e-mail"
// @Success 201 {object} SubscriptionResponse "new subscription"
// @Success 200 {object} SubscriptionResponse "reactivated subscription"
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /subscriptions [post]
func (h *Handler) Subscribe(c *gin.Context) {
	var userData models.UserSubData
	if err := c.ShouldBind(&userData); err != nil {
		h.logger.Debug().Err(err).Msg("failed to bind subscription")
		handlers.BadRequest(c, "Email is required")
		return
	}
	userData.IPAddress = handlers.ClientIP(c)
	userData.UserAgent = handlers.UserAgent(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	sub, created, err := h.Service.Subscribe(ctx, userData)
	if err != nil {
		handlers.Fail(c, h.logger, err)
		return
	}

	if !created {
		c.JSON(http.StatusOK, SubscriptionResponse{
			Success: true,
			Msg:     "Welcome back! Your subscription has been reactivated.",
			Data:    sub,
		})
		return
	}

	c.JSON(http.StatusCreated, SubscriptionResponse{
		Success: true,
		Msg:     "Successfully subscribed to newsletter!",
		Data:    sub,
	})
}

// List
// @Summary List subscriptions
// @Description Newest first, with pagination and per-status totals.
// @Tags subscriptions
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(50)
// @Param status query string false "Status filter" Enums(active, inactive, unsubscribed)
// @Param search query string false "E-mail substring"
// @Success 200 {object} ListResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /subscriptions [get]
func (h *Handler) List(c *gin.Context) {
	var q models.ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		handlers.BadRequest(c, "Invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	page, err := h.Service.List(ctx, q)
	if err != nil {
		handlers.Fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Success:    true,
		Data:       page.Items,
		Pagination: page.Pagination,
		Stats:      page.Stats,
	})
}

// UpdateStatus
// @Summary Change subscription status
// @Tags subscriptions
// @Accept json
// @Produce json
// @Param body body models.StatusChange true "Subscription ID and new status"
// @Success 200 {object} SubscriptionResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /subscriptions [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var change models.StatusChange
	if err := c.ShouldBindJSON(&change); err != nil {
		handlers.BadRequest(c, "ID and status are required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	sub, err := h.Service.SetStatus(ctx, change.ID, change.Status)
	if err != nil {
		handlers.Fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, SubscriptionResponse{
		Success: true,
		Msg:     "Subscription status updated successfully",
		Data:    sub,
	})
}

// Delete
// @Summary Delete a subscription
// @Tags subscriptions
// @Produce json
// @Param id query string true "Subscription ID"
// @Success 200 {object} SubscriptionResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /subscriptions [delete]
func (h *Handler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	sub, err := h.Service.Delete(ctx, c.Query("id"))
	if err != nil {
		handlers.Fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, SubscriptionResponse{
		Success: true,
		Msg:     "Subscription deleted successfully",
		Data:    sub,
	})
}

// Unsubscribe
// @Summary Unsubscribe through an e-mailed link
// @Description Verifies the token against the e-mail and redirects to the confirmation page.
// @Tags subscriptions
// @Param token query string true "Unsubscribe token"
// @Param email query string true "Subscriber e-mail"
// @Success 302
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /unsubscribe [get]
func (h *Handler) Unsubscribe(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	if _, err := h.Service.UnsubscribeByToken(ctx, c.Query("token"), c.Query("email")); err != nil {
		handlers.Fail(c, h.logger, err)
		return
	}

	c.Redirect(http.StatusFound, h.redirect)
}
