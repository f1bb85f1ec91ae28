package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
)

const unknown = "unknown"

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Msg     string `json:"msg"`
}

// Fail writes the JSON error body for err. Domain errors keep their message,
// anything else is logged and hidden behind a generic 500.
func Fail(c *gin.Context, logger zerolog.Logger, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Msg("request failed")
	}

	var domainErr *models.Error
	switch {
	case errors.As(err, &domainErr):
		c.JSON(status, ErrorResponse{Msg: domainErr.Msg})
	case status == http.StatusInternalServerError:
		c.JSON(status, ErrorResponse{Msg: "Internal server error"})
	default:
		c.JSON(status, ErrorResponse{Msg: err.Error()})
	}
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrUnauthorized):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// BadRequest answers with a validation message that never reached the service layer.
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Msg: msg})
}

// ClientIP reports the first X-Forwarded-For hop, then X-Real-IP, else "unknown".
func ClientIP(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := strings.TrimSpace(c.GetHeader("X-Real-IP")); ip != "" {
		return ip
	}
	return unknown
}

func UserAgent(c *gin.Context) string {
	if ua := c.GetHeader("User-Agent"); ua != "" {
		return ua
	}
	return unknown
}
