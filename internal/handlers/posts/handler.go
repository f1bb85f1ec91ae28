package posts

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/Nazarious-ucu/blog-newsletter-api/internal/handlers"
	"github.com/Nazarious-ucu/blog-newsletter-api/internal/models"
)

const (
	timeoutDuration = 10 * time.Second

	imageField = "image"
)

type postService interface {
	Create(ctx context.Context, in models.PostInput, image *models.Image) (models.Post, error)
	List(ctx context.Context) ([]models.Post, error)
	Get(ctx context.Context, id string) (models.Post, error)
	Delete(ctx context.Context, id string) (models.Post, error)
}

type Handler struct {
	Service postService
	logger  zerolog.Logger
}

func NewHandler(svc postService, logger zerolog.Logger) *Handler {
	return &Handler{Service: svc, logger: logger.With().Str("component", "PostHandler").Logger()}
}

// Create
// @Summary Publish a post
// @Tags posts
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Title"
// @Param description formData string true "Body"
// @Param category formData string false "Category" Enums(Startup, Technology, Lifestyle)
// @Param author formData string false "Author name"
// @Param author_img formData string false "Author avatar path"
// @Param image formData file false "Cover image"
// @Success 201 {object} PostResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /posts [post]
func (h *Handler) Create(c *gin.Context) {
	var in models.PostInput
	if err := c.ShouldBind(&in); err != nil {
		handlers.BadRequest(c, "Title and description are required")
		return
	}

	var image *models.Image
	fh, err := c.FormFile(imageField)
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		h.logger.Warn().Err(err).Msg("failed to read image part")
		handlers.BadRequest(c, "Error uploading image")
		return
	default:
		f, err := fh.Open()
		if err != nil {
			handlers.Fail(c, h.logger, models.NewStorageError("Error uploading image"))
			return
		}
		defer func() { _ = f.Close() }()
		image = &models.Image{Filename: fh.Filename, Content: f}
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	post, err := h.Service.Create(ctx, in, image)
	if err != nil {
		handlers.Fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, PostResponse{
		Success: true,
		Msg:     "Blog added successfully",
		Data:    post,
	})
}

// List
// @Summary List posts
// @Description All posts, newest first.
// @Tags posts
// @Produce json
// @Success 200 {object} ListResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /posts [get]
func (h *Handler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	list, err := h.Service.List(ctx)
	if err != nil {
		handlers.Fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Success: true,
		Data:    list,
		Count:   len(list),
	})
}

// Get
// @Summary Read a post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /posts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	post, err := h.Service.Get(ctx, c.Param("id"))
	if err != nil {
		handlers.Fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, PostResponse{Success: true, Data: post})
}

// Delete
// @Summary Delete a post
// @Tags posts
// @Produce json
// @Param id query string true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /posts [delete]
func (h *Handler) Delete(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
	defer cancel()

	post, err := h.Service.Delete(ctx, c.Query("id"))
	if err != nil {
		handlers.Fail(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, PostResponse{
		Success: true,
		Msg:     "Blog deleted successfully",
		Data:    post,
	})
}
