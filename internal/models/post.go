package models

import (
	"io"
	"time"
)

type Category string

const (
	CategoryStartup    Category = "Startup"
	CategoryTechnology Category = "Technology"
	CategoryLifestyle  Category = "Lifestyle"

	DefaultAuthor    = "Alex Bennett"
	DefaultAuthorImg = "/author_img.png"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryStartup, CategoryTechnology, CategoryLifestyle:
		return true
	}
	return false
}

type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Author      string    `json:"author"`
	AuthorImg   string    `json:"author_img"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PostInput is the multipart form an author submits. The image file travels separately.
type PostInput struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	Category    string `form:"category"`
	Author      string `form:"author"`
	AuthorImg   string `form:"author_img"`
}

// Image is an uploaded file attached to a new post.
type Image struct {
	Filename string
	Content  io.Reader
}
