package models

type UserSubData struct {
	Email     string `json:"email" form:"email" binding:"required"`
	IPAddress string `json:"-"`
	UserAgent string `json:"-"`
}

type StatusChange struct {
	ID     string `json:"id" binding:"required"`
	Status Status `json:"status" binding:"required"`
}

type ListQuery struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Status string `form:"status"`
	Search string `form:"search"`
}
