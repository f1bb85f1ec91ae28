package models

import (
	"regexp"
	"strings"
	"time"
)

type Status string

const (
	StatusActive       Status = "active"
	StatusInactive     Status = "inactive"
	StatusUnsubscribed Status = "unsubscribed"

	DefaultSource = "website"
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// Statuses lists every status a subscription can be in.
var Statuses = []Status{StatusActive, StatusInactive, StatusUnsubscribed}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusUnsubscribed:
		return true
	}
	return false
}

type Subscription struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Status           Status     `json:"status"`
	SubscriptionDate time.Time  `json:"subscriptionDate"`
	UnsubscribedDate *time.Time `json:"unsubscribedDate,omitempty"`
	Source           string     `json:"source"`
	IPAddress        string     `json:"ipAddress,omitempty"`
	UserAgent        string     `json:"userAgent,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// Transition moves the subscription to status. Entering unsubscribed always
// stamps UnsubscribedDate, entering active always clears it.
func (s *Subscription) Transition(status Status, now time.Time) {
	s.Status = status
	switch status {
	case StatusUnsubscribed:
		s.UnsubscribedDate = &now
	case StatusActive:
		s.UnsubscribedDate = nil
	case StatusInactive:
	}
}

// Reactivate turns an unsubscribed record back into an active one under the same ID.
func (s *Subscription) Reactivate(now time.Time) {
	s.Transition(StatusActive, now)
	s.SubscriptionDate = now
}

// NormalizeEmail trims and lowercases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

type StatusStats struct {
	Total        int `json:"total"`
	Active       int `json:"active"`
	Inactive     int `json:"inactive"`
	Unsubscribed int `json:"unsubscribed"`
}

type SubscriptionFilter struct {
	Status Status
	Search string
	Offset int
	Limit  int
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

type SubscriptionPage struct {
	Items      []Subscription
	Pagination Pagination
	Stats      StatusStats
}
