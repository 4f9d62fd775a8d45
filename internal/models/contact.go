package models

import "time"

// ContactMessage is a submission of the contact form
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Visit is one tracked page view. The client IP is stored hashed.
type Visit struct {
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// VisitStats summarizes recorded visits
type VisitStats struct {
	Total  int64 `json:"total"`
	Unique int64 `json:"unique"`
	Today  int64 `json:"today"`
}
