package domain

import "time"

// Enrollment is a user's registration for the event.
type Enrollment struct {
	ID        int64
	UserID    int64
	Name      string
	CPF       string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
