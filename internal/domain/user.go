package domain

import "time"

// User is the identity anchor for enrollments and bookings.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session records an issued access token for a user.
type Session struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
}
