package domain

import "time"

// User is the domain entity for a user account.
type User struct {
	ID                string
	FirstName         string
	LastName          string
	Username          string
	Email             string
	PasswordHash      string
	Birthday          *time.Time
	ProfilePictureURL string
	CreatedAt         time.Time
}
