package dto

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Birthday parses birthday from JSON as either date-only ("2006-01-02") or RFC3339.
// Date-only is stored as start of that day in UTC.
type Birthday struct{ t *time.Time }

func (b *Birthday) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil || strings.TrimSpace(*raw) == "" {
		b.t = nil
		return nil
	}
	s := strings.TrimSpace(*raw)
	layouts := []string{
		"2006-01-02",     // date only
		time.RFC3339,     // 2006-01-02T15:04:05Z07:00
		time.RFC3339Nano, // with nanoseconds
	}
	for _, layout := range layouts {
		parsed, err := time.Parse(layout, s)
		if err == nil {
			// If it was date-only (no time component), use start of day UTC
			if layout == "2006-01-02" {
				parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, time.UTC)
			}
			b.t = &parsed
			return nil
		}
	}
	return fmt.Errorf("birthday: use date (YYYY-MM-DD) or RFC3339 datetime")
}

// Ptr returns *time.Time for use in service/domain.
func (b Birthday) Ptr() *time.Time { return b.t }

// SignupRequest is the JSON body for POST /signup.
type SignupRequest struct {
	FirstName         string   `json:"first_name" binding:"required,max=120"`
	LastName          string   `json:"last_name" binding:"required,max=120"`
	Username          string   `json:"username" binding:"required,min=1,max=120"`
	Email             string   `json:"email" binding:"required,email"`
	Password          string   `json:"password" binding:"required,min=6"`
	Birthday          Birthday `json:"birthday"` // optional: "1999-02-19" or RFC3339
	ProfilePictureURL string   `json:"profile_picture_url" binding:"omitempty,url"`
}

// LoginRequest is the JSON body for POST /login. Password length is not
// re-checked here: a too-short password can never match a stored hash, and
// failing it the same way as any bad password avoids leaking signup rules.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse carries the issued bearer token after a successful login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public view of an account. Never carries the password hash.
type UserResponse struct {
	ID                string     `json:"id"`
	FirstName         string     `json:"first_name"`
	LastName          string     `json:"last_name"`
	Username          string     `json:"username"`
	Email             string     `json:"email"`
	Birthday          *time.Time `json:"birthday,omitempty"`
	ProfilePictureURL string     `json:"profile_picture_url,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type ListUsersResponse struct {
	Items []UserResponse `json:"items"`
}
