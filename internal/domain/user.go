package domain

import "time"

// User is the domain model for platform accounts. Accounts start inactive
// and become usable once the activation link is visited.
type User struct {
	ID                  int64
	Name                string
	Email               string
	PasswordHash        string
	IsActive            bool
	ResetToken          *string
	ResetTokenExpiresAt *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasPendingReset reports whether a reset token is stored and still valid.
func (u *User) HasPendingReset(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpiresAt != nil && now.Before(*u.ResetTokenExpiresAt)
}
