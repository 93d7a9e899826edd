package domain

import "time"

// User represents a registered team member.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	MFAEnabled   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
