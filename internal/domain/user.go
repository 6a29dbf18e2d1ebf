package domain

import "time"

// User is the domain model for registered shoppers. The password hash is
// internal state and must never be serialized into a response.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
