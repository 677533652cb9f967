package domain

import "time"

// User is a registered account. The password is only ever stored as a
// one-way hash; comparison always goes through the hashing context.
type User struct {
	ID           int64
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         string // role tag, e.g. "user" or "admin"
	IsActive     bool
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
