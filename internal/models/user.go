package models

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	ID           int64
	Username     string
	PasswordHash []byte
	Role         UserRole
	CreatedAt    time.Time
}

// Session is the server-side authentication state. The browser only carries
// a signed cookie with the session id; username and role live here.
type Session struct {
	ID        string
	Username  string
	Role      UserRole
	CreatedAt time.Time
	ExpiresAt time.Time
}
