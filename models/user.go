package models

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User account. Email is stored lowercased so uniqueness checks are
// case-insensitive. The password hash never leaves the server.
type User struct {
	UserID       string    `json:"userId" bson:"userid"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"passwordHash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
}
