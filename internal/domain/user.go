package domain

import "time"

// Role separates regular complainants from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User is the domain model for registered accounts. Role is assigned at
// creation (registration always yields RoleUser, the seed tool inserts
// RoleAdmin) and no endpoint changes it afterwards.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}
