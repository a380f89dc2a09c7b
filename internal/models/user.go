package models

import "time"

// Role defines the allowed user roles, ordered STAFF < MANAGER < ADMIN.
type Role string

const (
	RoleStaff   Role = "STAFF"
	RoleManager Role = "MANAGER"
	RoleAdmin   Role = "ADMIN"
)

var roleRank = map[Role]int{
	RoleStaff:   0,
	RoleManager: 1,
	RoleAdmin:   2,
}

// AtLeast reports whether r ranks at or above required. Unknown roles rank
// below STAFF, so a garbled role claim never gains access.
func (r Role) AtLeast(required Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	reqRank, ok := roleRank[required]
	if !ok {
		return false
	}
	return rank >= reqRank
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRef is the trimmed user shape embedded in resource reads.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role,omitempty"`
}

// Ref converts a full user into its embeddable form.
func (u User) Ref() UserRef {
	return UserRef{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}
