package domain

import "time"

// Role is the account kind. Exactly one ADMIN (the supporter) is expected.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleFriend Role = "FRIEND"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleFriend
}

// Label is the lower-case name used in user-facing messages.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "supporter"
	case RoleFriend:
		return "friend"
	default:
		return string(r)
	}
}

// User is an account. Password is stored in plaintext; it is not a security boundary.
type User struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// IsAdmin reports whether the user is the supporter.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// PublicUser is the view of a User handed to API clients.
type PublicUser struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Role     Role      `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// Public strips the password.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Name:     u.Name,
		Username: u.Username,
		Role:     u.Role,
		JoinedAt: u.JoinedAt,
	}
}
