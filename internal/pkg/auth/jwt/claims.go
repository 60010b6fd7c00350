package jwt

import "github.com/golang-jwt/jwt"

const (
	// RoleUser is the default role given at registration.
	RoleUser = "user"

	// RoleAdmin grants access to the admin API and to admin chat features.
	RoleAdmin = "admin"
)

// Payload is the claim set carried by every ShineSmile access token.
type Payload struct {
	jwt.StandardClaims `json:"standard_claims"`

	// UserID is the primary key of the account in the users table.
	UserID int64 `json:"uid"`

	Username string `json:"username"`

	// Role is either RoleUser or RoleAdmin.
	Role string `json:"role"`
}

// IsAdmin reports whether the token holder has the admin role.
func (p *Payload) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
