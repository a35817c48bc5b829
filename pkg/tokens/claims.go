package tokens

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of a session token: {id, email, role, exp}.
type SessionClaims struct {
	AccountID string `json:"id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}
