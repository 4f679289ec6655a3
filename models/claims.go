package models

import "github.com/golang-jwt/jwt/v5"

// Claims carries only the subject identifier and e-mail; the password hash
// never leaves the store.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}
