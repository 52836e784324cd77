package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the JWT payload for a logged-in member. It is the only
// session state the portal keeps; everything else is recomputed from sheet
// snapshots per request.
type SessionClaims struct {
	MemberID   string `json:"member_id"`
	MemberName string `json:"member_name"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}
