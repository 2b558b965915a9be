package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessTokenClaims represents the typed JWT issued by the identity
// service. The storefront only needs the member id for ownership checks.
type AccessTokenClaims struct {
	MemberID uuid.UUID `json:"member_id"`
	jwt.RegisteredClaims
}
