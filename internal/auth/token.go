package auth

import (
	"time"

	jwt "github.com/golang-jwt/jwt/v5"

	"github.com/ratepoint/service-core/internal/apperr"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 24 * time.Hour

// Claims carried by a bearer token: subject is the user id, Role the role
// fixed at account creation.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 bearer tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret, ttl: TokenTTL}
}

// Issue creates a signed token encoding user id and role.
func (i *Issuer) Issue(userID, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(i.secret)
}

// Verify parses and validates a token string. Any failure (malformed,
// bad signature, expired) comes back as Unauthenticated.
func (i *Issuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, apperr.Unauthenticated("invalid or expired token")
	}
	if claims.Subject == "" {
		return nil, apperr.Unauthenticated("token subject missing")
	}
	return claims, nil
}
