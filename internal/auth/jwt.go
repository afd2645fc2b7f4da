// Package auth provides JWT token issuance/verification, bcrypt password
// hashing, and the bearer-token middleware for protected routes.
//
// AUTHENTICATION FLOW:
//  1. POST /auth/register or /auth/login → AuthService validates credentials
//  2. Server issues a JWT signed with the process-wide secret
//  3. Client stores the token and sends it as "Authorization: Bearer <token>"
//  4. RequireAuth validates the token and puts the email in the request context
//
// The token is stateless: validity is decided entirely by the signature and
// the expiry claim, never by a server-side lookup. There is no blacklist —
// rotating the secret is the revocation mechanism, and it invalidates every
// outstanding token at once.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Sentinel errors returned by Validate. The middleware maps these to
// distinct 401 messages.
var (
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrExpiredToken = errors.New("auth: token expired")
)

// tokenTTL is how long an issued token stays valid. After expiry the client
// must log in again.
const tokenTTL = time.Hour

const issuer = "recipe-tracker"

// TokenService signs and verifies JWT access tokens.
//
// It holds the HMAC secret used for both operations. The secret is
// process-wide configuration; the same secret must be used to verify a token
// as was used to sign it.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given secret.
// The secret should be at least 32 bytes of random data in production.
// Example: JWT_SECRET=$(openssl rand -hex 32)
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: JWT secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// claims is the JWT payload. The authenticated email lives in the standard
// "sub" (Subject) claim; "iat" and "exp" come from RegisteredClaims.
type claims struct {
	jwt.RegisteredClaims
}

// Generate creates and signs a token for the given email, valid for one hour.
//
// Signing algorithm is HS256 (HMAC-SHA256): symmetric, fast, and sufficient
// for a single-server deployment where signer and verifier share the secret.
func (s *TokenService) Generate(email string) (string, error) {
	return s.GenerateWithDuration(email, tokenTTL)
}

// GenerateWithDuration creates a token with a custom expiry duration.
// Used by tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(email string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string and returns the email it was
// issued for.
//
// Returns ErrExpiredToken when the signature is valid but "exp" has passed,
// and ErrInvalidToken for every other failure (bad signature, malformed
// structure, wrong issuer, missing subject). The algorithm is pinned to
// HS256 to rule out algorithm-confusion attacks.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}

	if c.Subject == "" {
		return "", ErrInvalidToken
	}

	return c.Subject, nil
}
