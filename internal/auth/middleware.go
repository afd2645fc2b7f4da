package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// contextKey is an unexported type for context keys in this package.
// Only this package can create a key of this type, so no other package can
// read or shadow the email value stored in the request context.
type contextKey string

const emailKey contextKey = "email"

// RequireAuth enforces authentication on protected routes.
//
// It reads the bearer token from the Authorization header ("Bearer <token>",
// exactly one space-delimited scheme prefix), validates it, and stores the
// authenticated email in the request context. Failures short-circuit the
// chain with 401 and a {"error": <message>} body:
//
//	"No token provided"  — header absent
//	"Malformed token"    — header present but no token segment
//	"Invalid token"      — bad signature or structure
//	"Token expired"      — signature valid, expiry passed
//
// The client reaction is the same in every case: force re-login.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email, err := authenticate(r, tokens)
			if err != nil {
				writeUnauthorized(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithEmail(r.Context(), email)))
		})
	}
}

// ContextWithEmail returns a context carrying the authenticated email.
// RequireAuth uses it on every successful request; handler tests use it to
// simulate an authenticated request without minting a token.
func ContextWithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

// EmailFromContext retrieves the authenticated email from the request
// context. Returns ("", false) when no valid token was presented — which on
// a RequireAuth-protected route means a wiring bug, not a user error.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok && email != ""
}

var (
	errNoToken        = errors.New("No token provided")
	errMalformedToken = errors.New("Malformed token")
)

// authenticate extracts and validates the bearer token, returning the email
// it was issued for.
func authenticate(r *http.Request, tokens *TokenService) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", errNoToken
	}

	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", errMalformedToken
	}

	return tokens.Validate(token)
}

// writeUnauthorized maps an authentication failure to its 401 body.
// It doesn't use handler.writeError to keep the dependency direction
// handler → auth, not both ways.
func writeUnauthorized(w http.ResponseWriter, err error) {
	message := "Invalid token"
	switch {
	case errors.Is(err, errNoToken):
		message = "No token provided"
	case errors.Is(err, errMalformedToken):
		message = "Malformed token"
	case errors.Is(err, ErrExpiredToken):
		message = "Token expired"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
