// Package service holds the business logic, between the HTTP handlers and
// the repositories:
//
//	handler (HTTP) → service (rules) → repository (storage)
//	                        ↘ auth (tokens, hashing)
//
// Services know nothing about HTTP; handlers know nothing about storage.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/auth"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/repository"
)

// AuthService handles registration, login, and token verification.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all dependencies injected.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Register creates a new account and returns a freshly issued token, so a
// successful registration doubles as a login.
//
// Fails with the DuplicateUser error if the email is taken. The repository's
// uniqueness constraint backs up the pre-check, so a racing duplicate
// registration loses at the insert, not after it.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return "", apperror.DuplicateUser()
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		return "", fmt.Errorf("service/auth: checking existing user: %w", err)
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return "", fmt.Errorf("service/auth: hashing password: %w", err)
	}

	user := &model.User{Email: email, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return "", apperror.DuplicateUser()
		}
		return "", fmt.Errorf("service/auth: creating user: %w", err)
	}

	s.logger.Info("user registered", slog.String("email", email))

	return s.issueToken(email)
}

// Login authenticates an email/password pair and returns a fresh token.
//
// Unknown email and wrong password both come back as the same
// InvalidCredentials error, and both paths pay one bcrypt comparison (a
// dummy one when the user is absent), so neither the response body nor its
// timing reveals whether the account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			_ = s.passwords.DummyVerify(password)
			return "", apperror.InvalidCredentials()
		}
		return "", fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", apperror.InvalidCredentials()
		}
		return "", fmt.Errorf("service/auth: verifying password: %w", err)
	}

	s.logger.Info("user logged in", slog.String("email", email))

	return s.issueToken(email)
}

// VerifyToken validates a bearer token and returns the email it encodes.
// Thin delegation so callers only depend on the service package.
func (s *AuthService) VerifyToken(tokenStr string) (string, error) {
	return s.tokens.Validate(tokenStr)
}

func (s *AuthService) issueToken(email string) (string, error) {
	token, err := s.tokens.Generate(email)
	if err != nil {
		return "", fmt.Errorf("service/auth: issuing token: %w", err)
	}
	return token, nil
}
