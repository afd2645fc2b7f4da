package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor: 2^10 rounds. Tune so that a hash
// takes a couple hundred milliseconds on production hardware.
const defaultCost = 10

// ErrPasswordMismatch is returned by Verify when the password is wrong.
var ErrPasswordMismatch = errors.New("auth: password mismatch")

// PasswordService provides bcrypt hashing and verification.
//
// It's a struct rather than free functions so the cost can be injected:
// tests use the bcrypt minimum (cost 4) to avoid paying the full work factor
// on every hash.
type PasswordService struct {
	cost int
}

// NewPasswordService creates a PasswordService with the default cost.
func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceForTest creates a PasswordService with a custom
// (typically minimum) cost. Not for production use.
func NewPasswordServiceForTest(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

// Hash hashes a plaintext password. The output embeds the salt and cost, so
// it can be stored as a single string and verified without extra bookkeeping.
//
// bcrypt silently truncates input beyond 72 bytes; we reject such passwords
// explicitly instead.
func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > 72 {
		return "", fmt.Errorf("auth: password must be 72 bytes or fewer")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}

	return string(hashed), nil
}

// Verify checks a plaintext password against a stored bcrypt hash.
// Returns ErrPasswordMismatch when they don't match. The comparison is
// constant-time inside bcrypt, so response time doesn't reveal how close a
// guess was.
func (p *PasswordService) Verify(hash, plaintext string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}

// DummyVerify burns one bcrypt comparison against a fixed hash and always
// reports a mismatch. The login path calls this when the email is unknown so
// that unknown-email and wrong-password attempts cost the same, closing the
// timing side channel that would otherwise reveal whether an account exists.
func (p *PasswordService) DummyVerify(plaintext string) error {
	// A valid cost-10 hash of an unguessable throwaway string.
	const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(plaintext))
	return ErrPasswordMismatch
}
