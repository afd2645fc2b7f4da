package auth

import (
	"errors"
	"strings"
	"testing"
)

// Cost 4 is the bcrypt minimum — keeps the test suite fast.
func newTestPasswordService() *PasswordService {
	return NewPasswordServiceForTest(4)
}

func TestHashAndVerify(t *testing.T) {
	ps := newTestPasswordService()

	hash, err := ps.Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatal("Hash() returned the plaintext")
	}

	if err := ps.Verify(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Verify() with correct password: %v", err)
	}
}

func TestVerify_WrongPassword(t *testing.T) {
	ps := newTestPasswordService()

	hash, _ := ps.Hash("pw1")
	err := ps.Verify(hash, "pw2")
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Verify() error = %v, want ErrPasswordMismatch", err)
	}
}

func TestHash_SamePasswordDifferentHashes(t *testing.T) {
	ps := newTestPasswordService()

	// bcrypt salts every hash, so two users with the same password must not
	// share a hash.
	h1, _ := ps.Hash("pw1")
	h2, _ := ps.Hash("pw1")
	if h1 == h2 {
		t.Error("Hash() produced identical hashes for the same password")
	}
}

func TestHash_TooLong(t *testing.T) {
	ps := newTestPasswordService()

	_, err := ps.Hash(strings.Repeat("x", 73))
	if err == nil {
		t.Fatal("Hash() should reject passwords longer than 72 bytes")
	}
}

func TestDummyVerify_AlwaysMismatch(t *testing.T) {
	ps := newTestPasswordService()

	if err := ps.DummyVerify("anything"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("DummyVerify() error = %v, want ErrPasswordMismatch", err)
	}
}
