package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/model"
)

func TestUserCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	u := db.Users()

	user := &model.User{
		Email:        "a@x.com",
		PasswordHash: "$2a$10$somethinghashed",
	}
	if err := u.Create(context.Background(), user); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if user.CreatedAt.IsZero() {
		t.Error("Create() did not set CreatedAt")
	}

	got, err := u.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.Email != "a@x.com" {
		t.Errorf("GetByEmail() email = %q, want %q", got.Email, "a@x.com")
	}
	if got.PasswordHash != user.PasswordHash {
		t.Errorf("GetByEmail() hash = %q, want %q", got.PasswordHash, user.PasswordHash)
	}
}

func TestUserCreate_Duplicate(t *testing.T) {
	db := newTestDB(t)
	u := db.Users()

	createTestUser(t, db, "a@x.com")

	err := u.Create(context.Background(), &model.User{
		Email:        "a@x.com",
		PasswordHash: "another-hash",
	})
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Create() duplicate error = %v, want ErrConflict", err)
	}

	// The original record must be untouched.
	got, err := u.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() after duplicate: %v", err)
	}
	if got.PasswordHash == "another-hash" {
		t.Error("duplicate Create() overwrote the existing user")
	}
}

func TestUserGetByEmail_Absent(t *testing.T) {
	db := newTestDB(t)

	_, err := db.Users().GetByEmail(context.Background(), "nobody@x.com")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByEmail() error = %v, want ErrNotFound", err)
	}
}
