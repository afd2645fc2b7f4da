package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/recipe-tracker/internal/model"
)

// newTestDB returns a DB backed by an in-memory SQLite database that
// disappears when the test finishes.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("New(:memory:): %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// createTestUser registers a user so recipes and plans have a valid owner
// (the schema enforces the foreign key).
func createTestUser(t *testing.T, db *DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:        email,
		PasswordHash: "$2a$04$fakefakefakefakefakefakefakefakefakefakefakefakefake.",
		CreatedAt:    time.Now(),
	}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("creating test user %s: %v", email, err)
	}
	return user
}

// createTestRecipe inserts a recipe for the given owner.
func createTestRecipe(t *testing.T, db *DB, email, name string) *model.Recipe {
	t.Helper()
	recipe := &model.Recipe{Name: name}
	if err := db.Recipes().Create(context.Background(), email, recipe); err != nil {
		t.Fatalf("creating test recipe %q: %v", name, err)
	}
	return recipe
}
