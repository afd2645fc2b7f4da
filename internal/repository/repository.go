// Package repository defines the storage interfaces the service layer
// depends on. Two implementations exist: sqlite (durable, the default) and
// memory (non-durable, for the MEMORY_ONLY deployment mode and for tests).
//
// Every recipe and meal-plan operation takes the owner's email as its first
// data argument. There is no operation that addresses a record without its
// partition key, which makes cross-user access structurally impossible.
package repository

import (
	"context"

	"github.com/sakif/recipe-tracker/internal/model"
)

// UserRepository is the credential store.
type UserRepository interface {
	// GetByEmail returns the user or apperror.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// Create stores a new user. Returns apperror.ErrConflict if the email
	// is already registered.
	Create(ctx context.Context, user *model.User) error
}

// RecipeRepository is the per-user recipe store.
type RecipeRepository interface {
	// List returns the owner's recipes in insertion (id) order. An absent
	// partition yields an empty slice, never an error.
	List(ctx context.Context, email string) ([]model.Recipe, error)
	// Create assigns a unique, monotonically increasing id within the
	// owner's partition and stores the recipe. The id is written back into
	// the passed struct.
	Create(ctx context.Context, email string, recipe *model.Recipe) error
	// Update applies a shallow merge to an existing recipe and returns the
	// merged record, or apperror.ErrNotFound if id is absent in the
	// owner's partition.
	Update(ctx context.Context, email string, id int64, update model.RecipeUpdate) (*model.Recipe, error)
	// Delete removes the recipe if present. Deleting an absent id is a
	// no-op success.
	Delete(ctx context.Context, email string, id int64) error
	// ToggleFavorite flips the favorite flag and returns its new value, or
	// apperror.ErrNotFound if id is absent in the owner's partition.
	ToggleFavorite(ctx context.Context, email string, id int64) (bool, error)
}

// MealPlanRepository is the per-user meal plan store.
type MealPlanRepository interface {
	// Get returns the stored plan, or an empty plan if none exists. It
	// always consults the backing store — no cached copy is trusted across
	// requests.
	Get(ctx context.Context, email string) (model.MealPlan, error)
	// Set replaces the owner's entire plan. The write is durable before
	// Set returns.
	Set(ctx context.Context, email string, plan model.MealPlan) error
}
