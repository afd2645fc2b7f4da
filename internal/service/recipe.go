package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/repository"
)

// RecipeService owns the recipe business rules. Every method takes the
// authenticated owner's email; the service never lets a caller name an
// arbitrary partition.
type RecipeService struct {
	recipes repository.RecipeRepository
	logger  *slog.Logger
}

func NewRecipeService(recipes repository.RecipeRepository, logger *slog.Logger) *RecipeService {
	return &RecipeService{recipes: recipes, logger: logger}
}

// List returns the owner's recipes in insertion order.
func (s *RecipeService) List(ctx context.Context, email string) ([]model.Recipe, error) {
	recipes, err := s.recipes.List(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service/recipe: listing: %w", err)
	}
	return recipes, nil
}

// Create validates and stores a new recipe, returning it with its assigned
// id. Name is the only required field.
func (s *RecipeService) Create(ctx context.Context, email string, recipe *model.Recipe) (*model.Recipe, error) {
	if strings.TrimSpace(recipe.Name) == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}

	if err := s.recipes.Create(ctx, email, recipe); err != nil {
		return nil, fmt.Errorf("service/recipe: creating: %w", err)
	}

	s.logger.Info("recipe created",
		slog.String("owner", email),
		slog.Int64("id", recipe.ID),
	)

	return recipe, nil
}

// Update applies a partial update and returns the merged recipe.
func (s *RecipeService) Update(ctx context.Context, email string, id int64, update model.RecipeUpdate) (*model.Recipe, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, apperror.ValidationFailed("name", "name must not be empty")
	}

	recipe, err := s.recipes.Update(ctx, email, id, update)
	if err != nil {
		return nil, fmt.Errorf("service/recipe: updating %d: %w", id, err)
	}
	return recipe, nil
}

// Delete removes a recipe. Deleting an id that doesn't exist is success.
func (s *RecipeService) Delete(ctx context.Context, email string, id int64) error {
	if err := s.recipes.Delete(ctx, email, id); err != nil {
		return fmt.Errorf("service/recipe: deleting %d: %w", id, err)
	}
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *RecipeService) ToggleFavorite(ctx context.Context, email string, id int64) (bool, error) {
	favorite, err := s.recipes.ToggleFavorite(ctx, email, id)
	if err != nil {
		return false, fmt.Errorf("service/recipe: toggling favorite %d: %w", id, err)
	}
	return favorite, nil
}
