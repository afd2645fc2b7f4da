package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/spoonacular"
)

// RecipeProvider is the slice of the search provider this service consumes.
// *spoonacular.Client satisfies it; tests use a fake.
type RecipeProvider interface {
	Search(ctx context.Context, query string) ([]spoonacular.SearchResult, error)
	GetDetails(ctx context.Context, id int64) (*spoonacular.RecipeDetails, error)
}

// ImportService maps provider search results into the owner's recipe
// collection.
type ImportService struct {
	provider RecipeProvider
	recipes  *RecipeService
	logger   *slog.Logger
}

func NewImportService(provider RecipeProvider, recipes *RecipeService, logger *slog.Logger) *ImportService {
	return &ImportService{provider: provider, recipes: recipes, logger: logger}
}

// Search passes a query through to the provider.
func (s *ImportService) Search(ctx context.Context, query string) ([]spoonacular.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperror.ValidationFailed("q", "search query is required")
	}

	results, err := s.provider.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("service/import: searching provider: %w", err)
	}
	return results, nil
}

// Import fetches the provider's details for the given external id, maps
// them onto a recipe, and creates it in the owner's partition. The created
// recipe (with its own server-assigned id) is returned.
func (s *ImportService) Import(ctx context.Context, email string, providerID int64) (*model.Recipe, error) {
	details, err := s.provider.GetDetails(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("service/import: fetching details for %d: %w", providerID, err)
	}

	lines := make([]string, 0, len(details.ExtendedIngredients))
	for _, ing := range details.ExtendedIngredients {
		if ing.Original != "" {
			lines = append(lines, ing.Original)
		}
	}

	recipe := &model.Recipe{
		Name:         details.Title,
		Ingredients:  strings.Join(lines, "\n"),
		Instructions: details.Instructions,
		ImageURL:     details.Image,
	}

	created, err := s.recipes.Create(ctx, email, recipe)
	if err != nil {
		return nil, err
	}

	s.logger.Info("recipe imported",
		slog.String("owner", email),
		slog.Int64("providerID", providerID),
		slog.Int64("id", created.ID),
	)

	return created, nil
}
