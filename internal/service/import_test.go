package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/repository/memory"
	"github.com/sakif/recipe-tracker/internal/spoonacular"
)

// fakeProvider returns canned provider responses.
type fakeProvider struct {
	results []spoonacular.SearchResult
	details map[int64]*spoonacular.RecipeDetails
	err     error
}

func (f *fakeProvider) Search(_ context.Context, _ string) ([]spoonacular.SearchResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}

func (f *fakeProvider) GetDetails(_ context.Context, id int64) (*spoonacular.RecipeDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.details[id]
	if !ok {
		return nil, errors.New("no such provider recipe")
	}
	return d, nil
}

func newTestImportService(provider *fakeProvider) (*ImportService, *RecipeService) {
	recipes := NewRecipeService(memory.New().Recipes(), testLogger())
	return NewImportService(provider, recipes, testLogger()), recipes
}

func TestImport_MapsProviderDetails(t *testing.T) {
	provider := &fakeProvider{
		details: map[int64]*spoonacular.RecipeDetails{
			716429: {
				Title:        "Pasta with Garlic",
				Image:        "https://img/716429.jpg",
				Instructions: "Boil. Drain. Toss.",
				ExtendedIngredients: []spoonacular.Ingredient{
					{Original: "200g spaghetti"},
					{Original: "2 cloves garlic"},
				},
			},
		},
	}
	svc, recipes := newTestImportService(provider)
	ctx := context.Background()

	created, err := svc.Import(ctx, "a@x.com", 716429)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}

	if created.Name != "Pasta with Garlic" {
		t.Errorf("name = %q", created.Name)
	}
	if created.Ingredients != "200g spaghetti\n2 cloves garlic" {
		t.Errorf("ingredients = %q", created.Ingredients)
	}
	if created.Instructions != "Boil. Drain. Toss." {
		t.Errorf("instructions = %q", created.Instructions)
	}
	if created.ImageURL != "https://img/716429.jpg" {
		t.Errorf("imageUrl = %q", created.ImageURL)
	}
	if created.ID == 0 {
		t.Error("imported recipe got no server-assigned id")
	}

	// The import landed in the owner's collection.
	list, _ := recipes.List(ctx, "a@x.com")
	if len(list) != 1 {
		t.Errorf("List() after import = %d recipes, want 1", len(list))
	}
}

func TestImport_UntitledProviderRecipeRejected(t *testing.T) {
	provider := &fakeProvider{
		details: map[int64]*spoonacular.RecipeDetails{
			1: {Title: ""},
		},
	}
	svc, _ := newTestImportService(provider)

	// A provider record with no title can't become a recipe — name is
	// required.
	_, err := svc.Import(context.Background(), "a@x.com", 1)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Import() error = %v, want ErrValidation", err)
	}
}

func TestSearch_EmptyQueryRejected(t *testing.T) {
	svc, _ := newTestImportService(&fakeProvider{})

	_, err := svc.Search(context.Background(), "  ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Search() error = %v, want ErrValidation", err)
	}
}

func TestSearch_PassesThroughResults(t *testing.T) {
	provider := &fakeProvider{
		results: []spoonacular.SearchResult{
			{ID: 1, Title: "Soup", Image: "https://img/1.jpg", Summary: "A soup."},
		},
	}
	svc, _ := newTestImportService(provider)

	results, err := svc.Search(context.Background(), "soup")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Title != "Soup" {
		t.Errorf("Search() = %+v", results)
	}
}

func TestImport_ProviderFailure(t *testing.T) {
	svc, _ := newTestImportService(&fakeProvider{err: errors.New("quota exceeded")})

	if _, err := svc.Import(context.Background(), "a@x.com", 1); err == nil {
		t.Fatal("Import() should surface provider failures")
	}
}
