package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/repository/memory"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newTestRecipeService() *RecipeService {
	return NewRecipeService(memory.New().Recipes(), testLogger())
}

func TestRecipeCreate_RequiresName(t *testing.T) {
	svc := newTestRecipeService()

	_, err := svc.Create(context.Background(), "a@x.com", &model.Recipe{Name: "   "})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Create() error = %v, want ErrValidation", err)
	}
}

func TestRecipeCreateListRoundTrip(t *testing.T) {
	svc := newTestRecipeService()
	ctx := context.Background()

	created, err := svc.Create(ctx, "a@x.com", &model.Recipe{
		Name:         "Soup",
		Ingredients:  "water",
		Instructions: "boil",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Create() did not assign an id")
	}
	if created.Favorite {
		t.Error("Create() favorite should default to false")
	}

	list, err := svc.List(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(list) != 1 || list[0].ID != created.ID || list[0].Name != "Soup" {
		t.Errorf("List() = %+v, want the created recipe", list)
	}
}

func TestRecipeUpdate_EmptyNameRejected(t *testing.T) {
	svc := newTestRecipeService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "a@x.com", &model.Recipe{Name: "Soup"})

	_, err := svc.Update(ctx, "a@x.com", created.ID, model.RecipeUpdate{Name: strPtr("")})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Update() error = %v, want ErrValidation", err)
	}
}

func TestRecipeFavoriteUpdateThenToggle(t *testing.T) {
	svc := newTestRecipeService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "a@x.com", &model.Recipe{Name: "Soup"})

	if _, err := svc.Update(ctx, "a@x.com", created.ID, model.RecipeUpdate{Favorite: boolPtr(true)}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	favorite, err := svc.ToggleFavorite(ctx, "a@x.com", created.ID)
	if err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if favorite {
		t.Error("toggle after favorite:true should yield false")
	}
}

func TestRecipeDelete_AbsentIsSuccess(t *testing.T) {
	svc := newTestRecipeService()

	if err := svc.Delete(context.Background(), "a@x.com", 12345); err != nil {
		t.Fatalf("Delete() of absent id error = %v, want nil", err)
	}
}

func TestRecipeOperations_NotFoundCrossPartition(t *testing.T) {
	svc := newTestRecipeService()
	ctx := context.Background()

	created, _ := svc.Create(ctx, "a@x.com", &model.Recipe{Name: "Soup"})

	if _, err := svc.Update(ctx, "b@x.com", created.ID, model.RecipeUpdate{Name: strPtr("x")}); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Update() as other owner error = %v, want ErrNotFound", err)
	}
	if _, err := svc.ToggleFavorite(ctx, "b@x.com", created.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("ToggleFavorite() as other owner error = %v, want ErrNotFound", err)
	}
}
