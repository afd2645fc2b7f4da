package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/repository"
)

// MealPlanService owns the weekly plan rules. It needs the recipe repository
// too: planned ids that no longer reference an existing recipe are filtered
// out when the plan is read.
type MealPlanService struct {
	plans   repository.MealPlanRepository
	recipes repository.RecipeRepository
	logger  *slog.Logger
}

func NewMealPlanService(
	plans repository.MealPlanRepository,
	recipes repository.RecipeRepository,
	logger *slog.Logger,
) *MealPlanService {
	return &MealPlanService{plans: plans, recipes: recipes, logger: logger}
}

// Get returns the owner's plan with stale recipe ids removed.
//
// A recipe deleted after being planned leaves its id behind in the stored
// plan; that's tolerated, not corruption. The filter happens here on every
// read and the stored plan is never rewritten — the next Set replaces it
// anyway.
func (s *MealPlanService) Get(ctx context.Context, email string) (model.MealPlan, error) {
	plan, err := s.plans.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service/mealplan: getting plan: %w", err)
	}

	recipes, err := s.recipes.List(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service/mealplan: listing recipes for filter: %w", err)
	}

	existing := make(map[int64]struct{}, len(recipes))
	for _, r := range recipes {
		existing[r.ID] = struct{}{}
	}

	filtered := make(model.MealPlan, len(plan))
	for day, ids := range plan {
		kept := make([]int64, 0, len(ids))
		for _, id := range ids {
			if _, ok := existing[id]; ok {
				kept = append(kept, id)
			}
		}
		filtered[day] = kept
	}

	return filtered, nil
}

// Set validates and stores the owner's entire plan. Unknown weekday keys are
// rejected before the store is touched.
func (s *MealPlanService) Set(ctx context.Context, email string, plan model.MealPlan) error {
	for day := range plan {
		if !model.IsWeekday(day) {
			return apperror.ValidationFailed("plan", fmt.Sprintf("unknown weekday %q", day))
		}
	}

	if err := s.plans.Set(ctx, email, plan); err != nil {
		return fmt.Errorf("service/mealplan: saving plan: %w", err)
	}

	s.logger.Info("meal plan saved", slog.String("owner", email), slog.Int("days", len(plan)))

	return nil
}
