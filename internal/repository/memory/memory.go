// Package memory implements the repository interfaces on process-local maps.
//
// This is the degraded, non-durable deployment mode (MEMORY_ONLY=1): all
// users, recipes, and meal plans are lost when the process exits. It exists
// for throwaway environments and as a fast backend for tests.
//
// Each store guards its map with a mutex, which serializes writes across all
// partitions and so trivially satisfies the per-partition write discipline.
// Values are copied on the way in and out — callers never share memory with
// the store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/repository"
)

// Store owns all three in-memory repositories.
type Store struct {
	users     *UserStore
	recipes   *RecipeStore
	mealPlans *MealPlanStore
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:     &UserStore{users: make(map[string]model.User)},
		recipes:   &RecipeStore{recipes: make(map[string][]model.Recipe)},
		mealPlans: &MealPlanStore{plans: make(map[string]model.MealPlan)},
	}
}

func (s *Store) Users() *UserStore         { return s.users }
func (s *Store) Recipes() *RecipeStore     { return s.recipes }
func (s *Store) MealPlans() *MealPlanStore { return s.mealPlans }

// UserStore is the in-memory credential store.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]model.User // keyed by email
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[email]
	if !ok {
		return nil, apperror.NotFound("user")
	}
	return &u, nil
}

func (s *UserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[user.Email]; exists {
		return apperror.DuplicateUser()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.Email] = *user
	return nil
}

// RecipeStore is the in-memory recipe store. Slices keep insertion order.
type RecipeStore struct {
	mu      sync.RWMutex
	recipes map[string][]model.Recipe // keyed by owner email
}

var _ repository.RecipeRepository = (*RecipeStore)(nil)

func (s *RecipeStore) List(_ context.Context, email string) ([]model.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.recipes[email]
	out := make([]model.Recipe, len(list))
	copy(out, list)
	return out, nil
}

func (s *RecipeStore) Create(_ context.Context, email string, recipe *model.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Timestamp id with a monotonic fallback: two creates in the same
	// millisecond still get distinct, increasing ids.
	id := time.Now().UnixMilli()
	if list := s.recipes[email]; len(list) > 0 {
		if last := list[len(list)-1].ID; id <= last {
			id = last + 1
		}
	}
	recipe.ID = id

	s.recipes[email] = append(s.recipes[email], *recipe)
	return nil
}

func (s *RecipeStore) Update(_ context.Context, email string, id int64, update model.RecipeUpdate) (*model.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.recipes[email]
	for i := range list {
		if list[i].ID == id {
			update.Apply(&list[i])
			r := list[i]
			return &r, nil
		}
	}
	return nil, apperror.NotFound("Recipe")
}

func (s *RecipeStore) Delete(_ context.Context, email string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.recipes[email]
	for i := range list {
		if list[i].ID == id {
			s.recipes[email] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	// Absent id is a no-op success.
	return nil
}

func (s *RecipeStore) ToggleFavorite(_ context.Context, email string, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.recipes[email]
	for i := range list {
		if list[i].ID == id {
			list[i].Favorite = !list[i].Favorite
			return list[i].Favorite, nil
		}
	}
	return false, apperror.NotFound("Recipe")
}

// MealPlanStore is the in-memory meal plan store.
type MealPlanStore struct {
	mu    sync.RWMutex
	plans map[string]model.MealPlan // keyed by owner email
}

var _ repository.MealPlanRepository = (*MealPlanStore)(nil)

func (s *MealPlanStore) Get(_ context.Context, email string) (model.MealPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	plan, ok := s.plans[email]
	if !ok {
		return model.MealPlan{}, nil
	}

	out := make(model.MealPlan, len(plan))
	for day, ids := range plan {
		cp := make([]int64, len(ids))
		copy(cp, ids)
		out[day] = cp
	}
	return out, nil
}

func (s *MealPlanStore) Set(_ context.Context, email string, plan model.MealPlan) error {
	cp := make(model.MealPlan, len(plan))
	for day, ids := range plan {
		idsCp := make([]int64, len(ids))
		copy(idsCp, ids)
		cp[day] = idsCp
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans[email] = cp
	return nil
}
