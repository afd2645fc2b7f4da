package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/sakif/recipe-tracker/internal/auth"
	"github.com/sakif/recipe-tracker/internal/handler"
	"github.com/sakif/recipe-tracker/internal/repository/memory"
	"github.com/sakif/recipe-tracker/internal/service"
	"github.com/sakif/recipe-tracker/internal/spoonacular"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeProvider stands in for the spoonacular client.
type fakeProvider struct {
	results []spoonacular.SearchResult
	details map[int64]*spoonacular.RecipeDetails
	err     error
}

func (f *fakeProvider) Search(_ context.Context, query string) ([]spoonacular.SearchResult, error) {
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
		return nil, context.DeadlineExceeded
	}
	return d, nil
}

// env wires real services over the in-memory store, so handler tests cover
// the same paths the server runs in MEMORY_ONLY mode.
type env struct {
	provider *fakeProvider

	auth    *handler.AuthHandler
	recipes *handler.RecipeHandler
	plans   *handler.MealPlanHandler
}

func newEnv(t *testing.T) *env {
	t.Helper()

	logger := testLogger()
	store := memory.New()

	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars")
	require.NoError(t, err)
	passwords := auth.NewPasswordServiceForTest(4)

	authSvc := service.NewAuthService(store.Users(), tokens, passwords, logger)
	recipeSvc := service.NewRecipeService(store.Recipes(), logger)
	planSvc := service.NewMealPlanService(store.MealPlans(), store.Recipes(), logger)

	provider := &fakeProvider{details: make(map[int64]*spoonacular.RecipeDetails)}
	importSvc := service.NewImportService(provider, recipeSvc, logger)

	return &env{
		provider: provider,
		auth:     handler.NewAuthHandler(authSvc, logger),
		recipes:  handler.NewRecipeHandler(recipeSvc, importSvc, logger),
		plans:    handler.NewMealPlanHandler(planSvc, logger),
	}
}

// authed marks the request as already past the auth middleware.
func authed(req *http.Request, email string) *http.Request {
	return req.WithContext(auth.ContextWithEmail(req.Context(), email))
}

// withRouteID injects a chi {id} URL parameter, the way the router would.
func withRouteID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// errorMessage decodes the {"error": ...} body.
func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Error
}
