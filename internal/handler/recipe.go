package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/auth"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/service"
)

// RecipeHandler serves the per-user recipe CRUD plus the provider search and
// import endpoints. Every route is behind RequireAuth, so the owner's email
// always comes from the request context, never from the request body.
type RecipeHandler struct {
	recipes  *service.RecipeService
	importer *service.ImportService
	logger   *slog.Logger
}

func NewRecipeHandler(recipes *service.RecipeService, importer *service.ImportService, logger *slog.Logger) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, importer: importer, logger: logger}
}

// ownerEmail pulls the authenticated identity out of the context. On a
// protected route it is always present; the guard covers wiring mistakes.
func ownerEmail(w http.ResponseWriter, r *http.Request) (string, bool) {
	email, ok := auth.EmailFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthorized("No token provided"))
		return "", false
	}
	return email, true
}

// recipeID coerces the {id} path parameter. A non-numeric id can't match any
// recipe, so it reports NotFound rather than a validation error.
func recipeID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperror.NotFound("Recipe")
	}
	return id, nil
}

// HandleList returns all of the owner's recipes.
//
// HTTP: GET /recipes
func (h *RecipeHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(w, r)
	if !ok {
		return
	}

	recipes, err := h.recipes.List(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, recipes)
}

// HandleCreate stores a new recipe and returns it with its assigned id.
//
// HTTP: POST /recipes
func (h *RecipeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(w, r)
	if !ok {
		return
	}

	var recipe model.Recipe
	if err := json.NewDecoder(r.Body).Decode(&recipe); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	// The server owns id assignment; a client-sent id is ignored.
	recipe.ID = 0

	created, err := h.recipes.Create(r.Context(), email, &recipe)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// HandleUpdate merges the provided fields into an existing recipe.
//
// HTTP: PUT /recipes/{id}
func (h *RecipeHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(w, r)
	if !ok {
		return
	}

	id, err := recipeID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var update model.RecipeUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}

	updated, err := h.recipes.Update(r.Context(), email, id, update)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// HandleDelete removes a recipe. Absent ids are success — the client's goal
// (recipe gone) is already met.
//
// HTTP: DELETE /recipes/{id}
func (h *RecipeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(w, r)
	if !ok {
		return
	}

	id, err := recipeID(r)
	if err != nil {
		// Non-numeric id: nothing to delete, same no-op success.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if err := h.recipes.Delete(r.Context(), email, id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// favoriteResponse is the toggle result: just the id and the new flag.
type favoriteResponse struct {
	ID       int64 `json:"id"`
	Favorite bool  `json:"favorite"`
}

// HandleToggleFavorite flips the favorite flag.
//
// HTTP: PATCH /recipes/{id}/favorite
func (h *RecipeHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(w, r)
	if !ok {
		return
	}

	id, err := recipeID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	favorite, err := h.recipes.ToggleFavorite(r.Context(), email, id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, favoriteResponse{ID: id, Favorite: favorite})
}

// HandleSearch proxies a search to the recipe provider.
//
// HTTP: GET /recipes/search?q=<query>
func (h *RecipeHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	if _, ok := ownerEmail(w, r); !ok {
		return
	}

	results, err := h.importer.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, results)
}

// importRequest names the provider recipe to import.
type importRequest struct {
	ID int64 `json:"id"`
}

// HandleImport fetches a provider recipe and creates it in the owner's
// collection.
//
// HTTP: POST /recipes/import
func (h *RecipeHandler) HandleImport(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(w, r)
	if !ok {
		return
	}

	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == 0 {
		writeError(w, apperror.ValidationFailed("id", "provider recipe id is required"))
		return
	}

	created, err := h.importer.Import(r.Context(), email, req.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}
