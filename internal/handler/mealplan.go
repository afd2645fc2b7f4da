package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/service"
)

// MealPlanHandler serves the weekly plan endpoints.
type MealPlanHandler struct {
	plans  *service.MealPlanService
	logger *slog.Logger
}

func NewMealPlanHandler(plans *service.MealPlanService, logger *slog.Logger) *MealPlanHandler {
	return &MealPlanHandler{plans: plans, logger: logger}
}

// HandleGet returns the owner's plan, possibly {}. Stale recipe ids are
// already filtered by the service.
//
// HTTP: GET /mealplan
func (h *MealPlanHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(w, r)
	if !ok {
		return
	}

	plan, err := h.plans.Get(r.Context(), email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, plan)
}

// setPlanRequest wraps the plan the way the client has always sent it:
// {"plan": {"Monday": [169934...], ...}}.
type setPlanRequest struct {
	Plan model.MealPlan `json:"plan"`
}

// successResponse acknowledges a save.
type successResponse struct {
	Success bool `json:"success"`
}

// HandleSet replaces the owner's entire plan. The write is durable before
// the acknowledgement goes out.
//
// HTTP: POST /mealplan
func (h *MealPlanHandler) HandleSet(w http.ResponseWriter, r *http.Request) {
	email, ok := ownerEmail(w, r)
	if !ok {
		return
	}

	var req setPlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperror.ValidationFailed("body", "invalid JSON body"))
		return
	}
	if req.Plan == nil {
		writeError(w, apperror.ValidationFailed("plan", "plan is required"))
		return
	}

	if err := h.plans.Set(r.Context(), email, req.Plan); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
