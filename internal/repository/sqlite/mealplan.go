package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/repository"
)

// MealPlanDB is the SQLite-backed meal plan store.
type MealPlanDB struct {
	conn *sql.DB
}

var _ repository.MealPlanRepository = (*MealPlanDB)(nil)

// Get reads the owner's plan straight from the database on every call —
// there is deliberately no cached copy, so a plan written by another process
// sharing the same file is visible immediately.
func (d *MealPlanDB) Get(ctx context.Context, email string) (model.MealPlan, error) {
	var raw string
	err := d.conn.QueryRowContext(ctx,
		`SELECT plan FROM meal_plans WHERE owner_email = ?`, email,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Plans are created lazily; no row just means an empty plan.
			return model.MealPlan{}, nil
		}
		return nil, fmt.Errorf("sqlite: getting meal plan: %w", err)
	}

	var plan model.MealPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("sqlite: decoding meal plan: %w", err)
	}
	if plan == nil {
		plan = model.MealPlan{}
	}

	return plan, nil
}

// Set replaces the owner's entire plan. The upsert commits before Set
// returns, so the caller never observes success ahead of durability.
func (d *MealPlanDB) Set(ctx context.Context, email string, plan model.MealPlan) error {
	raw, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("sqlite: encoding meal plan: %w", err)
	}

	_, err = d.conn.ExecContext(ctx,
		`INSERT INTO meal_plans (owner_email, plan, updated_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(owner_email) DO UPDATE SET plan = excluded.plan, updated_at = excluded.updated_at`,
		email, string(raw), time.Now(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving meal plan: %w", err)
	}

	return nil
}
