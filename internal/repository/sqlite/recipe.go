package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/sakif/recipe-tracker/internal/apperror"
	"github.com/sakif/recipe-tracker/internal/model"
	"github.com/sakif/recipe-tracker/internal/repository"
)

// RecipeDB is the SQLite-backed recipe store.
type RecipeDB struct {
	conn *sql.DB
}

var _ repository.RecipeRepository = (*RecipeDB)(nil)

// List returns the owner's recipes in id order, which is insertion order
// because ids are monotonic within a partition.
func (d *RecipeDB) List(ctx context.Context, email string) ([]model.Recipe, error) {
	rows, err := d.conn.QueryContext(ctx,
		`SELECT id, name, ingredients, instructions, image_url, favorite
		 FROM recipes
		 WHERE owner_email = ?
		 ORDER BY id`,
		email,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing recipes: %w", err)
	}
	defer rows.Close()

	recipes := []model.Recipe{}
	for rows.Next() {
		var r model.Recipe
		if err := rows.Scan(
			&r.ID, &r.Name, &r.Ingredients, &r.Instructions,
			&r.ImageURL, &r.Favorite,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning recipe row: %w", err)
		}
		recipes = append(recipes, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating recipes: %w", err)
	}

	return recipes, nil
}

// Create assigns the recipe's id and inserts it, all inside one transaction.
//
// The id is the current unix-millisecond timestamp, but two creates in the
// same millisecond must still get distinct ids, so we take
// max(now, lastID+1) against the partition's current maximum. The
// transaction serializes this read-assign-write against concurrent creates
// for the same owner.
func (d *RecipeDB) Create(ctx context.Context, email string, recipe *model.Recipe) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning create tx: %w", err)
	}
	defer tx.Rollback()

	var lastID sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT MAX(id) FROM recipes WHERE owner_email = ?`, email,
	).Scan(&lastID)
	if err != nil {
		return fmt.Errorf("sqlite: reading last recipe id: %w", err)
	}

	id := time.Now().UnixMilli()
	if lastID.Valid && id <= lastID.Int64 {
		id = lastID.Int64 + 1
	}
	recipe.ID = id

	_, err = tx.ExecContext(ctx,
		`INSERT INTO recipes (owner_email, id, name, ingredients, instructions, image_url, favorite)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		email,
		recipe.ID,
		recipe.Name,
		recipe.Ingredients,
		recipe.Instructions,
		recipe.ImageURL,
		recipe.Favorite,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting recipe: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing recipe create: %w", err)
	}

	return nil
}

// Update reads the recipe, applies the shallow merge, and writes it back in
// one transaction. Returns the merged record.
func (d *RecipeDB) Update(ctx context.Context, email string, id int64, update model.RecipeUpdate) (*model.Recipe, error) {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning update tx: %w", err)
	}
	defer tx.Rollback()

	var r model.Recipe
	err = tx.QueryRowContext(ctx,
		`SELECT id, name, ingredients, instructions, image_url, favorite
		 FROM recipes
		 WHERE owner_email = ? AND id = ?`,
		email, id,
	).Scan(&r.ID, &r.Name, &r.Ingredients, &r.Instructions, &r.ImageURL, &r.Favorite)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("Recipe")
		}
		return nil, fmt.Errorf("sqlite: getting recipe for update: %w", err)
	}

	update.Apply(&r)

	_, err = tx.ExecContext(ctx,
		`UPDATE recipes
		 SET name = ?, ingredients = ?, instructions = ?, image_url = ?, favorite = ?
		 WHERE owner_email = ? AND id = ?`,
		r.Name, r.Ingredients, r.Instructions, r.ImageURL, r.Favorite,
		email, id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating recipe: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing recipe update: %w", err)
	}

	return &r, nil
}

// Delete removes the recipe if present. An absent id is success — delete is
// idempotent by contract.
func (d *RecipeDB) Delete(ctx context.Context, email string, id int64) error {
	_, err := d.conn.ExecContext(ctx,
		`DELETE FROM recipes WHERE owner_email = ? AND id = ?`,
		email, id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting recipe: %w", err)
	}
	return nil
}

// ToggleFavorite flips the flag and reports the new value, in a transaction
// so the reported value is the one this toggle produced.
func (d *RecipeDB) ToggleFavorite(ctx context.Context, email string, id int64) (bool, error) {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("sqlite: beginning toggle tx: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE recipes SET favorite = NOT favorite
		 WHERE owner_email = ? AND id = ?`,
		email, id,
	)
	if err != nil {
		return false, fmt.Errorf("sqlite: toggling favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("sqlite: checking toggle result: %w", err)
	}
	if affected == 0 {
		return false, apperror.NotFound("Recipe")
	}

	var favorite bool
	err = tx.QueryRowContext(ctx,
		`SELECT favorite FROM recipes WHERE owner_email = ? AND id = ?`,
		email, id,
	).Scan(&favorite)
	if err != nil {
		return false, fmt.Errorf("sqlite: reading toggled favorite: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("sqlite: committing favorite toggle: %w", err)
	}

	return favorite, nil
}
