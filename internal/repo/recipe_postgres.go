package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

type PostgresRecipeRepository struct {
	db *sql.DB
}

func NewPostgresRecipeRepository(db *sql.DB) *PostgresRecipeRepository {
	return &PostgresRecipeRepository{db: db}
}

const recipeSelect = `
	SELECT r.id, r.name, r.instructions, r.cuisine_type, r.prep_time, r.status,
	       r.created_by, COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(u.role, ''),
	       r.created_at, r.updated_at
	FROM recipes r
	LEFT JOIN users u ON u.id = r.created_by`

func scanRecipe(row interface{ Scan(dest ...any) error }) (models.Recipe, error) {
	var rec models.Recipe
	var createdAt, updatedAt time.Time
	err := row.Scan(&rec.ID, &rec.Name, &rec.Instructions, &rec.CuisineType, &rec.PrepTime,
		&rec.Status, &rec.CreatedByID, &rec.CreatedBy.Name, &rec.CreatedBy.Email,
		&rec.CreatedBy.Role, &createdAt, &updatedAt)
	if err != nil {
		return models.Recipe{}, err
	}
	rec.CreatedBy.ID = rec.CreatedByID
	rec.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	rec.UpdatedAt = updatedAt.UTC().Format(time.RFC3339)
	return rec, nil
}

func (r *PostgresRecipeRepository) Create(recipe models.Recipe) (models.Recipe, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Recipe{}, err
	}
	defer tx.Rollback()

	recipe.ID = uuid.NewString()
	_, err = tx.ExecContext(ctx, `INSERT INTO recipes
		(id, name, instructions, cuisine_type, prep_time, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())`,
		recipe.ID, recipe.Name, recipe.Instructions, recipe.CuisineType,
		recipe.PrepTime, recipe.Status, recipe.CreatedByID)
	if err != nil {
		return models.Recipe{}, err
	}

	if err := insertIngredients(ctx, tx, recipe.ID, recipe.Ingredients); err != nil {
		return models.Recipe{}, err
	}
	if err := insertShares(ctx, tx, recipe.ID, recipe.SharedWithIDs()); err != nil {
		return models.Recipe{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Recipe{}, err
	}
	return r.GetByID(recipe.ID)
}

func insertIngredients(ctx context.Context, tx *sql.Tx, recipeID string, ingredients []string) error {
	for pos, name := range ingredients {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, position, name) VALUES ($1, $2, $3)`,
			recipeID, pos, name); err != nil {
			return err
		}
	}
	return nil
}

func insertShares(ctx context.Context, tx *sql.Tx, recipeID string, userIDs []string) error {
	for _, userID := range userIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_shares (recipe_id, user_id) VALUES ($1, $2)`,
			recipeID, userID); err != nil {
			return err
		}
	}
	return nil
}

func (r *PostgresRecipeRepository) GetByID(id string) (models.Recipe, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	recipe, err := scanRecipe(r.db.QueryRowContext(ctx, recipeSelect+` WHERE r.id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Recipe{}, ErrRecipeNotFound
	}
	if err != nil {
		return models.Recipe{}, err
	}
	return r.hydrate(ctx, recipe)
}

// Filter mirrors the in-memory matchesRecipeFilter predicate in SQL: the
// visibility baseline (own or shared-on, for every role) plus ANDed
// constraints, with the tag list as one OR-group.
func (r *PostgresRecipeRepository) Filter(f RecipeFilter) ([]models.Recipe, error) {
	query := recipeSelect + ` WHERE (r.created_by = $1 OR EXISTS
		(SELECT 1 FROM recipe_shares s WHERE s.recipe_id = r.id AND s.user_id = $1))`
	args := []any{f.RequesterID}
	argIdx := 2

	if f.Name != "" {
		query += fmt.Sprintf(" AND r.name ILIKE $%d", argIdx)
		args = append(args, "%"+f.Name+"%")
		argIdx++
	}
	if f.CuisineType != "" {
		query += fmt.Sprintf(" AND r.cuisine_type ILIKE $%d", argIdx)
		args = append(args, "%"+f.CuisineType+"%")
		argIdx++
	}
	if f.Ingredient != "" {
		query += fmt.Sprintf(` AND EXISTS (SELECT 1 FROM recipe_ingredients ri
			WHERE ri.recipe_id = r.id AND ri.name ILIKE $%d)`, argIdx)
		args = append(args, "%"+f.Ingredient+"%")
		argIdx++
	}
	if f.Status != nil {
		query += fmt.Sprintf(" AND r.status = $%d", argIdx)
		args = append(args, *f.Status)
		argIdx++
	}
	if f.PrepTime != nil {
		query += fmt.Sprintf(" AND r.prep_time = $%d", argIdx)
		args = append(args, *f.PrepTime)
		argIdx++
	}

	var tagClauses []string
	for _, tag := range f.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tagClauses = append(tagClauses, fmt.Sprintf(`(r.cuisine_type ILIKE $%d OR EXISTS
			(SELECT 1 FROM recipe_ingredients ri WHERE ri.recipe_id = r.id AND ri.name ILIKE $%d))`,
			argIdx, argIdx))
		args = append(args, "%"+tag+"%")
		argIdx++
	}
	if len(tagClauses) > 0 {
		query += " AND (" + strings.Join(tagClauses, " OR ") + ")"
	}
	query += " ORDER BY r.created_at DESC"

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range recipes {
		recipes[i], err = r.hydrate(ctx, recipes[i])
		if err != nil {
			return nil, err
		}
	}
	return recipes, nil
}

// Update replaces the recipe row and rewrites the ingredient and share rows
// wholesale, preserving the replace-not-merge contract.
func (r *PostgresRecipeRepository) Update(recipe models.Recipe) (models.Recipe, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Recipe{}, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE recipes
		SET name = $1, instructions = $2, cuisine_type = $3, prep_time = $4, status = $5, updated_at = now()
		WHERE id = $6`,
		recipe.Name, recipe.Instructions, recipe.CuisineType, recipe.PrepTime,
		recipe.Status, recipe.ID)
	if err != nil {
		return models.Recipe{}, err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return models.Recipe{}, ErrRecipeNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
		return models.Recipe{}, err
	}
	if err := insertIngredients(ctx, tx, recipe.ID, recipe.Ingredients); err != nil {
		return models.Recipe{}, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipe_shares WHERE recipe_id = $1`, recipe.ID); err != nil {
		return models.Recipe{}, err
	}
	if err := insertShares(ctx, tx, recipe.ID, recipe.SharedWithIDs()); err != nil {
		return models.Recipe{}, err
	}

	if err := tx.Commit(); err != nil {
		return models.Recipe{}, err
	}
	return r.GetByID(recipe.ID)
}

func (r *PostgresRecipeRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, _ := res.RowsAffected()
	if rowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// hydrate fills the ingredient list and share list of a scanned recipe.
func (r *PostgresRecipeRepository) hydrate(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name FROM recipe_ingredients WHERE recipe_id = $1 ORDER BY position`, recipe.ID)
	if err != nil {
		return models.Recipe{}, err
	}
	defer rows.Close()

	recipe.Ingredients = []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return models.Recipe{}, err
		}
		recipe.Ingredients = append(recipe.Ingredients, name)
	}
	if err := rows.Err(); err != nil {
		return models.Recipe{}, err
	}

	shareRows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.name, u.email FROM recipe_shares s
		 JOIN users u ON u.id = s.user_id WHERE s.recipe_id = $1 ORDER BY u.name`, recipe.ID)
	if err != nil {
		return models.Recipe{}, err
	}
	defer shareRows.Close()

	recipe.SharedWith = []models.UserRef{}
	for shareRows.Next() {
		var ref models.UserRef
		if err := shareRows.Scan(&ref.ID, &ref.Name, &ref.Email); err != nil {
			return models.Recipe{}, err
		}
		recipe.SharedWith = append(recipe.SharedWith, ref)
	}
	return recipe, shareRows.Err()
}
