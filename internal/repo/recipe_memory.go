package repo

import (
	"github.com/google/uuid"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

// InMemoryRecipeRepository is an in-memory implementation of RecipeRepository.
type InMemoryRecipeRepository struct {
	recipes []models.Recipe
}

// NewInMemoryRecipeRepository creates a new instance of
// InMemoryRecipeRepository.
func NewInMemoryRecipeRepository() *InMemoryRecipeRepository {
	return &InMemoryRecipeRepository{recipes: []models.Recipe{}}
}

// Create adds a new recipe, minting its id.
func (r *InMemoryRecipeRepository) Create(recipe models.Recipe) (models.Recipe, error) {
	recipe.ID = uuid.NewString()
	r.recipes = append(r.recipes, recipe)
	return recipe, nil
}

// Filter retrieves the recipes matching f, newest first. Visibility is
// scoped to the requester's own and shared-on recipes; see RecipeFilter.
func (r *InMemoryRecipeRepository) Filter(f RecipeFilter) ([]models.Recipe, error) {
	filtered := []models.Recipe{}
	for i := len(r.recipes) - 1; i >= 0; i-- {
		if matchesRecipeFilter(r.recipes[i], f) {
			filtered = append(filtered, r.recipes[i])
		}
	}
	return filtered, nil
}

// GetByID retrieves a recipe by its id.
func (r *InMemoryRecipeRepository) GetByID(id string) (models.Recipe, error) {
	for _, rec := range r.recipes {
		if rec.ID == id {
			return rec, nil
		}
	}
	return models.Recipe{}, ErrRecipeNotFound
}

// Update replaces an existing recipe. Ingredients and the share list are
// stored as given: the caller decides replacement semantics.
func (r *InMemoryRecipeRepository) Update(recipe models.Recipe) (models.Recipe, error) {
	for i, existing := range r.recipes {
		if existing.ID == recipe.ID {
			r.recipes[i] = recipe
			return recipe, nil
		}
	}
	return models.Recipe{}, ErrRecipeNotFound
}

// Delete removes a recipe by its id.
func (r *InMemoryRecipeRepository) Delete(id string) error {
	for i, existing := range r.recipes {
		if existing.ID == id {
			r.recipes = append(r.recipes[:i], r.recipes[i+1:]...)
			return nil
		}
	}
	return ErrRecipeNotFound
}

func (r *InMemoryRecipeRepository) Clear() {
	r.recipes = []models.Recipe{}
}
