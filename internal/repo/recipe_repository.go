package repo

import "github.com/mbachaalani/freshmarket-ai-platform/internal/models"

// RecipeRepository defines the interface for recipe data operations.
type RecipeRepository interface {
	Create(recipe models.Recipe) (models.Recipe, error)
	Filter(f RecipeFilter) ([]models.Recipe, error)
	GetByID(id string) (models.Recipe, error)
	Update(recipe models.Recipe) (models.Recipe, error)
	Delete(id string) error
}

// RecipeFilter scopes a recipe listing. RequesterID is mandatory: the listing
// path only ever returns recipes the requester created or was shared on, for
// every role including ADMIN (single-record reads are wider; ADMIN sees any
// recipe by id). All other constraints are ANDed on top of that baseline.
type RecipeFilter struct {
	RequesterID string
	Name        string
	Ingredient  string
	CuisineType string
	Status      *models.RecipeStatus
	PrepTime    *int

	// Tags is an OR-group: a recipe matches when any tag is a substring of
	// any ingredient name or of the cuisine type.
	Tags []string
}
