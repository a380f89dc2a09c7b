package repo

import (
	"strings"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// matchesRecipeFilter is the listing predicate shared by the in-memory
// repository and mirrored in SQL by the postgres one.
func matchesRecipeFilter(r models.Recipe, f RecipeFilter) bool {
	if r.CreatedByID != f.RequesterID && !r.IsSharedWith(f.RequesterID) {
		return false
	}
	if f.Name != "" && !containsFold(r.Name, f.Name) {
		return false
	}
	if f.CuisineType != "" && !containsFold(r.CuisineType, f.CuisineType) {
		return false
	}
	if f.Ingredient != "" && !anyIngredientContains(r.Ingredients, f.Ingredient) {
		return false
	}
	if f.Status != nil && r.Status != *f.Status {
		return false
	}
	if f.PrepTime != nil && r.PrepTime != *f.PrepTime {
		return false
	}
	if len(f.Tags) > 0 && !matchesAnyTag(r, f.Tags) {
		return false
	}
	return true
}

func anyIngredientContains(ingredients []string, substr string) bool {
	for _, ing := range ingredients {
		if containsFold(ing, substr) {
			return true
		}
	}
	return false
}

func matchesAnyTag(r models.Recipe, tags []string) bool {
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if containsFold(r.CuisineType, tag) || anyIngredientContains(r.Ingredients, tag) {
			return true
		}
	}
	return false
}
