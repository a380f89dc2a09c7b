package handlers

import (
	"strings"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
)

// validateRecipe checks a recipe payload. For creates every required field
// must be present; for updates only present fields are checked.
func validateRecipe(req RecipeRequest, create bool) policy.FieldErrors {
	errs := policy.FieldErrors{}

	required := func(present bool, field string) {
		if create && !present {
			errs = append(errs, policy.FieldError{Field: field, Description: field + " is required"})
		}
	}

	required(req.Name != nil, "name")
	if req.Name != nil && len(strings.TrimSpace(*req.Name)) < 2 {
		errs = append(errs, policy.FieldError{Field: "name", Description: "name must be at least 2 characters"})
	}

	required(req.Ingredients != nil, "ingredients")
	if req.Ingredients != nil {
		if len(req.Ingredients) == 0 {
			errs = append(errs, policy.FieldError{Field: "ingredients", Description: "at least one ingredient is required"})
		}
		for _, ing := range req.Ingredients {
			if strings.TrimSpace(ing) == "" {
				errs = append(errs, policy.FieldError{Field: "ingredients", Description: "ingredient names cannot be empty"})
				break
			}
		}
	}

	required(req.Instructions != nil, "instructions")
	if req.Instructions != nil && len(strings.TrimSpace(*req.Instructions)) < 5 {
		errs = append(errs, policy.FieldError{Field: "instructions", Description: "instructions must be at least 5 characters"})
	}

	required(req.CuisineType != nil, "cuisine_type")
	if req.CuisineType != nil && len(strings.TrimSpace(*req.CuisineType)) < 2 {
		errs = append(errs, policy.FieldError{Field: "cuisine_type", Description: "cuisine type must be at least 2 characters"})
	}

	required(req.PrepTime != nil, "prep_time")
	if req.PrepTime != nil && *req.PrepTime <= 0 {
		errs = append(errs, policy.FieldError{Field: "prep_time", Description: "prep time must be a positive number of minutes"})
	}

	if req.Status != nil && !models.RecipeStatus(*req.Status).Valid() {
		errs = append(errs, policy.FieldError{Field: "status", Description: "status must be FAVORITE, TO_TRY or MADE"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
