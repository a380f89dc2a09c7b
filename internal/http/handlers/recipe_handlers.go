package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/repo"
)

// GetRecipesHandler godoc
// @Summary List recipes visible to the caller
// @Description Returns only recipes the caller created or was shared on, regardless of role
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by name (substring, case-insensitive)"
// @Param ingredient query string false "Filter by ingredient (substring, case-insensitive)"
// @Param cuisine_type query string false "Filter by cuisine type (substring, case-insensitive)"
// @Param status query string false "Filter by status"
// @Param prep_time query int false "Filter by exact prep time in minutes"
// @Param tags query string false "Comma-separated tags; matches when any tag hits an ingredient or the cuisine type"
// @Success 200 {array} models.Recipe
// @Failure 401 {string} string "Unauthorized"
// @Router /recipes [get]
func GetRecipesHandler(w http.ResponseWriter, r *http.Request) {
	user, err := requestUser(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	filter := repo.RecipeFilter{
		RequesterID: user.ID,
		Name:        q.Get("name"),
		Ingredient:  q.Get("ingredient"),
		CuisineType: q.Get("cuisine_type"),
	}
	if status := models.RecipeStatus(q.Get("status")); status.Valid() {
		filter.Status = &status
	}
	if raw := q.Get("prep_time"); raw != "" {
		if minutes, err := strconv.Atoi(raw); err == nil {
			filter.PrepTime = &minutes
		}
	}
	if raw := q.Get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}

	recipes, err := recipeRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not fetch recipes", http.StatusInternalServerError)
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	writeJSON(w, http.StatusOK, recipes)
}

// CreateRecipeHandler godoc
// @Summary Create a recipe
// @Description The caller becomes the owner. Any authenticated role may create recipes.
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipe body RecipeRequest true "Recipe to add"
// @Success 201 {object} models.Recipe
// @Failure 400 {array} policy.FieldError
// @Router /recipes [post]
func CreateRecipeHandler(w http.ResponseWriter, r *http.Request) {
	user, err := requestUser(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	var req RecipeRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateRecipe(req, true); errs != nil {
		writePolicyError(w, errs)
		return
	}

	shared, ok := resolveShareList(w, req.SharedWithIDs, user.ID)
	if !ok {
		return
	}

	recipe := models.Recipe{
		Name:         strings.TrimSpace(*req.Name),
		Ingredients:  req.Ingredients,
		Instructions: *req.Instructions,
		CuisineType:  strings.TrimSpace(*req.CuisineType),
		PrepTime:     *req.PrepTime,
		Status:       models.RecipeToTry,
		CreatedByID:  user.ID,
		CreatedBy:    creatorRef(user),
		SharedWith:   shared,
	}
	if req.Status != nil {
		recipe.Status = models.RecipeStatus(*req.Status)
	}

	created, err := recipeRepo.Create(recipe)
	if err != nil {
		http.Error(w, "could not create recipe", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// GetRecipeByIDHandler godoc
// @Summary Get a recipe by ID
// @Description Readable by the owner, users it is shared with, and ADMIN
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Success 200 {object} models.Recipe
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Router /recipes/{id} [get]
func GetRecipeByIDHandler(w http.ResponseWriter, r *http.Request) {
	_, recipe, ok := fetchRecipeForAccess(w, r, policy.RecipeRead)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, recipe)
}

// UpdateRecipeHandler godoc
// @Summary Update a recipe
// @Description Only the owner or ADMIN may update; shared users are read-only
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Param recipe body RecipeRequest true "Fields to update"
// @Success 200 {object} models.Recipe
// @Failure 400 {array} policy.FieldError
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Router /recipes/{id} [put]
func UpdateRecipeHandler(w http.ResponseWriter, r *http.Request) {
	_, recipe, ok := fetchRecipeForAccess(w, r, policy.RecipeUpdate)
	if !ok {
		return
	}

	var req RecipeRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateRecipe(req, false); errs != nil {
		writePolicyError(w, errs)
		return
	}

	if req.Name != nil {
		recipe.Name = strings.TrimSpace(*req.Name)
	}
	if req.Ingredients != nil {
		recipe.Ingredients = req.Ingredients
	}
	if req.Instructions != nil {
		recipe.Instructions = *req.Instructions
	}
	if req.CuisineType != nil {
		recipe.CuisineType = strings.TrimSpace(*req.CuisineType)
	}
	if req.PrepTime != nil {
		recipe.PrepTime = *req.PrepTime
	}
	if req.Status != nil {
		recipe.Status = models.RecipeStatus(*req.Status)
	}
	if req.SharedWithIDs != nil {
		// The share list is replaced wholesale; users absent from the new
		// list lose access immediately.
		shared, ok := resolveShareList(w, req.SharedWithIDs, recipe.CreatedByID)
		if !ok {
			return
		}
		recipe.SharedWith = shared
	}

	updated, err := recipeRepo.Update(recipe)
	if err != nil {
		if errors.Is(err, repo.ErrRecipeNotFound) {
			http.Error(w, "recipe not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update recipe", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteRecipeHandler godoc
// @Summary Delete a recipe
// @Description Only the owner or ADMIN may delete
// @Tags recipes
// @Security BearerAuth
// @Param id path string true "Recipe ID"
// @Success 204 "Deleted successfully"
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Router /recipes/{id} [delete]
func DeleteRecipeHandler(w http.ResponseWriter, r *http.Request) {
	_, recipe, ok := fetchRecipeForAccess(w, r, policy.RecipeDelete)
	if !ok {
		return
	}

	if err := recipeRepo.Delete(recipe.ID); err != nil {
		if errors.Is(err, repo.ErrRecipeNotFound) {
			http.Error(w, "recipe not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete recipe", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// fetchRecipeForAccess loads the recipe and authorizes the requested access.
// A missing recipe reports 404 before any role check, so callers cannot
// probe which ids exist.
func fetchRecipeForAccess(w http.ResponseWriter, r *http.Request, op policy.RecipeOp) (models.User, models.Recipe, bool) {
	user, err := requestUser(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return models.User{}, models.Recipe{}, false
	}

	recipe, err := recipeRepo.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrRecipeNotFound) {
			http.Error(w, "recipe not found", http.StatusNotFound)
			return models.User{}, models.Recipe{}, false
		}
		http.Error(w, "could not fetch recipe", http.StatusInternalServerError)
		return models.User{}, models.Recipe{}, false
	}

	if err := policy.AuthorizeRecipeAccess(user, recipe, op); err != nil {
		writePolicyError(w, err)
		return models.User{}, models.Recipe{}, false
	}
	return user, recipe, true
}

// resolveShareList turns a list of user ids into embedded refs. The owner is
// dropped from the list rather than rejected; sharing with yourself is a
// no-op. Unknown ids fail validation.
func resolveShareList(w http.ResponseWriter, ids []string, ownerID string) ([]models.UserRef, bool) {
	filtered := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != ownerID {
			filtered = append(filtered, id)
		}
	}
	if len(filtered) == 0 {
		return []models.UserRef{}, true
	}

	users, err := userRepo.GetByIDs(filtered)
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			writePolicyError(w, policy.FieldErrors{{Field: "shared_with_ids", Description: "contains an unknown user id"}})
			return nil, false
		}
		http.Error(w, "could not resolve users", http.StatusInternalServerError)
		return nil, false
	}

	refs := make([]models.UserRef, len(users))
	for i, u := range users {
		refs[i] = u.Ref()
	}
	return refs, true
}
