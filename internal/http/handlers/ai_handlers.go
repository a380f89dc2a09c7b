package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/ai"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/repo"
)

func writeAIResult(w http.ResponseWriter, data string, err error) {
	if err != nil {
		if errors.Is(err, ai.ErrUpstream) {
			http.Error(w, "AI request failed", http.StatusBadGateway)
			return
		}
		http.Error(w, "could not complete request", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, AIResponse{Data: data})
}

// AIReorderHandler godoc
// @Summary Suggest reorder quantities for low stock items
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AIResponse
// @Failure 502 {string} string "AI request failed"
// @Router /ai/reorder-suggestions [post]
func AIReorderHandler(w http.ResponseWriter, r *http.Request) {
	data, err := advisor.ReorderSuggestions(r.Context())
	writeAIResult(w, data, err)
}

// AISpoilageHandler godoc
// @Summary Plan usage for items expiring within the next week
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AIResponse
// @Failure 502 {string} string "AI request failed"
// @Router /ai/spoilage-prevention [post]
func AISpoilageHandler(w http.ResponseWriter, r *http.Request) {
	data, err := advisor.SpoilagePlan(r.Context())
	writeAIResult(w, data, err)
}

// AIDemandHandler godoc
// @Summary Analyze demand across the highest value items
// @Tags ai
// @Produce json
// @Security BearerAuth
// @Success 200 {object} AIResponse
// @Failure 502 {string} string "AI request failed"
// @Router /ai/demand-insights [post]
func AIDemandHandler(w http.ResponseWriter, r *http.Request) {
	data, err := advisor.DemandInsight(r.Context())
	writeAIResult(w, data, err)
}

// AIMealPlanHandler godoc
// @Summary Generate a weekly meal plan
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preferences body MealPlanRequest true "Dietary preferences, free text"
// @Success 200 {object} AIResponse
// @Failure 502 {string} string "AI request failed"
// @Router /ai/meal-plan [post]
func AIMealPlanHandler(w http.ResponseWriter, r *http.Request) {
	var req MealPlanRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	data, err := advisor.MealPlan(r.Context(), req.Preferences)
	writeAIResult(w, data, err)
}

// AIGroceryListHandler godoc
// @Summary Build a consolidated grocery list from recipes
// @Description Every referenced recipe must be readable by the caller
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipes body GroceryListRequest true "Recipe ids to shop for"
// @Success 200 {object} AIResponse
// @Failure 400 {array} policy.FieldError
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Failure 502 {string} string "AI request failed"
// @Router /ai/grocery-list [post]
func AIGroceryListHandler(w http.ResponseWriter, r *http.Request) {
	user, err := requestUser(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	var req GroceryListRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if len(req.RecipeIDs) == 0 {
		writePolicyError(w, policy.FieldErrors{{Field: "recipe_ids", Description: "at least one recipe id is required"}})
		return
	}

	recipes := make([]models.Recipe, 0, len(req.RecipeIDs))
	for _, id := range req.RecipeIDs {
		recipe, err := recipeRepo.GetByID(id)
		if err != nil {
			if errors.Is(err, repo.ErrRecipeNotFound) {
				http.Error(w, "recipe not found", http.StatusNotFound)
				return
			}
			http.Error(w, "could not fetch recipe", http.StatusInternalServerError)
			return
		}
		if err := policy.AuthorizeRecipeAccess(user, recipe, policy.RecipeRead); err != nil {
			writePolicyError(w, err)
			return
		}
		recipes = append(recipes, recipe)
	}

	data, err := advisor.GroceryList(r.Context(), recipes)
	writeAIResult(w, data, err)
}

// AIRecipeGenerateHandler godoc
// @Summary Generate a recipe from a list of ingredients
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param ingredients body RecipeGenerateRequest true "Ingredients on hand"
// @Success 200 {object} AIResponse
// @Failure 400 {array} policy.FieldError
// @Failure 502 {string} string "AI request failed"
// @Router /ai/generate-recipe [post]
func AIRecipeGenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req RecipeGenerateRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if len(req.Ingredients) == 0 {
		writePolicyError(w, policy.FieldErrors{{Field: "ingredients", Description: "at least one ingredient is required"}})
		return
	}

	data, err := advisor.GenerateRecipe(r.Context(), req.Ingredients)
	writeAIResult(w, data, err)
}

// AIRecipeImproveHandler godoc
// @Summary Suggest improvements to a recipe
// @Tags ai
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipe body RecipeImproveRequest true "Recipe text to improve"
// @Success 200 {object} AIResponse
// @Failure 400 {array} policy.FieldError
// @Failure 502 {string} string "AI request failed"
// @Router /ai/improve-recipe [post]
func AIRecipeImproveHandler(w http.ResponseWriter, r *http.Request) {
	var req RecipeImproveRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if len(strings.TrimSpace(req.Recipe)) < 10 {
		writePolicyError(w, policy.FieldErrors{{Field: "recipe", Description: "recipe text must be at least 10 characters"}})
		return
	}

	data, err := advisor.ImproveRecipe(r.Context(), req.Recipe)
	writeAIResult(w, data, err)
}
