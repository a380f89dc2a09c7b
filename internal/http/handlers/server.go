package handlers

import (
	"github.com/mbachaalani/freshmarket-ai-platform/internal/ai"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/auth"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/repo"
)

var (
	inventoryRepo repo.InventoryRepository
	recipeRepo    repo.RecipeRepository
	userRepo      repo.UserRepository

	advisor      *ai.Advisor
	refreshStore auth.RefreshTokenStore
)

func SetInventoryRepo(r repo.InventoryRepository) {
	inventoryRepo = r
}

func SetRecipeRepo(r repo.RecipeRepository) {
	recipeRepo = r
}

func SetUserRepo(r repo.UserRepository) {
	userRepo = r
}

func SetAdvisor(a *ai.Advisor) {
	advisor = a
}

func SetRefreshStore(s auth.RefreshTokenStore) {
	refreshStore = s
}
