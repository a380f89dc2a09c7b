package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/repo"
)

const cacheTTL = 5 * time.Minute

// Fallback messages used instead of an upstream call when there is no data
// to reason about.
const (
	NoLowStockMessage  = "All items are sufficiently stocked. No reorder suggestions needed."
	NoSpoilageMessage  = "No items are at spoilage risk in the next 7 days."
	NoInventoryMessage = "No inventory data available yet."
)

// Advisor builds prompts from inventory and recipe snapshots and forwards
// them to the chat client. Snapshot-based answers are cached briefly in redis
// so repeated dashboard clicks don't burn upstream calls.
type Advisor struct {
	client    *Client
	inventory repo.InventoryRepository
	cache     *redis.Client
}

// NewAdvisor creates an Advisor. cache may be nil to disable caching.
func NewAdvisor(client *Client, inventory repo.InventoryRepository, cache *redis.Client) *Advisor {
	return &Advisor{client: client, inventory: inventory, cache: cache}
}

// ReorderSuggestions asks for reorder quantities for low-stock items.
func (a *Advisor) ReorderSuggestions(ctx context.Context) (string, error) {
	items, err := a.inventory.LowStock()
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return NoLowStockMessage, nil
	}

	var lines []string
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s (%s) qty=%d %s, supplier=%s",
			item.Name, item.Category, item.Quantity, item.Unit, item.Supplier))
	}
	prompt := fmt.Sprintf("Low stock items:\n%s\n\nSuggest reorder quantities in a short list.",
		strings.Join(lines, "\n"))

	return a.cached(ctx, "reorder", prompt,
		"You are an inventory planner. Provide concise reorder quantities and reasoning.")
}

// SpoilagePlan asks for discount actions for items expiring within a week.
func (a *Advisor) SpoilagePlan(ctx context.Context) (string, error) {
	items, err := a.inventory.ExpiringBefore(time.Now().Add(7 * 24 * time.Hour))
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return NoSpoilageMessage, nil
	}

	var lines []string
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s: qty=%d %s, expires=%.10s",
			item.Name, item.Quantity, item.Unit, item.ExpirationDate))
	}
	prompt := fmt.Sprintf("Items expiring soon:\n%s\n\nRecommend discount actions in 3-5 bullets.",
		strings.Join(lines, "\n"))

	return a.cached(ctx, "spoilage", prompt,
		"You analyze perishables. Suggest discount or action plans to avoid spoilage.")
}

// DemandInsight asks for a demand paragraph over the priciest items.
func (a *Advisor) DemandInsight(ctx context.Context) (string, error) {
	items, err := a.inventory.TopBySellingPrice(20)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return NoInventoryMessage, nil
	}

	var lines []string
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("- %s: qty=%d %s, price=%.2f",
			item.Name, item.Quantity, item.Unit, item.SellingPrice))
	}
	prompt := fmt.Sprintf("Inventory snapshot:\n%s\n\nGenerate a short demand insight paragraph.",
		strings.Join(lines, "\n"))

	return a.cached(ctx, "demand", prompt,
		"You are a retail demand analyst. Provide a concise demand insight paragraph.")
}

// MealPlan asks for a 7-day plan for the given preferences.
func (a *Advisor) MealPlan(ctx context.Context, preferences string) (string, error) {
	if preferences == "" {
		preferences = "none"
	}
	prompt := fmt.Sprintf("Preferences: %s\n\nGenerate a 7-day meal plan.", preferences)
	return a.chat(ctx,
		"You are a meal planner. Provide a 7-day plan with breakfast, lunch, and dinner.", prompt)
}

// GroceryList consolidates the ingredients of the given recipes into a
// shopping list.
func (a *Advisor) GroceryList(ctx context.Context, recipes []models.Recipe) (string, error) {
	var lines []string
	for _, rec := range recipes {
		lines = append(lines, fmt.Sprintf("- %s: %s", rec.Name, strings.Join(rec.Ingredients, ", ")))
	}
	prompt := fmt.Sprintf("Recipes:\n%s\n\nProduce a consolidated grocery list grouped by category.",
		strings.Join(lines, "\n"))
	return a.chat(ctx,
		"You are a shopping assistant. Merge ingredients into one deduplicated grocery list.", prompt)
}

// GenerateRecipe asks for a recipe using the given ingredients.
func (a *Advisor) GenerateRecipe(ctx context.Context, ingredients []string) (string, error) {
	prompt := fmt.Sprintf("Ingredients: %s\n\nGenerate a recipe with a name, ingredients list, and concise steps.",
		strings.Join(ingredients, ", "))
	return a.chat(ctx,
		"You are a chef assistant. Create a short, practical recipe with ingredients and instructions.", prompt)
}

// ImproveRecipe asks for an improved version of the given recipe text.
func (a *Advisor) ImproveRecipe(ctx context.Context, recipe string) (string, error) {
	prompt := fmt.Sprintf("Improve this recipe:\n%s\n\nReturn an improved version.", recipe)
	return a.chat(ctx,
		"You are a culinary editor. Improve clarity, timing, and flavor suggestions.", prompt)
}

func (a *Advisor) chat(ctx context.Context, system, user string) (string, error) {
	return a.client.Chat(ctx, []Message{
		{Role: "system", Content: system},
		{Role: "user", Content: user},
	})
}

// cached runs chat through a redis cache keyed on the advisor name and a
// prompt hash, so the entry invalidates itself when the snapshot changes.
func (a *Advisor) cached(ctx context.Context, name, prompt, system string) (string, error) {
	if a.cache == nil {
		return a.chat(ctx, system, prompt)
	}

	sum := sha256.Sum256([]byte(prompt))
	key := "ai:" + name + ":" + hex.EncodeToString(sum[:8])

	if cached, err := a.cache.Get(ctx, key).Result(); err == nil && cached != "" {
		return cached, nil
	}

	answer, err := a.chat(ctx, system, prompt)
	if err != nil {
		return "", err
	}
	a.cache.Set(ctx, key, answer, cacheTTL)
	return answer, nil
}
