package handlers

import (
	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
)

// InventoryItemRequest carries an inventory create or update payload. Every
// field is a pointer: absent means "leave unchanged", never "clear".
type InventoryItemRequest struct {
	Name           *string  `json:"name"`
	Category       *string  `json:"category"`
	Quantity       *int     `json:"quantity"`
	Unit           *string  `json:"unit"`
	CostPrice      *float64 `json:"cost_price"`
	SellingPrice   *float64 `json:"selling_price"`
	Supplier       *string  `json:"supplier"`
	ExpirationDate *string  `json:"expiration_date"`
	Status         *string  `json:"status"`
}

// toWrite converts the raw payload into the policy's write shape. Enum
// values are passed through untyped-checked; the policy validates them.
func (r InventoryItemRequest) toWrite() policy.InventoryWrite {
	w := policy.InventoryWrite{
		Name:           r.Name,
		Quantity:       r.Quantity,
		CostPrice:      r.CostPrice,
		SellingPrice:   r.SellingPrice,
		Supplier:       r.Supplier,
		ExpirationDate: r.ExpirationDate,
	}
	if r.Category != nil {
		category := models.InventoryCategory(*r.Category)
		w.Category = &category
	}
	if r.Unit != nil {
		unit := models.Unit(*r.Unit)
		w.Unit = &unit
	}
	if r.Status != nil {
		status := models.InventoryStatus(*r.Status)
		w.Status = &status
	}
	return w
}

// RecipeRequest carries a recipe create or update payload. Slice fields
// distinguish absent (nil) from empty: an explicit empty shared_with_ids
// clears the share list.
type RecipeRequest struct {
	Name          *string  `json:"name"`
	Ingredients   []string `json:"ingredients"`
	Instructions  *string  `json:"instructions"`
	CuisineType   *string  `json:"cuisine_type"`
	PrepTime      *int     `json:"prep_time"`
	Status        *string  `json:"status"`
	SharedWithIDs []string `json:"shared_with_ids"`
}

type CredentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterAsAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterResult struct {
	Message      string `json:"message"`
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type MealPlanRequest struct {
	Preferences string `json:"preferences"`
}

type GroceryListRequest struct {
	RecipeIDs []string `json:"recipe_ids"`
}

type RecipeGenerateRequest struct {
	Ingredients []string `json:"ingredients"`
}

type RecipeImproveRequest struct {
	Recipe string `json:"recipe"`
}

// AIResponse wraps assistant output; Data is opaque text.
type AIResponse struct {
	Data string `json:"data"`
}
