package repo

import (
	"testing"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

func seedRecipes(t *testing.T) *InMemoryRecipeRepository {
	t.Helper()
	r := NewInMemoryRecipeRepository()
	recipes := []models.Recipe{
		{
			Name:        "Pad Thai",
			Ingredients: []string{"rice noodles", "peanuts", "tofu"},
			CuisineType: "Thai",
			PrepTime:    30,
			Status:      models.RecipeFavorite,
			CreatedByID: "owner",
			SharedWith:  []models.UserRef{{ID: "friend"}},
		},
		{
			Name:        "Margherita Pizza",
			Ingredients: []string{"flour", "tomato", "mozzarella"},
			CuisineType: "Italian",
			PrepTime:    45,
			Status:      models.RecipeToTry,
			CreatedByID: "owner",
		},
		{
			Name:        "Tomato Soup",
			Ingredients: []string{"tomato", "basil"},
			CuisineType: "French",
			PrepTime:    30,
			Status:      models.RecipeMade,
			CreatedByID: "someone-else",
		},
	}
	for _, rec := range recipes {
		if _, err := r.Create(rec); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return r
}

func names(recipes []models.Recipe) []string {
	out := make([]string, len(recipes))
	for i, r := range recipes {
		out[i] = r.Name
	}
	return out
}

func TestRecipeFilter_VisibilityBaseline(t *testing.T) {
	r := seedRecipes(t)

	own, _ := r.Filter(RecipeFilter{RequesterID: "owner"})
	if len(own) != 2 {
		t.Fatalf("owner should list 2 recipes, got %v", names(own))
	}

	shared, _ := r.Filter(RecipeFilter{RequesterID: "friend"})
	if len(shared) != 1 || shared[0].Name != "Pad Thai" {
		t.Fatalf("friend should list only the shared recipe, got %v", names(shared))
	}

	// The listing path scopes ADMIN to own + shared like everyone else, even
	// though single-record reads let ADMIN see any recipe.
	admin, _ := r.Filter(RecipeFilter{RequesterID: "admin-id"})
	if len(admin) != 0 {
		t.Fatalf("admin without ownership or shares should list nothing, got %v", names(admin))
	}
}

func TestRecipeFilter_Constraints(t *testing.T) {
	r := seedRecipes(t)
	status := models.RecipeToTry
	prep := 30

	tests := []struct {
		name   string
		filter RecipeFilter
		want   []string
	}{
		{"name substring", RecipeFilter{RequesterID: "owner", Name: "pizza"}, []string{"Margherita Pizza"}},
		{"cuisine substring", RecipeFilter{RequesterID: "owner", CuisineType: "thai"}, []string{"Pad Thai"}},
		{"ingredient substring", RecipeFilter{RequesterID: "owner", Ingredient: "TOFU"}, []string{"Pad Thai"}},
		{"status exact", RecipeFilter{RequesterID: "owner", Status: &status}, []string{"Margherita Pizza"}},
		{"prep time exact", RecipeFilter{RequesterID: "owner", PrepTime: &prep}, []string{"Pad Thai"}},
		{"tags OR across ingredients and cuisine", RecipeFilter{RequesterID: "owner", Tags: []string{"mozzarella", "thai"}}, []string{"Margherita Pizza", "Pad Thai"}},
		{"filters ANDed", RecipeFilter{RequesterID: "owner", CuisineType: "Thai", Name: "pizza"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Filter(tt.filter)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", names(got), tt.want)
			}
			for _, want := range tt.want {
				found := false
				for _, rec := range got {
					if rec.Name == want {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected %q in %v", want, names(got))
				}
			}
		})
	}
}
