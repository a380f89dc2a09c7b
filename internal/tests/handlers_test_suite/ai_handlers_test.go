package handlers_test_suite

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/ai"
	api "github.com/mbachaalani/freshmarket-ai-platform/internal/http"
	handler "github.com/mbachaalani/freshmarket-ai-platform/internal/http/handlers"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

// fakeCompletions serves an OpenAI-compatible chat endpoint that always
// replies with reply, or with status 500 when reply is empty.
func fakeCompletions(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if reply == "" {
			http.Error(w, "upstream down", http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `{"id":"cmpl-1","object":"chat.completion","choices":[{"index":0,"message":{"role":"assistant","content":%q}}]}`, reply)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func setAdvisorWithUpstream(t *testing.T, reply string) {
	t.Helper()
	srv := fakeCompletions(t, reply)
	client := ai.NewClient("test-key", srv.URL, "gpt-4o-mini")
	handler.SetAdvisor(ai.NewAdvisor(client, inventoryRepo, nil))
}

func TestAIReorderHandler_NoLowStock(t *testing.T) {
	t.Cleanup(clearAllItems)
	setAdvisorWithUpstream(t, "unused")
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/ai/reorder-suggestions", nil, managerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.AIResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Data != ai.NoLowStockMessage {
		t.Errorf("expected fallback message, got %q", resp.Data)
	}
}

func TestAIReorderHandler_WithLowStock(t *testing.T) {
	t.Cleanup(clearAllItems)
	setAdvisorWithUpstream(t, "Reorder 30 kg of Gala Apples.")
	r := api.NewRouter()

	req := validItemRequest()
	req.Quantity = intPtr(3)
	createItem(r, req, managerToken)

	w := doJSON(r, http.MethodPost, "/ai/reorder-suggestions", nil, managerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.AIResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Data != "Reorder 30 kg of Gala Apples." {
		t.Errorf("unexpected advisor reply %q", resp.Data)
	}
}

func TestAIReorderHandler_UpstreamFailure(t *testing.T) {
	t.Cleanup(clearAllItems)
	setAdvisorWithUpstream(t, "")
	r := api.NewRouter()

	req := validItemRequest()
	req.Quantity = intPtr(3)
	createItem(r, req, managerToken)

	w := doJSON(r, http.MethodPost, "/ai/reorder-suggestions", nil, managerToken)
	if w.Code != http.StatusBadGateway {
		t.Errorf("expected 502 Bad Gateway, got %d", w.Code)
	}
}

func TestAISpoilageHandler_NoneExpiring(t *testing.T) {
	t.Cleanup(clearAllItems)
	setAdvisorWithUpstream(t, "unused")
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/ai/spoilage-prevention", nil, managerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.AIResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Data != ai.NoSpoilageMessage {
		t.Errorf("expected fallback message, got %q", resp.Data)
	}
}

func TestAIDemandHandler_EmptyInventory(t *testing.T) {
	t.Cleanup(clearAllItems)
	setAdvisorWithUpstream(t, "unused")
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/ai/demand-insights", nil, managerToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.AIResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Data != ai.NoInventoryMessage {
		t.Errorf("expected fallback message, got %q", resp.Data)
	}
}

func TestAIMealPlanHandler(t *testing.T) {
	setAdvisorWithUpstream(t, "Monday: apple pie.")
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/ai/meal-plan", handler.MealPlanRequest{Preferences: "vegetarian"}, staffToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var resp handler.AIResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Data != "Monday: apple pie." {
		t.Errorf("unexpected advisor reply %q", resp.Data)
	}
}

func TestAIGroceryListHandler_AccessChecks(t *testing.T) {
	t.Cleanup(clearAllRecipes)
	setAdvisorWithUpstream(t, "- apples\n- flour\n- butter")
	r := api.NewRouter()

	w := createRecipe(r, validRecipeRequest(), staffToken)
	var recipe models.Recipe
	json.NewDecoder(w.Body).Decode(&recipe)

	// Missing ids are rejected before any upstream work.
	w = doJSON(r, http.MethodPost, "/ai/grocery-list", handler.GroceryListRequest{}, staffToken)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty recipe_ids, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/ai/grocery-list", handler.GroceryListRequest{RecipeIDs: []string{"no-such-id"}}, staffToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown recipe, got %d", w.Code)
	}

	// A recipe the caller cannot read is a 403, same as reading it directly.
	w = doJSON(r, http.MethodPost, "/ai/grocery-list", handler.GroceryListRequest{RecipeIDs: []string{recipe.ID}}, friendToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 for unshared recipe, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/ai/grocery-list", handler.GroceryListRequest{RecipeIDs: []string{recipe.ID}}, staffToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK for owner, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAIRecipeGenerateHandler_Validation(t *testing.T) {
	setAdvisorWithUpstream(t, "Apple crumble: mix and bake.")
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/ai/generate-recipe", handler.RecipeGenerateRequest{}, staffToken)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for empty ingredients, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/ai/generate-recipe", handler.RecipeGenerateRequest{Ingredients: []string{"apples", "oats"}}, staffToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAIRecipeImproveHandler_Validation(t *testing.T) {
	setAdvisorWithUpstream(t, "Add a pinch of cinnamon.")
	r := api.NewRouter()

	w := doJSON(r, http.MethodPost, "/ai/improve-recipe", handler.RecipeImproveRequest{Recipe: "too short"}, staffToken)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for short recipe text, got %d", w.Code)
	}

	w = doJSON(r, http.MethodPost, "/ai/improve-recipe", handler.RecipeImproveRequest{Recipe: "Apple pie with a soggy bottom crust and bland filling."}, staffToken)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}
}
