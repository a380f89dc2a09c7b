package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"

	"golang.org/x/crypto/bcrypt"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/auth"
	api "github.com/mbachaalani/freshmarket-ai-platform/internal/http"
	handler "github.com/mbachaalani/freshmarket-ai-platform/internal/http/handlers"
	rl "github.com/mbachaalani/freshmarket-ai-platform/internal/http/rate_limiter"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/repo"
)

var (
	adminToken   string
	managerToken string
	staffToken   string
	friendToken  string

	adminID   string
	managerID string
	staffID   string
	friendID  string

	inventoryRepo *repo.InMemoryInventoryRepository
	recipeRepo    *repo.InMemoryRecipeRepository
	userRepo      *repo.InMemoryUserRepository
)

func init() {
	auth.SetSecret([]byte("test-secret"))
	setupTestRepos("secret123")
	r := api.NewRouter()

	var err error
	for _, u := range []struct {
		email string
		token *string
	}{
		{"admin@example.com", &adminToken},
		{"manager@example.com", &managerToken},
		{"staff@example.com", &staffToken},
		{"friend@example.com", &friendToken},
	} {
		*u.token, err = generateToken(r, u.email, "secret123")
		if err != nil {
			panic(fmt.Sprintf("error generating token for %s: %v", u.email, err))
		}
	}
}

func setupTestRepos(password string) {
	inventoryRepo = repo.NewInMemoryInventoryRepository()
	handler.SetInventoryRepo(inventoryRepo)

	recipeRepo = repo.NewInMemoryRecipeRepository()
	handler.SetRecipeRepo(recipeRepo)

	userRepo = repo.NewInMemoryUserRepository()
	handler.SetUserRepo(userRepo)

	handler.SetRefreshStore(auth.NewMemoryRefreshStore())

	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	seed := func(name, email string, role models.Role) string {
		u, err := userRepo.CreateUser(models.User{
			Name:         name,
			Email:        email,
			PasswordHash: string(hash),
			Role:         role,
		})
		if err != nil {
			panic(fmt.Sprintf("error seeding user %s: %v", email, err))
		}
		return u.ID
	}
	adminID = seed("Ada Admin", "admin@example.com", models.RoleAdmin)
	managerID = seed("Mona Manager", "manager@example.com", models.RoleManager)
	staffID = seed("Sam Staff", "staff@example.com", models.RoleStaff)
	friendID = seed("Fred Friend", "friend@example.com", models.RoleStaff)
}

func clearAllItems() {
	inventoryRepo.Clear()
}

func clearAllRecipes() {
	recipeRepo.Clear()
}

func generateToken(r http.Handler, email, password string) (string, error) {
	payload := handler.LoginRequest{Email: email, Password: password}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp handler.LoginResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		return "", fmt.Errorf("token decoding failed: %v", err)
	}
	return resp.Token, nil
}

func doJSON(r http.Handler, method, path string, payload any, token string) *httptest.ResponseRecorder {
	// All test requests share one RemoteAddr, so the per-IP limiter on the
	// AI routes would throttle sequential calls.
	rl.CleanupAllVisitors()

	var body bytes.Buffer
	if payload != nil {
		json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, path, &body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createItem(r http.Handler, req handler.InventoryItemRequest, token string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/inventory", req, token)
}

func createRecipe(r http.Handler, req handler.RecipeRequest, token string) *httptest.ResponseRecorder {
	return doJSON(r, http.MethodPost, "/recipes", req, token)
}

func validItemRequest() handler.InventoryItemRequest {
	return handler.InventoryItemRequest{
		Name:           strPtr("Gala Apples"),
		Category:       strPtr("Fruit"),
		Quantity:       intPtr(40),
		Unit:           strPtr("kg"),
		CostPrice:      floatPtr(1.2),
		SellingPrice:   floatPtr(2.5),
		Supplier:       strPtr("Orchard Co"),
		ExpirationDate: strPtr("2026-12-01T00:00:00Z"),
	}
}

func validRecipeRequest() handler.RecipeRequest {
	return handler.RecipeRequest{
		Name:         strPtr("Apple Pie"),
		Ingredients:  []string{"apples", "flour", "butter"},
		Instructions: strPtr("Peel, fill, bake at 180C for 45 minutes."),
		CuisineType:  strPtr("American"),
		PrepTime:     intPtr(60),
	}
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
