package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/mbachaalani/freshmarket-ai-platform/docs"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/http/handlers"
)

func NewRouter() http.Handler {
	r := chi.NewRouter()

	r.Post("/register", handlers.RegisterHandler)
	r.Post("/login", handlers.LoginHandler)
	r.Post("/refresh", handlers.RefreshHandler)
	r.Get("/swagger/*", httpSwagger.Handler())

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Post("/admin/users", handlers.RegisterAsAdminHandler)

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", handlers.GetInventoryHandler)
			r.Post("/", handlers.CreateInventoryHandler)
			r.Get("/{id}", handlers.GetInventoryByIDHandler)
			r.Put("/{id}", handlers.UpdateInventoryHandler)
			r.Delete("/{id}", handlers.DeleteInventoryHandler)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", handlers.GetRecipesHandler)
			r.Post("/", handlers.CreateRecipeHandler)
			r.Get("/{id}", handlers.GetRecipeByIDHandler)
			r.Put("/{id}", handlers.UpdateRecipeHandler)
			r.Delete("/{id}", handlers.DeleteRecipeHandler)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Use(RateLimitMiddleware)
			r.Post("/reorder-suggestions", handlers.AIReorderHandler)
			r.Post("/spoilage-prevention", handlers.AISpoilageHandler)
			r.Post("/demand-insights", handlers.AIDemandHandler)
			r.Post("/meal-plan", handlers.AIMealPlanHandler)
			r.Post("/grocery-list", handlers.AIGroceryListHandler)
			r.Post("/generate-recipe", handlers.AIRecipeGenerateHandler)
			r.Post("/improve-recipe", handlers.AIRecipeImproveHandler)
		})
	})

	return r
}
