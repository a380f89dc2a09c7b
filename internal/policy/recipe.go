package policy

import "github.com/mbachaalani/freshmarket-ai-platform/internal/models"

// RecipeOp identifies the kind of recipe access being authorized.
type RecipeOp int

const (
	RecipeRead RecipeOp = iota
	RecipeUpdate
	RecipeDelete
)

// AuthorizeRecipeAccess decides whether user may perform op on recipe.
//
// Read is open to the creator, anyone on the share list, and ADMIN. Update and
// delete are open to the creator and ADMIN only: sharing grants read, never
// write. Callers must resolve the recipe first — a missing id is NotFound at
// the repository and short-circuits before any role check here.
func AuthorizeRecipeAccess(user models.User, recipe models.Recipe, op RecipeOp) error {
	isOwner := recipe.CreatedByID == user.ID
	isAdmin := user.Role == models.RoleAdmin

	switch op {
	case RecipeRead:
		if isOwner || isAdmin || recipe.IsSharedWith(user.ID) {
			return nil
		}
	case RecipeUpdate, RecipeDelete:
		if isOwner || isAdmin {
			return nil
		}
	}
	return ErrForbidden
}
