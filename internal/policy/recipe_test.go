package policy

import (
	"errors"
	"testing"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

func TestAuthorizeRecipeAccess(t *testing.T) {
	owner := models.User{ID: "u1", Role: models.RoleStaff}
	collaborator := models.User{ID: "u2", Role: models.RoleStaff}
	stranger := models.User{ID: "u3", Role: models.RoleManager}
	admin := models.User{ID: "u4", Role: models.RoleAdmin}

	recipe := models.Recipe{
		ID:          "r1",
		CreatedByID: owner.ID,
		SharedWith:  []models.UserRef{{ID: collaborator.ID}},
	}

	tests := []struct {
		name    string
		user    models.User
		op      RecipeOp
		allowed bool
	}{
		{"owner reads", owner, RecipeRead, true},
		{"owner updates", owner, RecipeUpdate, true},
		{"owner deletes", owner, RecipeDelete, true},
		{"collaborator reads", collaborator, RecipeRead, true},
		{"collaborator cannot update", collaborator, RecipeUpdate, false},
		{"collaborator cannot delete", collaborator, RecipeDelete, false},
		{"stranger cannot read", stranger, RecipeRead, false},
		{"stranger cannot update", stranger, RecipeUpdate, false},
		{"admin reads", admin, RecipeRead, true},
		{"admin updates", admin, RecipeUpdate, true},
		{"admin deletes", admin, RecipeDelete, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := AuthorizeRecipeAccess(tt.user, recipe, tt.op)
			if tt.allowed && err != nil {
				t.Errorf("expected access, got %v", err)
			}
			if !tt.allowed && !errors.Is(err, ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestSharingNeverEscalates(t *testing.T) {
	// A manager on the share list still may not mutate: the write gate is
	// ownership or ADMIN, not role rank.
	sharedManager := models.User{ID: "u9", Role: models.RoleManager}
	recipe := models.Recipe{
		ID:          "r2",
		CreatedByID: "owner",
		SharedWith:  []models.UserRef{{ID: sharedManager.ID}},
	}

	if err := AuthorizeRecipeAccess(sharedManager, recipe, RecipeRead); err != nil {
		t.Errorf("shared manager should read, got %v", err)
	}
	if err := AuthorizeRecipeAccess(sharedManager, recipe, RecipeUpdate); !errors.Is(err, ErrForbidden) {
		t.Errorf("shared manager update: expected ErrForbidden, got %v", err)
	}
}
