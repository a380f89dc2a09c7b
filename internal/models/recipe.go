package models

// RecipeStatus tracks where a recipe sits in the user's rotation.
type RecipeStatus string

const (
	RecipeFavorite RecipeStatus = "FAVORITE"
	RecipeToTry    RecipeStatus = "TO_TRY"
	RecipeMade     RecipeStatus = "MADE"
)

func (s RecipeStatus) Valid() bool {
	switch s {
	case RecipeFavorite, RecipeToTry, RecipeMade:
		return true
	}
	return false
}

// Recipe is owned by its creator. SharedWith grants read-only visibility to
// other users; it never grants write or delete.
type Recipe struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Ingredients  []string     `json:"ingredients"`
	Instructions string       `json:"instructions"`
	CuisineType  string       `json:"cuisine_type"`
	PrepTime     int          `json:"prep_time"`
	Status       RecipeStatus `json:"status"`
	CreatedByID  string       `json:"created_by_id"`
	CreatedBy    UserRef      `json:"created_by"`
	SharedWith   []UserRef    `json:"shared_with"`
	CreatedAt    string       `json:"created_at,omitempty"`
	UpdatedAt    string       `json:"updated_at,omitempty"`
}

// SharedWithIDs returns the ids of users the recipe is shared with.
func (r Recipe) SharedWithIDs() []string {
	ids := make([]string, len(r.SharedWith))
	for i, u := range r.SharedWith {
		ids[i] = u.ID
	}
	return ids
}

// IsSharedWith reports whether the recipe is shared with the given user.
func (r Recipe) IsSharedWith(userID string) bool {
	for _, u := range r.SharedWith {
		if u.ID == userID {
			return true
		}
	}
	return false
}
