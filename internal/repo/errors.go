package repo

import "errors"

var (
	// ErrItemNotFound is returned when an inventory item is not found.
	ErrItemNotFound = errors.New("inventory item not found")

	// ErrRecipeNotFound is returned when a recipe is not found.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicatedValueUnique is returned when an insert violates a unique
	// constraint, e.g. registering an email twice.
	ErrDuplicatedValueUnique = errors.New("duplicated value for a unique column")
)
