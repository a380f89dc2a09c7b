package repo

import "github.com/mbachaalani/freshmarket-ai-platform/internal/models"

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(u models.User) (models.User, error)
	GetByEmail(email string) (models.User, error)
	GetByID(id string) (models.User, error)
	GetByIDs(ids []string) ([]models.User, error)
}
