package repo

import (
	"time"

	"github.com/google/uuid"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

// InMemoryUserRepository is an in-memory implementation of UserRepository.
type InMemoryUserRepository struct {
	users []models.User
}

// NewInMemoryUserRepository creates a new instance of InMemoryUserRepository.
func NewInMemoryUserRepository() *InMemoryUserRepository {
	return &InMemoryUserRepository{users: []models.User{}}
}

// CreateUser adds a new user. Emails are unique.
func (r *InMemoryUserRepository) CreateUser(u models.User) (models.User, error) {
	for _, existing := range r.users {
		if existing.Email == u.Email {
			return models.User{}, ErrDuplicatedValueUnique
		}
	}
	u.ID = uuid.NewString()
	u.CreatedAt = time.Now().UTC()
	u.UpdatedAt = u.CreatedAt
	r.users = append(r.users, u)
	return u, nil
}

// GetByEmail retrieves a user by email.
func (r *InMemoryUserRepository) GetByEmail(email string) (models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// GetByID retrieves a user by id.
func (r *InMemoryUserRepository) GetByID(id string) (models.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, ErrUserNotFound
}

// GetByIDs retrieves the users for the given ids. A missing id yields
// ErrUserNotFound so callers can reject writes referencing unknown users.
func (r *InMemoryUserRepository) GetByIDs(ids []string) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		u, err := r.GetByID(id)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func (r *InMemoryUserRepository) Clear() {
	r.users = []models.User{}
}
