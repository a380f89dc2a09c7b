package repo

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(u models.User) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	u.ID = uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, name, email, password_hash, role, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, now(), now())`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") {
			return models.User{}, ErrDuplicatedValueUnique
		}
		return models.User{}, err
	}
	return r.GetByID(u.ID)
}

func (r *PostgresUserRepository) GetByEmail(email string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE email = $1`, email))
}

func (r *PostgresUserRepository) GetByID(id string) (models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return r.scanUser(r.db.QueryRowContext(ctx,
		`SELECT id, name, email, password_hash, role, created_at, updated_at FROM users WHERE id = $1`, id))
}

func (r *PostgresUserRepository) GetByIDs(ids []string) ([]models.User, error) {
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

func (r *PostgresUserRepository) scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	return u, err
}
