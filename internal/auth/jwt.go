package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

var jwtSecret = []byte("dev-only-secret")

// SetSecret installs the signing secret from configuration. Must be called
// before any token is issued or parsed.
func SetSecret(secret []byte) {
	jwtSecret = secret
}

// GenerateToken issues a short-lived access token carrying the user's id,
// email and role. The role claim comes from the stored user row, never from
// the caller.
func GenerateToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
		"exp":   time.Now().Add(15 * time.Minute).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

func ParseToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return jwtSecret, nil
	})
}

// TokenClaims parses the bearer token out of an Authorization header value.
func TokenClaims(authorization string) (*jwt.Token, jwt.MapClaims, error) {
	if !strings.HasPrefix(authorization, "Bearer ") {
		return nil, nil, errors.New("missing or invalid authorization header")
	}

	token, err := ParseToken(strings.TrimPrefix(authorization, "Bearer "))
	if err != nil || !token.Valid {
		return nil, nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, nil, errors.New("unexpected claims type")
	}
	return token, claims, nil
}

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID string
	Email  string
	Role   models.Role
}

// IdentityFromRequest extracts the caller identity from the request's bearer
// token.
func IdentityFromRequest(r *http.Request) (Identity, error) {
	_, claims, err := TokenClaims(r.Header.Get("Authorization"))
	if err != nil {
		return Identity{}, err
	}

	id := Identity{}
	if sub, ok := claims["sub"].(string); ok {
		id.UserID = sub
	}
	if email, ok := claims["email"].(string); ok {
		id.Email = email
	}
	if role, ok := claims["role"].(string); ok {
		id.Role = models.Role(role)
	}
	if id.UserID == "" {
		return Identity{}, errors.New("token has no subject")
	}
	return id, nil
}
