package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/auth"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/repo"
)

func validateCredentials(name, email, password string) policy.FieldErrors {
	var errs policy.FieldErrors
	if len(strings.TrimSpace(name)) < 2 {
		errs = append(errs, policy.FieldError{Field: "name", Description: "must be at least 2 characters long"})
	}
	if !strings.Contains(email, "@") {
		errs = append(errs, policy.FieldError{Field: "email", Description: "must be a valid email address"})
	}
	if len(password) < 8 {
		errs = append(errs, policy.FieldError{Field: "password", Description: "must be at least 8 characters long"})
	}
	return errs
}

func createUser(w http.ResponseWriter, name, email, password string, role models.Role) (models.User, bool) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "could not register user", http.StatusInternalServerError)
		return models.User{}, false
	}

	user, err := userRepo.CreateUser(models.User{
		Name:         strings.TrimSpace(name),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repo.ErrDuplicatedValueUnique) {
			http.Error(w, "email already registered", http.StatusConflict)
			return models.User{}, false
		}
		http.Error(w, "could not register user", http.StatusInternalServerError)
		return models.User{}, false
	}
	return user, true
}

func issueTokens(w http.ResponseWriter, r *http.Request, user models.User) (token, refresh string, ok bool) {
	token, err := auth.GenerateToken(user)
	if err != nil {
		http.Error(w, "could not generate token", http.StatusInternalServerError)
		return "", "", false
	}
	refresh, err = refreshStore.Issue(r.Context(), user.ID)
	if err != nil {
		http.Error(w, "could not generate refresh token", http.StatusInternalServerError)
		return "", "", false
	}
	return token, refresh, true
}

// RegisterHandler godoc
// @Summary Register a new user
// @Description Self-registered users always get the STAFF role
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body CredentialsRequest true "User credentials"
// @Success 201 {object} RegisterResult
// @Failure 400 {array} policy.FieldError
// @Failure 409 {string} string "Email already registered"
// @Router /register [post]
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errs := validateCredentials(req.Name, req.Email, req.Password); errs != nil {
		writePolicyError(w, errs)
		return
	}

	// Role is never taken from the request body here. Elevated accounts go
	// through the admin endpoint.
	user, ok := createUser(w, req.Name, req.Email, req.Password, models.RoleStaff)
	if !ok {
		return
	}

	token, refresh, ok := issueTokens(w, r, user)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, RegisterResult{
		Message:      "user registered successfully",
		Token:        token,
		RefreshToken: refresh,
	})
}

// LoginHandler godoc
// @Summary Log in
// @Description Issues an access token and a single-use refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "User credentials"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid credentials"
// @Router /login [post]
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	user, err := userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, repo.ErrUserNotFound) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		http.Error(w, "could not log in", http.StatusInternalServerError)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		http.Error(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, refresh, ok := issueTokens(w, r, user)
	if !ok {
		return
	}
	if err := writeJSON(w, http.StatusOK, LoginResult{Token: token, RefreshToken: refresh}); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// RefreshHandler godoc
// @Summary Refresh an access token
// @Description Redeems a refresh token; each refresh token works exactly once
// @Tags auth
// @Accept json
// @Produce json
// @Param token body RefreshRequest true "Refresh token"
// @Success 200 {object} LoginResult
// @Failure 401 {string} string "Invalid refresh token"
// @Router /refresh [post]
func RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	userID, err := refreshStore.Redeem(r.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenInvalid) {
			http.Error(w, "invalid refresh token", http.StatusUnauthorized)
			return
		}
		http.Error(w, "could not refresh token", http.StatusInternalServerError)
		return
	}

	// Role comes from the current user row, so role changes take effect on the
	// next refresh.
	user, err := userRepo.GetByID(userID)
	if err != nil {
		http.Error(w, "invalid refresh token", http.StatusUnauthorized)
		return
	}

	token, refresh, ok := issueTokens(w, r, user)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, LoginResult{Token: token, RefreshToken: refresh})
}

// RegisterAsAdminHandler godoc
// @Summary Create a user with an explicit role
// @Description Only ADMIN callers may create MANAGER or ADMIN accounts
// @Tags auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body RegisterAsAdminRequest true "User to create"
// @Success 201 {object} models.UserRef
// @Failure 400 {array} policy.FieldError
// @Failure 403 {string} string "Forbidden"
// @Failure 409 {string} string "Email already registered"
// @Router /admin/users [post]
func RegisterAsAdminHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := requestUser(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}
	if caller.Role != models.RoleAdmin {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	var req RegisterAsAdminRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	errs := validateCredentials(req.Name, req.Email, req.Password)
	role := models.Role(req.Role)
	if !role.Valid() {
		errs = append(errs, policy.FieldError{Field: "role", Description: "must be one of STAFF, MANAGER, ADMIN"})
	}
	if errs != nil {
		writePolicyError(w, errs)
		return
	}

	user, ok := createUser(w, req.Name, req.Email, req.Password, role)
	if !ok {
		return
	}
	writeJSON(w, http.StatusCreated, user.Ref())
}
