package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/auth"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
)

// requestUser rebuilds the acting user from the verified token claims. The
// role claim was read from storage at login; no ambient session state exists.
func requestUser(r *http.Request) (models.User, error) {
	identity, err := auth.IdentityFromRequest(r)
	if err != nil {
		return models.User{}, err
	}
	return models.User{ID: identity.UserID, Email: identity.Email, Role: identity.Role}, nil
}

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

// writePolicyError maps a policy rejection onto an HTTP response. Field
// errors are returned as a JSON list so clients can show per-field messages.
func writePolicyError(w http.ResponseWriter, err error) {
	var fieldErrs policy.FieldErrors
	if errors.As(err, &fieldErrs) {
		writeJSON(w, http.StatusBadRequest, fieldErrs)
		return
	}
	if errors.Is(err, policy.ErrInvalidInput) {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	if errors.Is(err, policy.ErrForbidden) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}
