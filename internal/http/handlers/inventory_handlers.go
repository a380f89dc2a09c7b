package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/repo"
)

// GetInventoryHandler godoc
// @Summary List inventory items
// @Description Lists items matching the optional filters
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param name query string false "Filter by name (substring, case-insensitive)"
// @Param category query string false "Filter by category"
// @Param status query string false "Filter by status"
// @Param supplier query string false "Filter by supplier (substring, case-insensitive)"
// @Success 200 {array} models.InventoryItem
// @Failure 401 {string} string "Unauthorized"
// @Router /inventory [get]
func GetInventoryHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := repo.InventoryFilter{
		Name:     q.Get("name"),
		Supplier: q.Get("supplier"),
	}
	// Unknown enum values are ignored rather than rejected, matching the
	// lenient query parsing of the listing endpoints.
	if category := models.InventoryCategory(q.Get("category")); category.Valid() {
		filter.Category = &category
	}
	if status := models.InventoryStatus(q.Get("status")); status.Valid() {
		filter.Status = &status
	}

	items, err := inventoryRepo.Filter(filter)
	if err != nil {
		http.Error(w, "could not fetch inventory", http.StatusInternalServerError)
		return
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	if err := writeJSON(w, http.StatusOK, items); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}

// GetInventoryByIDHandler godoc
// @Summary Get an inventory item by ID
// @Tags inventory
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 200 {object} models.InventoryItem
// @Failure 404 {string} string "Not found"
// @Router /inventory/{id} [get]
func GetInventoryByIDHandler(w http.ResponseWriter, r *http.Request) {
	item, err := inventoryRepo.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch item", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// CreateInventoryHandler godoc
// @Summary Create an inventory item
// @Description Requires MANAGER or ADMIN. Status is derived from quantity.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param item body InventoryItemRequest true "Item to add"
// @Success 201 {object} models.InventoryItem
// @Failure 400 {array} policy.FieldError
// @Failure 403 {string} string "Forbidden"
// @Router /inventory [post]
func CreateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := requestUser(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	var req InventoryItemRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	eff, err := policy.AuthorizeInventoryWrite(user.Role, policy.InventoryCreate, req.toWrite())
	if err != nil {
		writePolicyError(w, err)
		return
	}

	item := models.InventoryItem{
		Name:           *eff.Name,
		Category:       *eff.Category,
		Quantity:       *eff.Quantity,
		Unit:           *eff.Unit,
		CostPrice:      *eff.CostPrice,
		SellingPrice:   *eff.SellingPrice,
		Supplier:       *eff.Supplier,
		ExpirationDate: *eff.ExpirationDate,
		Status:         *eff.Status,
		CreatedByID:    user.ID,
		CreatedBy:      creatorRef(user),
	}

	created, err := inventoryRepo.Create(item)
	if err != nil {
		http.Error(w, "could not create item", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// UpdateInventoryHandler godoc
// @Summary Update an inventory item
// @Description MANAGER and ADMIN may update any field; STAFF may update quantity only.
// @Tags inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param item body InventoryItemRequest true "Fields to update"
// @Success 200 {object} models.InventoryItem
// @Failure 400 {array} policy.FieldError
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Router /inventory/{id} [put]
func UpdateInventoryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := requestUser(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	var req InventoryItemRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	// Authorization and validation run before the item is even fetched, so a
	// rejected request never touches storage.
	eff, err := policy.AuthorizeInventoryWrite(user.Role, policy.InventoryUpdate, req.toWrite())
	if err != nil {
		writePolicyError(w, err)
		return
	}

	item, err := inventoryRepo.GetByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not fetch item", http.StatusInternalServerError)
		return
	}

	applyInventoryWrite(&item, eff)

	updated, err := inventoryRepo.Update(item)
	if err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not update item", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// DeleteInventoryHandler godoc
// @Summary Delete an inventory item
// @Description Requires MANAGER or ADMIN
// @Tags inventory
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204 "Deleted successfully"
// @Failure 403 {string} string "Forbidden"
// @Failure 404 {string} string "Not found"
// @Router /inventory/{id} [delete]
func DeleteInventoryHandler(w http.ResponseWriter, r *http.Request) {
	user, err := requestUser(r)
	if err != nil {
		http.Error(w, "missing or invalid token", http.StatusUnauthorized)
		return
	}

	if _, err := policy.AuthorizeInventoryWrite(user.Role, policy.InventoryDelete, policy.InventoryWrite{}); err != nil {
		writePolicyError(w, err)
		return
	}

	if err := inventoryRepo.Delete(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, repo.ErrItemNotFound) {
			http.Error(w, "item not found", http.StatusNotFound)
			return
		}
		http.Error(w, "could not delete item", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// applyInventoryWrite copies the effective (already authorized and validated)
// fields onto the stored item. Absent fields stay as they are.
func applyInventoryWrite(item *models.InventoryItem, w policy.InventoryWrite) {
	if w.Name != nil {
		item.Name = *w.Name
	}
	if w.Category != nil {
		item.Category = *w.Category
	}
	if w.Quantity != nil {
		item.Quantity = *w.Quantity
	}
	if w.Unit != nil {
		item.Unit = *w.Unit
	}
	if w.CostPrice != nil {
		item.CostPrice = *w.CostPrice
	}
	if w.SellingPrice != nil {
		item.SellingPrice = *w.SellingPrice
	}
	if w.Supplier != nil {
		item.Supplier = *w.Supplier
	}
	if w.ExpirationDate != nil {
		item.ExpirationDate = *w.ExpirationDate
	}
	if w.Status != nil {
		item.Status = *w.Status
	}
}

// creatorRef resolves the full user row for embedding; the claims-only user
// lacks the display name.
func creatorRef(user models.User) models.UserRef {
	if full, err := userRepo.GetByID(user.ID); err == nil {
		return full.Ref()
	}
	return user.Ref()
}
