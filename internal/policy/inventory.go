package policy

import (
	"strings"
	"time"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

// InventoryOp identifies the kind of inventory mutation being authorized.
type InventoryOp int

const (
	InventoryCreate InventoryOp = iota
	InventoryUpdate
	InventoryDelete
)

// InventoryWrite is a requested inventory mutation. Every field is optional;
// absence means "leave unchanged", never "clear".
type InventoryWrite struct {
	Name           *string
	Category       *models.InventoryCategory
	Quantity       *int
	Unit           *models.Unit
	CostPrice      *float64
	SellingPrice   *float64
	Supplier       *string
	ExpirationDate *string
	Status         *models.InventoryStatus
}

// AuthorizeInventoryWrite decides which fields of a requested mutation may be
// applied for the given role, and returns the effective change.
//
// Create and full update require MANAGER or above. STAFF may only perform a
// restricted update touching exactly the quantity field; anything else in a
// STAFF payload is discarded, never applied. Delete requires MANAGER or above.
// Whenever the effective change carries a quantity, its status is derived via
// ComputeStatus so a caller-supplied status can never contradict the
// quantity-derived value.
func AuthorizeInventoryWrite(role models.Role, op InventoryOp, w InventoryWrite) (InventoryWrite, error) {
	switch op {
	case InventoryDelete:
		if !role.AtLeast(models.RoleManager) {
			return InventoryWrite{}, ErrForbidden
		}
		return InventoryWrite{}, nil

	case InventoryCreate:
		if !role.AtLeast(models.RoleManager) {
			return InventoryWrite{}, ErrForbidden
		}
		return validateFullWrite(w, true)

	case InventoryUpdate:
		if !role.AtLeast(models.RoleManager) {
			return staffQuantityUpdate(w)
		}
		return validateFullWrite(w, false)
	}
	return InventoryWrite{}, ErrForbidden
}

// staffQuantityUpdate is the restricted STAFF path: quantity is required and
// must be a non-negative integer, and it is the only field that survives.
func staffQuantityUpdate(w InventoryWrite) (InventoryWrite, error) {
	if w.Quantity == nil {
		return InventoryWrite{}, FieldErrors{{Field: "quantity", Description: "quantity is required"}}
	}
	if *w.Quantity < 0 {
		return InventoryWrite{}, FieldErrors{{Field: "quantity", Description: "quantity cannot be negative"}}
	}
	status := ComputeStatus(*w.Quantity, nil)
	return InventoryWrite{Quantity: w.Quantity, Status: &status}, nil
}

// validateFullWrite checks each present field and, for creates, that every
// required field is present. The returned write carries the derived status.
func validateFullWrite(w InventoryWrite, create bool) (InventoryWrite, error) {
	errs := FieldErrors{}

	required := func(present bool, field string) {
		if create && !present {
			errs = append(errs, FieldError{Field: field, Description: field + " is required"})
		}
	}

	required(w.Name != nil, "name")
	if w.Name != nil && len(strings.TrimSpace(*w.Name)) < 2 {
		errs = append(errs, FieldError{Field: "name", Description: "name must be at least 2 characters"})
	}

	required(w.Category != nil, "category")
	if w.Category != nil && !w.Category.Valid() {
		errs = append(errs, FieldError{Field: "category", Description: "category must be Fruit, Vegetable or Other"})
	}

	required(w.Quantity != nil, "quantity")
	if w.Quantity != nil && *w.Quantity < 0 {
		errs = append(errs, FieldError{Field: "quantity", Description: "quantity cannot be negative"})
	}

	required(w.Unit != nil, "unit")
	if w.Unit != nil && !w.Unit.Valid() {
		errs = append(errs, FieldError{Field: "unit", Description: "unit must be kg, box or piece"})
	}

	required(w.CostPrice != nil, "cost_price")
	if w.CostPrice != nil && *w.CostPrice < 0 {
		errs = append(errs, FieldError{Field: "cost_price", Description: "cost price cannot be negative"})
	}

	required(w.SellingPrice != nil, "selling_price")
	if w.SellingPrice != nil && *w.SellingPrice < 0 {
		errs = append(errs, FieldError{Field: "selling_price", Description: "selling price cannot be negative"})
	}

	required(w.Supplier != nil, "supplier")
	if w.Supplier != nil && strings.TrimSpace(*w.Supplier) == "" {
		errs = append(errs, FieldError{Field: "supplier", Description: "supplier is required"})
	}

	required(w.ExpirationDate != nil, "expiration_date")
	if w.ExpirationDate != nil {
		if _, err := time.Parse(time.RFC3339, *w.ExpirationDate); err != nil {
			errs = append(errs, FieldError{Field: "expiration_date", Description: "expiration date must be an RFC3339 timestamp"})
		}
	}

	if w.Status != nil && !w.Status.Valid() {
		errs = append(errs, FieldError{Field: "status", Description: "unknown status"})
	}

	if len(errs) > 0 {
		return InventoryWrite{}, errs
	}

	out := w
	if w.Quantity != nil {
		status := ComputeStatus(*w.Quantity, w.Status)
		out.Status = &status
	}
	return out, nil
}
