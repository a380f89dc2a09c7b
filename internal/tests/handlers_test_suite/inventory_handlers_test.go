package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	api "github.com/mbachaalani/freshmarket-ai-platform/internal/http"
	handler "github.com/mbachaalani/freshmarket-ai-platform/internal/http/handlers"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
)

func TestCreateInventoryHandler_Valid(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, validItemRequest(), managerToken)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var item models.InventoryItem
	if err := json.NewDecoder(w.Body).Decode(&item); err != nil {
		t.Fatalf("error decoding response: %v", err)
	}
	if item.Name != "Gala Apples" {
		t.Errorf("expected name 'Gala Apples', got %v", item.Name)
	}
	if item.Status != models.StatusInStock {
		t.Errorf("expected derived status IN_STOCK, got %v", item.Status)
	}
	if item.CreatedByID != managerID {
		t.Errorf("expected created_by_id %q, got %q", managerID, item.CreatedByID)
	}
}

func TestCreateInventoryHandler_LowQuantityDerivesLowStock(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	req := validItemRequest()
	req.Quantity = intPtr(9)
	req.Status = strPtr("IN_STOCK") // requested status loses to the quantity rule

	w := createItem(r, req, managerToken)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
	}

	var item models.InventoryItem
	json.NewDecoder(w.Body).Decode(&item)
	if item.Status != models.StatusLowStock {
		t.Errorf("expected status LOW_STOCK for quantity 9, got %v", item.Status)
	}
}

func TestCreateInventoryHandler_StaffForbidden(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, validItemRequest(), staffToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 Forbidden, got %d", w.Code)
	}
}

func TestCreateInventoryHandler_Invalid(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	tests := []struct {
		name           string
		mutate         func(*handler.InventoryItemRequest)
		expectedErrors []string
	}{
		{
			name:           "Missing name",
			mutate:         func(r *handler.InventoryItemRequest) { r.Name = nil },
			expectedErrors: []string{"name"},
		},
		{
			name:           "Short name",
			mutate:         func(r *handler.InventoryItemRequest) { r.Name = strPtr("A") },
			expectedErrors: []string{"name"},
		},
		{
			name:           "Unknown category",
			mutate:         func(r *handler.InventoryItemRequest) { r.Category = strPtr("Dairy") },
			expectedErrors: []string{"category"},
		},
		{
			name:           "Negative quantity",
			mutate:         func(r *handler.InventoryItemRequest) { r.Quantity = intPtr(-1) },
			expectedErrors: []string{"quantity"},
		},
		{
			name:           "Negative prices",
			mutate:         func(r *handler.InventoryItemRequest) { r.CostPrice = floatPtr(-1); r.SellingPrice = floatPtr(-2) },
			expectedErrors: []string{"cost_price", "selling_price"},
		},
		{
			name:           "Bad expiration date",
			mutate:         func(r *handler.InventoryItemRequest) { r.ExpirationDate = strPtr("tomorrow") },
			expectedErrors: []string{"expiration_date"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validItemRequest()
			tt.mutate(&payload)

			w := createItem(r, payload, managerToken)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400 Bad Request, got %d: %s", w.Code, w.Body.String())
			}

			var resp []policy.FieldError
			if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
				t.Fatalf("error decoding response: %v", err)
			}
			for _, field := range tt.expectedErrors {
				found := false
				for _, fe := range resp {
					if strings.EqualFold(fe.Field, field) {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("expected error for field %q, but not found in %v", field, resp)
				}
			}
		})
	}
}

func TestUpdateInventoryHandler_StaffQuantityOnly(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, validItemRequest(), managerToken)
	var item models.InventoryItem
	json.NewDecoder(w.Body).Decode(&item)

	// The extra fields are silently dropped for STAFF, not rejected.
	w = doJSON(r, http.MethodPut, "/inventory/"+item.ID, handler.InventoryItemRequest{
		Quantity: intPtr(5),
		Name:     strPtr("hacked"),
		Supplier: strPtr("hacked"),
	}, staffToken)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.InventoryItem
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", updated.Quantity)
	}
	if updated.Status != models.StatusLowStock {
		t.Errorf("expected status LOW_STOCK after dropping to 5, got %v", updated.Status)
	}
	if updated.Name != "Gala Apples" {
		t.Errorf("expected name unchanged, got %q", updated.Name)
	}
	if updated.Supplier != "Orchard Co" {
		t.Errorf("expected supplier unchanged, got %q", updated.Supplier)
	}
}

func TestUpdateInventoryHandler_StaffWithoutQuantity(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, validItemRequest(), managerToken)
	var item models.InventoryItem
	json.NewDecoder(w.Body).Decode(&item)

	w = doJSON(r, http.MethodPut, "/inventory/"+item.ID, handler.InventoryItemRequest{
		Name: strPtr("hacked"),
	}, staffToken)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 Bad Request for staff update without quantity, got %d", w.Code)
	}
}

func TestUpdateInventoryHandler_ManagerPartial(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, validItemRequest(), managerToken)
	var item models.InventoryItem
	json.NewDecoder(w.Body).Decode(&item)

	w = doJSON(r, http.MethodPut, "/inventory/"+item.ID, handler.InventoryItemRequest{
		Supplier: strPtr("New Orchard Ltd"),
	}, managerToken)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d: %s", w.Code, w.Body.String())
	}

	var updated models.InventoryItem
	json.NewDecoder(w.Body).Decode(&updated)
	if updated.Supplier != "New Orchard Ltd" {
		t.Errorf("expected supplier updated, got %q", updated.Supplier)
	}
	if updated.Quantity != 40 {
		t.Errorf("expected quantity unchanged, got %d", updated.Quantity)
	}
}

func TestUpdateInventoryHandler_NotFound(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := doJSON(r, http.MethodPut, "/inventory/no-such-id", handler.InventoryItemRequest{
		Quantity: intPtr(3),
	}, managerToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 Not Found, got %d", w.Code)
	}
}

func TestDeleteInventoryHandler(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	w := createItem(r, validItemRequest(), managerToken)
	var item models.InventoryItem
	json.NewDecoder(w.Body).Decode(&item)

	w = doJSON(r, http.MethodDelete, "/inventory/"+item.ID, nil, staffToken)
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403 Forbidden for staff delete, got %d", w.Code)
	}

	w = doJSON(r, http.MethodDelete, "/inventory/"+item.ID, nil, managerToken)
	if w.Code != http.StatusNoContent {
		t.Errorf("expected 204 No Content, got %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/inventory/"+item.ID, nil, managerToken)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", w.Code)
	}
}

func TestGetInventoryHandler_Filters(t *testing.T) {
	t.Cleanup(clearAllItems)
	r := api.NewRouter()

	apples := validItemRequest()
	createItem(r, apples, managerToken)

	carrots := validItemRequest()
	carrots.Name = strPtr("Carrots")
	carrots.Category = strPtr("Vegetable")
	carrots.Quantity = intPtr(4)
	carrots.Supplier = strPtr("Field Farms")
	createItem(r, carrots, managerToken)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"All items", "", 2},
		{"By name substring", "?name=carr", 1},
		{"By category", "?category=Vegetable", 1},
		{"By status", "?status=LOW_STOCK", 1},
		{"By supplier substring", "?supplier=field", 1},
		{"Unknown category ignored", "?category=Dairy", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, http.MethodGet, "/inventory"+tt.query, nil, staffToken)
			if w.Code != http.StatusOK {
				t.Fatalf("expected 200 OK, got %d", w.Code)
			}
			var items []models.InventoryItem
			json.NewDecoder(w.Body).Decode(&items)
			if len(items) != tt.want {
				t.Errorf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestInventoryHandlers_Unauthenticated(t *testing.T) {
	r := api.NewRouter()

	req := httptest.NewRequest(http.MethodGet, "/inventory", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 Unauthorized without token, got %d", w.Code)
	}
}
