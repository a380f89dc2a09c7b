package repo

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
	"github.com/mbachaalani/freshmarket-ai-platform/internal/policy"
)

// InMemoryInventoryRepository is an in-memory implementation of
// InventoryRepository.
type InMemoryInventoryRepository struct {
	items []models.InventoryItem
}

// NewInMemoryInventoryRepository creates a new instance of
// InMemoryInventoryRepository.
func NewInMemoryInventoryRepository() *InMemoryInventoryRepository {
	return &InMemoryInventoryRepository{items: []models.InventoryItem{}}
}

func matchesInventoryFilter(i models.InventoryItem, f InventoryFilter) bool {
	if f.Name != "" && !strings.Contains(strings.ToLower(i.Name), strings.ToLower(f.Name)) {
		return false
	}
	if f.Category != nil && i.Category != *f.Category {
		return false
	}
	if f.Status != nil && i.Status != *f.Status {
		return false
	}
	if f.Supplier != "" && !strings.Contains(strings.ToLower(i.Supplier), strings.ToLower(f.Supplier)) {
		return false
	}
	return true
}

// Create adds a new item, minting its id.
func (r *InMemoryInventoryRepository) Create(item models.InventoryItem) (models.InventoryItem, error) {
	item.ID = uuid.NewString()
	r.items = append(r.items, item)
	return item, nil
}

// Filter retrieves the items matching f, newest first.
func (r *InMemoryInventoryRepository) Filter(f InventoryFilter) ([]models.InventoryItem, error) {
	filtered := []models.InventoryItem{}
	for i := len(r.items) - 1; i >= 0; i-- {
		if matchesInventoryFilter(r.items[i], f) {
			filtered = append(filtered, r.items[i])
		}
	}
	return filtered, nil
}

// GetByID retrieves an item by its id.
func (r *InMemoryInventoryRepository) GetByID(id string) (models.InventoryItem, error) {
	for _, i := range r.items {
		if i.ID == id {
			return i, nil
		}
	}
	return models.InventoryItem{}, ErrItemNotFound
}

// Update replaces an existing item.
func (r *InMemoryInventoryRepository) Update(item models.InventoryItem) (models.InventoryItem, error) {
	for i, existing := range r.items {
		if existing.ID == item.ID {
			r.items[i] = item
			return item, nil
		}
	}
	return models.InventoryItem{}, ErrItemNotFound
}

// Delete removes an item by its id.
func (r *InMemoryInventoryRepository) Delete(id string) error {
	for i, existing := range r.items {
		if existing.ID == id {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return ErrItemNotFound
}

// LowStock returns items flagged LOW_STOCK or under the threshold, lowest
// quantity first.
func (r *InMemoryInventoryRepository) LowStock() ([]models.InventoryItem, error) {
	var low []models.InventoryItem
	for _, i := range r.items {
		if i.Status == models.StatusLowStock || i.Quantity < policy.LowStockThreshold {
			low = append(low, i)
		}
	}
	sort.Slice(low, func(a, b int) bool { return low[a].Quantity < low[b].Quantity })
	return low, nil
}

// ExpiringBefore returns items whose expiration date falls before cutoff,
// soonest first. Items with unparseable dates are skipped.
func (r *InMemoryInventoryRepository) ExpiringBefore(cutoff time.Time) ([]models.InventoryItem, error) {
	type dated struct {
		item models.InventoryItem
		at   time.Time
	}
	var expiring []dated
	for _, i := range r.items {
		at, err := time.Parse(time.RFC3339, i.ExpirationDate)
		if err != nil {
			continue
		}
		if !at.After(cutoff) {
			expiring = append(expiring, dated{i, at})
		}
	}
	sort.Slice(expiring, func(a, b int) bool { return expiring[a].at.Before(expiring[b].at) })
	out := make([]models.InventoryItem, len(expiring))
	for i, d := range expiring {
		out[i] = d.item
	}
	return out, nil
}

// TopBySellingPrice returns up to limit items, highest selling price first.
func (r *InMemoryInventoryRepository) TopBySellingPrice(limit int) ([]models.InventoryItem, error) {
	sorted := make([]models.InventoryItem, len(r.items))
	copy(sorted, r.items)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].SellingPrice > sorted[b].SellingPrice })
	if limit > 0 && limit < len(sorted) {
		sorted = sorted[:limit]
	}
	return sorted, nil
}

func (r *InMemoryInventoryRepository) Clear() {
	r.items = []models.InventoryItem{}
}
