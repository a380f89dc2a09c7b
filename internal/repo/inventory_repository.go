package repo

import (
	"time"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

// InventoryRepository defines the interface for inventory data operations.
type InventoryRepository interface {
	Create(item models.InventoryItem) (models.InventoryItem, error)
	Filter(f InventoryFilter) ([]models.InventoryItem, error)
	GetByID(id string) (models.InventoryItem, error)
	Update(item models.InventoryItem) (models.InventoryItem, error)
	Delete(id string) error

	// Snapshot queries backing the AI advisors.
	LowStock() ([]models.InventoryItem, error)
	ExpiringBefore(cutoff time.Time) ([]models.InventoryItem, error)
	TopBySellingPrice(limit int) ([]models.InventoryItem, error)
}

// InventoryFilter scopes a listing query. Zero values mean "no constraint".
type InventoryFilter struct {
	Name     string
	Category *models.InventoryCategory
	Status   *models.InventoryStatus
	Supplier string
}
