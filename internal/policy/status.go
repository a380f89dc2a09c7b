package policy

import "github.com/mbachaalani/freshmarket-ai-platform/internal/models"

// LowStockThreshold is the quantity below which an item is always LOW_STOCK.
const LowStockThreshold = 10

// ComputeStatus derives an inventory status from quantity. Below the
// threshold the result is LOW_STOCK no matter what was requested; otherwise
// the requested status wins, defaulting to IN_STOCK. This is the single
// source of truth for status, invoked on every create and every
// quantity-affecting update so status never drifts from quantity.
func ComputeStatus(quantity int, requested *models.InventoryStatus) models.InventoryStatus {
	if quantity < LowStockThreshold {
		return models.StatusLowStock
	}
	if requested != nil {
		return *requested
	}
	return models.StatusInStock
}
