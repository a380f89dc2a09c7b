package policy

import (
	"testing"

	"github.com/mbachaalani/freshmarket-ai-platform/internal/models"
)

func TestComputeStatus_BelowThreshold(t *testing.T) {
	requested := []*models.InventoryStatus{
		nil,
		statusPtr(models.StatusInStock),
		statusPtr(models.StatusOrdered),
		statusPtr(models.StatusDiscontinued),
	}

	for qty := 0; qty < LowStockThreshold; qty++ {
		for _, req := range requested {
			if got := ComputeStatus(qty, req); got != models.StatusLowStock {
				t.Errorf("ComputeStatus(%d, %v) = %s, want LOW_STOCK", qty, req, got)
			}
		}
	}
}

func TestComputeStatus_AtOrAboveThreshold(t *testing.T) {
	for _, qty := range []int{LowStockThreshold, 11, 50, 1000} {
		if got := ComputeStatus(qty, nil); got != models.StatusInStock {
			t.Errorf("ComputeStatus(%d, nil) = %s, want IN_STOCK", qty, got)
		}

		for _, s := range []models.InventoryStatus{
			models.StatusInStock,
			models.StatusLowStock,
			models.StatusOrdered,
			models.StatusDiscontinued,
		} {
			if got := ComputeStatus(qty, &s); got != s {
				t.Errorf("ComputeStatus(%d, %s) = %s, want requested", qty, s, got)
			}
		}
	}
}

func statusPtr(s models.InventoryStatus) *models.InventoryStatus { return &s }
