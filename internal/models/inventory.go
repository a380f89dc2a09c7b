package models

// InventoryCategory is the product category of an inventory item.
type InventoryCategory string

const (
	CategoryFruit     InventoryCategory = "Fruit"
	CategoryVegetable InventoryCategory = "Vegetable"
	CategoryOther     InventoryCategory = "Other"
)

// InventoryStatus tracks the stock state of an item.
type InventoryStatus string

const (
	StatusInStock      InventoryStatus = "IN_STOCK"
	StatusLowStock     InventoryStatus = "LOW_STOCK"
	StatusOrdered      InventoryStatus = "ORDERED"
	StatusDiscontinued InventoryStatus = "DISCONTINUED"
)

// Unit is the measurement unit of an inventory item.
type Unit string

const (
	UnitKg    Unit = "kg"
	UnitBox   Unit = "box"
	UnitPiece Unit = "piece"
)

func (c InventoryCategory) Valid() bool {
	switch c {
	case CategoryFruit, CategoryVegetable, CategoryOther:
		return true
	}
	return false
}

func (s InventoryStatus) Valid() bool {
	switch s {
	case StatusInStock, StatusLowStock, StatusOrdered, StatusDiscontinued:
		return true
	}
	return false
}

func (u Unit) Valid() bool {
	switch u {
	case UnitKg, UnitBox, UnitPiece:
		return true
	}
	return false
}

// InventoryItem represents a stocked product. CreatedBy records who entered
// the item; it carries no authorization weight.
type InventoryItem struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Category       InventoryCategory `json:"category"`
	Quantity       int               `json:"quantity"`
	Unit           Unit              `json:"unit"`
	CostPrice      float64           `json:"cost_price"`
	SellingPrice   float64           `json:"selling_price"`
	Supplier       string            `json:"supplier"`
	ExpirationDate string            `json:"expiration_date"`
	Status         InventoryStatus   `json:"status"`
	CreatedByID    string            `json:"created_by_id"`
	CreatedBy      UserRef           `json:"created_by"`
	CreatedAt      string            `json:"created_at,omitempty"`
	UpdatedAt      string            `json:"updated_at,omitempty"`
}
