package models

import (
	"time"

	"github.com/google/uuid"
)

// InventoryStatus is the stock state of an item.
type InventoryStatus string

const (
	InventoryStatusActive    InventoryStatus = "active"
	InventoryStatusBackorder InventoryStatus = "backorder"
	InventoryStatusSoldOut   InventoryStatus = "sold_out"
	InventoryStatusRetired   InventoryStatus = "retired"
)

func (s InventoryStatus) IsValid() bool {
	switch s {
	case InventoryStatusActive, InventoryStatusBackorder, InventoryStatusSoldOut, InventoryStatusRetired:
		return true
	}
	return false
}

// InventoryItem is a stocked product at a store location.
type InventoryItem struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	Name      string          `db:"name" json:"name"`
	SKU       string          `db:"sku" json:"sku"`
	Quantity  int             `db:"quantity" json:"quantity"`
	Location  string          `db:"location" json:"location"`
	Status    InventoryStatus `db:"status" json:"status"`
	Notes     *string         `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}

// TableName returns the database table name
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NormalizeStatus applies the quantity/status correction on write: an item at
// zero quantity is always sold_out, and a sold_out item that regains stock is
// reset to active. The store never enforces this; writers do.
func NormalizeStatus(quantity int, submitted InventoryStatus) InventoryStatus {
	if quantity == 0 {
		return InventoryStatusSoldOut
	}
	if submitted == InventoryStatusSoldOut {
		return InventoryStatusActive
	}
	return submitted
}
