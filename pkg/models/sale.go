package models

import (
	"time"

	"github.com/google/uuid"
)

// SaleRecord is one ledger entry written when inventory is sold. Rows are
// append-only; the core never updates or deletes them.
type SaleRecord struct {
	ID        uuid.UUID `db:"id" json:"id"`
	ItemID    uuid.UUID `db:"item_id" json:"item_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// TableName returns the database table name
func (SaleRecord) TableName() string {
	return "inventory_sales"
}
