package models

import "time"

// ProductSupply is an append-only delivery record. Rows are never mutated
// after creation; stock credits happen through the ledger in the same
// transaction that inserts the row.
type ProductSupply struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	ProductID    uint      `gorm:"not null;index" json:"product_id"`
	Product      Product   `gorm:"foreignKey:ProductID;references:ID" json:"-"`
	Quantity     float64   `gorm:"not null" json:"quantity"`
	SupplyDate   time.Time `gorm:"not null;index" json:"supply_date"`
	SupplierName string    `gorm:"type:varchar(200)" json:"supplier_name"`
	Cost         float64   `json:"cost"`
	BatchNumber  string    `gorm:"type:varchar(100)" json:"batch_number"`
}
