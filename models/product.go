package models

import "time"

// Product is a raw ingredient tracked by the inventory ledger.
// CurrentStock is expressed in Unit (kg, pcs, l, ...).
type Product struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Unit         string    `gorm:"type:varchar(20);not null" json:"unit"`
	CurrentStock float64   `gorm:"not null;default:0" json:"current_stock"`
	MinStock     float64   `gorm:"not null;default:0" json:"min_stock"`
	CostPerUnit  float64   `gorm:"not null;default:0" json:"cost_per_unit"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`

	RecipeLines []MenuItemIngredient `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	Supplies    []ProductSupply      `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// IsLowStock reports whether the product is at or below its minimum threshold.
func (p *Product) IsLowStock() bool {
	return p.CurrentStock <= p.MinStock
}
