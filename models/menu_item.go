package models

import "time"

// MenuItem is a dish on the menu. IsAvailable is the manually managed flag;
// whether the dish can actually be cooked is derived from product stock and
// never stored (see services.ComputeAvailability).
type MenuItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	CategoryID  *uint     `json:"category_id,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"category,omitempty"`
	IsAvailable bool      `gorm:"not null;default:true" json:"is_available"`
	CookingTime int       `json:"cooking_time"` // minutes
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`

	Ingredients []MenuItemIngredient `gorm:"foreignKey:MenuItemID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"ingredients"`
}

// MenuItemIngredient is a recipe line: how much of a product one serving of
// the dish consumes.
type MenuItemIngredient struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	MenuItemID       uint    `gorm:"not null;index:idx_recipe_line,unique" json:"menu_item_id"`
	ProductID        uint    `gorm:"not null;index:idx_recipe_line,unique" json:"product_id"`
	Product          Product `gorm:"foreignKey:ProductID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"product"`
	QuantityRequired float64 `gorm:"not null" json:"quantity_required"`
}
