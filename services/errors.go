package services

import "fmt"

// MissingIngredient describes one recipe line that cannot be satisfied by
// current stock.
type MissingIngredient struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Required    float64 `json:"required"`
	Available   float64 `json:"available"`
	Unit        string  `json:"unit"`
}

// NotFoundError means a referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// ValidationError means the request payload failed a business-level check.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// UnavailableError means a menu item was manually disabled.
type UnavailableError struct {
	ItemName string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("menu item %s is not available", e.ItemName)
}

// InsufficientStockError means at least one recipe line cannot be covered
// by current stock. Missing lists exactly the failing lines.
type InsufficientStockError struct {
	ItemName string
	Missing  []MissingIngredient
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough ingredients for %s", e.ItemName)
}

// InvalidTransitionError means an order status change is illegal.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition order from %s to %s", e.From, e.To)
}
