package services

import (
	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/models"
)

// MenuService is the recipe catalog: it owns the menu-item/product
// associations and derives dish availability from stock.
type MenuService struct {
	DB *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{DB: db}
}

// ComputeAvailability checks whether `servings` portions of the item can be
// cooked from current stock. The item must have its recipe lines and their
// products preloaded. An item with no recipe lines is always available.
// Missing holds exactly the failing lines and is empty when available.
func ComputeAvailability(item *models.MenuItem, servings int) (bool, []MissingIngredient) {
	if servings < 1 {
		servings = 1
	}

	var missing []MissingIngredient
	for _, line := range item.Ingredients {
		required := line.QuantityRequired * float64(servings)
		if line.Product.CurrentStock < required {
			missing = append(missing, MissingIngredient{
				ProductID:   line.ProductID,
				ProductName: line.Product.Name,
				Required:    required,
				Available:   line.Product.CurrentStock,
				Unit:        line.Product.Unit,
			})
		}
	}
	return len(missing) == 0, missing
}

// EffectiveAvailability combines the manual flag with the stock-derived
// availability: a manually disabled dish is never orderable.
func EffectiveAvailability(item *models.MenuItem) bool {
	if !item.IsAvailable {
		return false
	}
	available, _ := ComputeAvailability(item, 1)
	return available
}

// GetMenuItem loads one item with its recipe lines and products.
func (s *MenuService) GetMenuItem(itemID uint) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.DB.Preload("Ingredients.Product").Preload("Category").First(&item, itemID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Entity: "menu item", ID: itemID}
		}
		return nil, err
	}
	return &item, nil
}

// ListMenuItems returns the menu, optionally filtered by category.
func (s *MenuService) ListMenuItems(categoryID uint) ([]models.MenuItem, error) {
	query := s.DB.Preload("Ingredients.Product").Preload("Category")
	if categoryID != 0 {
		query = query.Where("category_id = ?", categoryID)
	}

	var items []models.MenuItem
	err := query.Find(&items).Error
	return items, err
}

// AddIngredient attaches a recipe line to a menu item. Both the item and
// the product must exist and the quantity must be positive.
func (s *MenuService) AddIngredient(menuItemID, productID uint, quantityRequired float64) (*models.MenuItemIngredient, error) {
	if quantityRequired <= 0 {
		return nil, &ValidationError{Msg: "quantity_required must be positive"}
	}

	var line models.MenuItemIngredient
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var item models.MenuItem
		if err := tx.First(&item, menuItemID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &NotFoundError{Entity: "menu item", ID: menuItemID}
			}
			return err
		}
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &NotFoundError{Entity: "product", ID: productID}
			}
			return err
		}

		var existing models.MenuItemIngredient
		err := tx.Where("menu_item_id = ? AND product_id = ?", menuItemID, productID).First(&existing).Error
		if err == nil {
			return &ValidationError{Msg: "product is already part of the recipe"}
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		line = models.MenuItemIngredient{
			MenuItemID:       menuItemID,
			ProductID:        productID,
			QuantityRequired: quantityRequired,
		}
		return tx.Create(&line).Error
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// RemoveIngredient detaches a recipe line from a menu item.
func (s *MenuService) RemoveIngredient(menuItemID, ingredientID uint) error {
	res := s.DB.Where("id = ? AND menu_item_id = ?", ingredientID, menuItemID).
		Delete(&models.MenuItemIngredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &NotFoundError{Entity: "recipe line", ID: ingredientID}
	}
	return nil
}
