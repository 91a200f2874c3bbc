package services

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/models"
)

// setupTestDB opens a private in-memory database per test. The named DSN
// keeps the database alive across pooled connections.
func setupTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Product{},
		&models.MenuItem{},
		&models.MenuItemIngredient{},
		&models.ProductSupply{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock, minStock, cost float64) *models.Product {
	t.Helper()
	product := models.Product{
		Name:         name,
		Unit:         "kg",
		CurrentStock: stock,
		MinStock:     minStock,
		CostPerUnit:  cost,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return &product
}

func seedMenuItem(t *testing.T, db *gorm.DB, name string, price float64, available bool) *models.MenuItem {
	t.Helper()
	item := models.MenuItem{
		Name:        name,
		Price:       price,
		IsAvailable: available,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	return &item
}

func seedRecipeLine(t *testing.T, db *gorm.DB, menuItemID, productID uint, required float64) {
	t.Helper()
	line := models.MenuItemIngredient{
		MenuItemID:       menuItemID,
		ProductID:        productID,
		QuantityRequired: required,
	}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("failed to seed recipe line: %v", err)
	}
}

func currentStock(t *testing.T, db *gorm.DB, productID uint) float64 {
	t.Helper()
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		t.Fatalf("failed to load product: %v", err)
	}
	return product.CurrentStock
}
