package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/FlashgoKless/vsm-restaurant/models"
)

func TestAdjustStockRoundTrip(t *testing.T) {
	db := setupTestDB(t, "inv_roundtrip")
	flour := seedProduct(t, db, "Flour", 10, 2, 1.5)

	svc := NewInventoryService(db)
	newStock, err := svc.AdjustStock(db, flour.ID, 7)
	assert.NoError(t, err)
	assert.Equal(t, 17.0, newStock)

	newStock, err = svc.AdjustStock(db, flour.ID, -7)
	assert.NoError(t, err)
	assert.Equal(t, 10.0, newStock)
}

func TestAdjustStockUnknownProduct(t *testing.T) {
	db := setupTestDB(t, "inv_unknown")
	svc := NewInventoryService(db)

	_, err := svc.AdjustStock(db, 99, 5)
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestCheckSufficiency(t *testing.T) {
	db := setupTestDB(t, "inv_sufficiency")
	flour := seedProduct(t, db, "Flour", 10, 2, 1.5)

	svc := NewInventoryService(db)
	ok, err := svc.CheckSufficiency(db, flour.ID, 10)
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.CheckSufficiency(db, flour.ID, 10.5)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordSupplyCreditsStock(t *testing.T) {
	db := setupTestDB(t, "inv_supply")
	flour := seedProduct(t, db, "Flour", 4, 2, 1.5)

	svc := NewInventoryService(db)
	supply, err := svc.RecordSupply(db, flour.ID, 20, "Acme", 1.2, "B-17")
	assert.NoError(t, err)
	assert.Equal(t, 20.0, supply.Quantity)
	assert.Equal(t, 24.0, currentStock(t, db, flour.ID))

	var count int64
	db.Model(&models.ProductSupply{}).Where("product_id = ?", flour.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRecordSupplyValidation(t *testing.T) {
	db := setupTestDB(t, "inv_supply_validation")
	flour := seedProduct(t, db, "Flour", 4, 2, 1.5)

	svc := NewInventoryService(db)
	var validation *ValidationError
	_, err := svc.RecordSupply(db, flour.ID, 0, "", 0, "")
	assert.True(t, errors.As(err, &validation))
	_, err = svc.RecordSupply(db, flour.ID, -3, "", 0, "")
	assert.True(t, errors.As(err, &validation))

	var notFound *NotFoundError
	_, err = svc.RecordSupply(db, 99, 5, "", 0, "")
	assert.True(t, errors.As(err, &notFound))

	assert.Equal(t, 4.0, currentStock(t, db, flour.ID))
}

func TestRestockByNameCreatesProduct(t *testing.T) {
	db := setupTestDB(t, "inv_restock_name")
	svc := NewInventoryService(db)

	product, err := svc.Restock(0, "Sugar", 12)
	assert.NoError(t, err)
	assert.Equal(t, "Sugar", product.Name)
	assert.Equal(t, 12.0, product.CurrentStock)

	// same name again tops up the existing product
	product, err = svc.Restock(0, "Sugar", 3)
	assert.NoError(t, err)
	assert.Equal(t, 15.0, product.CurrentStock)

	var count int64
	db.Model(&models.Product{}).Where("name = ?", "Sugar").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRestockValidation(t *testing.T) {
	db := setupTestDB(t, "inv_restock_validation")
	svc := NewInventoryService(db)

	var validation *ValidationError
	_, err := svc.Restock(0, "", 5)
	assert.True(t, errors.As(err, &validation))
	_, err = svc.Restock(0, "Salt", 0)
	assert.True(t, errors.As(err, &validation))

	var notFound *NotFoundError
	_, err = svc.Restock(123, "", 5)
	assert.True(t, errors.As(err, &notFound))
}

func TestBulkRestockSkipsUnknownProducts(t *testing.T) {
	db := setupTestDB(t, "inv_bulk")
	flour := seedProduct(t, db, "Flour", 4, 2, 1.5)
	milk := seedProduct(t, db, "Milk", 2, 5, 0.9)

	svc := NewInventoryService(db)
	results, err := svc.BulkRestock([]RestockLine{
		{ProductID: flour.ID, Quantity: 20, SupplierName: "Acme"},
		{ProductID: 999, Quantity: 10},
		{ProductID: milk.ID, Quantity: 8, SupplierName: "Acme"},
	})
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "Flour", results[0].ProductName)
	assert.Equal(t, "Milk", results[1].ProductName)
	assert.Equal(t, 24.0, currentStock(t, db, flour.ID))
	assert.Equal(t, 10.0, currentStock(t, db, milk.ID))
}

func TestLowStockProducts(t *testing.T) {
	db := setupTestDB(t, "inv_lowstock")
	seedProduct(t, db, "Flour", 10, 2, 1.5)
	low := seedProduct(t, db, "Milk", 2, 5, 0.9)
	boundary := seedProduct(t, db, "Salt", 3, 3, 0.2)

	svc := NewInventoryService(db)
	products, err := svc.LowStockProducts()
	assert.NoError(t, err)
	assert.Len(t, products, 2)

	ids := []uint{products[0].ID, products[1].ID}
	assert.Contains(t, ids, low.ID)
	assert.Contains(t, ids, boundary.ID)
}

func TestProductsToOrder(t *testing.T) {
	db := setupTestDB(t, "inv_reorder")
	seedProduct(t, db, "Flour", 10, 2, 1.5)
	seedProduct(t, db, "Milk", 2, 5, 0.9)

	svc := NewInventoryService(db)
	suggestions, err := svc.ProductsToOrder()
	assert.NoError(t, err)
	assert.Len(t, suggestions, 1)
	assert.Equal(t, "Milk", suggestions[0].ProductName)
	assert.Equal(t, 3.0, suggestions[0].QuantityToOrder)
	assert.InDelta(t, 2.7, suggestions[0].EstimatedCost, 1e-9)
}

func TestBuildStockReport(t *testing.T) {
	db := setupTestDB(t, "inv_stockreport")
	seedProduct(t, db, "Flour", 10, 2, 1.5)
	seedProduct(t, db, "Milk", 2, 5, 0.9)

	svc := NewInventoryService(db)
	report, err := svc.BuildStockReport()
	assert.NoError(t, err)
	assert.Equal(t, 2, report.TotalProducts)
	assert.Equal(t, 1, report.LowStockCount)
	assert.InDelta(t, 10*1.5+2*0.9, report.TotalInventoryValue, 1e-9)
	assert.Equal(t, "normal", report.Products[0].Status)
	assert.Equal(t, "low", report.Products[1].Status)
}

func TestMonthlyReportAggregatesBySupplier(t *testing.T) {
	db := setupTestDB(t, "inv_monthly")
	flour := seedProduct(t, db, "Flour", 0, 2, 1.5)
	milk := seedProduct(t, db, "Milk", 0, 5, 0.9)

	svc := NewInventoryService(db)
	_, err := svc.RecordSupply(db, flour.ID, 10, "Acme", 2, "")
	assert.NoError(t, err)
	_, err = svc.RecordSupply(db, milk.ID, 5, "Acme", 3, "")
	assert.NoError(t, err)
	_, err = svc.RecordSupply(db, flour.ID, 7, "", 1, "")
	assert.NoError(t, err)

	now := time.Now()
	report, err := svc.MonthlyReportFor(int(now.Month()), now.Year())
	assert.NoError(t, err)
	assert.Equal(t, 3, report.TotalSupplies)
	assert.Len(t, report.SupplierStats, 2)

	acme := report.SupplierStats[0]
	assert.Equal(t, "Acme", acme.SupplierName)
	assert.Equal(t, 15.0, acme.TotalQuantity)
	assert.Equal(t, 35.0, acme.TotalCost)
	assert.Equal(t, 2, acme.SupplyCount)
	assert.Equal(t, []string{"Flour", "Milk"}, acme.Products)

	unknown := report.SupplierStats[1]
	assert.Equal(t, "Unknown", unknown.SupplierName)
	assert.Equal(t, 1, unknown.SupplyCount)
}

func TestMonthlyReportValidation(t *testing.T) {
	db := setupTestDB(t, "inv_monthly_validation")
	svc := NewInventoryService(db)

	var validation *ValidationError
	_, err := svc.MonthlyReportFor(0, 2026)
	assert.True(t, errors.As(err, &validation))
	_, err = svc.MonthlyReportFor(13, 2026)
	assert.True(t, errors.As(err, &validation))
}

func TestSuppliesSinceFiltersBySupplier(t *testing.T) {
	db := setupTestDB(t, "inv_history")
	flour := seedProduct(t, db, "Flour", 0, 2, 1.5)

	svc := NewInventoryService(db)
	_, err := svc.RecordSupply(db, flour.ID, 10, "Acme Foods", 2, "")
	assert.NoError(t, err)
	_, err = svc.RecordSupply(db, flour.ID, 5, "Baker Bros", 2, "")
	assert.NoError(t, err)

	all, err := svc.SuppliesSince(30, "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "Flour", all[0].Product.Name)

	filtered, err := svc.SuppliesSince(30, "acme")
	assert.NoError(t, err)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "Acme Foods", filtered[0].SupplierName)
}
