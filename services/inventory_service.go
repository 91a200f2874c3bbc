package services

import (
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/models"
)

// InventoryService is the stock ledger. Mutating primitives take the
// transaction handle explicitly so callers control the commit boundary.
type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// AdjustStock applies current_stock += delta (delta may be negative) and
// bumps updated_at. No lower bound is enforced here; callers that must not
// go negative check sufficiency first or use a conditional debit.
func (s *InventoryService) AdjustStock(tx *gorm.DB, productID uint, delta float64) (float64, error) {
	res := tx.Model(&models.Product{}).
		Where("id = ?", productID).
		Updates(map[string]interface{}{
			"current_stock": gorm.Expr("current_stock + ?", delta),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, &NotFoundError{Entity: "product", ID: productID}
	}

	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		return 0, err
	}
	return product.CurrentStock, nil
}

// CheckSufficiency reports whether the product has at least required stock.
func (s *InventoryService) CheckSufficiency(tx *gorm.DB, productID uint, required float64) (bool, error) {
	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return false, &NotFoundError{Entity: "product", ID: productID}
		}
		return false, err
	}
	return product.CurrentStock >= required, nil
}

// LowStockProducts lists every product at or below its minimum threshold.
func (s *InventoryService) LowStockProducts() ([]models.Product, error) {
	var products []models.Product
	err := s.DB.Where("current_stock <= min_stock").Find(&products).Error
	return products, err
}

// RecordSupply appends a delivery row and credits the stock in the same
// transaction. Quantity must be positive.
func (s *InventoryService) RecordSupply(tx *gorm.DB, productID uint, quantity float64, supplierName string, cost float64, batchNumber string) (*models.ProductSupply, error) {
	if quantity <= 0 {
		return nil, &ValidationError{Msg: "supply quantity must be positive"}
	}

	var product models.Product
	if err := tx.First(&product, productID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Entity: "product", ID: productID}
		}
		return nil, err
	}

	supply := models.ProductSupply{
		ProductID:    productID,
		Quantity:     quantity,
		SupplyDate:   time.Now(),
		SupplierName: supplierName,
		Cost:         cost,
		BatchNumber:  batchNumber,
	}
	if err := tx.Create(&supply).Error; err != nil {
		return nil, err
	}

	if _, err := s.AdjustStock(tx, productID, quantity); err != nil {
		return nil, err
	}
	return &supply, nil
}

// Restock is the supplier-facing entry point: the product is resolved by id
// or by name, and a product named for the first time is created on the fly.
func (s *InventoryService) Restock(productID uint, productName string, quantity float64) (*models.Product, error) {
	if productID == 0 && productName == "" {
		return nil, &ValidationError{Msg: "product_id or product_name required"}
	}
	if quantity <= 0 {
		return nil, &ValidationError{Msg: "supply quantity must be positive"}
	}

	var product models.Product
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if productID != 0 {
			if err := tx.First(&product, productID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return &NotFoundError{Entity: "product", ID: productID}
				}
				return err
			}
		} else {
			err := tx.Where("name = ?", productName).First(&product).Error
			if err == gorm.ErrRecordNotFound {
				product = models.Product{Name: productName, Unit: "pcs"}
				if err := tx.Create(&product).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}

		if _, err := s.RecordSupply(tx, product.ID, quantity, "", 0, ""); err != nil {
			return err
		}
		return tx.First(&product, product.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

type RestockLine struct {
	ProductID    uint    `json:"product_id"`
	Quantity     float64 `json:"quantity"`
	SupplierName string  `json:"supplier_name"`
	Cost         float64 `json:"cost"`
	BatchNumber  string  `json:"batch_number"`
}

type RestockResult struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    float64 `json:"quantity"`
}

// BulkRestock records a batch of deliveries in one transaction. Lines with
// an unknown product id or a non-positive quantity are skipped; the result
// enumerates the lines that were recorded.
func (s *InventoryService) BulkRestock(lines []RestockLine) ([]RestockResult, error) {
	var results []RestockResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			if line.Quantity <= 0 {
				continue
			}
			var product models.Product
			if err := tx.First(&product, line.ProductID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					continue
				}
				return err
			}
			if _, err := s.RecordSupply(tx, product.ID, line.Quantity, line.SupplierName, line.Cost, line.BatchNumber); err != nil {
				return err
			}
			results = append(results, RestockResult{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// SuppliesSince returns delivery history for the last `days` days, newest
// first, optionally filtered by a case-insensitive supplier name fragment.
func (s *InventoryService) SuppliesSince(days int, supplierName string) ([]models.ProductSupply, error) {
	if days <= 0 {
		days = 30
	}
	start := time.Now().AddDate(0, 0, -days)

	query := s.DB.Preload("Product").Where("supply_date >= ?", start)
	if supplierName != "" {
		query = query.Where("LOWER(supplier_name) LIKE ?", "%"+strings.ToLower(supplierName)+"%")
	}

	var supplies []models.ProductSupply
	err := query.Order("supply_date desc").Find(&supplies).Error
	return supplies, err
}

type SupplierStat struct {
	SupplierName  string   `json:"supplier_name"`
	TotalQuantity float64  `json:"total_quantity"`
	TotalCost     float64  `json:"total_cost"`
	SupplyCount   int      `json:"supply_count"`
	Products      []string `json:"products"`
}

type MonthlyReport struct {
	Month         int            `json:"month"`
	Year          int            `json:"year"`
	TotalSupplies int            `json:"total_supplies"`
	SupplierStats []SupplierStat `json:"supplier_stats"`
}

// MonthlyReportFor aggregates supplies whose supply_date falls in
// [startOfMonth, startOfNextMonth) by supplier. Rows without a supplier
// name go into the "Unknown" bucket.
func (s *InventoryService) MonthlyReportFor(month, year int) (*MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, &ValidationError{Msg: "month must be between 1 and 12"}
	}

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	var supplies []models.ProductSupply
	if err := s.DB.Preload("Product").
		Where("supply_date >= ? AND supply_date < ?", start, end).
		Find(&supplies).Error; err != nil {
		return nil, err
	}

	stats := make(map[string]*SupplierStat)
	seenProducts := make(map[string]map[string]bool)
	for _, supply := range supplies {
		name := supply.SupplierName
		if name == "" {
			name = "Unknown"
		}
		stat, ok := stats[name]
		if !ok {
			stat = &SupplierStat{SupplierName: name}
			stats[name] = stat
			seenProducts[name] = make(map[string]bool)
		}
		stat.TotalQuantity += supply.Quantity
		stat.TotalCost += supply.Cost * supply.Quantity
		stat.SupplyCount++
		if !seenProducts[name][supply.Product.Name] {
			seenProducts[name][supply.Product.Name] = true
			stat.Products = append(stat.Products, supply.Product.Name)
		}
	}

	report := &MonthlyReport{
		Month:         month,
		Year:          year,
		TotalSupplies: len(supplies),
	}
	for _, stat := range stats {
		sort.Strings(stat.Products)
		report.SupplierStats = append(report.SupplierStats, *stat)
	}
	sort.Slice(report.SupplierStats, func(i, j int) bool {
		return report.SupplierStats[i].SupplierName < report.SupplierStats[j].SupplierName
	})
	return report, nil
}

type StockReportRow struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	CurrentStock float64 `json:"current_stock"`
	MinStock     float64 `json:"min_stock"`
	Unit         string  `json:"unit"`
	Value        float64 `json:"value"`
	Status       string  `json:"status"`
}

type StockReport struct {
	TotalProducts       int              `json:"total_products"`
	LowStockCount       int              `json:"low_stock_count"`
	TotalInventoryValue float64          `json:"total_inventory_value"`
	Products            []StockReportRow `json:"products"`
}

// BuildStockReport snapshots the whole ledger with per-product valuation.
func (s *InventoryService) BuildStockReport() (*StockReport, error) {
	var products []models.Product
	if err := s.DB.Find(&products).Error; err != nil {
		return nil, err
	}

	report := &StockReport{TotalProducts: len(products)}
	for _, p := range products {
		status := "normal"
		if p.IsLowStock() {
			status = "low"
			report.LowStockCount++
		}
		value := p.CurrentStock * p.CostPerUnit
		report.TotalInventoryValue += value
		report.Products = append(report.Products, StockReportRow{
			ID:           p.ID,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Unit:         p.Unit,
			Value:        value,
			Status:       status,
		})
	}
	return report, nil
}

type ReorderSuggestion struct {
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	CurrentStock    float64 `json:"current_stock"`
	MinStock        float64 `json:"min_stock"`
	Unit            string  `json:"unit"`
	QuantityToOrder float64 `json:"quantity_to_order"`
	CostPerUnit     float64 `json:"cost_per_unit"`
	EstimatedCost   float64 `json:"estimated_cost"`
}

// ProductsToOrder suggests what to order from suppliers: every low-stock
// product with the shortfall up to its minimum threshold.
func (s *InventoryService) ProductsToOrder() ([]ReorderSuggestion, error) {
	products, err := s.LowStockProducts()
	if err != nil {
		return nil, err
	}

	suggestions := make([]ReorderSuggestion, 0, len(products))
	for _, p := range products {
		toOrder := p.MinStock - p.CurrentStock
		if toOrder < 0 {
			toOrder = 0
		}
		suggestions = append(suggestions, ReorderSuggestion{
			ProductID:       p.ID,
			ProductName:     p.Name,
			CurrentStock:    p.CurrentStock,
			MinStock:        p.MinStock,
			Unit:            p.Unit,
			QuantityToOrder: toOrder,
			CostPerUnit:     p.CostPerUnit,
			EstimatedCost:   toOrder * p.CostPerUnit,
		})
	}
	return suggestions, nil
}
