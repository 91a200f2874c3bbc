package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/services"
	"github.com/FlashgoKless/vsm-restaurant/utils"
)

type SupplierController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
}

func NewSupplierController(db *gorm.DB) *SupplierController {
	return &SupplierController{DB: db, Inventory: services.NewInventoryService(db)}
}

// GetSupplies -> delivery history, ?days= window and ?supplier_name= filter
func (sc *SupplierController) GetSupplies(c *gin.Context) {
	days := 30
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid days parameter"))
			return
		}
		days = parsed
	}

	supplies, err := sc.Inventory.SuppliesSince(days, c.Query("supplier_name"))
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type supplyView struct {
		ID           uint      `json:"id"`
		ProductID    uint      `json:"product_id"`
		ProductName  string    `json:"product_name"`
		Quantity     float64   `json:"quantity"`
		Unit         string    `json:"unit"`
		SupplyDate   time.Time `json:"supply_date"`
		SupplierName string    `json:"supplier_name"`
		Cost         float64   `json:"cost"`
		BatchNumber  string    `json:"batch_number"`
		TotalCost    float64   `json:"total_cost"`
	}
	views := make([]supplyView, 0, len(supplies))
	for _, s := range supplies {
		views = append(views, supplyView{
			ID:           s.ID,
			ProductID:    s.ProductID,
			ProductName:  s.Product.Name,
			Quantity:     s.Quantity,
			Unit:         s.Product.Unit,
			SupplyDate:   s.SupplyDate,
			SupplierName: s.SupplierName,
			Cost:         s.Cost,
			BatchNumber:  s.BatchNumber,
			TotalCost:    s.Quantity * s.Cost,
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Supply history", views)
}

// CreateSupplies -> bulk delivery intake; unknown product ids are skipped
func (sc *SupplierController) CreateSupplies(c *gin.Context) {
	type ReqBody struct {
		Supplies []services.RestockLine `json:"supplies" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	results, err := sc.Inventory.BulkRestock(body.Supplies)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, fmt.Sprintf("%d supplies added", len(results)), gin.H{
		"supplies": results,
	})
}

// Restock -> single-line supplier restock by product id or name; a product
// named for the first time is created.
func (sc *SupplierController) Restock(c *gin.Context) {
	type ReqBody struct {
		IngredientID   uint    `json:"ingredient_id"`
		IngredientName string  `json:"ingredient_name"`
		Quantity       float64 `json:"quantity" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product, err := sc.Inventory.Restock(body.IngredientID, body.IngredientName, body.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Restocked", gin.H{
		"ingredient_id": product.ID,
		"new_stock":     product.CurrentStock,
	})
}

// GetProductsToOrder -> reorder suggestions for low-stock products
func (sc *SupplierController) GetProductsToOrder(c *gin.Context) {
	suggestions, err := sc.Inventory.ProductsToOrder()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Products to order", suggestions)
}

// GetMonthlyReport -> per-supplier aggregates for one calendar month
func (sc *SupplierController) GetMonthlyReport(c *gin.Context) {
	now := time.Now()
	month := int(now.Month())
	year := now.Year()

	if raw := c.Query("month"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid month parameter"))
			return
		}
		month = parsed
	}
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid year parameter"))
			return
		}
		year = parsed
	}

	report, err := sc.Inventory.MonthlyReportFor(month, year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Monthly supplier report", report)
}
