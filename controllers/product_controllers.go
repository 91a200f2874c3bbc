package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/models"
	"github.com/FlashgoKless/vsm-restaurant/services"
	"github.com/FlashgoKless/vsm-restaurant/utils"
)

type ProductController struct {
	DB        *gorm.DB
	Inventory *services.InventoryService
}

func NewProductController(db *gorm.DB) *ProductController {
	return &ProductController{DB: db, Inventory: services.NewInventoryService(db)}
}

type productView struct {
	models.Product
	IsLowStock bool `json:"is_low_stock"`
}

// GetAllProducts -> ledger listing with the low-stock flag computed per row
func (pc *ProductController) GetAllProducts(c *gin.Context) {
	var products []models.Product
	if err := pc.DB.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{Product: p, IsLowStock: p.IsLowStock()})
	}
	utils.RespondJSON(c, http.StatusOK, "List of products", views)
}

// CreateProduct
func (pc *ProductController) CreateProduct(c *gin.Context) {
	type ReqBody struct {
		Name         string  `json:"name" binding:"required"`
		Unit         string  `json:"unit" binding:"required"`
		CurrentStock float64 `json:"current_stock"`
		MinStock     float64 `json:"min_stock"`
		CostPerUnit  float64 `json:"cost_per_unit"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		Name:         body.Name,
		Unit:         body.Unit,
		CurrentStock: body.CurrentStock,
		MinStock:     body.MinStock,
		CostPerUnit:  body.CostPerUnit,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := pc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Product created", product)
}

// GetProductByID -> product detail plus its supply history
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := pc.DB.Preload("Supplies").First(&product, id).Error; err != nil {
		respondServiceError(c, &services.NotFoundError{Entity: "product", ID: uint(id)})
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Product detail", gin.H{
		"product":  productView{Product: product, IsLowStock: product.IsLowStock()},
		"supplies": product.Supplies,
	})
}

// UpdateProduct -> partial update; stock itself only moves through the
// ledger (supplies, orders), never through this endpoint.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		respondServiceError(c, &services.NotFoundError{Entity: "product", ID: uint(id)})
		return
	}

	type ReqBody struct {
		Name        *string  `json:"name"`
		Unit        *string  `json:"unit"`
		MinStock    *float64 `json:"min_stock"`
		CostPerUnit *float64 `json:"cost_per_unit"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		product.Name = *body.Name
	}
	if body.Unit != nil {
		product.Unit = *body.Unit
	}
	if body.MinStock != nil {
		product.MinStock = *body.MinStock
	}
	if body.CostPerUnit != nil {
		product.CostPerUnit = *body.CostPerUnit
	}
	product.UpdatedAt = time.Now()

	if err := pc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product updated", product)
}

// DeleteProduct rejects deletion while any recipe still references the
// product.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	var product models.Product
	if err := pc.DB.First(&product, id).Error; err != nil {
		respondServiceError(c, &services.NotFoundError{Entity: "product", ID: uint(id)})
		return
	}

	var refs int64
	if err := pc.DB.Model(&models.MenuItemIngredient{}).
		Where("product_id = ?", id).Count(&refs).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	if refs > 0 {
		utils.RespondError(c, http.StatusBadRequest, errors.New("cannot delete product that is used in menu items"))
		return
	}

	if err := pc.DB.Delete(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Product deleted", gin.H{"product_id": id})
}

// AddSupply -> record one delivery and credit the stock
func (pc *ProductController) AddSupply(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid product id"))
		return
	}

	type ReqBody struct {
		Quantity     float64 `json:"quantity" binding:"required"`
		SupplierName string  `json:"supplier_name"`
		Cost         float64 `json:"cost"`
		BatchNumber  string  `json:"batch_number"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var supply *models.ProductSupply
	var newStock float64
	txErr := pc.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		supply, err = pc.Inventory.RecordSupply(tx, uint(id), body.Quantity, body.SupplierName, body.Cost, body.BatchNumber)
		if err != nil {
			return err
		}
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		newStock = product.CurrentStock
		return nil
	})
	if txErr != nil {
		respondServiceError(c, txErr)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Supply added", gin.H{
		"supply":    supply,
		"new_stock": newStock,
	})
}

// GetLowStock
func (pc *ProductController) GetLowStock(c *gin.Context) {
	products, err := pc.Inventory.LowStockProducts()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	type lowStockView struct {
		ID           uint    `json:"id"`
		Name         string  `json:"name"`
		Unit         string  `json:"unit"`
		CurrentStock float64 `json:"current_stock"`
		MinStock     float64 `json:"min_stock"`
		Needed       float64 `json:"needed"`
	}
	views := make([]lowStockView, 0, len(products))
	for _, p := range products {
		views = append(views, lowStockView{
			ID:           p.ID,
			Name:         p.Name,
			Unit:         p.Unit,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Needed:       p.MinStock - p.CurrentStock,
		})
	}
	utils.RespondJSON(c, http.StatusOK, "Low stock products", views)
}

// GetStockReport
func (pc *ProductController) GetStockReport(c *gin.Context) {
	report, err := pc.Inventory.BuildStockReport()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock report", report)
}
