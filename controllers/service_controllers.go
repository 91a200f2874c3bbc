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

// ServiceController is the privileged service-to-service surface: raw
// ingredient and menu CRUD, gated by the static service token (or an admin
// JWT) in the router.
type ServiceController struct {
	DB *gorm.DB
}

func NewServiceController(db *gorm.DB) *ServiceController {
	return &ServiceController{DB: db}
}

// CreateIngredient
func (svc *ServiceController) CreateIngredient(c *gin.Context) {
	type ReqBody struct {
		Name        string  `json:"name" binding:"required"`
		Unit        string  `json:"unit" binding:"required"`
		Stock       float64 `json:"stock"`
		MinStock    float64 `json:"min_stock"`
		CostPerUnit float64 `json:"cost_per_unit"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	product := models.Product{
		Name:         body.Name,
		Unit:         body.Unit,
		CurrentStock: body.Stock,
		MinStock:     body.MinStock,
		CostPerUnit:  body.CostPerUnit,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := svc.DB.Create(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Ingredient created", product)
}

// ListIngredients
func (svc *ServiceController) ListIngredients(c *gin.Context) {
	var products []models.Product
	if err := svc.DB.Find(&products).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of ingredients", products)
}

// UpdateIngredient -> privileged partial update; a set stock value
// overwrites the ledger directly.
func (svc *ServiceController) UpdateIngredient(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("ingredient_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ingredient id"))
		return
	}

	var product models.Product
	if err := svc.DB.First(&product, id).Error; err != nil {
		respondServiceError(c, &services.NotFoundError{Entity: "ingredient", ID: uint(id)})
		return
	}

	type ReqBody struct {
		Name        *string  `json:"name"`
		Unit        *string  `json:"unit"`
		Stock       *float64 `json:"stock"`
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
	if body.Stock != nil {
		product.CurrentStock = *body.Stock
	}
	if body.MinStock != nil {
		product.MinStock = *body.MinStock
	}
	if body.CostPerUnit != nil {
		product.CostPerUnit = *body.CostPerUnit
	}
	product.UpdatedAt = time.Now()

	if err := svc.DB.Save(&product).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient updated", product)
}

// CreateMenuItem
func (svc *ServiceController) CreateMenuItem(c *gin.Context) {
	type ReqBody struct {
		Name        string  `json:"name" binding:"required"`
		Description string  `json:"description"`
		Price       float64 `json:"price" binding:"required"`
		CategoryID  *uint   `json:"category_id"`
		IsAvailable *bool   `json:"is_available"`
		CookingTime int     `json:"cooking_time"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	item := models.MenuItem{
		Name:        body.Name,
		Description: body.Description,
		Price:       body.Price,
		CategoryID:  body.CategoryID,
		IsAvailable: true,
		CookingTime: body.CookingTime,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if body.IsAvailable != nil {
		item.IsAvailable = *body.IsAvailable
	}

	if err := svc.DB.Create(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// ListMenuItems
func (svc *ServiceController) ListMenuItems(c *gin.Context) {
	var items []models.MenuItem
	if err := svc.DB.Preload("Ingredients.Product").Find(&items).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// UpdateMenuItem -> privileged partial update, including the manual
// availability flag.
func (svc *ServiceController) UpdateMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}

	var item models.MenuItem
	if err := svc.DB.First(&item, id).Error; err != nil {
		respondServiceError(c, &services.NotFoundError{Entity: "menu item", ID: uint(id)})
		return
	}

	type ReqBody struct {
		Name        *string  `json:"name"`
		Description *string  `json:"description"`
		Price       *float64 `json:"price"`
		CategoryID  *uint    `json:"category_id"`
		IsAvailable *bool    `json:"is_available"`
		CookingTime *int     `json:"cooking_time"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if body.Name != nil {
		item.Name = *body.Name
	}
	if body.Description != nil {
		item.Description = *body.Description
	}
	if body.Price != nil {
		item.Price = *body.Price
	}
	if body.CategoryID != nil {
		item.CategoryID = body.CategoryID
	}
	if body.IsAvailable != nil {
		item.IsAvailable = *body.IsAvailable
	}
	if body.CookingTime != nil {
		item.CookingTime = *body.CookingTime
	}
	item.UpdatedAt = time.Now()

	if err := svc.DB.Save(&item).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem -> recipe lines go with it (cascade)
func (svc *ServiceController) DeleteMenuItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}

	var item models.MenuItem
	if err := svc.DB.First(&item, id).Error; err != nil {
		respondServiceError(c, &services.NotFoundError{Entity: "menu item", ID: uint(id)})
		return
	}

	err = svc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&models.MenuItemIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&item).Error
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"item_id": id})
}
