package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/models"
	"github.com/FlashgoKless/vsm-restaurant/services"
	"github.com/FlashgoKless/vsm-restaurant/utils"
)

type MenuController struct {
	DB   *gorm.DB
	Menu *services.MenuService
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db, Menu: services.NewMenuService(db)}
}

type menuItemView struct {
	ID                 uint                         `json:"id"`
	Name               string                       `json:"name"`
	Description        string                       `json:"description"`
	Price              float64                      `json:"price"`
	CategoryID         *uint                        `json:"category_id,omitempty"`
	CategoryName       string                       `json:"category_name,omitempty"`
	CookingTime        int                          `json:"cooking_time"`
	IsAvailable        bool                         `json:"is_available"`
	Ingredients        []models.MenuItemIngredient  `json:"ingredients"`
	MissingIngredients []services.MissingIngredient `json:"missing_ingredients"`
}

func buildMenuItemView(item *models.MenuItem) menuItemView {
	_, missing := services.ComputeAvailability(item, 1)
	if missing == nil {
		missing = []services.MissingIngredient{}
	}

	view := menuItemView{
		ID:                 item.ID,
		Name:               item.Name,
		Description:        item.Description,
		Price:              item.Price,
		CategoryID:         item.CategoryID,
		CookingTime:        item.CookingTime,
		IsAvailable:        services.EffectiveAvailability(item),
		Ingredients:        item.Ingredients,
		MissingIngredients: missing,
	}
	if item.Category != nil {
		view.CategoryName = item.Category.Name
	}
	return view
}

// GetMenu -> menu listing with derived availability per dish
func (mc *MenuController) GetMenu(c *gin.Context) {
	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid category_id"))
			return
		}
		categoryID = uint(id)
	}

	items, err := mc.Menu.ListMenuItems(categoryID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	views := make([]menuItemView, 0, len(items))
	for i := range items {
		views = append(views, buildMenuItemView(&items[i]))
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", views)
}

// AddIngredient -> attach a recipe line to a dish
func (mc *MenuController) AddIngredient(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}

	type ReqBody struct {
		ProductID        uint    `json:"product_id" binding:"required"`
		QuantityRequired float64 `json:"quantity_required" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	line, err := mc.Menu.AddIngredient(uint(itemID), body.ProductID, body.QuantityRequired)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Ingredient added", line)
}

// RemoveIngredient -> detach a recipe line
func (mc *MenuController) RemoveIngredient(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}
	ingredientID, err := strconv.Atoi(c.Param("ingredient_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid ingredient id"))
		return
	}

	if err := mc.Menu.RemoveIngredient(uint(itemID), uint(ingredientID)); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Ingredient removed", gin.H{"ingredient_id": ingredientID})
}

// CheckAvailability -> stock-derived availability for one dish
func (mc *MenuController) CheckAvailability(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("item_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid menu item id"))
		return
	}

	item, err := mc.Menu.GetMenuItem(uint(itemID))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	available, missing := services.ComputeAvailability(item, 1)
	if missing == nil {
		missing = []services.MissingIngredient{}
	}
	utils.RespondJSON(c, http.StatusOK, "Availability", gin.H{
		"item_id":             item.ID,
		"item_name":           item.Name,
		"is_available":        available,
		"missing_ingredients": missing,
	})
}

// GetAllCategories
func (mc *MenuController) GetAllCategories(c *gin.Context) {
	var categories []models.Category
	if err := mc.DB.Find(&categories).Error; err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of categories", categories)
}
