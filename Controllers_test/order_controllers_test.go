package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/controllers"
	"github.com/FlashgoKless/vsm-restaurant/models"
)

func setupOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	orderCtrl := controllers.NewOrderController(db)
	router.POST("/api/orders", orderCtrl.CreateOrder)
	router.GET("/api/orders/:order_id", orderCtrl.GetOrderByID)
	router.PUT("/api/orders/:order_id/status", orderCtrl.UpdateStatus)
	router.DELETE("/api/orders/:order_id", orderCtrl.CancelOrder)
	return router
}

func seedBreadAndFlour(t *testing.T, db *gorm.DB, flourStock float64) (*models.MenuItem, *models.Product) {
	t.Helper()
	flour := models.Product{Name: "Flour", Unit: "kg", CurrentStock: flourStock, MinStock: 2}
	if err := db.Create(&flour).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	bread := models.MenuItem{Name: "Bread", Price: 5.00, IsAvailable: true}
	if err := db.Create(&bread).Error; err != nil {
		t.Fatalf("failed to seed menu item: %v", err)
	}
	line := models.MenuItemIngredient{MenuItemID: bread.ID, ProductID: flour.ID, QuantityRequired: 3}
	if err := db.Create(&line).Error; err != nil {
		t.Fatalf("failed to seed recipe line: %v", err)
	}
	return &bread, &flour
}

func TestCreateOrderEndpoint(t *testing.T) {
	db := setupTestDB(t, "ctrl_order_create")
	bread, flour := seedBreadAndFlour(t, db, 10)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"table_number": 1,
		"items": []map[string]interface{}{
			{"menu_item_id": bread.ID, "quantity": 2},
		},
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, 10.0, data["total_amount"])
	assert.NotZero(t, data["order_id"])

	var reloaded models.Product
	assert.NoError(t, db.First(&reloaded, flour.ID).Error)
	assert.Equal(t, 4.0, reloaded.CurrentStock)
}

func TestCreateOrderEndpointInsufficientStock(t *testing.T) {
	db := setupTestDB(t, "ctrl_order_insufficient")
	bread, flour := seedBreadAndFlour(t, db, 5)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"table_number": 1,
		"items": []map[string]interface{}{
			{"menu_item_id": bread.ID, "quantity": 2},
		},
	}
	body, _ := json.Marshal(payload)

	req, _ := http.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	missing := resp["missing_ingredients"].([]interface{})
	assert.Len(t, missing, 1)
	first := missing[0].(map[string]interface{})
	assert.Equal(t, "Flour", first["product_name"])
	assert.Equal(t, 6.0, first["required"])
	assert.Equal(t, 5.0, first["available"])

	var reloaded models.Product
	assert.NoError(t, db.First(&reloaded, flour.ID).Error)
	assert.Equal(t, 5.0, reloaded.CurrentStock)
}

func TestCancelOrderEndpointRestoresStock(t *testing.T) {
	db := setupTestDB(t, "ctrl_order_cancel")
	bread, flour := seedBreadAndFlour(t, db, 10)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"table_number": 1,
		"items": []map[string]interface{}{
			{"menu_item_id": bread.ID, "quantity": 2},
		},
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orderID := int(resp["data"].(map[string]interface{})["order_id"].(float64))

	req, _ = http.NewRequest("DELETE", "/api/orders/"+itoa(orderID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Product
	assert.NoError(t, db.First(&reloaded, flour.ID).Error)
	assert.Equal(t, 10.0, reloaded.CurrentStock)

	// second cancel is rejected, stock untouched
	req, _ = http.NewRequest("DELETE", "/api/orders/"+itoa(orderID), nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.NoError(t, db.First(&reloaded, flour.ID).Error)
	assert.Equal(t, 10.0, reloaded.CurrentStock)
}

func TestUpdateStatusEndpointInvalidValue(t *testing.T) {
	db := setupTestDB(t, "ctrl_order_badstatus")
	bread, _ := seedBreadAndFlour(t, db, 10)
	router := setupOrderRouter(db)

	payload := map[string]interface{}{
		"table_number": 1,
		"items": []map[string]interface{}{
			{"menu_item_id": bread.ID, "quantity": 1},
		},
	}
	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", "/api/orders", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	orderID := int(resp["data"].(map[string]interface{})["order_id"].(float64))

	statusBody, _ := json.Marshal(map[string]string{"status": "delivered"})
	req, _ = http.NewRequest("PUT", "/api/orders/"+itoa(orderID)+"/status", bytes.NewBuffer(statusBody))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
