package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/services"
	"github.com/FlashgoKless/vsm-restaurant/utils"
)

type OrderController struct {
	DB     *gorm.DB
	Orders *services.OrderService
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db, Orders: services.NewOrderService(db)}
}

// GetAllOrders -> list orders with items, optional ?status= filter
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	status := c.Query("status")
	if status != "" {
		if _, ok := parseStatusQuery(status); !ok {
			utils.RespondError(c, http.StatusBadRequest, errors.New("invalid status filter"))
			return
		}
	}

	orders, err := oc.Orders.ListOrders(status)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

func parseStatusQuery(s string) (string, bool) {
	switch s {
	case "pending", "in_progress", "completed", "cancelled":
		return s, true
	}
	return "", false
}

// CreateOrder -> check availability and debit stock atomically
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type ReqBody struct {
		TableNumber int                  `json:"table_number" binding:"required"`
		Items       []services.OrderLine `json:"items" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.CreateOrder(body.TableNumber, body.Items)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Order created", gin.H{
		"order_id":     order.ID,
		"total_amount": order.TotalAmount,
	})
}

// GetOrderByID -> detail of one order
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.GetOrder(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// UpdateStatus -> one state-machine transition
func (oc *OrderController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	type ReqBody struct {
		Status string `json:"status" binding:"required"`
	}

	var body ReqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Orders.UpdateStatus(uint(id), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// CancelOrder -> cancel and restore debited stock
func (oc *OrderController) CancelOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("order_id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	order, err := oc.Orders.CancelOrder(uint(id))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order cancelled and ingredients restored", order)
}

// GetOrdersByTable
func (oc *OrderController) GetOrdersByTable(c *gin.Context) {
	tableNumber, err := strconv.Atoi(c.Param("table_number"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid table number"))
		return
	}

	orders, err := oc.Orders.OrdersByTable(tableNumber)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Orders for table", orders)
}

// GetStats -> today's order stats plus popular dishes
func (oc *OrderController) GetStats(c *gin.Context) {
	stats, err := oc.Orders.Stats()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order stats", stats)
}
