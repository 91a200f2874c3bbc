package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/models"
)

// OrderService drives the order state machine and keeps it consistent with
// the inventory ledger: creation debits stock per recipe line, cancellation
// credits it back exactly once.
type OrderService struct {
	DB        *gorm.DB
	Inventory *InventoryService
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db, Inventory: NewInventoryService(db)}
}

type OrderLine struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// CreateOrder runs the whole check-then-debit sequence in one transaction.
// Every line must reference an enabled menu item with enough stock for its
// full quantity; the final debit is conditional (stock >= amount) so two
// concurrent orders can never both pass the check and over-debit.
func (s *OrderService) CreateOrder(tableNumber int, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, &ValidationError{Msg: "order must contain at least one item"}
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, &ValidationError{Msg: "item quantity must be positive"}
		}
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		items := make([]*models.MenuItem, len(lines))
		for i, line := range lines {
			var item models.MenuItem
			if err := tx.Preload("Ingredients.Product").First(&item, line.MenuItemID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return &NotFoundError{Entity: "menu item", ID: line.MenuItemID}
				}
				return err
			}
			if !item.IsAvailable {
				return &UnavailableError{ItemName: item.Name}
			}
			if available, missing := ComputeAvailability(&item, line.Quantity); !available {
				return &InsufficientStockError{ItemName: item.Name, Missing: missing}
			}
			items[i] = &item
		}

		order = models.Order{
			TableNumber: tableNumber,
			Status:      models.OrderPending,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		var total float64
		for i, line := range lines {
			item := items[i]
			orderItem := models.OrderItem{
				OrderID:    order.ID,
				MenuItemID: item.ID,
				Quantity:   line.Quantity,
				Price:      item.Price, // snapshot, immune to later menu edits
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return err
			}
			total += item.Price * float64(line.Quantity)

			for _, recipeLine := range item.Ingredients {
				amount := recipeLine.QuantityRequired * float64(line.Quantity)
				if err := s.debitStock(tx, item.Name, recipeLine.ProductID, amount); err != nil {
					return err
				}
			}
		}

		order.TotalAmount = total
		return tx.Model(&order).Update("total_amount", total).Error
	})
	if err != nil {
		return nil, err
	}

	if err := s.DB.Preload("OrderItems").First(&order, order.ID).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// debitStock subtracts amount from product stock only if enough remains.
// The WHERE guard re-validates sufficiency at write time, which is what
// keeps concurrent orders against the same scarce product honest.
func (s *OrderService) debitStock(tx *gorm.DB, itemName string, productID uint, amount float64) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND current_stock >= ?", productID, amount).
		Updates(map[string]interface{}{
			"current_stock": gorm.Expr("current_stock - ?", amount),
			"updated_at":    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &NotFoundError{Entity: "product", ID: productID}
			}
			return err
		}
		return &InsufficientStockError{
			ItemName: itemName,
			Missing: []MissingIngredient{{
				ProductID:   product.ID,
				ProductName: product.Name,
				Required:    amount,
				Available:   product.CurrentStock,
				Unit:        product.Unit,
			}},
		}
	}
	return nil
}

// UpdateStatus applies one state-machine transition. The prior status is
// captured before any mutation, so a cancel of an already-cancelled order is
// rejected instead of crediting stock a second time.
func (s *OrderService) UpdateStatus(orderID uint, rawStatus string) (*models.Order, error) {
	newStatus, ok := models.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, &ValidationError{Msg: "status must be one of: pending, in_progress, completed, cancelled"}
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("OrderItems").First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return &NotFoundError{Entity: "order", ID: orderID}
			}
			return err
		}

		prior := order.Status
		if !prior.CanTransitionTo(newStatus) {
			return &InvalidTransitionError{From: string(prior), To: string(newStatus)}
		}

		if newStatus == models.OrderCancelled {
			if err := s.restoreStock(tx, order.OrderItems); err != nil {
				return err
			}
		}

		order.Status = newStatus
		order.UpdatedAt = time.Now()
		return tx.Model(&order).Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": order.UpdatedAt,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels an order and restores the debited stock. Cancelling a
// terminal order fails with InvalidTransitionError.
func (s *OrderService) CancelOrder(orderID uint) (*models.Order, error) {
	return s.UpdateStatus(orderID, string(models.OrderCancelled))
}

// restoreStock credits back quantity_required * order quantity for every
// recipe line of every ordered item.
func (s *OrderService) restoreStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		var recipeLines []models.MenuItemIngredient
		if err := tx.Where("menu_item_id = ?", item.MenuItemID).Find(&recipeLines).Error; err != nil {
			return err
		}
		for _, line := range recipeLines {
			amount := line.QuantityRequired * float64(item.Quantity)
			if _, err := s.Inventory.AdjustStock(tx, line.ProductID, amount); err != nil {
				return err
			}
		}
	}
	return nil
}

// ListOrders returns orders newest first, optionally filtered by status.
func (s *OrderService) ListOrders(status string) ([]models.Order, error) {
	query := s.DB.Preload("OrderItems").Preload("OrderItems.MenuItem")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var orders []models.Order
	err := query.Order("created_at desc").Find(&orders).Error
	return orders, err
}

// GetOrder loads one order with its items.
func (s *OrderService) GetOrder(orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").First(&order, orderID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &NotFoundError{Entity: "order", ID: orderID}
		}
		return nil, err
	}
	return &order, nil
}

// OrdersByTable returns every order placed from a table, newest first.
func (s *OrderService) OrdersByTable(tableNumber int) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("OrderItems").Preload("OrderItems.MenuItem").
		Where("table_number = ?", tableNumber).
		Order("created_at desc").
		Find(&orders).Error
	return orders, err
}

type PopularItem struct {
	MenuItemID    uint   `json:"menu_item_id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
}

type OrderStats struct {
	Today struct {
		TotalOrders       int64   `json:"total_orders"`
		CompletedOrders   int64   `json:"completed_orders"`
		TotalRevenue      float64 `json:"total_revenue"`
		AverageOrderValue float64 `json:"average_order_value"`
	} `json:"today"`
	PopularItems []PopularItem `json:"popular_items"`
}

// Stats aggregates today's order volume, completed revenue and the five
// most ordered dishes.
func (s *OrderService) Stats() (*OrderStats, error) {
	now := time.Now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var stats OrderStats
	if err := s.DB.Model(&models.Order{}).
		Where("created_at >= ?", todayStart).
		Count(&stats.Today.TotalOrders).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Order{}).
		Where("created_at >= ? AND status = ?", todayStart, models.OrderCompleted).
		Count(&stats.Today.CompletedOrders).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&models.Order{}).
		Where("created_at >= ? AND status = ?", todayStart, models.OrderCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Row().Scan(&stats.Today.TotalRevenue); err != nil {
		return nil, err
	}
	if stats.Today.CompletedOrders > 0 {
		stats.Today.AverageOrderValue = stats.Today.TotalRevenue / float64(stats.Today.CompletedOrders)
	}

	err := s.DB.Raw(`
		SELECT oi.menu_item_id AS menu_item_id, mi.name AS name, SUM(oi.quantity) AS total_quantity
		FROM order_items oi
		JOIN menu_items mi ON mi.id = oi.menu_item_id
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status = ? AND o.created_at >= ?
		GROUP BY oi.menu_item_id, mi.name
		ORDER BY total_quantity DESC
		LIMIT 5
	`, models.OrderCompleted, todayStart).Scan(&stats.PopularItems).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
