package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/FlashgoKless/vsm-restaurant/config"
	"github.com/FlashgoKless/vsm-restaurant/controllers"
	"github.com/FlashgoKless/vsm-restaurant/middlewares"
)

func SetupRouter(db *gorm.DB) *gin.Engine {
	r := gin.Default()

	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())

	userCtrl := controllers.NewUserController(db)
	productCtrl := controllers.NewProductController(db)
	menuCtrl := controllers.NewMenuController(db)
	orderCtrl := controllers.NewOrderController(db)
	supplierCtrl := controllers.NewSupplierController(db)
	serviceCtrl := controllers.NewServiceController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	r.POST("/register", userCtrl.Register)
	r.POST("/login", userCtrl.Login)

	api := r.Group("/api")
	{
		// MENU
		api.GET("/menu", menuCtrl.GetMenu)
		api.POST("/menu/:item_id/ingredients", menuCtrl.AddIngredient)
		api.DELETE("/menu/:item_id/ingredients/:ingredient_id", menuCtrl.RemoveIngredient)
		api.GET("/menu/:item_id/availability", menuCtrl.CheckAvailability)
		api.GET("/categories", menuCtrl.GetAllCategories)

		// ORDERS
		api.GET("/orders", orderCtrl.GetAllOrders)
		api.POST("/orders", orderCtrl.CreateOrder)
		api.GET("/orders/stats", orderCtrl.GetStats)
		api.GET("/orders/table/:table_number", orderCtrl.GetOrdersByTable)
		api.GET("/orders/:order_id", orderCtrl.GetOrderByID)
		api.PUT("/orders/:order_id/status", orderCtrl.UpdateStatus)
		api.DELETE("/orders/:order_id", orderCtrl.CancelOrder)

		// PRODUCTS (inventory ledger)
		api.GET("/products", productCtrl.GetAllProducts)
		api.POST("/products", productCtrl.CreateProduct)
		api.GET("/products/low-stock", productCtrl.GetLowStock)
		api.GET("/products/stock-report", productCtrl.GetStockReport)
		api.GET("/products/:product_id", productCtrl.GetProductByID)
		api.PUT("/products/:product_id", productCtrl.UpdateProduct)
		api.DELETE("/products/:product_id", productCtrl.DeleteProduct)
		api.POST("/products/:product_id/supply", productCtrl.AddSupply)

		// SUPPLIER
		api.GET("/supplier/supplies", supplierCtrl.GetSupplies)
		api.POST("/supplier/supplies", supplierCtrl.CreateSupplies)
		api.POST("/supplier/restock", supplierCtrl.Restock)
		api.GET("/supplier/products-to-order", supplierCtrl.GetProductsToOrder)
		api.GET("/supplier/monthly-report", supplierCtrl.GetMonthlyReport)

		// SERVICE (privileged: static token or admin JWT)
		service := api.Group("/service")
		service.Use(middlewares.ServiceAuthMiddleware(config.ServiceToken()))
		{
			service.POST("/ingredients", serviceCtrl.CreateIngredient)
			service.GET("/ingredients", serviceCtrl.ListIngredients)
			service.PATCH("/ingredients/:ingredient_id", serviceCtrl.UpdateIngredient)

			service.POST("/menu", serviceCtrl.CreateMenuItem)
			service.GET("/menu", serviceCtrl.ListMenuItems)
			service.PATCH("/menu/:item_id", serviceCtrl.UpdateMenuItem)
			service.DELETE("/menu/:item_id", serviceCtrl.DeleteMenuItem)
		}
	}

	return r
}
