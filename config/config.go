package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the database selected by DB_DRIVER (sqlite by default,
// mysql for deployment). The DSN comes from DB_DSN.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	dsn := os.Getenv("DB_DSN")

	switch driver {
	case "mysql":
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				os.Getenv("DB_USER"), os.Getenv("DB_PASS"),
				os.Getenv("DB_HOST"), os.Getenv("DB_PORT"), os.Getenv("DB_NAME"))
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite", "":
		if dsn == "" {
			dsn = "restaurant.db"
		}
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

// ServiceToken returns the static bearer token that guards the
// service-to-service API surface.
func ServiceToken() string {
	token := os.Getenv("SERVICE_TOKEN")
	if token == "" {
		token = "super-secret-static-token"
	}
	return token
}
