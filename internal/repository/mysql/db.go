package mysql

import (
	"log"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/IgnacioLauriano/vive-salud/internal/config"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/category"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/order"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/product"
	"github.com/IgnacioLauriano/vive-salud/internal/datamodels/user"
)

var (
	db   *gorm.DB
	once sync.Once
)

// Init opens the global GORM handle and migrates the schema.
func Init(cfg *config.MySQLConfig) *gorm.DB {
	once.Do(func() {
		var err error
		db, err = gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}

		if err = db.AutoMigrate(
			&user.User{},
			&category.Category{},
			&product.Product{},
			&order.Order{},
			&order.Line{},
		); err != nil {
			log.Fatalf("auto migrate failed: %v", err)
		}
	})
	return db
}

// DB returns the global handle.
func DB() *gorm.DB {
	return db
}
