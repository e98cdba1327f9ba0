package database

import (
	"os"
	"time"

	"storeflex-lite/internal/logging"
	"storeflex-lite/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Connect() {
	// Credentials come from the .env file so the app stays portable.
	dsn := os.Getenv("DB_DSN")

	log := logging.GetLogger()
	if dsn == "" {
		log.Fatal("DB_DSN not found in .env file, please configure your database")
	}

	var err error

	// Connect with GORM, waiting for the DB to come up.
	for i := 0; i < 5; i++ {
		DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err == nil {
			break
		}
		log.Warnf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
		time.Sleep(2 * time.Second)
	}

	if err != nil {
		log.Fatal("Failed to connect to database after 5 attempts: ", err)
	}

	log.Info("✅ Successfully connected to MySQL!")

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate schema: ", err)
	}

	log.Info("✅ Database Schema Synced!")
}

// Migrate syncs the schema. Split out from Connect so the test suite can
// run it against an in-memory SQLite database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Customer{},
		&models.Supplier{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Purchase{},
		&models.PurchaseItem{},
		&models.PurchaseReturn{},
		&models.PurchaseReturnItem{},
		&models.SalesOrder{},
		&models.SalesOrderItem{},
		&models.PurchaseOrder{},
		&models.PurchaseOrderItem{},
		&models.Expense{},
		&models.Activity{},
		&models.Counter{},
	)
}
