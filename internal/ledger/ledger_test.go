package ledger_test

import (
	"testing"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testTenant uint = 1

// newTestDB opens an in-memory SQLite database with the full schema.
// One connection only: each in-memory connection is its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock int, costPrice, sellingPrice float64) models.Product {
	t.Helper()
	product := models.Product{
		UserID:       testTenant,
		Name:         name,
		Stock:        stock,
		CostPrice:    costPrice,
		SellingPrice: sellingPrice,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB, name string, balance float64) models.Customer {
	t.Helper()
	customer := models.Customer{
		UserID:        testTenant,
		PublicID:      "cus-test-" + name,
		Name:          name,
		CreditBalance: balance,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}

func seedSupplier(t *testing.T, db *gorm.DB, name string, balance float64) models.Supplier {
	t.Helper()
	supplier := models.Supplier{
		UserID:        testTenant,
		PublicID:      "sup-test-" + name,
		Name:          name,
		CreditBalance: balance,
	}
	require.NoError(t, db.Create(&supplier).Error)
	return supplier
}

func reloadProduct(t *testing.T, db *gorm.DB, id uint) models.Product {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product
}

func activitiesOfType(t *testing.T, db *gorm.DB, activityType string) []models.Activity {
	t.Helper()
	var activities []models.Activity
	require.NoError(t, db.Where("user_id = ? AND type = ?", testTenant, activityType).Find(&activities).Error)
	return activities
}
