package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/handlers"
	"storeflex-lite/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testTenant uint = 1

// newTestRouter points the package-level DB at an in-memory SQLite
// database and wires the routes with a stub auth that injects the
// tenant directly.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
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
	database.DB = db

	gin.SetMode(gin.TestMode)
	r := gin.New()
	api := r.Group("/api")
	api.Use(func(c *gin.Context) {
		c.Set("userID", testTenant)
		c.Set("role", "admin")
	})
	api.PUT("/customers/:id", handlers.UpdateCustomer)
	api.DELETE("/products/:id", handlers.DeleteProduct)
	api.GET("/reports/valuation", handlers.GetStockValuation)
	return r, db
}

func TestUpdateCustomer_AuditRowCommitsWithUpdate(t *testing.T) {
	r, db := newTestRouter(t)

	customer := models.Customer{UserID: testTenant, PublicID: "cus0001", Name: "Alice"}
	require.NoError(t, db.Create(&customer).Error)

	req := httptest.NewRequest(http.MethodPut, "/api/customers/1",
		strings.NewReader(`{"name":"Alice B","phone":"555"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.Equal(t, "Alice B", reloaded.Name)

	var activities []models.Activity
	require.NoError(t, db.Where("user_id = ? AND type = ?", testTenant, models.ActivityUpdate).
		Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Contains(t, activities[0].Details, "Alice B")
}

func TestDeleteProduct_AuditRowCommitsWithDelete(t *testing.T) {
	r, db := newTestRouter(t)

	product := models.Product{UserID: testTenant, Name: "Cola", Stock: 5}
	require.NoError(t, db.Create(&product).Error)

	req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	db.Model(&models.Product{}).Count(&count)
	assert.Zero(t, count)

	var activities []models.Activity
	require.NoError(t, db.Where("user_id = ? AND type = ?", testTenant, models.ActivityDelete).
		Find(&activities).Error)
	require.Len(t, activities, 1)
	assert.Equal(t, "Cola", activities[0].ProductName)
}

func TestStockValuation_CategoriesSortedByName(t *testing.T) {
	r, db := newTestRouter(t)

	products := []models.Product{
		{UserID: testTenant, Name: "Chips", Category: "Snacks", Stock: 4, CostPrice: 10},
		{UserID: testTenant, Name: "Cola", Category: "Beverages", Stock: 2, CostPrice: 30},
		{UserID: testTenant, Name: "Lighter", Stock: 1, CostPrice: 5},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}

	var got handlers.ValuationResponse
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/reports/valuation", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		require.Len(t, got.Categories, 3)
		assert.Equal(t, "Beverages", got.Categories[0].CategoryName)
		assert.Equal(t, "Snacks", got.Categories[1].CategoryName)
		assert.Equal(t, "Uncategorized", got.Categories[2].CategoryName)
	}
	assert.InDelta(t, 105, got.GrandTotal, 0.001) // 4*10 + 2*30 + 1*5
}
