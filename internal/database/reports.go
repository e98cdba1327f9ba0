package database

import (
	"time"

	"storeflex-lite/internal/models"

	"gorm.io/gorm"
)

// SalesReportResult holds the numbers the dashboard and the AI need.
type SalesReportResult struct {
	TotalRevenue float64
	TotalCount   int64
}

// GetSalesReport calculates sales within a date range for one tenant.
func GetSalesReport(db *gorm.DB, userID uint, start, end time.Time) (*SalesReportResult, error) {
	var result SalesReportResult

	// COALESCE ensures we get 0 instead of NULL if no sales exist.
	err := db.Model(&models.Sale{}).
		Where("user_id = ? AND sale_date BETWEEN ? AND ?", userID, start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.Sale{}).
		Where("user_id = ? AND sale_date BETWEEN ? AND ?", userID, start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// BusinessSnapshot is the aggregate picture handed to the dashboard and
// serialized as context for the AI assistant.
type BusinessSnapshot struct {
	TotalRevenue       float64 `json:"total_revenue"`
	TotalSales         int64   `json:"total_sales"`
	TotalPurchases     int64   `json:"total_purchases"`
	TotalExpenses      float64 `json:"total_expenses"`
	StockValue         float64 `json:"stock_value"`
	ReceivablesTotal   float64 `json:"receivables_total"`
	PayablesTotal      float64 `json:"payables_total"`
	PendingChecksTotal float64 `json:"pending_checks_total"`
	LowStockCount      int64   `json:"low_stock_count"`
}

// GetBusinessSnapshot runs the read-only aggregate queries. These are
// advisory views and deliberately not transactional; a slightly stale
// number is fine here.
func GetBusinessSnapshot(db *gorm.DB, userID uint) (*BusinessSnapshot, error) {
	var snap BusinessSnapshot

	if err := db.Model(&models.Sale{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&snap.TotalRevenue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Sale{}).
		Where("user_id = ?", userID).
		Count(&snap.TotalSales).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Purchase{}).
		Where("user_id = ?", userID).
		Count(&snap.TotalPurchases).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Expense{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&snap.TotalExpenses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Product{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(stock * cost_price), 0)").
		Scan(&snap.StockValue).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Customer{}).
		Where("user_id = ? AND credit_balance > 0", userID).
		Select("COALESCE(SUM(credit_balance), 0)").
		Scan(&snap.ReceivablesTotal).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Supplier{}).
		Where("user_id = ? AND credit_balance > 0", userID).
		Select("COALESCE(SUM(credit_balance), 0)").
		Scan(&snap.PayablesTotal).Error; err != nil {
		return nil, err
	}

	var pendingSales, pendingPurchases float64
	if err := db.Model(&models.Sale{}).
		Where("user_id = ? AND payment_status = ?", userID, models.StatusPendingCheck).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&pendingSales).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Purchase{}).
		Where("user_id = ? AND payment_status = ?", userID, models.StatusPendingCheck).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&pendingPurchases).Error; err != nil {
		return nil, err
	}
	snap.PendingChecksTotal = pendingSales + pendingPurchases

	if err := db.Model(&models.Product{}).
		Where("user_id = ? AND stock <= low_stock_threshold", userID).
		Count(&snap.LowStockCount).Error; err != nil {
		return nil, err
	}

	return &snap, nil
}

// TopSellingItem is one row of the best-sellers table.
type TopSellingItem struct {
	ProductName string  `json:"product_name"`
	Sold        int     `json:"sold"`
	Revenue     float64 `json:"revenue"`
}

// GetTopSelling finds the best sellers by quantity for one tenant.
func GetTopSelling(db *gorm.DB, userID uint, limit int) ([]TopSellingItem, error) {
	var items []TopSellingItem
	err := db.Table("sale_items").
		Select("sale_items.product_name as product_name, SUM(sale_items.quantity) as sold, SUM(sale_items.line_total) as revenue").
		Joins("JOIN sales ON sale_items.sale_id = sales.id").
		Where("sales.user_id = ?", userID).
		Group("sale_items.product_name").
		Order("sold desc").
		Limit(limit).
		Scan(&items).Error
	return items, err
}
