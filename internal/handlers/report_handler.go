package handlers

import (
	"net/http"
	"sort"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/models"

	"github.com/gin-gonic/gin"
)

// ReportData defines the shape of the dashboard response.
type ReportData struct {
	Snapshot         *database.BusinessSnapshot `json:"snapshot"`
	TopSelling       []database.TopSellingItem  `json:"top_selling"`
	LowStockProducts []models.Product           `json:"low_stock_products"`
	RecentActivities []models.Activity          `json:"recent_activities"`
}

// --- GET: /api/reports ---
func GetDashboardReport(c *gin.Context) {
	userID := tenantID(c)
	var data ReportData

	snapshot, err := database.GetBusinessSnapshot(database.DB, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to calculate business snapshot"})
		return
	}
	data.Snapshot = snapshot

	data.TopSelling, err = database.GetTopSelling(database.DB, userID, 5)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch top selling items"})
		return
	}

	err = database.DB.Where("user_id = ? AND stock <= low_stock_threshold", userID).
		Find(&data.LowStockProducts).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch low stock products"})
		return
	}

	// Last 20 activities, newest first.
	err = database.DB.Where("user_id = ?", userID).
		Order("created_at desc").Limit(20).
		Find(&data.RecentActivities).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch recent activities"})
		return
	}

	c.JSON(http.StatusOK, data)
}

// --- DATA STRUCTURES FOR VALUATION REPORT ---

// ValuationItem represents a single row in the valuation table.
type ValuationItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	CostPrice float64 `json:"cost_price"`
	TotalCost float64 `json:"total_cost"`
}

// CategoryGroup represents one category's table.
type CategoryGroup struct {
	CategoryName string          `json:"category_name"`
	Items        []ValuationItem `json:"items"`
	Subtotal     float64         `json:"subtotal"`
}

// ValuationResponse is the final payload.
type ValuationResponse struct {
	Categories []CategoryGroup `json:"categories"`
	GrandTotal float64         `json:"grand_total"`
}

// --- GET: /api/reports/valuation ---
// GetStockValuation calculates the total monetary value of all physical
// inventory at weighted-average cost, grouped by category.
func GetStockValuation(c *gin.Context) {
	var products []models.Product

	if err := database.DB.Where("user_id = ?", tenantID(c)).Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	var grandTotal float64
	groupedMap := make(map[string]*CategoryGroup)

	for _, p := range products {
		catName := p.Category
		if catName == "" {
			catName = "Uncategorized"
		}

		if _, exists := groupedMap[catName]; !exists {
			groupedMap[catName] = &CategoryGroup{
				CategoryName: catName,
				Items:        []ValuationItem{},
			}
		}

		itemTotal := float64(p.Stock) * p.CostPrice
		groupedMap[catName].Items = append(groupedMap[catName].Items, ValuationItem{
			Name:      p.Name,
			Quantity:  p.Stock,
			CostPrice: p.CostPrice,
			TotalCost: itemTotal,
		})
		groupedMap[catName].Subtotal += itemTotal
		grandTotal += itemTotal
	}

	// Stable category order for identical requests.
	names := make([]string, 0, len(groupedMap))
	for name := range groupedMap {
		names = append(names, name)
	}
	sort.Strings(names)

	var response ValuationResponse
	response.GrandTotal = grandTotal
	for _, name := range names {
		response.Categories = append(response.Categories, *groupedMap[name])
	}

	c.JSON(http.StatusOK, response)
}
