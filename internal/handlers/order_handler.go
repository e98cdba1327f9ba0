package handlers

import (
	"net/http"
	"strconv"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/models"

	"github.com/gin-gonic/gin"
)

// --- Sales orders ---

func CreateSalesOrder(c *gin.Context) {
	var req ledger.OrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := ledger.CreateSalesOrder(database.DB, tenantID(c), req)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func GetSalesOrders(c *gin.Context) {
	var orders []models.SalesOrder
	err := database.DB.Preload("Items").
		Where("user_id = ?", tenantID(c)).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Converts a pending order into a committed sale.
func ProcessSalesOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Order ID"})
		return
	}

	var req ledger.ProcessOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sale, err := ledger.ProcessSalesOrder(database.DB, tenantID(c), uint(id), req)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order processed", "sale": sale})
}

// --- Purchase orders ---

func CreatePurchaseOrder(c *gin.Context) {
	var req ledger.OrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order, err := ledger.CreatePurchaseOrder(database.DB, tenantID(c), req)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func GetPurchaseOrders(c *gin.Context) {
	var orders []models.PurchaseOrder
	err := database.DB.Preload("Items").
		Where("user_id = ?", tenantID(c)).
		Order("order_date desc").
		Find(&orders).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func ProcessPurchaseOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Order ID"})
		return
	}

	var req ledger.ProcessOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	purchase, err := ledger.ProcessPurchaseOrder(database.DB, tenantID(c), uint(id), req)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order processed", "purchase": purchase})
}
