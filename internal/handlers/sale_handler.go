package handlers

import (
	"net/http"
	"strconv"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/logging"
	"storeflex-lite/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// --- POST: /api/checkout ---
func ProcessSale(c *gin.Context) {
	var req ledger.SaleInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := tenantID(c)
	sale, err := ledger.RecordSale(database.DB, userID, req)
	if err != nil {
		logging.LogError("handlers", "ProcessSale", err, logrus.Fields{"user_id": userID})
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sale successful!",
		"sale_id": sale.PublicID,
		"sale":    sale,
	})
}

// --- GET: /api/sales ---
func GetSales(c *gin.Context) {
	var sales []models.Sale
	err := database.DB.Preload("Items").
		Where("user_id = ?", tenantID(c)).
		Order("sale_date desc").
		Find(&sales).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}

// --- DELETE: /api/sales/:id ---
// Removes the record and restores the stock it consumed.
func DeleteSale(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Sale ID"})
		return
	}

	if err := ledger.DeleteSale(database.DB, tenantID(c), uint(id)); err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted, stock restored"})
}
