package handlers

import (
	"net/http"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/logging"
	"storeflex-lite/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// --- POST: /api/purchases ---
func ProcessPurchase(c *gin.Context) {
	var req ledger.PurchaseInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := tenantID(c)
	purchase, err := ledger.RecordPurchase(database.DB, userID, req)
	if err != nil {
		logging.LogError("handlers", "ProcessPurchase", err, logrus.Fields{"user_id": userID})
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Purchase recorded!",
		"purchase_id": purchase.PublicID,
		"purchase":    purchase,
	})
}

// --- GET: /api/purchases ---
func GetPurchases(c *gin.Context) {
	var purchases []models.Purchase
	err := database.DB.Preload("Items").
		Where("user_id = ?", tenantID(c)).
		Order("purchase_date desc").
		Find(&purchases).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}
	c.JSON(http.StatusOK, purchases)
}

// --- POST: /api/purchases/returns ---
func ProcessPurchaseReturn(c *gin.Context) {
	var req ledger.PurchaseReturnInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	ret, err := ledger.RecordPurchaseReturn(database.DB, tenantID(c), req)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":             "Purchase return recorded",
		"total_credit_amount": ret.TotalCreditAmount,
		"return":              ret,
	})
}

// --- GET: /api/purchases/returns ---
func GetPurchaseReturns(c *gin.Context) {
	var returns []models.PurchaseReturn
	err := database.DB.Preload("Items").
		Where("user_id = ?", tenantID(c)).
		Order("return_date desc").
		Find(&returns).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchase returns"})
		return
	}
	c.JSON(http.StatusOK, returns)
}
