package handlers

import (
	"net/http"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// --- GET: /api/moneyflow ---
// Aggregated receivables, payables and pending checks. Advisory view;
// the ledger of record is the transactional write path.
func GetMoneyflow(c *gin.Context) {
	data, err := ledger.FetchMoneyflowData(database.DB, tenantID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch moneyflow data"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// --- POST: /api/moneyflow/settle ---
// One settlement action: a credit payoff or a check clearance decision.
func SettlePayment(c *gin.Context) {
	var req ledger.SettlementInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	userID := tenantID(c)
	if err := ledger.SettlePayment(database.DB, userID, req); err != nil {
		logging.LogError("handlers", "SettlePayment", err, logrus.Fields{"user_id": userID, "kind": req.Kind})
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Settlement applied"})
}
