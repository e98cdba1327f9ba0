package handlers

import (
	"errors"
	"net/http"

	"storeflex-lite/internal/ledger"

	"github.com/gin-gonic/gin"
)

// tenantID pulls the tenant out of the context set by AuthMiddleware.
func tenantID(c *gin.Context) uint {
	return c.MustGet("userID").(uint)
}

// writeLedgerError maps ledger errors onto HTTP statuses. Precondition
// violations are the caller's fault (400/404); anything else is ours.
func writeLedgerError(c *gin.Context, err error) {
	var stockErr *ledger.InsufficientStockError
	var settleErr *ledger.InvalidSettlementAmountError
	var returnErr *ledger.InvalidReturnQuantityError

	switch {
	case errors.As(err, &stockErr),
		errors.As(err, &settleErr),
		errors.As(err, &returnErr),
		errors.Is(err, ledger.ErrInvalidPaymentAmount),
		errors.Is(err, ledger.ErrEmptyCart),
		errors.Is(err, ledger.ErrOrderAlreadyProcessed),
		errors.Is(err, ledger.ErrCheckNotPending):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrProductNotFound),
		errors.Is(err, ledger.ErrCustomerNotFound),
		errors.Is(err, ledger.ErrSupplierNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record transaction"})
	}
}
