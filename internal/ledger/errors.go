package ledger

import (
	"errors"
	"fmt"
)

// Sentinel errors - use with errors.Is().
var (
	// ErrCustomerNotFound / ErrSupplierNotFound: a party id was supplied
	// but no row exists under this tenant.
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSupplierNotFound = errors.New("supplier not found")

	// ErrProductNotFound: a cart line references a product that does not
	// exist (or belongs to another tenant).
	ErrProductNotFound = errors.New("product not found")

	// ErrTransactionNotFound: settlement or return referenced a sale or
	// purchase that does not exist under this tenant.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidPaymentAmount: a credit payment exceeds the total payable.
	// Rejected at the caller boundary, before any transaction opens.
	ErrInvalidPaymentAmount = errors.New("invalid payment amount")

	// ErrEmptyCart: a checkout with no items is a validation error, not a
	// ledger event.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrOrderAlreadyProcessed: a staged order can only be converted once.
	ErrOrderAlreadyProcessed = errors.New("order already processed")

	// ErrCheckNotPending: check clearance only applies to transactions
	// still waiting on clearance.
	ErrCheckNotPending = errors.New("transaction is not pending check clearance")
)

// InsufficientStockError aborts the whole transaction before any write.
// It names the first violating product so the cashier can fix the cart.
type InsufficientStockError struct {
	ProductID   uint
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: have %d, need %d",
		e.ProductName, e.Available, e.Requested)
}

// InvalidSettlementAmountError rejects a settlement that would overdraw
// the outstanding balance (or is not positive).
type InvalidSettlementAmountError struct {
	Requested   float64
	Outstanding float64
}

func (e *InvalidSettlementAmountError) Error() string {
	return fmt.Sprintf("invalid settlement amount %.2f: outstanding is %.2f",
		e.Requested, e.Outstanding)
}

// InvalidReturnQuantityError rejects a return line asking back more than
// the original purchase shipped.
type InvalidReturnQuantityError struct {
	ProductID uint
	Original  int
	Requested int
}

func (e *InvalidReturnQuantityError) Error() string {
	return fmt.Sprintf("invalid return quantity %d for product %d: original quantity was %d",
		e.Requested, e.ProductID, e.Original)
}
