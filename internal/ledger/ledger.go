// Package ledger holds the transactional bookkeeping core: stock,
// weighted-average cost, party credit balances, and the sale/purchase/
// settlement operations that mutate them. Every exported operation runs
// inside a single database transaction; mutable aggregates (stock,
// cost_price, credit_balance, counters) are only ever read inside the
// transaction that writes them.
package ledger

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Epsilon is the tolerance for float comparisons on money fields. A
// residual balance below this is treated as fully paid.
const Epsilon = 0.001

// CartItem is one line of a sale or purchase request. UnitPrice is the
// selling price on a sale and the unit cost on a purchase.
type CartItem struct {
	ProductID uint    `json:"product_id" binding:"required"`
	Quantity  int     `json:"quantity" binding:"required,gt=0"`
	UnitPrice float64 `json:"unit_price"`
}

// lockForUpdate adds a row lock on dialects that support it. SQLite (used
// by the test suite) has no FOR UPDATE; its single-writer transaction
// lock already gives the same guarantee there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}
