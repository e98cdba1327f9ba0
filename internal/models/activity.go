package models

import (
	"fmt"
	"time"
)

// Activity types. Each mutating operation appends at least one row; the
// constructors below pin down which fields each variant requires.
const (
	ActivitySale           = "sale"
	ActivityPurchase       = "purchase"
	ActivityNew            = "new"
	ActivityUpdate         = "update"
	ActivityDelete         = "delete"
	ActivityCreditSettled  = "credit_settled"
	ActivityCheckCleared   = "check_cleared"
	ActivityCheckRejected  = "check_rejected"
	ActivityPurchaseReturn = "purchase_return"
	ActivityLoss           = "loss"
	ActivityOrderCreated   = "order_created"
)

// Activity - the append-only audit log. Rows are never updated or
// deleted; dashboards and reports read them newest-first.
type Activity struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Type        string    `gorm:"index;size:32" json:"type"`
	ProductID   *uint     `json:"product_id,omitempty"`
	ProductName string    `json:"product_name,omitempty"`
	Amount      float64   `json:"amount"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewSaleActivity(userID uint, salePublicID string, itemCount int, total float64) Activity {
	return Activity{
		UserID:  userID,
		Type:    ActivitySale,
		Amount:  total,
		Details: fmt.Sprintf("Sale %s: %d item(s), total %.2f", salePublicID, itemCount, total),
	}
}

func NewPurchaseActivity(userID uint, purchasePublicID string, itemCount int, total float64) Activity {
	return Activity{
		UserID:  userID,
		Type:    ActivityPurchase,
		Amount:  total,
		Details: fmt.Sprintf("Purchase %s: %d item(s), total %.2f", purchasePublicID, itemCount, total),
	}
}

func NewCreditSettledActivity(userID uint, partyName string, amount float64) Activity {
	return Activity{
		UserID:  userID,
		Type:    ActivityCreditSettled,
		Amount:  amount,
		Details: fmt.Sprintf("Settled %.2f of outstanding credit for %s", amount, partyName),
	}
}

func NewCheckClearedActivity(userID uint, txnPublicID, checkNumber string, amount float64) Activity {
	return Activity{
		UserID:  userID,
		Type:    ActivityCheckCleared,
		Amount:  amount,
		Details: fmt.Sprintf("Check %s for %s cleared (%.2f)", checkNumber, txnPublicID, amount),
	}
}

func NewCheckRejectedActivity(userID uint, txnPublicID, checkNumber string, amount float64) Activity {
	return Activity{
		UserID:  userID,
		Type:    ActivityCheckRejected,
		Amount:  amount,
		Details: fmt.Sprintf("Check %s for %s rejected (%.2f)", checkNumber, txnPublicID, amount),
	}
}

func NewPurchaseReturnActivity(userID uint, purchasePublicID string, itemCount int, creditAmount float64) Activity {
	return Activity{
		UserID:  userID,
		Type:    ActivityPurchaseReturn,
		Amount:  creditAmount,
		Details: fmt.Sprintf("Returned %d item(s) against %s, credit %.2f", itemCount, purchasePublicID, creditAmount),
	}
}

func NewLossActivity(userID uint, productID uint, productName string, quantity int, value float64, reason string) Activity {
	pid := productID
	return Activity{
		UserID:      userID,
		Type:        ActivityLoss,
		ProductID:   &pid,
		ProductName: productName,
		Amount:      value,
		Details:     fmt.Sprintf("Stock loss: %d x %s (%.2f) - %s", quantity, productName, value, reason),
	}
}

func NewOrderCreatedActivity(userID uint, kind string, partyName string, total float64) Activity {
	return Activity{
		UserID:  userID,
		Type:    ActivityOrderCreated,
		Amount:  total,
		Details: fmt.Sprintf("%s order created for %s, total %.2f", kind, partyName, total),
	}
}

// NewProductActivity covers the generic new/update/delete variants for
// catalog and party records.
func NewProductActivity(userID uint, activityType string, productID uint, productName, details string) Activity {
	pid := productID
	return Activity{
		UserID:      userID,
		Type:        activityType,
		ProductID:   &pid,
		ProductName: productName,
		Details:     details,
	}
}

func NewRecordActivity(userID uint, activityType, details string) Activity {
	return Activity{
		UserID:  userID,
		Type:    activityType,
		Details: details,
	}
}
