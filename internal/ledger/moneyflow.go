package ledger

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"storeflex-lite/internal/models"

	"gorm.io/gorm"
)

// Moneyflow entry kinds.
const (
	EntryReceivable = "receivable"
	EntryPayable    = "payable"
	EntryCheck      = "check"
)

// MoneyflowEntry is one actionable row on the moneyflow screen: an
// outstanding party balance or a check still waiting to clear.
type MoneyflowEntry struct {
	Kind            string    `json:"kind"` // receivable|payable|check
	PartyType       string    `json:"party_type,omitempty"`
	PartyID         uint      `json:"party_id,omitempty"`
	PartyName       string    `json:"party_name,omitempty"`
	TransactionType string    `json:"transaction_type,omitempty"` // sale|purchase (checks)
	TransactionID   string    `json:"transaction_id,omitempty"`
	CheckNumber     string    `json:"check_number,omitempty"`
	Amount          float64   `json:"amount"`
	Date            time.Time `json:"date"`
}

// MoneyflowData aggregates everything outstanding for one tenant.
type MoneyflowData struct {
	ReceivablesTotal   float64          `json:"receivables_total"`
	PayablesTotal      float64          `json:"payables_total"`
	PendingChecksTotal float64          `json:"pending_checks_total"`
	Entries            []MoneyflowEntry `json:"entries"`
}

// FetchMoneyflowData scans customers, suppliers and both transaction
// tables. Customers with a positive balance are receivables; suppliers
// with a positive balance are payables; suppliers driven negative by an
// overpayment show up as receivables owed back to the store. This is an
// advisory reporting view and runs outside any transaction.
func FetchMoneyflowData(db *gorm.DB, userID uint) (*MoneyflowData, error) {
	data := &MoneyflowData{Entries: []MoneyflowEntry{}}

	var customers []models.Customer
	if err := db.Where("user_id = ? AND credit_balance > 0", userID).Find(&customers).Error; err != nil {
		return nil, err
	}
	for _, c := range customers {
		data.ReceivablesTotal += c.CreditBalance
		data.Entries = append(data.Entries, MoneyflowEntry{
			Kind:      EntryReceivable,
			PartyType: "customer",
			PartyID:   c.ID,
			PartyName: c.Name,
			Amount:    c.CreditBalance,
			Date:      c.CreatedAt,
		})
	}

	var suppliers []models.Supplier
	if err := db.Where("user_id = ? AND credit_balance <> 0", userID).Find(&suppliers).Error; err != nil {
		return nil, err
	}
	for _, s := range suppliers {
		if s.CreditBalance > 0 {
			data.PayablesTotal += s.CreditBalance
			data.Entries = append(data.Entries, MoneyflowEntry{
				Kind:      EntryPayable,
				PartyType: "supplier",
				PartyID:   s.ID,
				PartyName: s.Name,
				Amount:    s.CreditBalance,
				Date:      s.CreatedAt,
			})
		} else {
			// Overpaid supplier: money coming back to the store.
			data.ReceivablesTotal += -s.CreditBalance
			data.Entries = append(data.Entries, MoneyflowEntry{
				Kind:      EntryReceivable,
				PartyType: "supplier",
				PartyID:   s.ID,
				PartyName: s.Name,
				Amount:    -s.CreditBalance,
				Date:      s.CreatedAt,
			})
		}
	}

	var pendingSales []models.Sale
	if err := db.Where("user_id = ? AND payment_status = ?", userID, models.StatusPendingCheck).
		Find(&pendingSales).Error; err != nil {
		return nil, err
	}
	for _, s := range pendingSales {
		data.PendingChecksTotal += s.TotalAmount
		data.Entries = append(data.Entries, MoneyflowEntry{
			Kind:            EntryCheck,
			PartyType:       "customer",
			PartyName:       s.CustomerName,
			TransactionType: "sale",
			TransactionID:   s.PublicID,
			CheckNumber:     s.CheckNumber,
			Amount:          s.TotalAmount,
			Date:            s.SaleDate,
		})
	}

	var pendingPurchases []models.Purchase
	if err := db.Where("user_id = ? AND payment_status = ?", userID, models.StatusPendingCheck).
		Find(&pendingPurchases).Error; err != nil {
		return nil, err
	}
	for _, p := range pendingPurchases {
		data.PendingChecksTotal += p.TotalAmount
		data.Entries = append(data.Entries, MoneyflowEntry{
			Kind:            EntryCheck,
			PartyType:       "supplier",
			PartyName:       p.SupplierName,
			TransactionType: "purchase",
			TransactionID:   p.PublicID,
			CheckNumber:     p.CheckNumber,
			Amount:          p.TotalAmount,
			Date:            p.PurchaseDate,
		})
	}

	sort.Slice(data.Entries, func(i, j int) bool {
		return data.Entries[i].Date.After(data.Entries[j].Date)
	})

	return data, nil
}

// SettlementInput describes one settlement action from the moneyflow
// screen: either a credit payoff against a party balance, or a check
// clearance decision on a pending transaction.
type SettlementInput struct {
	Kind            string  `json:"kind" binding:"required"` // credit|check
	PartyType       string  `json:"party_type"`              // customer|supplier
	PartyID         uint    `json:"party_id"`
	TransactionType string  `json:"transaction_type"` // sale|purchase
	TransactionID   string  `json:"transaction_id"`
	Status          string  `json:"status"` // paid|rejected
	Amount          float64 `json:"amount"`
}

// SettlePayment applies one settlement atomically.
//
// Credit: the settlement amount comes off the party balance (for an
// overpaid supplier the balance moves back toward zero), guarded so it
// can never exceed the outstanding amount. Only status "paid" applies.
//
// Check: flips the originating transaction's payment status to paid or
// rejected. Stock and balances were already applied when the transaction
// was recorded - clearance confirms or reverses the check, not the
// underlying economic event, so they are not touched again.
func SettlePayment(db *gorm.DB, userID uint, in SettlementInput) error {
	switch in.Kind {
	case "credit":
		return db.Transaction(func(tx *gorm.DB) error {
			return settleCredit(tx, userID, in)
		})
	case "check":
		return db.Transaction(func(tx *gorm.DB) error {
			return settleCheck(tx, userID, in)
		})
	default:
		return fmt.Errorf("unknown settlement kind %q", in.Kind)
	}
}

func settleCredit(tx *gorm.DB, userID uint, in SettlementInput) error {
	if in.Status != models.StatusPaid {
		return fmt.Errorf("credit settlement requires status %q", models.StatusPaid)
	}

	switch in.PartyType {
	case "customer":
		customer, err := loadCustomer(tx, userID, in.PartyID)
		if err != nil {
			return err
		}
		if err := settleAmountGuard(in.Amount, customer.CreditBalance); err != nil {
			return err
		}
		customer.CreditBalance -= in.Amount
		if err := tx.Save(customer).Error; err != nil {
			return err
		}
		activity := models.NewCreditSettledActivity(userID, customer.Name, in.Amount)
		return tx.Create(&activity).Error

	case "supplier":
		supplier, err := loadSupplier(tx, userID, in.PartyID)
		if err != nil {
			return err
		}
		if supplier.CreditBalance < 0 {
			// Collecting an overpayment back from the supplier.
			if err := settleAmountGuard(in.Amount, -supplier.CreditBalance); err != nil {
				return err
			}
			supplier.CreditBalance += in.Amount
		} else {
			if err := settleAmountGuard(in.Amount, supplier.CreditBalance); err != nil {
				return err
			}
			supplier.CreditBalance -= in.Amount
		}
		if err := tx.Save(supplier).Error; err != nil {
			return err
		}
		activity := models.NewCreditSettledActivity(userID, supplier.Name, in.Amount)
		return tx.Create(&activity).Error

	default:
		return fmt.Errorf("unknown party type %q", in.PartyType)
	}
}

func settleCheck(tx *gorm.DB, userID uint, in SettlementInput) error {
	if in.Status != models.StatusPaid && in.Status != models.StatusRejected {
		return fmt.Errorf("check settlement status must be %q or %q",
			models.StatusPaid, models.StatusRejected)
	}

	switch in.TransactionType {
	case "sale":
		var sale models.Sale
		err := lockForUpdate(tx).
			Where("user_id = ? AND public_id = ?", userID, in.TransactionID).
			First(&sale).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		if sale.PaymentStatus != models.StatusPendingCheck {
			return ErrCheckNotPending
		}
		if err := tx.Model(&sale).Update("payment_status", in.Status).Error; err != nil {
			return err
		}
		activity := checkActivity(userID, in.Status, sale.PublicID, sale.CheckNumber, sale.TotalAmount)
		return tx.Create(&activity).Error

	case "purchase":
		var purchase models.Purchase
		err := lockForUpdate(tx).
			Where("user_id = ? AND public_id = ?", userID, in.TransactionID).
			First(&purchase).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		if purchase.PaymentStatus != models.StatusPendingCheck {
			return ErrCheckNotPending
		}
		if err := tx.Model(&purchase).Update("payment_status", in.Status).Error; err != nil {
			return err
		}
		activity := checkActivity(userID, in.Status, purchase.PublicID, purchase.CheckNumber, purchase.TotalAmount)
		return tx.Create(&activity).Error

	default:
		return fmt.Errorf("unknown transaction type %q", in.TransactionType)
	}
}

func checkActivity(userID uint, status, txnID, checkNumber string, amount float64) models.Activity {
	if status == models.StatusPaid {
		return models.NewCheckClearedActivity(userID, txnID, checkNumber, amount)
	}
	return models.NewCheckRejectedActivity(userID, txnID, checkNumber, amount)
}
