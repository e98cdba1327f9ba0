package ledger

import (
	"errors"
	"fmt"
	"time"

	"storeflex-lite/internal/models"

	"gorm.io/gorm"
)

// SaleInput is a validated checkout request. PreviousBalance is the
// customer balance the client saw; the ledger re-reads the live balance
// inside the transaction, the client copy is only used for the upfront
// payment-amount check.
type SaleInput struct {
	CustomerID      *uint      `json:"customer_id"`
	Items           []CartItem `json:"items" binding:"required"`
	TaxPercentage   float64    `json:"tax_percentage"`
	TaxAmount       float64    `json:"tax_amount"`
	DiscountAmount  float64    `json:"discount_amount"`
	ServiceCharge   float64    `json:"service_charge"`
	PaymentMethod   string     `json:"payment_method" binding:"required"`
	AmountPaid      float64    `json:"amount_paid"`
	CheckNumber     string     `json:"check_number"`
	PreviousBalance float64    `json:"previous_balance"`
	SaleDate        time.Time  `json:"sale_date"`
}

// ValidateSale runs the upfront checks that never touch the database.
// A credit payment larger than the total payable (bill + prior balance)
// is rejected here, before any transaction opens.
func ValidateSale(in SaleInput, subtotal float64) error {
	if len(in.Items) == 0 {
		return ErrEmptyCart
	}
	switch in.PaymentMethod {
	case models.PaymentCash, models.PaymentCredit, models.PaymentCheck:
	default:
		return fmt.Errorf("unknown payment method %q", in.PaymentMethod)
	}
	if in.PaymentMethod == models.PaymentCheck && in.CheckNumber == "" {
		return errors.New("check payment requires a check number")
	}
	if in.AmountPaid < 0 {
		return errors.New("amount paid cannot be negative")
	}
	total := saleTotal(in, subtotal)
	if in.PaymentMethod == models.PaymentCredit && in.AmountPaid > total+in.PreviousBalance+Epsilon {
		return ErrInvalidPaymentAmount
	}
	return nil
}

func saleTotal(in SaleInput, subtotal float64) float64 {
	return subtotal + in.TaxAmount + in.ServiceCharge - in.DiscountAmount
}

// RecordSale commits a checkout: stock decrement, customer balance
// update, payment-status classification, id allocation, snapshot
// persist, sale activity. All inside one transaction - a failure at any
// step leaves nothing behind.
func RecordSale(db *gorm.DB, userID uint, in SaleInput) (*models.Sale, error) {
	subtotal, err := saleSubtotal(db, userID, in.Items)
	if err != nil {
		return nil, err
	}
	if err := ValidateSale(in, subtotal); err != nil {
		return nil, err
	}

	var sale *models.Sale
	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		sale, err = recordSaleTx(tx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// saleSubtotal resolves omitted line prices to the product's selling
// price, so the upfront payment validation sees the same total the
// checkout will commit. Read-only; the transaction re-reads every
// product under lock before it writes anything.
func saleSubtotal(db *gorm.DB, userID uint, items []CartItem) (float64, error) {
	subtotal := 0.0
	for _, line := range items {
		unitPrice := line.UnitPrice
		if unitPrice == 0 {
			var product models.Product
			err := db.Where("user_id = ?", userID).First(&product, line.ProductID).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, ErrProductNotFound
			}
			if err != nil {
				return 0, err
			}
			unitPrice = product.SellingPrice
		}
		subtotal += unitPrice * float64(line.Quantity)
	}
	return subtotal, nil
}

// recordSaleTx is the transactional body, also reused by order
// processing which needs the sale inside a wider transaction.
func recordSaleTx(tx *gorm.DB, userID uint, in SaleInput) (*models.Sale, error) {
	// 1. Re-read every cart product under lock, verify stock, decrement.
	// The stock check fails fast on the first violating line so nothing
	// is partially applied.
	subtotal := 0.0
	items := make([]models.SaleItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := loadProduct(tx, userID, line.ProductID)
		if err != nil {
			return nil, err
		}

		unitPrice := line.UnitPrice
		if unitPrice == 0 {
			unitPrice = product.SellingPrice
		}

		if err := adjustStock(tx, product, -line.Quantity); err != nil {
			return nil, err
		}

		lineTotal := unitPrice * float64(line.Quantity)
		subtotal += lineTotal
		items = append(items, models.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
	}

	total := saleTotal(in, subtotal)

	// 2. Registered customer: re-read the live balance and apply the new
	// one, floored at zero (an overpaying customer just clears the debt).
	previousBalance := 0.0
	newBalance := 0.0
	customerName := ""
	if in.CustomerID != nil {
		customer, err := loadCustomer(tx, userID, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		customerName = customer.Name
		previousBalance = customer.CreditBalance

		newBalance = previousBalance + total - in.AmountPaid
		if newBalance < 0 {
			newBalance = 0
		}
		customer.CreditBalance = newBalance
		if err := tx.Save(customer).Error; err != nil {
			return nil, err
		}
	}

	// 3. Classify the payment status.
	status := models.StatusPaid
	if in.PaymentMethod == models.PaymentCredit && newBalance > Epsilon {
		status = models.StatusPartial
	}
	if in.PaymentMethod == models.PaymentCheck {
		status = models.StatusPendingCheck
	}

	// 4. Allocate the sale id inside this same transaction.
	publicID, err := NextID(tx, EntitySale, userID)
	if err != nil {
		return nil, err
	}

	saleDate := in.SaleDate
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	sale := models.Sale{
		PublicID:        publicID,
		UserID:          userID,
		CustomerID:      in.CustomerID,
		CustomerName:    customerName,
		Subtotal:        subtotal,
		TaxPercentage:   in.TaxPercentage,
		TaxAmount:       in.TaxAmount,
		DiscountAmount:  in.DiscountAmount,
		ServiceCharge:   in.ServiceCharge,
		TotalAmount:     total,
		PaymentMethod:   in.PaymentMethod,
		PaymentStatus:   status,
		AmountPaid:      in.AmountPaid,
		PreviousBalance: previousBalance,
		CreditAmount:    newBalance,
		CheckNumber:     in.CheckNumber,
		SaleDate:        saleDate,
		Items:           items,
	}
	if err := tx.Create(&sale).Error; err != nil {
		return nil, err
	}

	// 5. One sale activity summarizing the checkout.
	activity := models.NewSaleActivity(userID, sale.PublicID, len(items), total)
	if err := tx.Create(&activity).Error; err != nil {
		return nil, err
	}

	return &sale, nil
}

// DeleteSale removes a sale record and puts its items back on the shelf.
// Balances are NOT reversed: deleting a mistyped sale undoes the stock
// movement, not the money that may already have changed hands.
func DeleteSale(db *gorm.DB, userID, saleID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var sale models.Sale
		err := tx.Preload("Items").
			Where("user_id = ?", userID).
			First(&sale, saleID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}

		for _, item := range sale.Items {
			product, err := loadProduct(tx, userID, item.ProductID)
			if errors.Is(err, ErrProductNotFound) {
				continue // product was deleted since; nothing to restock
			}
			if err != nil {
				return err
			}
			if err := adjustStock(tx, product, item.Quantity); err != nil {
				return err
			}
		}

		if err := tx.Where("sale_id = ?", sale.ID).Delete(&models.SaleItem{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&sale).Error; err != nil {
			return err
		}

		activity := models.NewRecordActivity(userID, models.ActivityDelete,
			fmt.Sprintf("Deleted sale %s (%.2f), stock restored", sale.PublicID, sale.TotalAmount))
		return tx.Create(&activity).Error
	})
}
