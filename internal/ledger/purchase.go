package ledger

import (
	"errors"
	"fmt"
	"time"

	"storeflex-lite/internal/models"

	"gorm.io/gorm"
)

// PurchaseInput mirrors SaleInput on the supplier side. CartItem's
// UnitPrice field carries the unit cost here.
type PurchaseInput struct {
	SupplierID      *uint      `json:"supplier_id"`
	Items           []CartItem `json:"items" binding:"required"`
	TaxPercentage   float64    `json:"tax_percentage"`
	TaxAmount       float64    `json:"tax_amount"`
	DiscountAmount  float64    `json:"discount_amount"`
	ServiceCharge   float64    `json:"service_charge"`
	PaymentMethod   string     `json:"payment_method" binding:"required"`
	AmountPaid      float64    `json:"amount_paid"`
	CheckNumber     string     `json:"check_number"`
	PurchaseDate    time.Time  `json:"purchase_date"`
}

func ValidatePurchase(in PurchaseInput) error {
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
	for _, line := range in.Items {
		if line.UnitPrice <= 0 {
			return fmt.Errorf("purchase unit cost must be positive for product %d", line.ProductID)
		}
	}
	return nil
}

// RecordPurchase commits a stock intake: stock increment plus
// weighted-average cost recompute per product, supplier balance update
// (no zero floor - overpayment drives it negative), settlement-of-prior-
// debt detection, id allocation, snapshot persist and activities.
func RecordPurchase(db *gorm.DB, userID uint, in PurchaseInput) (*models.Purchase, error) {
	if err := ValidatePurchase(in); err != nil {
		return nil, err
	}

	var purchase *models.Purchase
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		purchase, err = recordPurchaseTx(tx, userID, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func recordPurchaseTx(tx *gorm.DB, userID uint, in PurchaseInput) (*models.Purchase, error) {
	// 1. Lock each product, blend the incoming batch into the weighted
	// average cost, then bump the stock.
	subtotal := 0.0
	items := make([]models.PurchaseItem, 0, len(in.Items))
	for _, line := range in.Items {
		product, err := loadProduct(tx, userID, line.ProductID)
		if err != nil {
			return nil, err
		}

		product.CostPrice = weightedAverageCost(product.Stock, product.CostPrice, line.Quantity, line.UnitPrice)
		if err := adjustStock(tx, product, line.Quantity); err != nil {
			return nil, err
		}

		lineTotal := line.UnitPrice * float64(line.Quantity)
		subtotal += lineTotal
		items = append(items, models.PurchaseItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitPrice,
			LineTotal:   lineTotal,
		})
	}

	total := subtotal + in.TaxAmount + in.ServiceCharge - in.DiscountAmount

	// 2. Supplier balance. Unlike the customer side there is no zero
	// floor: paying more than bill + prior debt leaves the balance
	// negative, i.e. the supplier now owes the store.
	previousBalance := 0.0
	newBalance := 0.0
	settledAmount := 0.0
	supplierName := ""
	if in.SupplierID != nil {
		supplier, err := loadSupplier(tx, userID, *in.SupplierID)
		if err != nil {
			return nil, err
		}
		supplierName = supplier.Name
		previousBalance = supplier.CreditBalance
		newBalance = previousBalance + total - in.AmountPaid

		// Overpayment against prior debt is an implicit settlement and
		// gets its own activity, distinct from the purchase itself.
		if in.AmountPaid > total && previousBalance > 0 {
			settledAmount = in.AmountPaid - total
			if settledAmount > previousBalance {
				settledAmount = previousBalance
			}
		}

		supplier.CreditBalance = newBalance
		if err := tx.Save(supplier).Error; err != nil {
			return nil, err
		}
	}

	// 3. Payment status, same classification as sales.
	status := models.StatusPaid
	if in.PaymentMethod == models.PaymentCredit && newBalance > Epsilon {
		status = models.StatusPartial
	}
	if in.PaymentMethod == models.PaymentCheck {
		status = models.StatusPendingCheck
	}

	// 4. Allocate the purchase id in this same transaction.
	publicID, err := NextID(tx, EntityPurchase, userID)
	if err != nil {
		return nil, err
	}

	purchaseDate := in.PurchaseDate
	if purchaseDate.IsZero() {
		purchaseDate = time.Now()
	}

	purchase := models.Purchase{
		PublicID:        publicID,
		UserID:          userID,
		SupplierID:      in.SupplierID,
		SupplierName:    supplierName,
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
		PurchaseDate:    purchaseDate,
		Items:           items,
	}
	if err := tx.Create(&purchase).Error; err != nil {
		return nil, err
	}

	// 5. Activities: always one for the purchase, plus one for the
	// implicit settlement when an overpayment cleared prior debt.
	activity := models.NewPurchaseActivity(userID, purchase.PublicID, len(items), total)
	if err := tx.Create(&activity).Error; err != nil {
		return nil, err
	}
	if settledAmount > 0 {
		settleActivity := models.NewCreditSettledActivity(userID, supplierName, settledAmount)
		if err := tx.Create(&settleActivity).Error; err != nil {
			return nil, err
		}
	}

	return &purchase, nil
}
