package ledger

import (
	"errors"
	"time"

	"storeflex-lite/internal/models"

	"gorm.io/gorm"
)

// OrderInput stages a cart without touching stock or balances.
type OrderInput struct {
	PartyID *uint      `json:"party_id"`
	Items   []CartItem `json:"items" binding:"required"`
}

// CreateSalesOrder stages a customer order. Nothing hits the ledger
// until the order is processed; only an order_created activity is logged.
func CreateSalesOrder(db *gorm.DB, userID uint, in OrderInput) (*models.SalesOrder, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var order *models.SalesOrder
	err := db.Transaction(func(tx *gorm.DB) error {
		partyName := ""
		if in.PartyID != nil {
			customer, err := loadCustomer(tx, userID, *in.PartyID)
			if err != nil {
				return err
			}
			partyName = customer.Name
		}

		total := 0.0
		items := make([]models.SalesOrderItem, 0, len(in.Items))
		for _, line := range in.Items {
			product, err := loadProduct(tx, userID, line.ProductID)
			if err != nil {
				return err
			}
			unitPrice := line.UnitPrice
			if unitPrice == 0 {
				unitPrice = product.SellingPrice
			}
			total += unitPrice * float64(line.Quantity)
			items = append(items, models.SalesOrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   unitPrice,
			})
		}

		o := models.SalesOrder{
			UserID:      userID,
			CustomerID:  in.PartyID,
			PartyName:   partyName,
			TotalAmount: total,
			Status:      models.OrderPending,
			OrderDate:   time.Now(),
			Items:       items,
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}

		activity := models.NewOrderCreatedActivity(userID, "Sales", partyName, total)
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CreatePurchaseOrder stages a supplier order.
func CreatePurchaseOrder(db *gorm.DB, userID uint, in OrderInput) (*models.PurchaseOrder, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var order *models.PurchaseOrder
	err := db.Transaction(func(tx *gorm.DB) error {
		partyName := ""
		if in.PartyID != nil {
			supplier, err := loadSupplier(tx, userID, *in.PartyID)
			if err != nil {
				return err
			}
			partyName = supplier.Name
		}

		total := 0.0
		items := make([]models.PurchaseOrderItem, 0, len(in.Items))
		for _, line := range in.Items {
			product, err := loadProduct(tx, userID, line.ProductID)
			if err != nil {
				return err
			}
			total += line.UnitPrice * float64(line.Quantity)
			items = append(items, models.PurchaseOrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitCost:    line.UnitPrice,
			})
		}

		o := models.PurchaseOrder{
			UserID:      userID,
			SupplierID:  in.PartyID,
			PartyName:   partyName,
			TotalAmount: total,
			Status:      models.OrderPending,
			OrderDate:   time.Now(),
			Items:       items,
		}
		if err := tx.Create(&o).Error; err != nil {
			return err
		}

		activity := models.NewOrderCreatedActivity(userID, "Purchase", partyName, total)
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ProcessOrderInput carries the payment details decided at processing
// time (the staged order only knows the cart).
type ProcessOrderInput struct {
	PaymentMethod string  `json:"payment_method" binding:"required"`
	AmountPaid    float64 `json:"amount_paid"`
	CheckNumber   string  `json:"check_number"`
}

// ProcessSalesOrder converts a pending sales order into a committed Sale
// through the normal checkout path. The conversion and the order's
// processed flag commit in one transaction, so a failed checkout leaves
// the order pending and untouched.
func ProcessSalesOrder(db *gorm.DB, userID, orderID uint, in ProcessOrderInput) (*models.Sale, error) {
	var sale *models.Sale
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.SalesOrder
		err := lockForUpdate(tx).Preload("Items").
			Where("user_id = ?", userID).
			First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != models.OrderPending {
			return ErrOrderAlreadyProcessed
		}

		cart := make([]CartItem, 0, len(order.Items))
		for _, item := range order.Items {
			cart = append(cart, CartItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice,
			})
		}

		saleInput := SaleInput{
			CustomerID:    order.CustomerID,
			Items:         cart,
			PaymentMethod: in.PaymentMethod,
			AmountPaid:    in.AmountPaid,
			CheckNumber:   in.CheckNumber,
		}
		subtotal := 0.0
		for _, line := range cart {
			subtotal += line.UnitPrice * float64(line.Quantity)
		}
		if err := ValidateSale(saleInput, subtotal); err != nil {
			return err
		}

		sale, err = recordSaleTx(tx, userID, saleInput)
		if err != nil {
			return err
		}

		return tx.Model(&order).Update("status", models.OrderProcessed).Error
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// ProcessPurchaseOrder converts a pending purchase order into a
// committed Purchase.
func ProcessPurchaseOrder(db *gorm.DB, userID, orderID uint, in ProcessOrderInput) (*models.Purchase, error) {
	var purchase *models.Purchase
	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.PurchaseOrder
		err := lockForUpdate(tx).Preload("Items").
			Where("user_id = ?", userID).
			First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		if order.Status != models.OrderPending {
			return ErrOrderAlreadyProcessed
		}

		cart := make([]CartItem, 0, len(order.Items))
		for _, item := range order.Items {
			cart = append(cart, CartItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitCost,
			})
		}

		purchaseInput := PurchaseInput{
			SupplierID:    order.SupplierID,
			Items:         cart,
			PaymentMethod: in.PaymentMethod,
			AmountPaid:    in.AmountPaid,
			CheckNumber:   in.CheckNumber,
		}
		if err := ValidatePurchase(purchaseInput); err != nil {
			return err
		}

		purchase, err = recordPurchaseTx(tx, userID, purchaseInput)
		if err != nil {
			return err
		}

		return tx.Model(&order).Update("status", models.OrderProcessed).Error
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}
