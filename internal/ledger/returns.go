package ledger

import (
	"errors"
	"time"

	"storeflex-lite/internal/models"

	"gorm.io/gorm"
)

// ReturnLine asks to send back part of one original purchase line.
type ReturnLine struct {
	ProductID      uint `json:"product_id" binding:"required"`
	ReturnQuantity int  `json:"return_quantity" binding:"required,gt=0"`
}

// PurchaseReturnInput reverses a subset of a prior purchase's items.
type PurchaseReturnInput struct {
	PurchasePublicID string       `json:"purchase_public_id" binding:"required"`
	Items            []ReturnLine `json:"items" binding:"required"`
}

// RecordPurchaseReturn sends goods back to the supplier: stock drops by
// the returned quantity (the usual negative check applies), the supplier
// balance drops by the credit amount (and may go negative - the supplier
// then owes the store), and an immutable return record plus a
// purchase_return activity are written. Sale-side returns are not
// supported.
func RecordPurchaseReturn(db *gorm.DB, userID uint, in PurchaseReturnInput) (*models.PurchaseReturn, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptyCart
	}

	var result *models.PurchaseReturn
	err := db.Transaction(func(tx *gorm.DB) error {
		// 1. Find the original purchase and index its line quantities.
		var purchase models.Purchase
		err := tx.Preload("Items").
			Where("user_id = ? AND public_id = ?", userID, in.PurchasePublicID).
			First(&purchase).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTransactionNotFound
		}
		if err != nil {
			return err
		}
		if purchase.SupplierID == nil {
			return ErrSupplierNotFound
		}

		original := make(map[uint]models.PurchaseItem, len(purchase.Items))
		for _, item := range purchase.Items {
			original[item.ProductID] = item
		}

		// 2. Validate quantities and apply stock decrements. Credit is
		// valued at the unit cost actually paid on the original purchase.
		totalCredit := 0.0
		items := make([]models.PurchaseReturnItem, 0, len(in.Items))
		for _, line := range in.Items {
			origItem, ok := original[line.ProductID]
			if !ok {
				return ErrProductNotFound
			}
			if line.ReturnQuantity > origItem.Quantity {
				return &InvalidReturnQuantityError{
					ProductID: line.ProductID,
					Original:  origItem.Quantity,
					Requested: line.ReturnQuantity,
				}
			}

			product, err := loadProduct(tx, userID, line.ProductID)
			if err != nil {
				return err
			}
			if err := adjustStock(tx, product, -line.ReturnQuantity); err != nil {
				return err
			}

			lineCredit := origItem.UnitCost * float64(line.ReturnQuantity)
			totalCredit += lineCredit
			items = append(items, models.PurchaseReturnItem{
				ProductID:      line.ProductID,
				ProductName:    origItem.ProductName,
				ReturnQuantity: line.ReturnQuantity,
				UnitCost:       origItem.UnitCost,
				LineCredit:     lineCredit,
			})
		}

		// 3. Reduce what we owe the supplier. No floor here either.
		supplier, err := loadSupplier(tx, userID, *purchase.SupplierID)
		if err != nil {
			return err
		}
		supplier.CreditBalance -= totalCredit
		if err := tx.Save(supplier).Error; err != nil {
			return err
		}

		// 4. Persist the return record and its activity.
		ret := models.PurchaseReturn{
			UserID:            userID,
			PurchasePublicID:  purchase.PublicID,
			SupplierID:        supplier.ID,
			SupplierName:      supplier.Name,
			TotalCreditAmount: totalCredit,
			ReturnDate:        time.Now(),
			Items:             items,
		}
		if err := tx.Create(&ret).Error; err != nil {
			return err
		}

		activity := models.NewPurchaseReturnActivity(userID, purchase.PublicID, len(items), totalCredit)
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		result = &ret
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
