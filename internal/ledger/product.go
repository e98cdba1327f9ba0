package ledger

import (
	"errors"

	"storeflex-lite/internal/models"

	"gorm.io/gorm"
)

// loadProduct reads a product row under lock, scoped to the tenant.
func loadProduct(tx *gorm.DB, userID, productID uint) (*models.Product, error) {
	var product models.Product
	err := lockForUpdate(tx).
		Where("user_id = ?", userID).
		First(&product, productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// adjustStock applies a signed delta to a locked product's stock. The
// negative check happens before any write, so the enclosing transaction
// aborts with zero side effects when a sale would oversell.
func adjustStock(tx *gorm.DB, product *models.Product, delta int) error {
	newStock := product.Stock + delta
	if newStock < 0 {
		return &InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Available:   product.Stock,
			Requested:   -delta,
		}
	}
	product.Stock = newStock
	return tx.Save(product).Error
}

// weightedAverageCost blends the existing stock value with an incoming
// batch. Falls back to the incoming unit cost when total stock is zero.
func weightedAverageCost(currentStock int, currentCost float64, incomingQty int, incomingUnitCost float64) float64 {
	totalQty := currentStock + incomingQty
	if totalQty == 0 {
		return incomingUnitCost
	}
	return (float64(currentStock)*currentCost + float64(incomingQty)*incomingUnitCost) / float64(totalQty)
}

// RecordStockLoss writes off damaged or lost stock: decrement quantity,
// value the loss at the current weighted-average cost, append a "loss"
// activity. Cost price itself is untouched (a loss is not a sale).
func RecordStockLoss(db *gorm.DB, userID, productID uint, quantity int, reason string) (*models.Product, error) {
	var result *models.Product
	err := db.Transaction(func(tx *gorm.DB) error {
		product, err := loadProduct(tx, userID, productID)
		if err != nil {
			return err
		}
		if err := adjustStock(tx, product, -quantity); err != nil {
			return err
		}

		lossValue := float64(quantity) * product.CostPrice
		activity := models.NewLossActivity(userID, product.ID, product.Name, quantity, lossValue, reason)
		if err := tx.Create(&activity).Error; err != nil {
			return err
		}

		result = product
		return nil
	})
	return result, err
}
