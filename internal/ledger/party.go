package ledger

import (
	"errors"

	"storeflex-lite/internal/models"

	"gorm.io/gorm"
)

// loadCustomer / loadSupplier read a party row under lock, tenant scoped.

func loadCustomer(tx *gorm.DB, userID, customerID uint) (*models.Customer, error) {
	var customer models.Customer
	err := lockForUpdate(tx).
		Where("user_id = ?", userID).
		First(&customer, customerID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func loadSupplier(tx *gorm.DB, userID, supplierID uint) (*models.Supplier, error) {
	var supplier models.Supplier
	err := lockForUpdate(tx).
		Where("user_id = ?", userID).
		First(&supplier, supplierID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSupplierNotFound
	}
	if err != nil {
		return nil, err
	}
	return &supplier, nil
}

// settleAmountGuard enforces 0 < amount <= outstanding + Epsilon before
// any settlement write.
func settleAmountGuard(amount, outstanding float64) error {
	if amount <= 0 || amount > outstanding+Epsilon {
		return &InvalidSettlementAmountError{Requested: amount, Outstanding: outstanding}
	}
	return nil
}
