package ledger_test

import (
	"testing"

	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseReturn_CreditArithmetic(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 80)
	supplier := seedSupplier(t, db, "Acme", 0)

	// Buy 5 at 50 on credit: stock 5, supplier owed 250.
	purchase, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 5, UnitPrice: 50}},
		PaymentMethod: models.PaymentCredit,
	})
	require.NoError(t, err)

	ret, err := ledger.RecordPurchaseReturn(db, testTenant, ledger.PurchaseReturnInput{
		PurchasePublicID: purchase.PublicID,
		Items:            []ledger.ReturnLine{{ProductID: product.ID, ReturnQuantity: 3}},
	})
	require.NoError(t, err)

	// 3 * 50 = 150 credited back.
	assert.InDelta(t, 150, ret.TotalCreditAmount, ledger.Epsilon)
	assert.Equal(t, 2, reloadProduct(t, db, product.ID).Stock)

	var reloaded models.Supplier
	require.NoError(t, db.First(&reloaded, supplier.ID).Error)
	assert.InDelta(t, 100, reloaded.CreditBalance, ledger.Epsilon) // 250 - 150

	require.Len(t, activitiesOfType(t, db, models.ActivityPurchaseReturn), 1)
}

func TestPurchaseReturn_BalanceMayGoNegative(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 80)
	supplier := seedSupplier(t, db, "Acme", 0)

	// Fully paid purchase, then a return: the store is now owed money.
	purchase, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 4, UnitPrice: 50}},
		PaymentMethod: models.PaymentCash,
		AmountPaid:    200,
	})
	require.NoError(t, err)

	_, err = ledger.RecordPurchaseReturn(db, testTenant, ledger.PurchaseReturnInput{
		PurchasePublicID: purchase.PublicID,
		Items:            []ledger.ReturnLine{{ProductID: product.ID, ReturnQuantity: 2}},
	})
	require.NoError(t, err)

	var reloaded models.Supplier
	require.NoError(t, db.First(&reloaded, supplier.ID).Error)
	assert.InDelta(t, -100, reloaded.CreditBalance, ledger.Epsilon)
}

func TestPurchaseReturn_QuantityExceedsOriginal(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 80)
	supplier := seedSupplier(t, db, "Acme", 0)

	purchase, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 2, UnitPrice: 50}},
		PaymentMethod: models.PaymentCredit,
	})
	require.NoError(t, err)

	_, err = ledger.RecordPurchaseReturn(db, testTenant, ledger.PurchaseReturnInput{
		PurchasePublicID: purchase.PublicID,
		Items:            []ledger.ReturnLine{{ProductID: product.ID, ReturnQuantity: 5}},
	})

	var qtyErr *ledger.InvalidReturnQuantityError
	require.ErrorAs(t, err, &qtyErr)
	assert.Equal(t, 2, qtyErr.Original)
	assert.Equal(t, 5, qtyErr.Requested)

	// Nothing moved.
	assert.Equal(t, 2, reloadProduct(t, db, product.ID).Stock)
	var reloaded models.Supplier
	require.NoError(t, db.First(&reloaded, supplier.ID).Error)
	assert.InDelta(t, 100, reloaded.CreditBalance, ledger.Epsilon)
}

func TestPurchaseReturn_RequiresStockOnHand(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 80)
	supplier := seedSupplier(t, db, "Acme", 0)

	purchase, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 3, UnitPrice: 50}},
		PaymentMethod: models.PaymentCredit,
	})
	require.NoError(t, err)

	// Sell the goods before trying to return them to the supplier.
	_, err = ledger.RecordSale(db, testTenant, ledger.SaleInput{
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 3, UnitPrice: 80}},
		PaymentMethod: models.PaymentCash,
		AmountPaid:    240,
	})
	require.NoError(t, err)

	_, err = ledger.RecordPurchaseReturn(db, testTenant, ledger.PurchaseReturnInput{
		PurchasePublicID: purchase.PublicID,
		Items:            []ledger.ReturnLine{{ProductID: product.ID, ReturnQuantity: 2}},
	})
	var stockErr *ledger.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
}

func TestPurchaseReturn_UnknownPurchase(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 5, 50, 80)

	_, err := ledger.RecordPurchaseReturn(db, testTenant, ledger.PurchaseReturnInput{
		PurchasePublicID: "pur999999",
		Items:            []ledger.ReturnLine{{ProductID: product.ID, ReturnQuantity: 1}},
	})
	require.ErrorIs(t, err, ledger.ErrTransactionNotFound)
}
