package ledger_test

import (
	"testing"

	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPurchase_WeightedAverageCost(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 10, 100, 140)
	supplier := seedSupplier(t, db, "Acme", 0)

	purchase, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 5, UnitPrice: 130}},
		PaymentMethod: models.PaymentCash,
		AmountPaid:    650,
	})
	require.NoError(t, err)
	assert.Equal(t, "pur000001", purchase.PublicID)

	reloaded := reloadProduct(t, db, product.ID)
	assert.Equal(t, 15, reloaded.Stock)
	// (10*100 + 5*130) / 15 = 143.33...
	assert.InDelta(t, 143.3333, reloaded.CostPrice, 0.001)
}

func TestRecordPurchase_CostFromZeroStock(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 140)
	supplier := seedSupplier(t, db, "Acme", 0)

	_, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 8, UnitPrice: 120}},
		PaymentMethod: models.PaymentCash,
		AmountPaid:    960,
	})
	require.NoError(t, err)

	reloaded := reloadProduct(t, db, product.ID)
	assert.Equal(t, 8, reloaded.Stock)
	assert.InDelta(t, 120, reloaded.CostPrice, ledger.Epsilon)
}

func TestRecordPurchase_CreditPartialBalance(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 140)
	supplier := seedSupplier(t, db, "Acme", 0)

	purchase, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 3, UnitPrice: 100}},
		PaymentMethod: models.PaymentCredit,
		AmountPaid:    100,
	})
	require.NoError(t, err)

	assert.Equal(t, models.StatusPartial, purchase.PaymentStatus)
	assert.InDelta(t, 200, purchase.CreditAmount, ledger.Epsilon)

	var reloaded models.Supplier
	require.NoError(t, db.First(&reloaded, supplier.ID).Error)
	assert.InDelta(t, 200, reloaded.CreditBalance, ledger.Epsilon)
}

func TestRecordPurchase_OverpaymentSettlesPriorDebt(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 140)
	supplier := seedSupplier(t, db, "Acme", 500)

	purchase, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 3, UnitPrice: 100}},
		PaymentMethod: models.PaymentCash,
		AmountPaid:    900, // 300 bill + 500 old debt + 100 extra
	})
	require.NoError(t, err)

	assert.InDelta(t, 500, purchase.PreviousBalance, ledger.Epsilon)
	// (500 + 300) - 900 = -100: the supplier now owes us.
	assert.InDelta(t, -100, purchase.CreditAmount, ledger.Epsilon)

	var reloaded models.Supplier
	require.NoError(t, db.First(&reloaded, supplier.ID).Error)
	assert.InDelta(t, -100, reloaded.CreditBalance, ledger.Epsilon)

	// The implicit settlement is capped at the prior debt and gets its
	// own activity alongside the purchase one.
	settled := activitiesOfType(t, db, models.ActivityCreditSettled)
	require.Len(t, settled, 1)
	assert.InDelta(t, 500, settled[0].Amount, ledger.Epsilon)
	require.Len(t, activitiesOfType(t, db, models.ActivityPurchase), 1)
}

func TestRecordPurchase_NoSettlementWithoutPriorDebt(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 140)
	supplier := seedSupplier(t, db, "Acme", 0)

	_, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 1, UnitPrice: 100}},
		PaymentMethod: models.PaymentCash,
		AmountPaid:    150, // overpaying with no prior debt
	})
	require.NoError(t, err)

	assert.Empty(t, activitiesOfType(t, db, models.ActivityCreditSettled))

	var reloaded models.Supplier
	require.NoError(t, db.First(&reloaded, supplier.ID).Error)
	assert.InDelta(t, -50, reloaded.CreditBalance, ledger.Epsilon)
}

func TestRecordPurchase_CheckPending(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 140)
	supplier := seedSupplier(t, db, "Acme", 0)

	purchase, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 2, UnitPrice: 100}},
		PaymentMethod: models.PaymentCheck,
		AmountPaid:    200,
		CheckNumber:   "CHK-7",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPendingCheck, purchase.PaymentStatus)
}

func TestRecordPurchase_RejectsNonPositiveUnitCost(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 140)

	_, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 2, UnitPrice: 0}},
		PaymentMethod: models.PaymentCash,
	})
	assert.Error(t, err)
}
