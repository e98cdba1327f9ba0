package ledger_test

import (
	"testing"

	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchMoneyflow_Aggregation(t *testing.T) {
	db := newTestDB(t)
	seedCustomer(t, db, "Alice", 600)
	seedCustomer(t, db, "Bob", 0) // settled, must not appear
	seedSupplier(t, db, "Acme", 200)
	seedSupplier(t, db, "Globex", -100) // overpaid: receivable from supplier

	data, err := ledger.FetchMoneyflowData(db, testTenant)
	require.NoError(t, err)

	assert.InDelta(t, 700, data.ReceivablesTotal, ledger.Epsilon) // 600 + 100
	assert.InDelta(t, 200, data.PayablesTotal, ledger.Epsilon)
	assert.InDelta(t, 0, data.PendingChecksTotal, ledger.Epsilon)
	assert.Len(t, data.Entries, 3)

	kinds := map[string]int{}
	for _, e := range data.Entries {
		kinds[e.Kind]++
	}
	assert.Equal(t, 2, kinds[ledger.EntryReceivable])
	assert.Equal(t, 1, kinds[ledger.EntryPayable])
}

func TestFetchMoneyflow_PendingChecks(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Cola", 10, 30, 50)

	sale, err := ledger.RecordSale(db, testTenant, ledger.SaleInput{
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 10, UnitPrice: 50}},
		PaymentMethod: models.PaymentCheck,
		AmountPaid:    500,
		CheckNumber:   "CHK-1",
	})
	require.NoError(t, err)

	data, err := ledger.FetchMoneyflowData(db, testTenant)
	require.NoError(t, err)
	assert.InDelta(t, 500, data.PendingChecksTotal, ledger.Epsilon)
	require.Len(t, data.Entries, 1)
	assert.Equal(t, ledger.EntryCheck, data.Entries[0].Kind)
	assert.Equal(t, sale.PublicID, data.Entries[0].TransactionID)
	assert.Equal(t, "CHK-1", data.Entries[0].CheckNumber)
}

func TestSettleCredit_ReducesCustomerBalance(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Alice", 600)

	err := ledger.SettlePayment(db, testTenant, ledger.SettlementInput{
		Kind:      "credit",
		PartyType: "customer",
		PartyID:   customer.ID,
		Status:    models.StatusPaid,
		Amount:    400,
	})
	require.NoError(t, err)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.InDelta(t, 200, reloaded.CreditBalance, ledger.Epsilon)

	settled := activitiesOfType(t, db, models.ActivityCreditSettled)
	require.Len(t, settled, 1)
	assert.InDelta(t, 400, settled[0].Amount, ledger.Epsilon)
}

func TestSettleCredit_CannotOverdraw(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Alice", 300)

	err := ledger.SettlePayment(db, testTenant, ledger.SettlementInput{
		Kind:      "credit",
		PartyType: "customer",
		PartyID:   customer.ID,
		Status:    models.StatusPaid,
		Amount:    300.5,
	})

	var settleErr *ledger.InvalidSettlementAmountError
	require.ErrorAs(t, err, &settleErr)

	var reloaded models.Customer
	require.NoError(t, db.First(&reloaded, customer.ID).Error)
	assert.InDelta(t, 300, reloaded.CreditBalance, ledger.Epsilon, "no balance change on failure")
	assert.Empty(t, activitiesOfType(t, db, models.ActivityCreditSettled))
}

func TestSettleCredit_EpsilonTolerance(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Alice", 300)

	// Float drift within the 0.001 tolerance is accepted.
	err := ledger.SettlePayment(db, testTenant, ledger.SettlementInput{
		Kind:      "credit",
		PartyType: "customer",
		PartyID:   customer.ID,
		Status:    models.StatusPaid,
		Amount:    300.0005,
	})
	require.NoError(t, err)
}

func TestSettleCredit_SupplierOverpaymentCollectsTowardZero(t *testing.T) {
	db := newTestDB(t)
	supplier := seedSupplier(t, db, "Globex", -100)

	err := ledger.SettlePayment(db, testTenant, ledger.SettlementInput{
		Kind:      "credit",
		PartyType: "supplier",
		PartyID:   supplier.ID,
		Status:    models.StatusPaid,
		Amount:    100,
	})
	require.NoError(t, err)

	var reloaded models.Supplier
	require.NoError(t, db.First(&reloaded, supplier.ID).Error)
	assert.InDelta(t, 0, reloaded.CreditBalance, ledger.Epsilon)
}

func TestSettleCheck_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Cola", 20, 30, 50)

	sale, err := ledger.RecordSale(db, testTenant, ledger.SaleInput{
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 10, UnitPrice: 50}},
		PaymentMethod: models.PaymentCheck,
		AmountPaid:    500,
		CheckNumber:   "CHK-1",
	})
	require.NoError(t, err)
	stockAfterSale := reloadProduct(t, db, product.ID).Stock

	// Accept the check.
	err = ledger.SettlePayment(db, testTenant, ledger.SettlementInput{
		Kind:            "check",
		TransactionType: "sale",
		TransactionID:   sale.PublicID,
		Status:          models.StatusPaid,
	})
	require.NoError(t, err)

	var reloaded models.Sale
	require.NoError(t, db.First(&reloaded, sale.ID).Error)
	assert.Equal(t, models.StatusPaid, reloaded.PaymentStatus)

	// Clearance confirms the check, it does not replay the sale.
	assert.Equal(t, stockAfterSale, reloadProduct(t, db, product.ID).Stock)

	data, err := ledger.FetchMoneyflowData(db, testTenant)
	require.NoError(t, err)
	assert.InDelta(t, 0, data.PendingChecksTotal, ledger.Epsilon)

	require.Len(t, activitiesOfType(t, db, models.ActivityCheckCleared), 1)

	// A cleared check cannot be settled again.
	err = ledger.SettlePayment(db, testTenant, ledger.SettlementInput{
		Kind:            "check",
		TransactionType: "sale",
		TransactionID:   sale.PublicID,
		Status:          models.StatusPaid,
	})
	require.ErrorIs(t, err, ledger.ErrCheckNotPending)
}

func TestSettleCheck_RejectionLeavesLedgerAlone(t *testing.T) {
	db := newTestDB(t)
	product := seedProduct(t, db, "Rice", 0, 0, 80)
	supplier := seedSupplier(t, db, "Acme", 0)

	purchase, err := ledger.RecordPurchase(db, testTenant, ledger.PurchaseInput{
		SupplierID:    &supplier.ID,
		Items:         []ledger.CartItem{{ProductID: product.ID, Quantity: 5, UnitPrice: 40}},
		PaymentMethod: models.PaymentCheck,
		AmountPaid:    200,
		CheckNumber:   "CHK-9",
	})
	require.NoError(t, err)
	stockAfterPurchase := reloadProduct(t, db, product.ID).Stock
	var supplierAfterPurchase models.Supplier
	require.NoError(t, db.First(&supplierAfterPurchase, supplier.ID).Error)

	err = ledger.SettlePayment(db, testTenant, ledger.SettlementInput{
		Kind:            "check",
		TransactionType: "purchase",
		TransactionID:   purchase.PublicID,
		Status:          models.StatusRejected,
	})
	require.NoError(t, err)

	var reloaded models.Purchase
	require.NoError(t, db.First(&reloaded, purchase.ID).Error)
	assert.Equal(t, models.StatusRejected, reloaded.PaymentStatus)

	// Stock and balance stay exactly as the purchase left them.
	assert.Equal(t, stockAfterPurchase, reloadProduct(t, db, product.ID).Stock)
	var supplierNow models.Supplier
	require.NoError(t, db.First(&supplierNow, supplier.ID).Error)
	assert.InDelta(t, supplierAfterPurchase.CreditBalance, supplierNow.CreditBalance, ledger.Epsilon)

	require.Len(t, activitiesOfType(t, db, models.ActivityCheckRejected), 1)

	data, err := ledger.FetchMoneyflowData(db, testTenant)
	require.NoError(t, err)
	assert.InDelta(t, 0, data.PendingChecksTotal, ledger.Epsilon)
}

func TestSettle_TenantIsolation(t *testing.T) {
	db := newTestDB(t)
	customer := seedCustomer(t, db, "Alice", 600)

	// A different tenant cannot see or settle this balance.
	err := ledger.SettlePayment(db, 99, ledger.SettlementInput{
		Kind:      "credit",
		PartyType: "customer",
		PartyID:   customer.ID,
		Status:    models.StatusPaid,
		Amount:    100,
	})
	require.ErrorIs(t, err, ledger.ErrCustomerNotFound)
}
