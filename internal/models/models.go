package models

import (
	"time"
)

// Payment methods accepted at checkout (sales and purchases alike).
const (
	PaymentCash   = "cash"
	PaymentCredit = "credit"
	PaymentCheck  = "check"
)

// Payment status lifecycle. "pending_check_clearance" transitions to
// "paid" or "rejected" via the moneyflow settlement engine; every other
// status is final at transaction-creation time.
const (
	StatusPaid         = "paid"
	StatusPartial      = "partial"
	StatusPendingCheck = "pending_check_clearance"
	StatusRejected     = "rejected"
)

// Order lifecycle.
const (
	OrderPending   = "pending"
	OrderProcessed = "processed"
)

// User - The store owner / staff account. The user ID doubles as the
// tenant boundary: every business record below carries it.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	PublicID     string    `gorm:"uniqueIndex;size:16" json:"public_id"` // e.g. "user0001"
	Username     string    `gorm:"uniqueIndex;size:50" json:"username"`
	PasswordHash string    `json:"-"`    // Never return this in JSON
	Role         string    `json:"role"` // 'admin', 'staff'
	CreatedAt    time.Time `json:"created_at"`
}

// Product - The Inventory. Stock and CostPrice are the mutable ledger
// fields: only the ledger package may change them, inside a transaction.
type Product struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	UserID            uint      `gorm:"index" json:"user_id"`
	Name              string    `json:"name"`
	Barcode           string    `gorm:"index;size:64" json:"barcode"`
	Category          string    `json:"category"`
	Stock             int       `json:"stock"`
	CostPrice         float64   `json:"cost_price"` // weighted-average unit cost
	SellingPrice      float64   `json:"selling_price"`
	LowStockThreshold int       `json:"low_stock_threshold"`
	ImageURL          string    `json:"image_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// Customer - a registered buyer. CreditBalance > 0 means the customer
// owes the store (a receivable). Floored at zero on sale: an overpaying
// customer simply clears their debt.
type Customer struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PublicID      string    `gorm:"index;size:16" json:"public_id"` // e.g. "cus0001"
	UserID        uint      `gorm:"index" json:"user_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	CreditBalance float64   `json:"credit_balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// Supplier - a vendor. CreditBalance > 0 means the store owes the
// supplier (a payable). Unlike customers this balance is allowed to go
// negative: an overpayment becomes a receivable owed back to the store.
type Supplier struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	PublicID      string    `gorm:"index;size:16" json:"public_id"` // e.g. "sup0001"
	UserID        uint      `gorm:"index" json:"user_id"`
	Name          string    `json:"name"`
	Phone         string    `json:"phone"`
	CreditBalance float64   `json:"credit_balance"`
	CreatedAt     time.Time `json:"created_at"`
}

// Sale - The Transaction Header. Immutable once written, except
// PaymentStatus which a check clearance may flip to paid/rejected.
type Sale struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	PublicID        string     `gorm:"index;size:16" json:"public_id"` // e.g. "sale000001"
	UserID          uint       `gorm:"index" json:"user_id"`
	CustomerID      *uint      `json:"customer_id"` // nil for walk-in
	CustomerName    string     `json:"customer_name"`
	Subtotal        float64    `json:"subtotal"`
	TaxPercentage   float64    `json:"tax_percentage"`
	TaxAmount       float64    `json:"tax_amount"`
	DiscountAmount  float64    `json:"discount_amount"`
	ServiceCharge   float64    `json:"service_charge"`
	TotalAmount     float64    `json:"total_amount"`
	PaymentMethod   string     `json:"payment_method"` // cash|credit|check
	PaymentStatus   string     `json:"payment_status"`
	AmountPaid      float64    `json:"amount_paid"`
	PreviousBalance float64    `json:"previous_balance"` // customer balance before this sale
	CreditAmount    float64    `json:"credit_amount"`    // customer balance after this sale
	CheckNumber     string     `json:"check_number,omitempty"`
	SaleDate        time.Time  `json:"sale_date"`
	Items           []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - a snapshot of the product at sale time. Name and price are
// copied on purpose so history stays accurate if the product changes later.
type SaleItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	SaleID      uint    `gorm:"index" json:"sale_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	LineTotal   float64 `json:"line_total"`
}

// Purchase - mirror of Sale on the supplier side.
type Purchase struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	PublicID        string         `gorm:"index;size:16" json:"public_id"` // e.g. "pur000001"
	UserID          uint           `gorm:"index" json:"user_id"`
	SupplierID      *uint          `json:"supplier_id"`
	SupplierName    string         `json:"supplier_name"`
	Subtotal        float64        `json:"subtotal"`
	TaxPercentage   float64        `json:"tax_percentage"`
	TaxAmount       float64        `json:"tax_amount"`
	DiscountAmount  float64        `json:"discount_amount"`
	ServiceCharge   float64        `json:"service_charge"`
	TotalAmount     float64        `json:"total_amount"`
	PaymentMethod   string         `json:"payment_method"`
	PaymentStatus   string         `json:"payment_status"`
	AmountPaid      float64        `json:"amount_paid"`
	PreviousBalance float64        `json:"previous_balance"`
	CreditAmount    float64        `json:"credit_amount"`
	CheckNumber     string         `json:"check_number,omitempty"`
	PurchaseDate    time.Time      `json:"purchase_date"`
	Items           []PurchaseItem `gorm:"foreignKey:PurchaseID" json:"items"`
}

// PurchaseItem - snapshot row, UnitCost is what we paid the supplier.
type PurchaseItem struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	PurchaseID  uint    `gorm:"index" json:"purchase_id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	UnitCost    float64 `json:"unit_cost"`
	LineTotal   float64 `json:"line_total"`
}

// PurchaseReturn - goods sent back to a supplier, referencing the original
// purchase. The supplier balance drops by TotalCreditAmount (and may go
// negative, representing money the supplier now owes us).
type PurchaseReturn struct {
	ID                uint                 `gorm:"primaryKey" json:"id"`
	UserID            uint                 `gorm:"index" json:"user_id"`
	PurchasePublicID  string               `gorm:"index;size:16" json:"purchase_public_id"`
	SupplierID        uint                 `json:"supplier_id"`
	SupplierName      string               `json:"supplier_name"`
	TotalCreditAmount float64              `json:"total_credit_amount"`
	ReturnDate        time.Time            `json:"return_date"`
	Items             []PurchaseReturnItem `gorm:"foreignKey:PurchaseReturnID" json:"items"`
}

type PurchaseReturnItem struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	PurchaseReturnID uint    `gorm:"index" json:"purchase_return_id"`
	ProductID        uint    `json:"product_id"`
	ProductName      string  `json:"product_name"`
	ReturnQuantity   int     `json:"return_quantity"`
	UnitCost         float64 `json:"unit_cost"`
	LineCredit       float64 `json:"line_credit"`
}

// SalesOrder - a staged cart that has not hit the ledger yet. Processing
// it runs the normal checkout path and marks the order consumed.
type SalesOrder struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	UserID      uint             `gorm:"index" json:"user_id"`
	CustomerID  *uint            `json:"customer_id"`
	PartyName   string           `json:"party_name"`
	TotalAmount float64          `json:"total_amount"`
	Status      string           `json:"status"` // pending|processed
	OrderDate   time.Time        `json:"order_date"`
	Items       []SalesOrderItem `gorm:"foreignKey:SalesOrderID" json:"items"`
}

type SalesOrderItem struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	SalesOrderID uint    `gorm:"index" json:"sales_order_id"`
	ProductID    uint    `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
}

// PurchaseOrder - staged supplier order, processed into a Purchase.
type PurchaseOrder struct {
	ID          uint                `gorm:"primaryKey" json:"id"`
	UserID      uint                `gorm:"index" json:"user_id"`
	SupplierID  *uint               `json:"supplier_id"`
	PartyName   string              `json:"party_name"`
	TotalAmount float64             `json:"total_amount"`
	Status      string              `json:"status"`
	OrderDate   time.Time           `json:"order_date"`
	Items       []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID" json:"items"`
}

type PurchaseOrderItem struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	PurchaseOrderID uint    `gorm:"index" json:"purchase_order_id"`
	ProductID       uint    `json:"product_id"`
	ProductName     string  `json:"product_name"`
	Quantity        int     `json:"quantity"`
	UnitCost        float64 `json:"unit_cost"`
}

// Expense - out-of-pocket money going out (rent, utilities, wages).
type Expense struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	Note        string    `json:"note"`
	ExpenseDate time.Time `json:"expense_date"`
}

// Counter - one row per (entity type, tenant), holding the last issued
// sequence number for human-readable IDs. Only ever read or written
// inside the transaction that creates the entity being named.
type Counter struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	UserID     uint   `gorm:"uniqueIndex:idx_counter_scope" json:"user_id"`
	EntityType string `gorm:"uniqueIndex:idx_counter_scope;size:32" json:"entity_type"`
	LastID     int64  `json:"last_id"`
}
