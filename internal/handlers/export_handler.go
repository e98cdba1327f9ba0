package handlers

import (
	"fmt"
	"net/http"
	"time"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// --- GET: /api/reports/export ---
// Streams an xlsx workbook with one sheet per record type: sales,
// purchases, activities. Rows are the already-committed record shapes;
// nothing here touches the ledger.
func ExportWorkbook(c *gin.Context) {
	userID := tenantID(c)

	var sales []models.Sale
	if err := database.DB.Where("user_id = ?", userID).Order("sale_date desc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	var purchases []models.Purchase
	if err := database.DB.Where("user_id = ?", userID).Order("purchase_date desc").Find(&purchases).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch purchases"})
		return
	}
	var activities []models.Activity
	if err := database.DB.Where("user_id = ?", userID).Order("created_at desc").Find(&activities).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activities"})
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	salesSheet := "Sales"
	f.SetSheetName("Sheet1", salesSheet)
	salesHeader := []interface{}{"ID", "Date", "Customer", "Subtotal", "Tax", "Discount", "Service Charge", "Total", "Method", "Status", "Paid", "Balance After"}
	writeRow(f, salesSheet, 1, salesHeader)
	for i, s := range sales {
		writeRow(f, salesSheet, i+2, []interface{}{
			s.PublicID, s.SaleDate.Format("2006-01-02 15:04"), s.CustomerName,
			s.Subtotal, s.TaxAmount, s.DiscountAmount, s.ServiceCharge,
			s.TotalAmount, s.PaymentMethod, s.PaymentStatus, s.AmountPaid, s.CreditAmount,
		})
	}

	purchasesSheet := "Purchases"
	f.NewSheet(purchasesSheet)
	purchaseHeader := []interface{}{"ID", "Date", "Supplier", "Subtotal", "Tax", "Discount", "Service Charge", "Total", "Method", "Status", "Paid", "Balance After"}
	writeRow(f, purchasesSheet, 1, purchaseHeader)
	for i, p := range purchases {
		writeRow(f, purchasesSheet, i+2, []interface{}{
			p.PublicID, p.PurchaseDate.Format("2006-01-02 15:04"), p.SupplierName,
			p.Subtotal, p.TaxAmount, p.DiscountAmount, p.ServiceCharge,
			p.TotalAmount, p.PaymentMethod, p.PaymentStatus, p.AmountPaid, p.CreditAmount,
		})
	}

	activitySheet := "Activities"
	f.NewSheet(activitySheet)
	writeRow(f, activitySheet, 1, []interface{}{"Date", "Type", "Product", "Amount", "Details"})
	for i, a := range activities {
		writeRow(f, activitySheet, i+2, []interface{}{
			a.CreatedAt.Format("2006-01-02 15:04"), a.Type, a.ProductName, a.Amount, a.Details,
		})
	}

	filename := fmt.Sprintf("storeflex-export-%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write workbook"})
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		f.SetCellValue(sheet, cell, v)
	}
}
