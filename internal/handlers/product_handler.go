package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"storeflex-lite/internal/ai"
	"storeflex-lite/internal/database"
	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// --- GET: List all products (tenant scoped) ---
func GetProducts(c *gin.Context) {
	var products []models.Product

	result := database.DB.Where("user_id = ?", tenantID(c)).Find(&products)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

type ProductRequest struct {
	Name              string  `json:"name" binding:"required"`
	Barcode           string  `json:"barcode"`
	Category          string  `json:"category"`
	Stock             int     `json:"stock" binding:"gte=0"`
	CostPrice         float64 `json:"cost_price" binding:"gte=0"`
	SellingPrice      float64 `json:"selling_price" binding:"gte=0"`
	LowStockThreshold int     `json:"low_stock_threshold"`
	ImageURL          string  `json:"image_url"`
}

// --- POST: Add a new product ---
func AddProduct(c *gin.Context) {
	var input ProductRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userID := tenantID(c)
	product := models.Product{
		UserID:            userID,
		Name:              input.Name,
		Barcode:           input.Barcode,
		Category:          input.Category,
		Stock:             input.Stock,
		CostPrice:         input.CostPrice,
		SellingPrice:      input.SellingPrice,
		LowStockThreshold: input.LowStockThreshold,
		ImageURL:          input.ImageURL,
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		activity := models.NewProductActivity(userID, models.ActivityNew, product.ID, product.Name,
			fmt.Sprintf("Added product %s", product.Name))
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// --- PUT: Update product details ---
// Stock and cost price are ledger-owned; direct edits here cover catalog
// corrections, not bookkeeping.
func UpdateProduct(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	userID := tenantID(c)
	var product models.Product
	if err := database.DB.Where("user_id = ?", userID).First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	// A map so we only update what was sent (partial update).
	var updateData map[string]interface{}
	if err := c.ShouldBindJSON(&updateData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}
	delete(updateData, "user_id") // tenant is never client-writable

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product).Updates(updateData).Error; err != nil {
			return err
		}
		activity := models.NewProductActivity(userID, models.ActivityUpdate, product.ID, product.Name,
			fmt.Sprintf("Updated product %s", product.Name))
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
}

// --- DELETE: Remove a product ---
func DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	userID := tenantID(c)

	var product models.Product
	if err := database.DB.Where("user_id = ?", userID).First(&product, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&product).Error; err != nil {
			return err
		}
		activity := models.NewProductActivity(userID, models.ActivityDelete, product.ID, product.Name,
			fmt.Sprintf("Deleted product %s", product.Name))
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete product. It might be linked to past sales."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// --- GET: Scan a barcode ---
// Local inventory first; if the barcode is unknown, ask the AI for a
// best-effort identification the user can turn into a new product.
func ScanProduct(c *gin.Context) {
	barcode := c.Param("barcode")
	userID := tenantID(c)

	var product models.Product
	if err := database.DB.Where("user_id = ? AND barcode = ?", userID, barcode).
		First(&product).Error; err == nil {
		c.JSON(http.StatusOK, gin.H{"found": true, "product": product})
		return
	}

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"found": false, "error": "Barcode not in inventory"})
		return
	}

	lookup, err := ai.LookupBarcode(c.Request.Context(), barcode, apiKey)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"found": false, "error": "Barcode not in inventory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"found": false, "suggestion": lookup})
}

type LossRequest struct {
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Reason   string `json:"reason" binding:"required"`
}

// --- POST: Write off damaged/lost stock ---
func RecordStockLoss(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Product ID"})
		return
	}

	var input LossRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	product, err := ledger.RecordStockLoss(database.DB, tenantID(c), uint(id), input.Quantity, input.Reason)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Stock loss recorded", "product": product})
}

// --- UPLOAD: Handle Image Files ---
func UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	// Random name so uploads can never collide or traverse paths.
	filename := uuid.NewString() + filepath.Ext(file.Filename)
	savePath := "./uploads/" + filename

	if err := c.SaveUploadedFile(file, savePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"url":     baseURL + "/uploads/" + filename,
	})
}
