package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/ledger"
	"storeflex-lite/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type PartyRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// --- Customers ---

func GetCustomers(c *gin.Context) {
	var customers []models.Customer
	if err := database.DB.Where("user_id = ?", tenantID(c)).Find(&customers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch customers"})
		return
	}
	c.JSON(http.StatusOK, customers)
}

func AddCustomer(c *gin.Context) {
	var input PartyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userID := tenantID(c)
	var customer models.Customer
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		publicID, err := ledger.NextID(tx, ledger.EntityCustomer, userID)
		if err != nil {
			return err
		}
		customer = models.Customer{
			PublicID: publicID,
			UserID:   userID,
			Name:     input.Name,
			Phone:    input.Phone,
		}
		if err := tx.Create(&customer).Error; err != nil {
			return err
		}
		activity := models.NewRecordActivity(userID, models.ActivityNew,
			fmt.Sprintf("Added customer %s (%s)", customer.Name, customer.PublicID))
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func UpdateCustomer(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Customer ID"})
		return
	}

	userID := tenantID(c)
	var customer models.Customer
	if err := database.DB.Where("user_id = ?", userID).First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	var input PartyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	customer.Name = input.Name
	customer.Phone = input.Phone
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&customer).Error; err != nil {
			return err
		}
		activity := models.NewRecordActivity(userID, models.ActivityUpdate,
			fmt.Sprintf("Updated customer %s", customer.Name))
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update customer"})
		return
	}

	c.JSON(http.StatusOK, customer)
}

func DeleteCustomer(c *gin.Context) {
	id := c.Param("id")
	userID := tenantID(c)

	var customer models.Customer
	if err := database.DB.Where("user_id = ?", userID).First(&customer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Customer not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&customer).Error; err != nil {
			return err
		}
		activity := models.NewRecordActivity(userID, models.ActivityDelete,
			fmt.Sprintf("Deleted customer %s (%s)", customer.Name, customer.PublicID))
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete customer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}

// --- Suppliers ---

func GetSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := database.DB.Where("user_id = ?", tenantID(c)).Find(&suppliers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch suppliers"})
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

func AddSupplier(c *gin.Context) {
	var input PartyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	userID := tenantID(c)
	var supplier models.Supplier
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		publicID, err := ledger.NextID(tx, ledger.EntitySupplier, userID)
		if err != nil {
			return err
		}
		supplier = models.Supplier{
			PublicID: publicID,
			UserID:   userID,
			Name:     input.Name,
			Phone:    input.Phone,
		}
		if err := tx.Create(&supplier).Error; err != nil {
			return err
		}
		activity := models.NewRecordActivity(userID, models.ActivityNew,
			fmt.Sprintf("Added supplier %s (%s)", supplier.Name, supplier.PublicID))
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create supplier"})
		return
	}

	c.JSON(http.StatusCreated, supplier)
}

func UpdateSupplier(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid Supplier ID"})
		return
	}

	userID := tenantID(c)
	var supplier models.Supplier
	if err := database.DB.Where("user_id = ?", userID).First(&supplier, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	var input PartyRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	supplier.Name = input.Name
	supplier.Phone = input.Phone
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&supplier).Error; err != nil {
			return err
		}
		activity := models.NewRecordActivity(userID, models.ActivityUpdate,
			fmt.Sprintf("Updated supplier %s", supplier.Name))
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update supplier"})
		return
	}

	c.JSON(http.StatusOK, supplier)
}

func DeleteSupplier(c *gin.Context) {
	id := c.Param("id")
	userID := tenantID(c)

	var supplier models.Supplier
	if err := database.DB.Where("user_id = ?", userID).First(&supplier, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Supplier not found"})
		return
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&supplier).Error; err != nil {
			return err
		}
		activity := models.NewRecordActivity(userID, models.ActivityDelete,
			fmt.Sprintf("Deleted supplier %s (%s)", supplier.Name, supplier.PublicID))
		return tx.Create(&activity).Error
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not delete supplier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Supplier deleted successfully"})
}
