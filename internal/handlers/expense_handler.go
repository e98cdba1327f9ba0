package handlers

import (
	"net/http"
	"time"

	"storeflex-lite/internal/database"
	"storeflex-lite/internal/models"

	"github.com/gin-gonic/gin"
)

type ExpenseRequest struct {
	Category    string    `json:"category" binding:"required"`
	Amount      float64   `json:"amount" binding:"required,gt=0"`
	Note        string    `json:"note"`
	ExpenseDate time.Time `json:"expense_date"`
}

func AddExpense(c *gin.Context) {
	var input ExpenseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if input.ExpenseDate.IsZero() {
		input.ExpenseDate = time.Now()
	}

	expense := models.Expense{
		UserID:      tenantID(c),
		Category:    input.Category,
		Amount:      input.Amount,
		Note:        input.Note,
		ExpenseDate: input.ExpenseDate,
	}
	if err := database.DB.Create(&expense).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record expense"})
		return
	}

	c.JSON(http.StatusCreated, expense)
}

func GetExpenses(c *gin.Context) {
	var expenses []models.Expense
	err := database.DB.Where("user_id = ?", tenantID(c)).
		Order("expense_date desc").
		Find(&expenses).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch expenses"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func DeleteExpense(c *gin.Context) {
	id := c.Param("id")

	result := database.DB.Where("user_id = ?", tenantID(c)).Delete(&models.Expense{}, id)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete expense"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Expense not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted"})
}
