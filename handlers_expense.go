package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"gobudget/models"
	"gobudget/pkg/ledger"
)

const dateLayout = "2006-01-02"

func listExpensesHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, false)
	if !ok {
		return
	}
	var expenses []models.Expense
	if err := db.Where("budget_id = ?", budget.ID).Order("created desc, id desc").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func createExpenseHandler(c *gin.Context) {
	budget, user, ok := budgetScope(c, true)
	if !ok {
		return
	}
	var req struct {
		Name              string `json:"name" binding:"required"`
		AccountID         uint   `json:"account_id" binding:"required"`
		CategoryID        uint   `json:"category_id" binding:"required"`
		Amount            string `json:"amount" binding:"required"`
		Created           string `json:"created" binding:"required"`
		ExternalReference string `json:"external_reference"`
		Note              string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"amount": "invalid amount"}})
		return
	}
	created, err := time.Parse(dateLayout, req.Created)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"created": "invalid date, expected YYYY-MM-DD"}})
		return
	}
	// only unlocked accounts are offered for new expenses
	var account models.Account
	if err := db.Where("id = ? AND budget_id = ? AND locked = ?", req.AccountID, budget.ID, false).
		First(&account).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"account_id": "unknown or locked account"}})
		return
	}
	if _, ok := categoryInBudget(c, budget, req.CategoryID, "category_id"); !ok {
		return
	}

	accountID := account.ID
	categoryID := req.CategoryID
	userID := user.ID
	expense := models.Expense{
		Name:              req.Name,
		BudgetID:          budget.ID,
		CategoryID:        &categoryID,
		Created:           created,
		Amount:            amount,
		AuthorID:          &userID,
		UpdatedByID:       &userID,
		ExternalReference: req.ExternalReference,
		AccountID:         &accountID,
		Note:              req.Note,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		balance, err := ledger.BalanceAt(tx, &account, created)
		if err != nil {
			return err
		}
		if balance.LessThan(amount) {
			return ledger.ErrNotEnoughMoney
		}
		return tx.Create(&expense).Error
	})
	if errors.Is(err, ledger.ErrNotEnoughMoney) {
		fieldError(c, "amount", "NOT_ENOUGH_MONEY")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	clearDashboardCache(budget.ID)
	c.JSON(http.StatusOK, gin.H{"id": expense.ID, "message": ledger.Translate(db, "EXPENSE_CREATED", langCode())})
}

// getExpenseHandler returns the expense and its modification history, newest
// change first.
func getExpenseHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, false)
	if !ok {
		return
	}
	expense, ok := expenseInScope(c, budget)
	if !ok {
		return
	}
	var mods []models.ExpenseModification
	if err := db.Where("expense_id = ?", expense.ID).Order("timestamp desc, id desc").Find(&mods).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expense": expense, "modifications": mods})
}

// updateExpenseHandler saves an edited expense. The persisted row is
// re-read and row-locked inside the transaction, the field diff is logged
// against that state, and the save only commits together with its audit
// records.
func updateExpenseHandler(c *gin.Context) {
	budget, user, ok := budgetScope(c, true)
	if !ok {
		return
	}
	expense, ok := expenseInScope(c, budget)
	if !ok {
		return
	}
	var req struct {
		Name              *string `json:"name"`
		AccountID         *uint   `json:"account_id"`
		CategoryID        *uint   `json:"category_id"`
		Amount            *string `json:"amount"`
		Created           *string `json:"created"`
		ExternalReference *string `json:"external_reference"`
		Note              *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var amount *decimal.Decimal
	if req.Amount != nil {
		a, err := decimal.NewFromString(*req.Amount)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"amount": "invalid amount"}})
			return
		}
		amount = &a
	}
	var created *time.Time
	if req.Created != nil {
		t, err := time.Parse(dateLayout, *req.Created)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"created": "invalid date, expected YYYY-MM-DD"}})
			return
		}
		created = &t
	}
	if req.CategoryID != nil {
		if _, ok := categoryInBudget(c, budget, *req.CategoryID, "category_id"); !ok {
			return
		}
	}
	if req.AccountID != nil {
		// switching accounts only offers unlocked ones; staying on a now-locked
		// account is fine
		if expense.AccountID == nil || *req.AccountID != *expense.AccountID {
			var cnt int64
			db.Model(&models.Account{}).
				Where("id = ? AND budget_id = ? AND locked = ?", *req.AccountID, budget.ID, false).Count(&cnt)
			if cnt == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"account_id": "unknown or locked account"}})
				return
			}
		}
	}

	userID := user.ID
	err := db.Transaction(func(tx *gorm.DB) error {
		var old models.Expense
		if err := ledger.LockForUpdate(tx).Where("id = ? AND budget_id = ?", expense.ID, budget.ID).
			First(&old).Error; err != nil {
			return err
		}
		updated := old
		if req.Name != nil {
			updated.Name = *req.Name
		}
		if req.AccountID != nil {
			updated.AccountID = req.AccountID
		}
		if req.CategoryID != nil {
			updated.CategoryID = req.CategoryID
		}
		if amount != nil {
			updated.Amount = *amount
		}
		if created != nil {
			updated.Created = *created
		}
		if req.ExternalReference != nil {
			updated.ExternalReference = *req.ExternalReference
		}
		if req.Note != nil {
			updated.Note = *req.Note
		}
		updated.UpdatedByID = &userID

		if updated.AccountID != nil {
			var account models.Account
			if err := tx.First(&account, *updated.AccountID).Error; err != nil {
				return err
			}
			// the old row is still persisted, so its amount is part of the sum
			balance, err := ledger.BalanceAt(tx, &account, updated.Created)
			if err != nil {
				return err
			}
			if balance.LessThan(updated.Amount) {
				return ledger.ErrNotEnoughMoney
			}
		}

		if err := ledger.LogModifications(tx, &old, &updated, &userID); err != nil {
			return err
		}
		return tx.Save(&updated).Error
	})
	if errors.Is(err, ledger.ErrNotEnoughMoney) {
		fieldError(c, "amount", "NOT_ENOUGH_MONEY")
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	clearDashboardCache(budget.ID)
	c.JSON(http.StatusOK, gin.H{"message": ledger.Translate(db, "EXPENSE_UPDATED", langCode())})
}

func deleteExpenseHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, true)
	if !ok {
		return
	}
	expense, ok := expenseInScope(c, budget)
	if !ok {
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		// modifications cascade with the expense
		if err := tx.Where("expense_id = ?", expense.ID).Delete(&models.ExpenseModification{}).Error; err != nil {
			return err
		}
		return tx.Delete(expense).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	clearDashboardCache(budget.ID)
	c.JSON(http.StatusOK, gin.H{"message": ledger.Translate(db, "EXPENSE_DELETED", langCode())})
}

func expenseInScope(c *gin.Context, budget *models.Budget) (*models.Expense, bool) {
	id, err := strconv.Atoi(c.Param("eid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return nil, false
	}
	var expense models.Expense
	if err := db.Where("id = ? AND budget_id = ?", id, budget.ID).First(&expense).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "expense not found"})
		return nil, false
	}
	return &expense, true
}
