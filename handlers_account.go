package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"gobudget/models"
	"gobudget/pkg/ledger"
)

func listAccountsHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, false)
	if !ok {
		return
	}
	var accounts []models.Account
	if err := db.Where("budget_id = ?", budget.ID).Order("name").Find(&accounts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	out := make([]gin.H, 0, len(accounts))
	for i := range accounts {
		balance, err := ledger.CurrentBalance(db, &accounts[i])
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
			return
		}
		out = append(out, gin.H{
			"id":              accounts[i].ID,
			"name":            accounts[i].Name,
			"start_balance":   accounts[i].StartBalance,
			"locked":          accounts[i].Locked,
			"current_balance": balance,
		})
	}
	c.JSON(http.StatusOK, out)
}

func createAccountHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, true)
	if !ok {
		return
	}
	var req struct {
		Name         string `json:"name" binding:"required"`
		StartBalance string `json:"start_balance" binding:"required"`
		Locked       bool   `json:"locked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	startBalance, err := decimal.NewFromString(req.StartBalance)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"start_balance": "invalid amount"}})
		return
	}
	// name must be unique within the budget; the same name in another budget is fine
	var cnt int64
	db.Model(&models.Account{}).Where("budget_id = ? AND name = ?", budget.ID, req.Name).Count(&cnt)
	if cnt > 0 {
		fieldError(c, "name", "NAME_ALREADY_IN_USE")
		return
	}
	account := models.Account{Name: req.Name, BudgetID: budget.ID, StartBalance: startBalance, Locked: req.Locked}
	if err := db.Create(&account).Error; err != nil {
		if isUniqueConstraintError(err) {
			fieldError(c, "name", "NAME_ALREADY_IN_USE")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	clearDashboardCache(budget.ID)
	c.JSON(http.StatusOK, gin.H{"id": account.ID, "message": ledger.Translate(db, "ACCOUNT_CREATED", langCode())})
}

func getAccountHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, false)
	if !ok {
		return
	}
	account, ok := accountInScope(c, budget)
	if !ok {
		return
	}
	var expenses []models.Expense
	if err := db.Where("account_id = ?", account.ID).Order("created desc, id desc").Find(&expenses).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	spent, err := ledger.SpentOn(db, account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	remaining, err := ledger.CurrentBalance(db, account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":            account.ID,
		"name":          account.Name,
		"start_balance": account.StartBalance,
		"locked":        account.Locked,
		"currency":      budget.Currency,
		"spent":         spent,
		"remaining":     remaining,
		"num_expenses":  len(expenses),
		"expenses":      expenses,
	})
}

func updateAccountHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, true)
	if !ok {
		return
	}
	account, ok := accountInScope(c, budget)
	if !ok {
		return
	}
	var req struct {
		Name         *string `json:"name"`
		StartBalance *string `json:"start_balance"`
		Locked       *bool   `json:"locked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil && *req.Name != account.Name {
		var cnt int64
		db.Model(&models.Account{}).Where("budget_id = ? AND name = ?", budget.ID, *req.Name).Count(&cnt)
		if cnt > 0 {
			fieldError(c, "name", "NAME_ALREADY_IN_USE")
			return
		}
		account.Name = *req.Name
	}
	if req.StartBalance != nil {
		startBalance, err := decimal.NewFromString(*req.StartBalance)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": gin.H{"start_balance": "invalid amount"}})
			return
		}
		account.StartBalance = startBalance
	}
	if req.Locked != nil {
		account.Locked = *req.Locked
	}
	if err := db.Save(account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	clearDashboardCache(budget.ID)
	c.JSON(http.StatusOK, gin.H{"message": ledger.Translate(db, "ACCOUNT_UPDATED", langCode())})
}

func deleteAccountHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, true)
	if !ok {
		return
	}
	account, ok := accountInScope(c, budget)
	if !ok {
		return
	}
	if err := db.Delete(account).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	clearDashboardCache(budget.ID)
	c.JSON(http.StatusOK, gin.H{"message": ledger.Translate(db, "ACCOUNT_DELETED", langCode())})
}

// accountInScope loads the account in the URL and verifies it belongs to the
// budget; an account of another budget is reported as not found.
func accountInScope(c *gin.Context, budget *models.Budget) (*models.Account, bool) {
	id, err := strconv.Atoi(c.Param("aid"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return nil, false
	}
	var account models.Account
	if err := db.Where("id = ? AND budget_id = ?", id, budget.ID).First(&account).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "account not found"})
		return nil, false
	}
	return &account, true
}
