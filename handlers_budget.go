package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gobudget/models"
	"gobudget/pkg/ledger"
)

// listBudgetsHandler returns every budget the user may read. Unlike the
// budget-scoped endpoints this filters silently instead of raising; it backs
// the budget selection screen.
func listBudgetsHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var budgets []models.Budget
	if err := db.Preload("ReadAccess").Preload("WriteAccess").Preload("Currency").
		Order("name").Find(&budgets).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	readable := make([]gin.H, 0, len(budgets))
	for i := range budgets {
		if !ledger.CanRead(&budgets[i], user) {
			continue
		}
		readable = append(readable, budgetResponse(&budgets[i]))
	}
	c.JSON(http.StatusOK, readable)
}

func createBudgetHandler(c *gin.Context) {
	user, ok := getUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	var req struct {
		Name       string `json:"name" binding:"required"`
		Note       string `json:"note"`
		CurrencyID *uint  `json:"currency_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var cnt int64
	db.Model(&models.Budget{}).Where("name = ?", req.Name).Count(&cnt)
	if cnt > 0 {
		fieldError(c, "name", "NAME_ALREADY_IN_USE")
		return
	}
	ownerID := user.ID
	budget := models.Budget{Name: req.Name, Note: req.Note, OwnerID: &ownerID, CurrencyID: req.CurrencyID}
	if err := db.Create(&budget).Error; err != nil {
		if isUniqueConstraintError(err) {
			fieldError(c, "name", "NAME_ALREADY_IN_USE")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": budget.ID})
}

func getBudgetHandler(c *gin.Context) {
	budget, _, ok := budgetScope(c, false)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, budgetResponse(budget))
}

// updateBudgetHandler edits budget metadata. Only the owner or a superuser
// may touch it; write-access members manage contents, not the budget itself.
func updateBudgetHandler(c *gin.Context) {
	budget, user, ok := budgetScope(c, false)
	if !ok {
		return
	}
	if !user.IsSuperuser && (budget.OwnerID == nil || *budget.OwnerID != user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": ledger.Translate(db, "PERMISSION_DENIED", langCode())})
		return
	}
	var req struct {
		Name       *string `json:"name"`
		Note       *string `json:"note"`
		CurrencyID *uint   `json:"currency_id"`
		OwnerID    *uint   `json:"owner_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Name != nil && *req.Name != budget.Name {
		var cnt int64
		db.Model(&models.Budget{}).Where("name = ? AND id <> ?", *req.Name, budget.ID).Count(&cnt)
		if cnt > 0 {
			fieldError(c, "name", "NAME_ALREADY_IN_USE")
			return
		}
		budget.Name = *req.Name
	}
	if req.Note != nil {
		budget.Note = *req.Note
	}
	if req.CurrencyID != nil {
		var cur models.Currency
		if err := db.First(&cur, *req.CurrencyID).Error; err != nil {
			fieldError(c, "currency_id", "NOT_FOUND")
			return
		}
		budget.CurrencyID = req.CurrencyID
	}
	if req.OwnerID != nil {
		var owner models.User
		if err := db.First(&owner, *req.OwnerID).Error; err != nil {
			fieldError(c, "owner_id", "NOT_FOUND")
			return
		}
		budget.OwnerID = req.OwnerID
	}
	if err := db.Save(budget).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ledger.Translate(db, "BUDGET_UPDATED", langCode())})
}

// updateBudgetAccessHandler replaces the read/write access lists with the
// given usernames. Owner or superuser only.
func updateBudgetAccessHandler(c *gin.Context) {
	budget, user, ok := budgetScope(c, false)
	if !ok {
		return
	}
	if !user.IsSuperuser && (budget.OwnerID == nil || *budget.OwnerID != user.ID) {
		c.JSON(http.StatusForbidden, gin.H{"error": ledger.Translate(db, "PERMISSION_DENIED", langCode())})
		return
	}
	var req struct {
		Read  []string `json:"read"`
		Write []string `json:"write"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	readUsers, err := usersByNames(req.Read)
	if err != nil {
		fieldError(c, "read", "NOT_FOUND")
		return
	}
	writeUsers, err := usersByNames(req.Write)
	if err != nil {
		fieldError(c, "write", "NOT_FOUND")
		return
	}
	if err := db.Model(budget).Association("ReadAccess").Replace(readUsers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	if err := db.Model(budget).Association("WriteAccess").Replace(writeUsers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": ledger.Translate(db, "BUDGET_UPDATED", langCode())})
}

func usersByNames(names []string) ([]models.User, error) {
	users := make([]models.User, 0, len(names))
	for _, name := range names {
		var u models.User
		if err := db.Where("username = ?", name).First(&u).Error; err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, nil
}

func budgetResponse(b *models.Budget) gin.H {
	readNames := make([]string, 0, len(b.ReadAccess))
	for _, u := range b.ReadAccess {
		readNames = append(readNames, u.Username)
	}
	writeNames := make([]string, 0, len(b.WriteAccess))
	for _, u := range b.WriteAccess {
		writeNames = append(writeNames, u.Username)
	}
	return gin.H{
		"id":           b.ID,
		"name":         b.Name,
		"note":         b.Note,
		"owner_id":     b.OwnerID,
		"currency":     b.Currency,
		"read_access":  readNames,
		"write_access": writeNames,
	}
}
